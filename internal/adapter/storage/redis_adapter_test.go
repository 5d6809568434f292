package storage

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/rajagopika181204/techstore/internal/core/domain"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("TECHSTORE_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	return rdb
}

func TestSetIdempotency(t *testing.T) {
	rdb := getRedisClient(t)
	defer rdb.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(rdb)

	key := "idempotency-test-" + uuid.New().String()
	t.Cleanup(func() { rdb.Del(ctx, key) })

	ok, err := adapter.SetIdempotency(ctx, key)
	if err != nil {
		t.Fatalf("SetIdempotency failed: %v", err)
	}
	if !ok {
		t.Error("expected first set to succeed")
	}

	ok, err = adapter.SetIdempotency(ctx, key)
	if err != nil {
		t.Fatalf("second SetIdempotency failed: %v", err)
	}
	if ok {
		t.Error("expected second set to report existing key")
	}
}

func TestBillingJournal(t *testing.T) {
	rdb := getRedisClient(t)
	defer rdb.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(rdb)

	rec := domain.BillingRecord{
		ID:          uuid.NewString(),
		Items:       []domain.BillingItem{{ProductID: 1, Price: decimal.NewFromInt(250), Quantity: 2}},
		TotalAmount: decimal.NewFromInt(500),
		Customer:    "gopika",
	}
	t.Cleanup(func() {
		rdb.Del(ctx, billingKeyPrefix+rec.ID)
		rdb.LRem(ctx, billingJournalKey, 1, rec.ID)
	})

	if err := adapter.AppendBillingRecord(ctx, rec); err != nil {
		t.Fatalf("AppendBillingRecord failed: %v", err)
	}

	got, err := adapter.GetBillingRecord(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetBillingRecord failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected record, got nil")
	}
	if got.ID != rec.ID || got.Customer != "gopika" {
		t.Errorf("unexpected record: %+v", got)
	}
	if !got.TotalAmount.Equal(rec.TotalAmount) {
		t.Errorf("expected total %s, got %s", rec.TotalAmount, got.TotalAmount)
	}

	// The journal must index the record.
	ids, err := rdb.LRange(ctx, billingJournalKey, 0, -1).Result()
	if err != nil {
		t.Fatalf("read journal: %v", err)
	}
	found := false
	for _, id := range ids {
		if id == rec.ID {
			found = true
			break
		}
	}
	if !found {
		t.Error("record id missing from journal")
	}
}

func TestGetBillingRecord_Missing(t *testing.T) {
	rdb := getRedisClient(t)
	defer rdb.Close()

	adapter := NewRedisAdapter(rdb)

	got, err := adapter.GetBillingRecord(context.Background(), "no-such-record")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing record, got %+v", got)
	}
}

func TestTracking(t *testing.T) {
	rdb := getRedisClient(t)
	defer rdb.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(rdb)

	code := "TRK-TEST-" + uuid.New().String()
	t.Cleanup(func() { rdb.Del(ctx, trackingKeyPrefix+code) })

	info := domain.TrackingInfo{Status: "Shipped", ExpectedDelivery: "2025-06-15"}
	if err := adapter.SetTracking(ctx, code, info); err != nil {
		t.Fatalf("SetTracking failed: %v", err)
	}

	got, err := adapter.GetTracking(ctx, code)
	if err != nil {
		t.Fatalf("GetTracking failed: %v", err)
	}
	if got.Status != "Shipped" || got.ExpectedDelivery != "2025-06-15" {
		t.Errorf("unexpected tracking info: %+v", got)
	}
}

func TestGetTracking_NotFound(t *testing.T) {
	rdb := getRedisClient(t)
	defer rdb.Close()

	adapter := NewRedisAdapter(rdb)

	_, err := adapter.GetTracking(context.Background(), "no-such-code")
	if err != domain.ErrTrackingNotFound {
		t.Errorf("expected ErrTrackingNotFound, got: %v", err)
	}
}
