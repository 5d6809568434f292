package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rajagopika181204/techstore/internal/core/domain"
)

const (
	billingKeyPrefix  = "billing:"
	billingJournalKey = "billing:journal"
	trackingKeyPrefix = "tracking:"

	idempotencyKeyTTL = 24 * time.Hour
)

type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (r *RedisAdapter) SetIdempotency(ctx context.Context, key string) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, 1, idempotencyKeyTTL).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// AppendBillingRecord stores the record under its own key and pushes the
// ID onto the journal list. Both writes go in one MULTI/EXEC so the
// journal never references a missing record.
func (r *RedisAdapter) AppendBillingRecord(ctx context.Context, rec domain.BillingRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal billing record: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, billingKeyPrefix+rec.ID, payload, 0)
		pipe.RPush(ctx, billingJournalKey, rec.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("append billing record: %w", err)
	}
	return nil
}

func (r *RedisAdapter) GetBillingRecord(ctx context.Context, id string) (*domain.BillingRecord, error) {
	payload, err := r.client.Get(ctx, billingKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get billing record: %w", err)
	}

	var rec domain.BillingRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal billing record: %w", err)
	}
	return &rec, nil
}

func (r *RedisAdapter) GetTracking(ctx context.Context, code string) (*domain.TrackingInfo, error) {
	payload, err := r.client.Get(ctx, trackingKeyPrefix+code).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrTrackingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get tracking: %w", err)
	}

	var info domain.TrackingInfo
	if err := json.Unmarshal(payload, &info); err != nil {
		return nil, fmt.Errorf("unmarshal tracking: %w", err)
	}
	return &info, nil
}

func (r *RedisAdapter) SetTracking(ctx context.Context, code string, info domain.TrackingInfo) error {
	payload, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshal tracking: %w", err)
	}
	return r.client.Set(ctx, trackingKeyPrefix+code, payload, 0).Err()
}
