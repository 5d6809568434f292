package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajagopika181204/techstore/internal/core/domain"
)

// Mock CheckoutRepository
type mockCheckoutRepo struct {
	nextID int64
	err    error
	calls  int
}

func (m *mockCheckoutRepo) Checkout(ctx context.Context, userID string, order domain.NewOrder) (int64, error) {
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	return m.nextID, nil
}

// Mock CacheRepository
type mockCacheRepo struct {
	mu   sync.Mutex
	keys map[string]bool

	billing []domain.BillingRecord
}

func newMockCacheRepo() *mockCacheRepo {
	return &mockCacheRepo{keys: make(map[string]bool)}
}

func (m *mockCacheRepo) SetIdempotency(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.keys[key] {
		return false, nil
	}
	m.keys[key] = true
	return true, nil
}

func (m *mockCacheRepo) AppendBillingRecord(ctx context.Context, rec domain.BillingRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.billing = append(m.billing, rec)
	return nil
}

func (m *mockCacheRepo) GetTracking(ctx context.Context, code string) (*domain.TrackingInfo, error) {
	return nil, domain.ErrTrackingNotFound
}

func (m *mockCacheRepo) SetTracking(ctx context.Context, code string, info domain.TrackingInfo) error {
	return nil
}

func TestCheckout_Success(t *testing.T) {
	repo := &mockCheckoutRepo{nextID: 7}
	svc := NewCheckoutService(repo, newMockCacheRepo())

	orderID, err := svc.Checkout(context.Background(), "req-1", "u1", validOrder())
	require.NoError(t, err)
	assert.Equal(t, int64(7), orderID)
	assert.Equal(t, 1, repo.calls)
}

func TestCheckout_DuplicateRequest(t *testing.T) {
	repo := &mockCheckoutRepo{nextID: 7}
	svc := NewCheckoutService(repo, newMockCacheRepo())

	_, err := svc.Checkout(context.Background(), "req-1", "u1", validOrder())
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), "req-1", "u1", validOrder())
	require.ErrorIs(t, err, ErrDuplicateRequest)
	assert.Equal(t, 1, repo.calls, "duplicate must not reach the database")
}

func TestCheckout_ValidationBeforeIdempotency(t *testing.T) {
	cache := newMockCacheRepo()
	svc := NewCheckoutService(&mockCheckoutRepo{}, cache)

	order := validOrder()
	order.Items = nil

	_, err := svc.Checkout(context.Background(), "req-1", "u1", order)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, cache.keys, "invalid input must not consume the idempotency key")
}

func TestCheckout_RequiresRequestAndUserIDs(t *testing.T) {
	svc := NewCheckoutService(&mockCheckoutRepo{}, newMockCacheRepo())

	_, err := svc.Checkout(context.Background(), "", "u1", validOrder())
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Checkout(context.Background(), "req-1", "", validOrder())
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCheckout_PropagatesStockErrors(t *testing.T) {
	for _, want := range []error{domain.ErrInsufficientStock, domain.ErrProductNotFound} {
		repo := &mockCheckoutRepo{err: want}
		svc := NewCheckoutService(repo, newMockCacheRepo())

		_, err := svc.Checkout(context.Background(), "req-x", "u1", validOrder())
		require.ErrorIs(t, err, want)
	}
}
