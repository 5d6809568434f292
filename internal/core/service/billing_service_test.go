package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajagopika181204/techstore/internal/core/domain"
)

func TestBillingRecord(t *testing.T) {
	cache := newMockCacheRepo()
	svc := NewBillingService(cache)

	items := []domain.BillingItem{
		{ProductID: 1, Name: "keyboard", Price: decimal.NewFromInt(250), Quantity: 2},
	}

	id, err := svc.Record(context.Background(), items, decimal.NewFromInt(500), "gopika")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.Len(t, cache.billing, 1)
	rec := cache.billing[0]
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, items, rec.Items)
	assert.False(t, rec.Date.IsZero())
}

func TestBillingRecord_UniqueIDs(t *testing.T) {
	cache := newMockCacheRepo()
	svc := NewBillingService(cache)

	items := []domain.BillingItem{{ProductID: 1, Price: decimal.NewFromInt(10), Quantity: 1}}

	a, err := svc.Record(context.Background(), items, decimal.NewFromInt(10), "")
	require.NoError(t, err)
	b, err := svc.Record(context.Background(), items, decimal.NewFromInt(10), "")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "record ids must never collide")
}

func TestBillingRecord_Validation(t *testing.T) {
	svc := NewBillingService(newMockCacheRepo())

	_, err := svc.Record(context.Background(), nil, decimal.NewFromInt(10), "")
	require.ErrorIs(t, err, ErrInvalidInput)

	items := []domain.BillingItem{{ProductID: 1, Price: decimal.NewFromInt(10), Quantity: 1}}
	_, err = svc.Record(context.Background(), items, decimal.Zero, "")
	require.ErrorIs(t, err, ErrInvalidInput)
}
