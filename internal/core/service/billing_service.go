package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rajagopika181204/techstore/internal/core/domain"
	"github.com/rajagopika181204/techstore/internal/port"
)

// BillingService appends to the durable billing journal. Record IDs are
// generated, never derived from journal position, so concurrent writers
// cannot collide.
type BillingService struct {
	cache port.CacheRepository
}

func NewBillingService(cache port.CacheRepository) *BillingService {
	return &BillingService{cache: cache}
}

func (s *BillingService) Record(ctx context.Context, items []domain.BillingItem, totalAmount decimal.Decimal, customer string) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("%w: billing items required", ErrInvalidInput)
	}
	if !totalAmount.IsPositive() {
		return "", fmt.Errorf("%w: total amount must be positive", ErrInvalidInput)
	}

	rec := domain.BillingRecord{
		ID:          uuid.NewString(),
		Items:       items,
		TotalAmount: totalAmount,
		Customer:    customer,
		Date:        time.Now().UTC(),
	}

	if err := s.cache.AppendBillingRecord(ctx, rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}
