package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rajagopika181204/techstore/internal/core/domain"
	"github.com/rajagopika181204/techstore/internal/metrics"
	"github.com/rajagopika181204/techstore/internal/port"
)

// CheckoutService is the composed purchase path: one database transaction
// reserves stock for every line item, records the order, and clears the
// cart. A failed step rolls back the whole unit, reservations included.
type CheckoutService struct {
	repo  port.CheckoutRepository
	cache port.CacheRepository
}

func NewCheckoutService(repo port.CheckoutRepository, cache port.CacheRepository) *CheckoutService {
	return &CheckoutService{repo: repo, cache: cache}
}

func (s *CheckoutService) Checkout(ctx context.Context, requestID, userID string, order domain.NewOrder) (int64, error) {
	if requestID == "" {
		return 0, fmt.Errorf("%w: request id required", ErrInvalidInput)
	}
	if userID == "" {
		return 0, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	if err := validateNewOrder(order); err != nil {
		return 0, err
	}

	ok, err := s.cache.SetIdempotency(ctx, "checkout:"+requestID)
	if err != nil {
		return 0, fmt.Errorf("idempotency check failed: %w", err)
	}
	if !ok {
		return 0, ErrDuplicateRequest
	}

	orderID, err := s.repo.Checkout(ctx, userID, order)
	switch {
	case err == nil:
		metrics.Checkouts.WithLabelValues("ok").Inc()
	case errors.Is(err, domain.ErrInsufficientStock):
		metrics.Checkouts.WithLabelValues("insufficient").Inc()
	case errors.Is(err, domain.ErrProductNotFound):
		metrics.Checkouts.WithLabelValues("not_found").Inc()
	default:
		metrics.Checkouts.WithLabelValues("error").Inc()
	}
	if err != nil {
		return 0, err
	}
	return orderID, nil
}
