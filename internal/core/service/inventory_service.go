package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rajagopika181204/techstore/internal/core/domain"
	"github.com/rajagopika181204/techstore/internal/metrics"
	"github.com/rajagopika181204/techstore/internal/port"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateRequest   = errors.New("duplicate request")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// InventoryService fronts the stock reservation protocol. The atomicity
// guarantee lives in the repository; this layer rejects bad input before
// any lock is taken and records outcomes.
type InventoryService struct {
	repo port.InventoryRepository
}

func NewInventoryService(repo port.InventoryRepository) *InventoryService {
	return &InventoryService{repo: repo}
}

func (s *InventoryService) Reserve(ctx context.Context, productID int64, quantity int) error {
	if productID <= 0 {
		return fmt.Errorf("%w: product id must be positive", ErrInvalidInput)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	err := s.repo.ReserveStock(ctx, productID, quantity)
	switch {
	case err == nil:
		metrics.StockReservations.WithLabelValues("ok").Inc()
	case errors.Is(err, domain.ErrInsufficientStock):
		metrics.StockReservations.WithLabelValues("insufficient").Inc()
	case errors.Is(err, domain.ErrProductNotFound):
		metrics.StockReservations.WithLabelValues("not_found").Inc()
	default:
		metrics.StockReservations.WithLabelValues("error").Inc()
	}
	return err
}
