package service

import (
	"context"
	"fmt"

	"github.com/rajagopika181204/techstore/internal/core/domain"
	"github.com/rajagopika181204/techstore/internal/port"
)

// CartService owns the pre-checkout working set. Carts carry no stock
// reservation; availability is only checked at checkout.
type CartService struct {
	repo port.CartRepository
}

func NewCartService(repo port.CartRepository) *CartService {
	return &CartService{repo: repo}
}

func (s *CartService) Get(ctx context.Context, userID string) ([]domain.CartLine, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	return s.repo.GetCart(ctx, userID)
}

// Save replaces the user's entire cart. An empty items list clears it.
func (s *CartService) Save(ctx context.Context, userID string, items []domain.CartItem) error {
	if userID == "" {
		return fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	for _, item := range items {
		if item.ProductID <= 0 {
			return fmt.Errorf("%w: product id must be positive", ErrInvalidInput)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
		}
	}
	return s.repo.ReplaceCart(ctx, userID, items)
}
