package service

import (
	"context"
	"fmt"

	"github.com/rajagopika181204/techstore/internal/core/domain"
	"github.com/rajagopika181204/techstore/internal/metrics"
	"github.com/rajagopika181204/techstore/internal/port"
)

// OrderService writes and reads the order ledger. Placing an order does
// not reserve stock; that is a separate entry point, and the composed
// checkout path exists for callers that want both in one unit.
type OrderService struct {
	repo port.OrderRepository
}

func NewOrderService(repo port.OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

func validateNewOrder(order domain.NewOrder) error {
	if order.CustomerName == "" || order.CustomerEmail == "" {
		return fmt.Errorf("%w: customer name and email required", ErrInvalidInput)
	}
	if len(order.Items) == 0 {
		return fmt.Errorf("%w: order needs at least one item", ErrInvalidInput)
	}
	if !order.TotalAmount.IsPositive() {
		return fmt.Errorf("%w: total amount must be positive", ErrInvalidInput)
	}
	for _, item := range order.Items {
		if item.ProductID <= 0 {
			return fmt.Errorf("%w: product id must be positive", ErrInvalidInput)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
		}
	}
	return nil
}

func (s *OrderService) Place(ctx context.Context, order domain.NewOrder) (int64, error) {
	if err := validateNewOrder(order); err != nil {
		return 0, err
	}

	orderID, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return 0, err
	}

	metrics.OrdersPlaced.Inc()
	return orderID, nil
}

func (s *OrderService) Get(ctx context.Context, orderID int64) (*domain.Order, []domain.OrderLine, error) {
	if orderID <= 0 {
		return nil, nil, fmt.Errorf("%w: order id must be positive", ErrInvalidInput)
	}
	return s.repo.GetOrder(ctx, orderID)
}
