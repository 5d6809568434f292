package port

import (
	"context"

	"github.com/rajagopika181204/techstore/internal/core/domain"
)

type InventoryRepository interface {
	// ReserveStock decrements a product's quantity inside one transaction,
	// holding an exclusive row lock between the availability check and the
	// decrement. Returns domain.ErrProductNotFound or
	// domain.ErrInsufficientStock without mutating anything.
	ReserveStock(ctx context.Context, productID int64, quantity int) error
}

type CatalogRepository interface {
	// ListAvailableProducts returns products with quantity > 0.
	ListAvailableProducts(ctx context.Context) ([]domain.Product, error)
}

type CartRepository interface {
	// GetCart returns the user's cart joined with product data, in
	// insertion order.
	GetCart(ctx context.Context, userID string) ([]domain.CartLine, error)

	// ReplaceCart atomically swaps the user's entire cart for items.
	// On failure the previous cart is left intact.
	ReplaceCart(ctx context.Context, userID string, items []domain.CartItem) error
}

type OrderRepository interface {
	// CreateOrder persists an order header and its items in one
	// transaction and returns the generated order ID.
	CreateOrder(ctx context.Context, order domain.NewOrder) (int64, error)

	// GetOrder returns an order header and its lines, or
	// domain.ErrOrderNotFound.
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, []domain.OrderLine, error)
}

type CheckoutRepository interface {
	// Checkout reserves stock for every item, persists the order and its
	// items, and clears the user's cart, all in one transaction.
	Checkout(ctx context.Context, userID string, order domain.NewOrder) (int64, error)
}

type UserRepository interface {
	// CreateUser inserts a new account; domain.ErrUserExists if the
	// username or email is taken.
	CreateUser(ctx context.Context, username, email, passwordHash string) (int64, error)

	// GetUserByUsername returns domain.ErrUserNotFound when absent.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
