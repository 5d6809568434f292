package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NewOrder is the input to order creation. The ID is assigned by the
// database on insert.
type NewOrder struct {
	CustomerName  string
	CustomerEmail string
	TotalAmount   decimal.Decimal
	Items         []OrderItem
}

type OrderItem struct {
	ProductID int64
	Quantity  int
}

// Order is a committed order header. Orders are immutable once created.
type Order struct {
	ID            int64
	CustomerName  string
	CustomerEmail string
	TotalAmount   decimal.Decimal
	CreatedAt     time.Time
}

// OrderLine is an order item joined with its product for display.
// UnitPrice is the price snapshot taken when the order was placed, not
// the product's current catalog price.
type OrderLine struct {
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}
