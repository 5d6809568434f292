package domain

import "github.com/shopspring/decimal"

// CartItem is what the client sends when saving a cart: a product
// reference and how many of it.
type CartItem struct {
	ProductID int64
	Quantity  int
}

// CartLine is a cart row joined with its product for display.
type CartLine struct {
	ProductID int64
	Name      string
	Price     decimal.Decimal
	ImageURL  string
	Quantity  int
}
