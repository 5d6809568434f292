package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingRecord is one entry in the billing journal. IDs are generated
// UUIDs, never derived from journal length.
type BillingRecord struct {
	ID          string          `json:"id"`
	Items       []BillingItem   `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Customer    string          `json:"customer,omitempty"`
	Date        time.Time       `json:"date"`
}

type BillingItem struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// TrackingInfo is the shipment status looked up by an opaque tracking code.
type TrackingInfo struct {
	Status           string `json:"status"`
	ExpectedDelivery string `json:"expectedDelivery"`
}
