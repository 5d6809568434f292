package service

import (
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
)

// PaymentService builds UPI deep links for the payment page. Pure string
// construction; nothing here talks to a payment gateway.
type PaymentService struct {
	vpa   string
	payee string
}

func NewPaymentService(vpa, payee string) *PaymentService {
	return &PaymentService{vpa: vpa, payee: payee}
}

func (s *PaymentService) UPILink(amount decimal.Decimal, orderID string) (string, error) {
	if !amount.IsPositive() {
		return "", fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if orderID == "" {
		return "", fmt.Errorf("%w: order id required", ErrInvalidInput)
	}

	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&tn=%s&cu=INR",
		s.vpa, url.QueryEscape(s.payee), amount.String(), url.QueryEscape(orderID)), nil
}
