package domain

import "errors"

// Sentinel errors shared between the storage adapters and the services
// that map them to responses.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOrderNotFound     = errors.New("order not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserExists        = errors.New("user already exists")
	ErrTrackingNotFound  = errors.New("tracking code not found")
)
