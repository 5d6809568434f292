package port

import (
	"context"

	"github.com/rajagopika181204/techstore/internal/core/domain"
)

type CacheRepository interface {
	// SetIdempotency sets a key for idempotency check, returns false if already exists
	SetIdempotency(ctx context.Context, key string) (bool, error)

	// AppendBillingRecord durably appends a record to the billing journal.
	AppendBillingRecord(ctx context.Context, rec domain.BillingRecord) error

	// GetTracking returns domain.ErrTrackingNotFound for unknown codes.
	GetTracking(ctx context.Context, code string) (*domain.TrackingInfo, error)

	// SetTracking stores tracking info under an opaque code.
	SetTracking(ctx context.Context, code string, info domain.TrackingInfo) error
}
