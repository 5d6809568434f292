package service

import (
	"context"
	"fmt"

	"github.com/rajagopika181204/techstore/internal/core/domain"
	"github.com/rajagopika181204/techstore/internal/port"
)

// TrackingService looks up shipment status by opaque tracking code.
type TrackingService struct {
	cache port.CacheRepository
}

func NewTrackingService(cache port.CacheRepository) *TrackingService {
	return &TrackingService{cache: cache}
}

func (s *TrackingService) Status(ctx context.Context, code string) (*domain.TrackingInfo, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: tracking code required", ErrInvalidInput)
	}
	return s.cache.GetTracking(ctx, code)
}
