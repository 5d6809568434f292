package service

import (
	"context"

	"github.com/rajagopika181204/techstore/internal/core/domain"
	"github.com/rajagopika181204/techstore/internal/port"
)

// CatalogService is the storefront read path: products with stock on hand.
type CatalogService struct {
	repo port.CatalogRepository
}

func NewCatalogService(repo port.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) Available(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListAvailableProducts(ctx)
}
