package application

import (
	"context"
	"strings"

	"github.com/mzansi-fresh-finds/api/internal/public/domain"
)

// storeQueryService is the concrete implementation of StoreQueryService.
type storeQueryService struct {
	repo StoreRepository
}

// NewStoreQueryService creates a new store query service.
func NewStoreQueryService(repo StoreRepository) StoreQueryService {
	return &storeQueryService{repo: repo}
}

func (s *storeQueryService) List(ctx context.Context) ([]domain.Store, error) {
	return s.repo.FindAll(ctx)
}

func (s *storeQueryService) Detail(ctx context.Context, id string) (*domain.Store, error) {
	id = strings.TrimSpace(id)
	if !domain.IsValidID(id) {
		return nil, ErrInvalidID
	}
	return s.repo.FindByID(ctx, id)
}
