package application

import (
	"context"
	"strings"

	"github.com/mzansi-fresh-finds/api/internal/public/domain"
)

// productQueryService implements ProductQueryService.
type productQueryService struct {
	repo ProductRepository
}

// NewProductQueryService creates a new ProductQueryService.
func NewProductQueryService(repo ProductRepository) ProductQueryService {
	return &productQueryService{repo: repo}
}

func (s *productQueryService) List(ctx context.Context, keyword string) ([]domain.Product, error) {
	return s.repo.Find(ctx, strings.TrimSpace(keyword))
}

func (s *productQueryService) Detail(ctx context.Context, id string) (*domain.Product, error) {
	id = strings.TrimSpace(id)
	if !domain.IsValidID(id) {
		return nil, ErrInvalidID
	}
	return s.repo.FindByID(ctx, id)
}
