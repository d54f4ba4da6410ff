package application

import (
	"context"

	"github.com/mzansi-fresh-finds/api/internal/public/domain"
)

type userQueryService struct {
	repo UserRepository
}

func NewUserQueryService(repo UserRepository) UserQueryService {
	return &userQueryService{repo: repo}
}

func (s *userQueryService) Profile(ctx context.Context, id string) (*domain.User, error) {
	if !domain.IsValidID(id) {
		return nil, ErrInvalidID
	}
	return s.repo.FindByID(ctx, id)
}
