package application

import (
	"context"
	"strings"
	"time"

	bizdomain "github.com/mzansi-fresh-finds/api/internal/business/domain"
)

// storeService implements StoreService.
type storeService struct {
	repo StoreRepository
	now  func() time.Time
}

func NewStoreService(repo StoreRepository) StoreService {
	return &storeService{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *storeService) Create(ctx context.Context, actor bizdomain.Actor, cmd CreateStoreCommand) (*bizdomain.Store, error) {
	name, err := bizdomain.NewText("storeName", cmd.Name)
	if err != nil {
		return nil, invalid(err)
	}
	address, err := bizdomain.NewText("address", cmd.Address)
	if err != nil {
		return nil, invalid(err)
	}
	location, err := bizdomain.NewLocation(cmd.Latitude, cmd.Longitude)
	if err != nil {
		return nil, invalid(err)
	}
	logo, err := bizdomain.NewURL(cmd.LogoURL)
	if err != nil {
		return nil, invalid(err)
	}

	now := s.now()
	store := &bizdomain.Store{
		OwnerID:      actor.UserID,
		Name:         name,
		Address:      address,
		Location:     location,
		ContactInfo:  strings.TrimSpace(cmd.ContactInfo),
		OpeningHours: strings.TrimSpace(cmd.OpeningHours),
		LogoURL:      logo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *storeService) Update(ctx context.Context, actor bizdomain.Actor, id string, cmd UpdateStoreCommand) (*bizdomain.Store, error) {
	store, err := s.loadManaged(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if store.Name, err = bizdomain.NewText("storeName", *cmd.Name); err != nil {
			return nil, invalid(err)
		}
	}
	if cmd.Address != nil {
		if store.Address, err = bizdomain.NewText("address", *cmd.Address); err != nil {
			return nil, invalid(err)
		}
	}
	if cmd.Latitude != nil || cmd.Longitude != nil {
		location, err := bizdomain.NewLocation(cmd.Latitude, cmd.Longitude)
		if err != nil {
			return nil, invalid(err)
		}
		store.Location = location
	}
	if cmd.ContactInfo != nil {
		store.ContactInfo = strings.TrimSpace(*cmd.ContactInfo)
	}
	if cmd.OpeningHours != nil {
		store.OpeningHours = strings.TrimSpace(*cmd.OpeningHours)
	}
	if cmd.LogoURL != nil {
		if store.LogoURL, err = bizdomain.NewURL(*cmd.LogoURL); err != nil {
			return nil, invalid(err)
		}
	}
	store.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// Delete は店舗のみを削除する。紐づくディールは残る。
func (s *storeService) Delete(ctx context.Context, actor bizdomain.Actor, id string) error {
	store, err := s.loadManaged(ctx, actor, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, store.ID)
}

func (s *storeService) loadManaged(ctx context.Context, actor bizdomain.Actor, id string) (*bizdomain.Store, error) {
	store, err := s.repo.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(*store) {
		return nil, ErrForbidden
	}
	return store, nil
}
