package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bizdomain "github.com/mzansi-fresh-finds/api/internal/business/domain"
)

// dealService implements DealService. 所有権はディールが属する店舗のオーナーで判定する。
type dealService struct {
	deals  DealRepository
	stores StoreRepository
	now    func() time.Time
}

func NewDealService(deals DealRepository, stores StoreRepository) DealService {
	return &dealService{deals: deals, stores: stores, now: func() time.Time { return time.Now().UTC() }}
}

func (s *dealService) Create(ctx context.Context, actor bizdomain.Actor, cmd CreateDealCommand) (*bizdomain.Deal, error) {
	storeID := strings.TrimSpace(cmd.StoreID)
	if storeID == "" {
		return nil, invalid(fmt.Errorf("storeId is required"))
	}
	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(*store) {
		return nil, ErrForbidden
	}

	deal := &bizdomain.Deal{
		StoreID:        store.ID,
		UserID:         actor.UserID,
		BestBeforeDate: cmd.BestBeforeDate,
		IsActive:       true,
	}
	if deal.ItemName, err = bizdomain.NewText("itemName", cmd.ItemName); err != nil {
		return nil, invalid(err)
	}
	if deal.Description, err = bizdomain.NewText("description", cmd.Description); err != nil {
		return nil, invalid(err)
	}
	if deal.Category, err = bizdomain.NewText("category", cmd.Category); err != nil {
		return nil, invalid(err)
	}
	if deal.PickupInstructions, err = bizdomain.NewText("pickupInstructions", cmd.PickupInstructions); err != nil {
		return nil, invalid(err)
	}
	if deal.OriginalPrice, err = bizdomain.NewMoney("originalPrice", cmd.OriginalPrice); err != nil {
		return nil, invalid(err)
	}
	if deal.DiscountedPrice, err = bizdomain.NewMoney("discountedPrice", cmd.DiscountedPrice); err != nil {
		return nil, invalid(err)
	}
	quantity := 1
	if cmd.QuantityAvailable != nil {
		quantity = *cmd.QuantityAvailable
	}
	if deal.QuantityAvailable, err = bizdomain.NewQuantity(quantity); err != nil {
		return nil, invalid(err)
	}
	if deal.ImageURL, err = bizdomain.NewURL(cmd.ImageURL); err != nil {
		return nil, invalid(err)
	}
	if cmd.BestBeforeDate.IsZero() {
		return nil, invalid(fmt.Errorf("bestBeforeDate is required"))
	}
	if err := deal.CheckPrices(); err != nil {
		return nil, invalid(err)
	}

	now := s.now()
	deal.CreatedAt = now
	deal.UpdatedAt = now
	if err := s.deals.Create(ctx, deal); err != nil {
		return nil, err
	}
	return deal, nil
}

// Update はマージ後の値で価格の整合性を再検証する。
func (s *dealService) Update(ctx context.Context, actor bizdomain.Actor, id string, cmd UpdateDealCommand) (*bizdomain.Deal, error) {
	deal, err := s.loadManaged(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if cmd.ItemName != nil {
		if deal.ItemName, err = bizdomain.NewText("itemName", *cmd.ItemName); err != nil {
			return nil, invalid(err)
		}
	}
	if cmd.Description != nil {
		if deal.Description, err = bizdomain.NewText("description", *cmd.Description); err != nil {
			return nil, invalid(err)
		}
	}
	if cmd.Category != nil {
		if deal.Category, err = bizdomain.NewText("category", *cmd.Category); err != nil {
			return nil, invalid(err)
		}
	}
	if cmd.PickupInstructions != nil {
		if deal.PickupInstructions, err = bizdomain.NewText("pickupInstructions", *cmd.PickupInstructions); err != nil {
			return nil, invalid(err)
		}
	}
	if cmd.OriginalPrice != nil {
		if deal.OriginalPrice, err = bizdomain.NewMoney("originalPrice", *cmd.OriginalPrice); err != nil {
			return nil, invalid(err)
		}
	}
	if cmd.DiscountedPrice != nil {
		if deal.DiscountedPrice, err = bizdomain.NewMoney("discountedPrice", *cmd.DiscountedPrice); err != nil {
			return nil, invalid(err)
		}
	}
	if cmd.QuantityAvailable != nil {
		if deal.QuantityAvailable, err = bizdomain.NewQuantity(*cmd.QuantityAvailable); err != nil {
			return nil, invalid(err)
		}
	}
	if cmd.ImageURL != nil {
		if deal.ImageURL, err = bizdomain.NewURL(*cmd.ImageURL); err != nil {
			return nil, invalid(err)
		}
	}
	if cmd.BestBeforeDate != nil {
		if cmd.BestBeforeDate.IsZero() {
			return nil, invalid(fmt.Errorf("bestBeforeDate is required"))
		}
		deal.BestBeforeDate = *cmd.BestBeforeDate
	}
	if cmd.IsActive != nil {
		deal.IsActive = *cmd.IsActive
	}
	if err := deal.CheckPrices(); err != nil {
		return nil, invalid(err)
	}
	deal.UpdatedAt = s.now()

	if err := s.deals.Update(ctx, deal); err != nil {
		return nil, err
	}
	return deal, nil
}

func (s *dealService) Delete(ctx context.Context, actor bizdomain.Actor, id string) error {
	deal, err := s.loadManaged(ctx, actor, id)
	if err != nil {
		return err
	}
	return s.deals.Delete(ctx, deal.ID)
}

// loadManaged はディールと所属店舗を取得し、actor が管理できるか確認する。
// 店舗が既に削除されている場合は管理者のみ操作できる。
func (s *dealService) loadManaged(ctx context.Context, actor bizdomain.Actor, id string) (*bizdomain.Deal, error) {
	deal, err := s.deals.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return deal, nil
	}
	store, err := s.stores.FindByID(ctx, deal.StoreID)
	if err != nil {
		if errors.Is(err, ErrStoreNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if !actor.CanManage(*store) {
		return nil, ErrForbidden
	}
	return deal, nil
}
