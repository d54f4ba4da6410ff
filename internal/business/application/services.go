package application

import (
	"context"
	"errors"
	"time"

	bizdomain "github.com/mzansi-fresh-finds/api/internal/business/domain"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidID     = errors.New("invalid id")
	ErrForbidden     = errors.New("forbidden")
	ErrStoreNotFound = errors.New("store not found")
	ErrDealNotFound  = errors.New("deal not found")
)

// InputError は入力検証エラー。errors.Is で ErrInvalidInput と原因の両方に一致する。
type InputError struct {
	Err error
}

func (e *InputError) Error() string {
	return e.Err.Error()
}

func (e *InputError) Unwrap() []error {
	return []error{ErrInvalidInput, e.Err}
}

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return &InputError{Err: err}
}

// StoreRepository exposes write operations on stores.
type StoreRepository interface {
	FindByID(ctx context.Context, id string) (*bizdomain.Store, error)
	Create(ctx context.Context, store *bizdomain.Store) error
	Update(ctx context.Context, store *bizdomain.Store) error
	Delete(ctx context.Context, id string) error
}

// DealRepository exposes write operations on deals.
type DealRepository interface {
	FindByID(ctx context.Context, id string) (*bizdomain.Deal, error)
	Create(ctx context.Context, deal *bizdomain.Deal) error
	Update(ctx context.Context, deal *bizdomain.Deal) error
	Delete(ctx context.Context, id string) error
}

// StoreService describes store management use-cases.
type StoreService interface {
	Create(ctx context.Context, actor bizdomain.Actor, cmd CreateStoreCommand) (*bizdomain.Store, error)
	Update(ctx context.Context, actor bizdomain.Actor, id string, cmd UpdateStoreCommand) (*bizdomain.Store, error)
	Delete(ctx context.Context, actor bizdomain.Actor, id string) error
}

// DealService describes deal management use-cases.
type DealService interface {
	Create(ctx context.Context, actor bizdomain.Actor, cmd CreateDealCommand) (*bizdomain.Deal, error)
	Update(ctx context.Context, actor bizdomain.Actor, id string, cmd UpdateDealCommand) (*bizdomain.Deal, error)
	Delete(ctx context.Context, actor bizdomain.Actor, id string) error
}

// CreateStoreCommand contains inputs for creating a store.
type CreateStoreCommand struct {
	Name         string
	Address      string
	Latitude     *float64
	Longitude    *float64
	ContactInfo  string
	OpeningHours string
	LogoURL      string
}

// UpdateStoreCommand は部分更新。nil のフィールドは変更しない。
type UpdateStoreCommand struct {
	Name         *string
	Address      *string
	Latitude     *float64
	Longitude    *float64
	ContactInfo  *string
	OpeningHours *string
	LogoURL      *string
}

// CreateDealCommand contains inputs for listing a new deal.
type CreateDealCommand struct {
	StoreID            string
	ItemName           string
	Description        string
	Category           string
	OriginalPrice      float64
	DiscountedPrice    float64
	QuantityAvailable  *int
	BestBeforeDate     time.Time
	PickupInstructions string
	ImageURL           string
}

// UpdateDealCommand は部分更新。nil のフィールドは変更しない。
type UpdateDealCommand struct {
	ItemName           *string
	Description        *string
	Category           *string
	OriginalPrice      *float64
	DiscountedPrice    *float64
	QuantityAvailable  *int
	BestBeforeDate     *time.Time
	PickupInstructions *string
	ImageURL           *string
	IsActive           *bool
}
