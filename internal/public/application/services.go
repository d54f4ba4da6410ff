package application

import (
	"context"
	"errors"

	"github.com/mzansi-fresh-finds/api/internal/geo"
	"github.com/mzansi-fresh-finds/api/internal/public/domain"
)

var (
	// ErrInvalidQuery は検索パラメータの組み合わせや数値形式が不正なときに返す。
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidID is returned when an id-shaped value is not a valid identifier.
	ErrInvalidID       = errors.New("invalid id")
	ErrStoreNotFound   = errors.New("store not found")
	ErrDealNotFound    = errors.New("deal not found")
	ErrProductNotFound = errors.New("product not found")
	ErrUserNotFound    = errors.New("user not found")
)

// ValidationError carries a client-facing message and unwraps to ErrInvalidQuery.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidQuery
}

// StoreRepository は Public コンテキストで店舗を読み取るためのポート。
type StoreRepository interface {
	FindAll(ctx context.Context) ([]domain.Store, error)
	FindByID(ctx context.Context, id string) (*domain.Store, error)
	// FindWithinRadius は中心点から radiusKm 以内に位置する店舗を返す。
	FindWithinRadius(ctx context.Context, center geo.Point, radiusKm float64) ([]domain.Store, error)
}

// DealRepository は店舗・作成者を結合したディールを読み取るポート。
type DealRepository interface {
	Query(ctx context.Context, filter DealFilter, sortKey SortKey) ([]domain.Deal, error)
	FindByID(ctx context.Context, id string) (*domain.Deal, error)
}

// ProductRepository reads the product catalog.
type ProductRepository interface {
	Find(ctx context.Context, keyword string) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
}

// UserRepository reads user profiles.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// DealFilter is the resolved, store-scoped filter handed to the deal repository.
// nil pointer fields and an empty StoreIDs slice mean "no constraint".
// quantityAvailable > 0 is always applied by the repository.
type DealFilter struct {
	IsActive bool
	StoreIDs []string
	Category *string
	MinPrice *float64
	MaxPrice *float64
}

// DealQueryService describes deal read use-cases.
// DealQueryService はディール検索・詳細表示のユースケースを提供するリーダーモデル。
type DealQueryService interface {
	Discover(ctx context.Context, params DiscoveryParams) (*DiscoveryResult, error)
	Detail(ctx context.Context, id string) (*domain.Deal, error)
}

// StoreQueryService は店舗に関するユースケースを提供するリーダーモデル。
type StoreQueryService interface {
	List(ctx context.Context) ([]domain.Store, error)
	Detail(ctx context.Context, id string) (*domain.Store, error)
}

// ProductQueryService describes product catalog read use-cases.
type ProductQueryService interface {
	List(ctx context.Context, keyword string) ([]domain.Product, error)
	Detail(ctx context.Context, id string) (*domain.Product, error)
}

// UserQueryService resolves the profile of the authenticated user.
type UserQueryService interface {
	Profile(ctx context.Context, id string) (*domain.User, error)
}
