package application

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mzansi-fresh-finds/api/internal/geo"
	"github.com/mzansi-fresh-finds/api/internal/public/domain"
)

// dealQueryService implements DealQueryService.
type dealQueryService struct {
	stores          StoreRepository
	deals           DealRepository
	defaultRadiusKm float64
}

// NewDealQueryService creates the deal discovery engine.
func NewDealQueryService(stores StoreRepository, deals DealRepository, defaultRadiusKm float64) DealQueryService {
	if defaultRadiusKm <= 0 {
		defaultRadiusKm = DefaultRadiusKm
	}
	return &dealQueryService{stores: stores, deals: deals, defaultRadiusKm: defaultRadiusKm}
}

// Discover は検索条件を検証し、店舗の範囲検索 → ディール集約 → 距離付与の順で結果を組み立てる。
// データストアへの呼び出しは最大 2 回（店舗検索とディール検索）で、リトライはしない。
func (s *dealQueryService) Discover(ctx context.Context, params DiscoveryParams) (*DiscoveryResult, error) {
	query, err := ParseDiscoveryParams(params, s.defaultRadiusKm)
	if err != nil {
		return nil, err
	}

	filter := DealFilter{
		IsActive: query.IsActive,
		Category: query.Category,
		MinPrice: query.MinPrice,
		MaxPrice: query.MaxPrice,
	}

	if query.Center != nil {
		stores, err := s.stores.FindWithinRadius(ctx, *query.Center, query.RadiusKm)
		if err != nil {
			return nil, fmt.Errorf("find stores within %.2fkm: %w", query.RadiusKm, err)
		}
		if len(stores) == 0 {
			return emptyResult(true), nil
		}

		storeIDs := make([]string, 0, len(stores))
		for _, store := range stores {
			storeIDs = append(storeIDs, store.ID)
		}

		if query.StoreID != nil {
			if !containsID(storeIDs, *query.StoreID) {
				return emptyResult(true), nil
			}
			filter.StoreIDs = []string{*query.StoreID}
		} else {
			filter.StoreIDs = storeIDs
		}
	} else if query.StoreID != nil {
		filter.StoreIDs = []string{*query.StoreID}
	}

	deals, err := s.deals.Query(ctx, filter, query.SortBy)
	if err != nil {
		return nil, fmt.Errorf("query deals: %w", err)
	}
	if deals == nil {
		deals = []domain.Deal{}
	}

	if query.Center != nil {
		applyDistances(deals, *query.Center)
		if query.SortBy == SortDistance {
			sortByDistance(deals)
		}
	}

	return &DiscoveryResult{
		Items:        deals,
		Count:        len(deals),
		WithDistance: query.Center != nil,
	}, nil
}

// Detail は販売中（有効かつ在庫あり）のディールのみを返す。
func (s *dealQueryService) Detail(ctx context.Context, id string) (*domain.Deal, error) {
	id = strings.TrimSpace(id)
	if !domain.IsValidID(id) {
		return nil, ErrInvalidID
	}
	deal, err := s.deals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !deal.Available() {
		return nil, ErrDealNotFound
	}
	return deal, nil
}

// applyDistances attaches the rounded Haversine distance from center to each deal's store.
// Deals whose store has no position keep a nil distance.
func applyDistances(deals []domain.Deal, center geo.Point) {
	for i := range deals {
		location := deals[i].Store.Location
		if location == nil {
			deals[i].DistanceInKm = nil
			continue
		}
		distance := geo.Round2(geo.DistanceKm(center, *location))
		deals[i].DistanceInKm = &distance
	}
}

// sortByDistance は距離の昇順に安定ソートする。距離不明のものは末尾に元の順序のまま残る。
func sortByDistance(deals []domain.Deal) {
	sort.SliceStable(deals, func(i, j int) bool {
		a, b := deals[i].DistanceInKm, deals[j].DistanceInKm
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
}

func containsID(ids []string, target string) bool {
	for _, id := range ids {
		if strings.EqualFold(id, target) {
			return true
		}
	}
	return false
}

func emptyResult(withDistance bool) *DiscoveryResult {
	return &DiscoveryResult{Items: []domain.Deal{}, Count: 0, WithDistance: withDistance}
}
