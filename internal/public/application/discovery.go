package application

import (
	"math"
	"strconv"
	"strings"

	"github.com/mzansi-fresh-finds/api/internal/geo"
	"github.com/mzansi-fresh-finds/api/internal/public/domain"
)

// DefaultRadiusKm is used when a spatial filter is requested without a usable radius.
const DefaultRadiusKm = 10.0

// SortKey selects the ordering of discovery results.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortExpiry    SortKey = "expiry"
	SortDiscount  SortKey = "discount"
	SortPriceAsc  SortKey = "priceAsc"
	SortPriceDesc SortKey = "priceDesc"
	// SortDistance はデータベースでは並べ替えず、距離付与後にメモリ上で並べ替える。
	SortDistance SortKey = "distance"
)

// ParseSortKey は未知の値や空文字を newest に丸める。
func ParseSortKey(raw string) SortKey {
	switch key := SortKey(strings.TrimSpace(raw)); key {
	case SortNewest, SortExpiry, SortDiscount, SortPriceAsc, SortPriceDesc, SortDistance:
		return key
	default:
		return SortNewest
	}
}

// DiscoveryParams holds the untrusted query-string values of a discovery request.
type DiscoveryParams struct {
	Category  string
	StoreID   string
	MinPrice  string
	MaxPrice  string
	Active    string
	Latitude  string
	Longitude string
	Radius    string
	SortBy    string
}

// DiscoveryQuery は検証・型変換済みの検索条件。nil は「条件なし」を表す。
type DiscoveryQuery struct {
	Category *string
	StoreID  *string
	MinPrice *float64
	MaxPrice *float64
	IsActive bool
	Center   *geo.Point
	RadiusKm float64
	SortBy   SortKey
}

// DiscoveryResult is the engine output: the matching deals and their count.
type DiscoveryResult struct {
	Items []domain.Deal
	Count int
	// WithDistance は検索中心点が指定され、各アイテムに distanceInKm を付与したことを示す。
	WithDistance bool
}

// ParseDiscoveryParams validates raw parameters before any data-store access.
func ParseDiscoveryParams(params DiscoveryParams, defaultRadiusKm float64) (DiscoveryQuery, error) {
	if defaultRadiusKm <= 0 {
		defaultRadiusKm = DefaultRadiusKm
	}

	query := DiscoveryQuery{
		IsActive: params.Active != "false",
		SortBy:   ParseSortKey(params.SortBy),
	}

	latRaw := strings.TrimSpace(params.Latitude)
	lonRaw := strings.TrimSpace(params.Longitude)
	switch {
	case latRaw != "" && lonRaw != "":
		lat, latErr := parseFinite(latRaw)
		lon, lonErr := parseFinite(lonRaw)
		if latErr != nil || lonErr != nil {
			return DiscoveryQuery{}, &ValidationError{Message: "Invalid latitude or longitude provided."}
		}
		center, err := geo.NewPoint(lat, lon)
		if err != nil {
			return DiscoveryQuery{}, &ValidationError{Message: "Latitude must be within [-90, 90] and longitude within [-180, 180]."}
		}
		query.Center = &center
		query.RadiusKm = parseRadius(params.Radius, defaultRadiusKm)
	case latRaw != "" || lonRaw != "":
		return DiscoveryQuery{}, &ValidationError{Message: "Both latitude and longitude are required for location filtering."}
	}

	if storeID := strings.TrimSpace(params.StoreID); storeID != "" {
		if !domain.IsValidID(storeID) {
			return DiscoveryQuery{}, &ValidationError{Message: "Invalid parameter format: storeId"}
		}
		query.StoreID = &storeID
	}

	if category := strings.TrimSpace(params.Category); category != "" {
		query.Category = &category
	}

	minPrice, err := parseOptionalPrice(params.MinPrice, "minPrice")
	if err != nil {
		return DiscoveryQuery{}, err
	}
	maxPrice, err := parseOptionalPrice(params.MaxPrice, "maxPrice")
	if err != nil {
		return DiscoveryQuery{}, err
	}
	query.MinPrice = minPrice
	query.MaxPrice = maxPrice

	return query, nil
}

func parseFinite(raw string) (float64, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, strconv.ErrSyntax
	}
	return value, nil
}

// parseRadius は空・非数値・0 以下を既定半径として扱う。
func parseRadius(raw string, fallback float64) float64 {
	value, err := parseFinite(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func parseOptionalPrice(raw, name string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := parseFinite(raw)
	if err != nil {
		return nil, &ValidationError{Message: "Invalid parameter format: " + name}
	}
	return &value, nil
}
