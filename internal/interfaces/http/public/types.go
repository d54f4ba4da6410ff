package public

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/mzansi-fresh-finds/api/internal/geo"
	publicapp "github.com/mzansi-fresh-finds/api/internal/public/application"
	publicdomain "github.com/mzansi-fresh-finds/api/internal/public/domain"
)

type locationResponse struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func buildLocationResponse(p *geo.Point) *locationResponse {
	if p == nil {
		return nil
	}
	return &locationResponse{Type: "Point", Coordinates: p.Coordinates()}
}

type dealStoreResponse struct {
	ID           string            `json:"id"`
	StoreName    string            `json:"storeName"`
	Address      string            `json:"address"`
	Location     *locationResponse `json:"location"`
	ContactInfo  string            `json:"contactInfo"`
	OpeningHours string            `json:"openingHours"`
	LogoURL      string            `json:"logoURL"`
}

type dealUserResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// dealResponse の distanceInKm は中心点指定時のみ出力する。値は数値か null。
type dealResponse struct {
	ID                 string            `json:"id"`
	ItemName           string            `json:"itemName"`
	Description        string            `json:"description"`
	Category           string            `json:"category"`
	OriginalPrice      float64           `json:"originalPrice"`
	DiscountedPrice    float64           `json:"discountedPrice"`
	QuantityAvailable  int               `json:"quantityAvailable"`
	BestBeforeDate     string            `json:"bestBeforeDate"`
	PickupInstructions string            `json:"pickupInstructions"`
	ImageURL           string            `json:"imageURL"`
	IsActive           bool              `json:"isActive"`
	CreatedAt          string            `json:"createdAt"`
	DiscountPercentage float64           `json:"discountPercentage"`
	Store              dealStoreResponse `json:"store"`
	User               dealUserResponse  `json:"user"`
	DistanceInKm       json.RawMessage   `json:"distanceInKm,omitempty"`
}

type dealListResponse struct {
	Items []dealResponse `json:"items"`
	Count int            `json:"count"`
}

type storeResponse struct {
	ID           string            `json:"id"`
	StoreName    string            `json:"storeName"`
	Address      string            `json:"address"`
	Location     *locationResponse `json:"location"`
	ContactInfo  string            `json:"contactInfo"`
	OpeningHours string            `json:"openingHours"`
	LogoURL      string            `json:"logoURL"`
	Owner        *storeOwner       `json:"user,omitempty"`
	CreatedAt    string            `json:"createdAt,omitempty"`
}

type storeOwner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type storeListResponse struct {
	Items []storeResponse `json:"items"`
	Count int             `json:"count"`
}

type productResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	Brand        string  `json:"brand"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	Rating       float64 `json:"rating"`
	NumReviews   int     `json:"numReviews"`
	Price        float64 `json:"price"`
	CountInStock int     `json:"countInStock"`
}

type productListResponse struct {
	Items []productResponse `json:"items"`
	Count int               `json:"count"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

var jsonNull = json.RawMessage("null")

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func buildDealResponse(deal publicdomain.Deal, withDistance bool) dealResponse {
	resp := dealResponse{
		ID:                 deal.ID,
		ItemName:           deal.ItemName,
		Description:        deal.Description,
		Category:           deal.Category,
		OriginalPrice:      deal.OriginalPrice,
		DiscountedPrice:    deal.DiscountedPrice,
		QuantityAvailable:  deal.QuantityAvailable,
		BestBeforeDate:     formatTime(deal.BestBeforeDate),
		PickupInstructions: deal.PickupInstructions,
		ImageURL:           deal.ImageURL,
		IsActive:           deal.IsActive,
		CreatedAt:          formatTime(deal.CreatedAt),
		DiscountPercentage: deal.DiscountPercentage,
		Store: dealStoreResponse{
			ID:           deal.Store.ID,
			StoreName:    deal.Store.Name,
			Address:      deal.Store.Address,
			Location:     buildLocationResponse(deal.Store.Location),
			ContactInfo:  deal.Store.ContactInfo,
			OpeningHours: deal.Store.OpeningHours,
			LogoURL:      deal.Store.LogoURL,
		},
		User: dealUserResponse{ID: deal.User.ID, Name: deal.User.Name},
	}
	if withDistance {
		resp.DistanceInKm = jsonNull
		if deal.DistanceInKm != nil {
			resp.DistanceInKm = json.RawMessage(strconv.FormatFloat(*deal.DistanceInKm, 'f', -1, 64))
		}
	}
	return resp
}

func buildDealListResponse(result *publicapp.DiscoveryResult) dealListResponse {
	items := make([]dealResponse, 0, len(result.Items))
	for _, deal := range result.Items {
		items = append(items, buildDealResponse(deal, result.WithDistance))
	}
	return dealListResponse{Items: items, Count: len(items)}
}

func buildStoreResponse(store publicdomain.Store) storeResponse {
	resp := storeResponse{
		ID:           store.ID,
		StoreName:    store.Name,
		Address:      store.Address,
		Location:     buildLocationResponse(store.Location),
		ContactInfo:  store.ContactInfo,
		OpeningHours: store.OpeningHours,
		LogoURL:      store.LogoURL,
		CreatedAt:    formatTime(store.CreatedAt),
	}
	if store.OwnerID != "" {
		resp.Owner = &storeOwner{ID: store.OwnerID, Name: store.OwnerName}
	}
	return resp
}

func buildProductResponse(p publicdomain.Product) productResponse {
	return productResponse{
		ID:           p.ID,
		Name:         p.Name,
		Image:        p.Image,
		Brand:        p.Brand,
		Category:     p.Category,
		Description:  p.Description,
		Rating:       p.Rating,
		NumReviews:   p.NumReviews,
		Price:        p.Price,
		CountInStock: p.CountInStock,
	}
}
