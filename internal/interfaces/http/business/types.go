package business

import (
	"time"

	bizdomain "github.com/mzansi-fresh-finds/api/internal/business/domain"
)

type storeCreateRequest struct {
	StoreName    string   `json:"storeName"`
	Address      string   `json:"address"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	ContactInfo  string   `json:"contactInfo"`
	OpeningHours string   `json:"openingHours"`
	LogoURL      string   `json:"logoURL"`
}

type storeUpdateRequest struct {
	StoreName    *string  `json:"storeName"`
	Address      *string  `json:"address"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	ContactInfo  *string  `json:"contactInfo"`
	OpeningHours *string  `json:"openingHours"`
	LogoURL      *string  `json:"logoURL"`
}

type dealCreateRequest struct {
	StoreID            string  `json:"storeId"`
	ItemName           string  `json:"itemName"`
	Description        string  `json:"description"`
	Category           string  `json:"category"`
	OriginalPrice      float64 `json:"originalPrice"`
	DiscountedPrice    float64 `json:"discountedPrice"`
	QuantityAvailable  *int    `json:"quantityAvailable"`
	BestBeforeDate     string  `json:"bestBeforeDate"`
	PickupInstructions string  `json:"pickupInstructions"`
	ImageURL           string  `json:"imageURL"`
}

type dealUpdateRequest struct {
	ItemName           *string  `json:"itemName"`
	Description        *string  `json:"description"`
	Category           *string  `json:"category"`
	OriginalPrice      *float64 `json:"originalPrice"`
	DiscountedPrice    *float64 `json:"discountedPrice"`
	QuantityAvailable  *int     `json:"quantityAvailable"`
	BestBeforeDate     *string  `json:"bestBeforeDate"`
	PickupInstructions *string  `json:"pickupInstructions"`
	ImageURL           *string  `json:"imageURL"`
	IsActive           *bool    `json:"isActive"`
}

type locationPayload struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type storeResponse struct {
	ID           string           `json:"id"`
	User         string           `json:"user"`
	StoreName    string           `json:"storeName"`
	Address      string           `json:"address"`
	Location     *locationPayload `json:"location"`
	ContactInfo  string           `json:"contactInfo"`
	OpeningHours string           `json:"openingHours"`
	LogoURL      string           `json:"logoURL"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

type dealResponse struct {
	ID                 string    `json:"id"`
	Store              string    `json:"store"`
	User               string    `json:"user"`
	ItemName           string    `json:"itemName"`
	Description        string    `json:"description"`
	Category           string    `json:"category"`
	OriginalPrice      float64   `json:"originalPrice"`
	DiscountedPrice    float64   `json:"discountedPrice"`
	QuantityAvailable  int       `json:"quantityAvailable"`
	BestBeforeDate     time.Time `json:"bestBeforeDate"`
	PickupInstructions string    `json:"pickupInstructions"`
	ImageURL           string    `json:"imageURL"`
	IsActive           bool      `json:"isActive"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func storeToResponse(store bizdomain.Store) storeResponse {
	resp := storeResponse{
		ID:           store.ID,
		User:         store.OwnerID,
		StoreName:    store.Name.String(),
		Address:      store.Address.String(),
		ContactInfo:  store.ContactInfo,
		OpeningHours: store.OpeningHours,
		LogoURL:      store.LogoURL.String(),
		CreatedAt:    store.CreatedAt,
		UpdatedAt:    store.UpdatedAt,
	}
	if store.Location != nil {
		resp.Location = &locationPayload{Type: "Point", Coordinates: store.Location.Coordinates()}
	}
	return resp
}

func dealToResponse(deal bizdomain.Deal) dealResponse {
	return dealResponse{
		ID:                 deal.ID,
		Store:              deal.StoreID,
		User:               deal.UserID,
		ItemName:           deal.ItemName.String(),
		Description:        deal.Description.String(),
		Category:           deal.Category.String(),
		OriginalPrice:      deal.OriginalPrice.Float64(),
		DiscountedPrice:    deal.DiscountedPrice.Float64(),
		QuantityAvailable:  deal.QuantityAvailable.Int(),
		BestBeforeDate:     deal.BestBeforeDate,
		PickupInstructions: deal.PickupInstructions.String(),
		ImageURL:           deal.ImageURL.String(),
		IsActive:           deal.IsActive,
		CreatedAt:          deal.CreatedAt,
		UpdatedAt:          deal.UpdatedAt,
	}
}
