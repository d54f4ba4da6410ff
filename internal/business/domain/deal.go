package domain

import (
	"errors"
	"time"
)

// ErrDiscountExceedsOriginal is returned when a deal would be sold above its original price.
var ErrDiscountExceedsOriginal = errors.New("discounted price cannot be greater than original price")

// Deal is the writable form of a deal listing.
type Deal struct {
	ID                 string
	StoreID            string
	UserID             string
	ItemName           Text
	Description        Text
	Category           Text
	OriginalPrice      Money
	DiscountedPrice    Money
	QuantityAvailable  Quantity
	BestBeforeDate     time.Time
	PickupInstructions Text
	ImageURL           URL
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CheckPrices は割引価格が定価以下であることを検証する。
func (d Deal) CheckPrices() error {
	if d.DiscountedPrice > d.OriginalPrice {
		return ErrDiscountExceedsOriginal
	}
	return nil
}
