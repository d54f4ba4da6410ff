package domain

import (
	"encoding/hex"
	"time"

	"github.com/mzansi-fresh-finds/api/internal/geo"
)

// Deal は店舗が出品する見切り品ディール。閲覧用に店舗・作成者情報を結合済み。
type Deal struct {
	ID                 string
	ItemName           string
	Description        string
	Category           string
	OriginalPrice      float64
	DiscountedPrice    float64
	QuantityAvailable  int
	BestBeforeDate     time.Time
	PickupInstructions string
	ImageURL           string
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DiscountPercentage float64
	Store              DealStore
	User               DealUser
	// DistanceInKm は検索中心点が指定され、かつ店舗位置が既知のときだけ非 nil。
	DistanceInKm *float64
}

// DealStore is the store subset joined onto a deal.
type DealStore struct {
	ID           string
	Name         string
	Address      string
	Location     *geo.Point
	ContactInfo  string
	OpeningHours string
	LogoURL      string
}

// DealUser is the creator subset joined onto a deal.
type DealUser struct {
	ID   string
	Name string
}

// Available reports whether the deal passes the baseline eligibility predicate.
func (d Deal) Available() bool {
	return d.IsActive && d.QuantityAvailable > 0
}

// IsValidID reports whether id is a 24-character hex document identifier.
func IsValidID(id string) bool {
	if len(id) != 24 {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}
