package mongo

import (
	"time"

	"github.com/mzansi-fresh-finds/api/internal/geo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeoJSONPoint は 2dsphere インデックス対象の GeoJSON Point。座標は [経度, 緯度]。
type GeoJSONPoint struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

func newGeoJSONPoint(p geo.Point) *GeoJSONPoint {
	return &GeoJSONPoint{Type: "Point", Coordinates: p.Coordinates()}
}

// point は座標が欠けている場合 nil を返す。
func (g *GeoJSONPoint) point() *geo.Point {
	if g == nil {
		return nil
	}
	p, ok := geo.FromCoordinates(g.Coordinates)
	if !ok {
		return nil
	}
	return &p
}

// StoreDocument は MongoDB 上での店舗スキーマを Go 構造体として表現したもの。
// Latitude / Longitude は location 導入前の旧フィールドで、移行スクリプトだけが読む。
type StoreDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	User         primitive.ObjectID `bson:"user"`
	StoreName    string             `bson:"storeName"`
	Address      string             `bson:"address"`
	Latitude     *float64           `bson:"latitude,omitempty"`
	Longitude    *float64           `bson:"longitude,omitempty"`
	Location     *GeoJSONPoint      `bson:"location,omitempty"`
	ContactInfo  string             `bson:"contactInfo,omitempty"`
	OpeningHours string             `bson:"openingHours,omitempty"`
	LogoURL      string             `bson:"logoURL,omitempty"`
	CreatedAt    *time.Time         `bson:"createdAt,omitempty"`
	UpdatedAt    *time.Time         `bson:"updatedAt,omitempty"`
}

// DealDocument は deals コレクションの生スキーマ。
type DealDocument struct {
	ID                 primitive.ObjectID `bson:"_id"`
	Store              primitive.ObjectID `bson:"store"`
	User               primitive.ObjectID `bson:"user"`
	ItemName           string             `bson:"itemName"`
	Description        string             `bson:"description"`
	Category           string             `bson:"category"`
	OriginalPrice      float64            `bson:"originalPrice"`
	DiscountedPrice    float64            `bson:"discountedPrice"`
	QuantityAvailable  int                `bson:"quantityAvailable"`
	BestBeforeDate     time.Time          `bson:"bestBeforeDate"`
	PickupInstructions string             `bson:"pickupInstructions"`
	ImageURL           string             `bson:"imageURL,omitempty"`
	IsActive           bool               `bson:"isActive"`
	CreatedAt          time.Time          `bson:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt"`
}

// DealStoreDocument is the store subset projected onto a discovered deal.
type DealStoreDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	StoreName    string             `bson:"storeName"`
	Address      string             `bson:"address"`
	Location     *GeoJSONPoint      `bson:"location,omitempty"`
	ContactInfo  string             `bson:"contactInfo,omitempty"`
	OpeningHours string             `bson:"openingHours,omitempty"`
	LogoURL      string             `bson:"logoURL,omitempty"`
}

// DealUserDocument is the creator subset projected onto a discovered deal.
type DealUserDocument struct {
	ID   primitive.ObjectID `bson:"_id"`
	Name string             `bson:"name"`
}

// JoinedDealDocument は集約パイプラインの $project 出力 1 件分。
type JoinedDealDocument struct {
	ID                 primitive.ObjectID `bson:"_id"`
	ItemName           string             `bson:"itemName"`
	Description        string             `bson:"description"`
	Category           string             `bson:"category"`
	OriginalPrice      float64            `bson:"originalPrice"`
	DiscountedPrice    float64            `bson:"discountedPrice"`
	QuantityAvailable  int                `bson:"quantityAvailable"`
	BestBeforeDate     time.Time          `bson:"bestBeforeDate"`
	PickupInstructions string             `bson:"pickupInstructions"`
	ImageURL           string             `bson:"imageURL,omitempty"`
	IsActive           bool               `bson:"isActive"`
	CreatedAt          time.Time          `bson:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt"`
	DiscountPercentage float64            `bson:"discountPercentage"`
	Store              DealStoreDocument  `bson:"store"`
	User               DealUserDocument   `bson:"user"`
}

// UserDocument は users コレクションのうち API が読むフィールド。パスワードハッシュは扱わない。
type UserDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Role      string             `bson:"role"`
	CreatedAt *time.Time         `bson:"createdAt,omitempty"`
}

// ProductDocument は商品カタログのスキーマ。レビュー配列は読み込まない。
type ProductDocument struct {
	ID           primitive.ObjectID  `bson:"_id"`
	User         *primitive.ObjectID `bson:"user,omitempty"`
	Name         string              `bson:"name"`
	Image        string              `bson:"image,omitempty"`
	Brand        string              `bson:"brand,omitempty"`
	Category     string              `bson:"category"`
	Description  string              `bson:"description"`
	Rating       float64             `bson:"rating"`
	NumReviews   int                 `bson:"numReviews"`
	Price        float64             `bson:"price"`
	CountInStock int                 `bson:"countInStock"`
	CreatedAt    time.Time           `bson:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt"`
}
