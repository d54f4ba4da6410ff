package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collections names the collections the API reads and writes.
type Collections struct {
	Stores   string
	Deals    string
	Users    string
	Products string
}

// EnsureIndexes は起動時とシード時に呼ばれる。既存インデックスの再作成は no-op。
// stores.location の 2dsphere インデックスは $geoWithin の前提。
func EnsureIndexes(ctx context.Context, db *mongo.Database, cols Collections) error {
	storeIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "location", Value: "2dsphere"}},
			Options: options.Index().SetName("idx_store_location_2dsphere"),
		},
		{
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetName("idx_store_user"),
		},
	}
	if _, err := db.Collection(cols.Stores).Indexes().CreateMany(ctx, storeIndexes); err != nil {
		return fmt.Errorf("create store indexes: %w", err)
	}

	dealIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "isActive", Value: 1}, {Key: "quantityAvailable", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_deal_eligible_newest"),
		},
		{
			Keys:    bson.D{{Key: "store", Value: 1}, {Key: "isActive", Value: 1}},
			Options: options.Index().SetName("idx_deal_store_active"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_deal_category"),
		},
		{
			Keys:    bson.D{{Key: "discountedPrice", Value: 1}},
			Options: options.Index().SetName("idx_deal_discounted_price"),
		},
	}
	if _, err := db.Collection(cols.Deals).Indexes().CreateMany(ctx, dealIndexes); err != nil {
		return fmt.Errorf("create deal indexes: %w", err)
	}

	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_user_email").SetUnique(true),
		},
	}
	if _, err := db.Collection(cols.Users).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

// legacyLocationFilter は旧 latitude/longitude を持ち location が未設定の店舗に一致する。
func legacyLocationFilter() bson.M {
	return bson.M{
		"latitude":  bson.M{"$exists": true, "$ne": nil},
		"longitude": bson.M{"$exists": true, "$ne": nil},
		"$or": bson.A{
			bson.M{"location": bson.M{"$exists": false}},
			bson.M{"location.coordinates": bson.M{"$exists": false}},
			bson.M{"location.coordinates": bson.M{"$size": 0}},
		},
	}
}

// MigrateStoreLocations backfills location from the legacy latitude/longitude fields.
// 1 件の更新失敗では中断せず、失敗件数を返す。
func MigrateStoreLocations(ctx context.Context, db *mongo.Database, collection string) (updated, failed int, err error) {
	coll := db.Collection(collection)
	cursor, err := coll.Find(ctx, legacyLocationFilter())
	if err != nil {
		return 0, 0, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc StoreDocument
		if err := cursor.Decode(&doc); err != nil {
			return updated, failed, err
		}
		if doc.Latitude == nil || doc.Longitude == nil {
			continue
		}
		point := &GeoJSONPoint{Type: "Point", Coordinates: []float64{*doc.Longitude, *doc.Latitude}}
		if _, err := coll.UpdateByID(ctx, doc.ID, bson.M{"$set": bson.M{"location": point}}); err != nil {
			failed++
			continue
		}
		updated++
	}
	if err := cursor.Err(); err != nil {
		return updated, failed, err
	}
	return updated, failed, nil
}
