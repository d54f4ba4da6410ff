package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bizapp "github.com/mzansi-fresh-finds/api/internal/business/application"
	bizdomain "github.com/mzansi-fresh-finds/api/internal/business/domain"
	"github.com/mzansi-fresh-finds/api/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// BusinessStoreRepository は店舗オーナー向け Store 集約の Mongo 実装。
type BusinessStoreRepository struct {
	collection *mongo.Collection
}

// NewBusinessStoreRepository は MongoDB コレクションを束縛した BusinessStoreRepository を生成する。
func NewBusinessStoreRepository(db *mongo.Database, collection string) *BusinessStoreRepository {
	return &BusinessStoreRepository{collection: db.Collection(collection)}
}

// FindByID は 16 進 ObjectID を受け取り単一店舗を VO 化して返す。
func (r *BusinessStoreRepository) FindByID(ctx context.Context, id string) (store *bizdomain.Store, err error) {
	done := observability.TrackRepository("find_by_id", r.collection.Name())
	defer func() { done(err) }()

	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, bizapp.ErrInvalidID
	}
	var doc StoreDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bizapp.ErrStoreNotFound
		}
		return nil, err
	}
	result := mapBusinessStore(doc)
	return &result, nil
}

// Create は新しい ObjectID を採番して保存し、store.ID に書き戻す。
func (r *BusinessStoreRepository) Create(ctx context.Context, store *bizdomain.Store) (err error) {
	done := observability.TrackRepository("insert", r.collection.Name())
	defer func() { done(err) }()

	doc, err := buildStoreDocument(store)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}
	store.ID = doc.ID.Hex()
	return nil
}

// Update は値オブジェクト経由で整形したフィールドのみを $set で差し替える。
func (r *BusinessStoreRepository) Update(ctx context.Context, store *bizdomain.Store) (err error) {
	done := observability.TrackRepository("update", r.collection.Name())
	defer func() { done(err) }()

	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(store.ID))
	if err != nil {
		return bizapp.ErrInvalidID
	}
	set := bson.M{
		"storeName":    store.Name.String(),
		"address":      store.Address.String(),
		"contactInfo":  store.ContactInfo,
		"openingHours": store.OpeningHours,
		"logoURL":      store.LogoURL.String(),
		"updatedAt":    store.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if store.Location != nil {
		set["location"] = newGeoJSONPoint(*store.Location)
	} else {
		update["$unset"] = bson.M{"location": ""}
	}

	res, err := r.collection.UpdateByID(ctx, objectID, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return bizapp.ErrStoreNotFound
	}
	return nil
}

func (r *BusinessStoreRepository) Delete(ctx context.Context, id string) (err error) {
	done := observability.TrackRepository("delete", r.collection.Name())
	defer func() { done(err) }()

	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return bizapp.ErrInvalidID
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return bizapp.ErrStoreNotFound
	}
	return nil
}

// mapBusinessStore は Mongo ドキュメントを Business ドメインの Store に変換する。
// 保存済みデータは再検証しない。
func mapBusinessStore(doc StoreDocument) bizdomain.Store {
	store := bizdomain.Store{
		ID:           doc.ID.Hex(),
		Name:         bizdomain.Text(doc.StoreName),
		Address:      bizdomain.Text(doc.Address),
		Location:     doc.Location.point(),
		ContactInfo:  doc.ContactInfo,
		OpeningHours: doc.OpeningHours,
		LogoURL:      bizdomain.URL(doc.LogoURL),
	}
	if !doc.User.IsZero() {
		store.OwnerID = doc.User.Hex()
	}
	if doc.CreatedAt != nil {
		store.CreatedAt = *doc.CreatedAt
	}
	if doc.UpdatedAt != nil {
		store.UpdatedAt = *doc.UpdatedAt
	}
	return store
}

// buildStoreDocument は Store の値オブジェクト群を Mongo 用ドキュメントに展開する。
func buildStoreDocument(store *bizdomain.Store) (*StoreDocument, error) {
	if store == nil {
		return nil, fmt.Errorf("store payload is nil")
	}
	owner, err := primitive.ObjectIDFromHex(store.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("store owner id: %w", bizapp.ErrInvalidID)
	}
	createdAt := store.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	updatedAt := store.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	doc := &StoreDocument{
		User:         owner,
		StoreName:    store.Name.String(),
		Address:      store.Address.String(),
		ContactInfo:  store.ContactInfo,
		OpeningHours: store.OpeningHours,
		LogoURL:      store.LogoURL.String(),
		CreatedAt:    &createdAt,
		UpdatedAt:    &updatedAt,
	}
	if store.Location != nil {
		doc.Location = newGeoJSONPoint(*store.Location)
	}
	return doc, nil
}
