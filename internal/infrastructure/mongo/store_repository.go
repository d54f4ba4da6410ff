package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mzansi-fresh-finds/api/internal/geo"
	"github.com/mzansi-fresh-finds/api/internal/observability"
	"github.com/mzansi-fresh-finds/api/internal/public/application"
	"github.com/mzansi-fresh-finds/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StoreRepository implements application.StoreRepository using MongoDB.
type StoreRepository struct {
	collection *mongo.Collection
	users      *mongo.Collection
}

// NewStoreRepository creates a new Mongo-backed store repository.
func NewStoreRepository(db *mongo.Database, storeCollection, userCollection string) *StoreRepository {
	return &StoreRepository{
		collection: db.Collection(storeCollection),
		users:      db.Collection(userCollection),
	}
}

// FindAll は全店舗を新しい順に返し、オーナー名を付与する。
func (r *StoreRepository) FindAll(ctx context.Context) (stores []domain.Store, err error) {
	done := observability.TrackRepository("find_all", r.collection.Name())
	defer func() { done(err) }()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := make([]StoreDocument, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ownerNames, err := r.loadOwnerNames(ctx, docs)
	if err != nil {
		return nil, err
	}

	stores = make([]domain.Store, 0, len(docs))
	for _, doc := range docs {
		store := mapStoreDocument(doc)
		store.OwnerName = ownerNames[doc.User]
		stores = append(stores, store)
	}
	return stores, nil
}

// FindByID returns a single store by its identifier.
func (r *StoreRepository) FindByID(ctx context.Context, id string) (store *domain.Store, err error) {
	done := observability.TrackRepository("find_by_id", r.collection.Name())
	defer func() { done(err) }()

	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, application.ErrInvalidID
	}
	var doc StoreDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, application.ErrStoreNotFound
		}
		return nil, err
	}

	ownerNames, err := r.loadOwnerNames(ctx, []StoreDocument{doc})
	if err != nil {
		return nil, err
	}
	result := mapStoreDocument(doc)
	result.OwnerName = ownerNames[doc.User]
	return &result, nil
}

// FindWithinRadius は $geoWithin/$centerSphere で中心点から radiusKm 以内の店舗を返す。
// location を持たない店舗は対象外。
func (r *StoreRepository) FindWithinRadius(ctx context.Context, center geo.Point, radiusKm float64) (stores []domain.Store, err error) {
	done := observability.TrackRepository("find_within_radius", r.collection.Name())
	defer func() { done(err) }()

	cursor, err := r.collection.Find(ctx, withinRadiusFilter(center, radiusKm))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stores = make([]domain.Store, 0)
	for cursor.Next(ctx) {
		var doc StoreDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		stores = append(stores, mapStoreDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return stores, nil
}

func withinRadiusFilter(center geo.Point, radiusKm float64) bson.M {
	return bson.M{
		"location": bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{center.Coordinates(), geo.RadiusToRadians(radiusKm)},
			},
		},
	}
}

// loadOwnerNames は店舗オーナーの表示名をまとめて引く。
func (r *StoreRepository) loadOwnerNames(ctx context.Context, docs []StoreDocument) (map[primitive.ObjectID]string, error) {
	names := make(map[primitive.ObjectID]string)
	if len(docs) == 0 {
		return names, nil
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	seen := make(map[primitive.ObjectID]struct{}, len(docs))
	for _, doc := range docs {
		if doc.User.IsZero() {
			continue
		}
		if _, ok := seen[doc.User]; ok {
			continue
		}
		seen[doc.User] = struct{}{}
		ids = append(ids, doc.User)
	}
	if len(ids) == 0 {
		return names, nil
	}

	opts := options.Find().SetProjection(bson.M{"name": 1})
	cursor, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var user UserDocument
		if err := cursor.Decode(&user); err != nil {
			return nil, err
		}
		names[user.ID] = user.Name
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

func mapStoreDocument(doc StoreDocument) domain.Store {
	createdAt := time.Time{}
	if doc.CreatedAt != nil {
		createdAt = *doc.CreatedAt
	}

	store := domain.Store{
		ID:           doc.ID.Hex(),
		Name:         doc.StoreName,
		Address:      doc.Address,
		Location:     doc.Location.point(),
		ContactInfo:  doc.ContactInfo,
		OpeningHours: doc.OpeningHours,
		LogoURL:      doc.LogoURL,
		CreatedAt:    createdAt,
	}
	if !doc.User.IsZero() {
		store.OwnerID = doc.User.Hex()
	}
	return store
}
