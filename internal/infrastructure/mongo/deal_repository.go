package mongo

import (
	"context"
	"strings"

	"github.com/mzansi-fresh-finds/api/internal/observability"
	"github.com/mzansi-fresh-finds/api/internal/public/application"
	"github.com/mzansi-fresh-finds/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DealRepository implements application.DealRepository with an aggregation pipeline.
type DealRepository struct {
	collection  *mongo.Collection
	collections pipelineCollections
}

// NewDealRepository は deals コレクションと結合先コレクション名を束縛する。
func NewDealRepository(db *mongo.Database, dealCollection, storeCollection, userCollection string) *DealRepository {
	return &DealRepository{
		collection:  db.Collection(dealCollection),
		collections: pipelineCollections{Stores: storeCollection, Users: userCollection},
	}
}

// Query runs the discovery pipeline for an already store-scoped filter.
func (r *DealRepository) Query(ctx context.Context, filter application.DealFilter, sortKey application.SortKey) (deals []domain.Deal, err error) {
	done := observability.TrackRepository("aggregate_discovery", r.collection.Name())
	defer func() { done(err) }()

	pipeline, err := buildDiscoveryPipeline(filter, sortKey, r.collections)
	if err != nil {
		return nil, err
	}
	return r.aggregate(ctx, pipeline)
}

// FindByID は結合済みのディールを返す。有効性・在庫の判定はサービス側で行う。
func (r *DealRepository) FindByID(ctx context.Context, id string) (deal *domain.Deal, err error) {
	done := observability.TrackRepository("aggregate_by_id", r.collection.Name())
	defer func() { done(err) }()

	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, application.ErrInvalidID
	}
	deals, err := r.aggregate(ctx, buildDealLookupPipeline(objectID, r.collections))
	if err != nil {
		return nil, err
	}
	if len(deals) == 0 {
		return nil, application.ErrDealNotFound
	}
	return &deals[0], nil
}

func (r *DealRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]domain.Deal, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	deals := make([]domain.Deal, 0)
	for cursor.Next(ctx) {
		var doc JoinedDealDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		deals = append(deals, mapJoinedDeal(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return deals, nil
}

func mapJoinedDeal(doc JoinedDealDocument) domain.Deal {
	return domain.Deal{
		ID:                 doc.ID.Hex(),
		ItemName:           doc.ItemName,
		Description:        doc.Description,
		Category:           doc.Category,
		OriginalPrice:      doc.OriginalPrice,
		DiscountedPrice:    doc.DiscountedPrice,
		QuantityAvailable:  doc.QuantityAvailable,
		BestBeforeDate:     doc.BestBeforeDate,
		PickupInstructions: doc.PickupInstructions,
		ImageURL:           doc.ImageURL,
		IsActive:           doc.IsActive,
		CreatedAt:          doc.CreatedAt,
		UpdatedAt:          doc.UpdatedAt,
		DiscountPercentage: doc.DiscountPercentage,
		Store: domain.DealStore{
			ID:           doc.Store.ID.Hex(),
			Name:         doc.Store.StoreName,
			Address:      doc.Store.Address,
			Location:     doc.Store.Location.point(),
			ContactInfo:  doc.Store.ContactInfo,
			OpeningHours: doc.Store.OpeningHours,
			LogoURL:      doc.Store.LogoURL,
		},
		User: domain.DealUser{
			ID:   doc.User.ID.Hex(),
			Name: doc.User.Name,
		},
	}
}
