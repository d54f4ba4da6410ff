package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	bizapp "github.com/mzansi-fresh-finds/api/internal/business/application"
	bizdomain "github.com/mzansi-fresh-finds/api/internal/business/domain"
	"github.com/mzansi-fresh-finds/api/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// BusinessDealRepository は deals コレクションへの書き込みを担う。
type BusinessDealRepository struct {
	collection *mongo.Collection
}

func NewBusinessDealRepository(db *mongo.Database, collection string) *BusinessDealRepository {
	return &BusinessDealRepository{collection: db.Collection(collection)}
}

func (r *BusinessDealRepository) FindByID(ctx context.Context, id string) (deal *bizdomain.Deal, err error) {
	done := observability.TrackRepository("find_by_id", r.collection.Name())
	defer func() { done(err) }()

	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, bizapp.ErrInvalidID
	}
	var doc DealDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bizapp.ErrDealNotFound
		}
		return nil, err
	}
	result := mapBusinessDeal(doc)
	return &result, nil
}

func (r *BusinessDealRepository) Create(ctx context.Context, deal *bizdomain.Deal) (err error) {
	done := observability.TrackRepository("insert", r.collection.Name())
	defer func() { done(err) }()

	doc, err := buildDealDocument(deal)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}
	deal.ID = doc.ID.Hex()
	return nil
}

// Update は作成者・店舗・作成日時以外を差し替える。
func (r *BusinessDealRepository) Update(ctx context.Context, deal *bizdomain.Deal) (err error) {
	done := observability.TrackRepository("update", r.collection.Name())
	defer func() { done(err) }()

	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(deal.ID))
	if err != nil {
		return bizapp.ErrInvalidID
	}
	update := bson.M{"$set": bson.M{
		"itemName":           deal.ItemName.String(),
		"description":        deal.Description.String(),
		"category":           deal.Category.String(),
		"originalPrice":      deal.OriginalPrice.Float64(),
		"discountedPrice":    deal.DiscountedPrice.Float64(),
		"quantityAvailable":  deal.QuantityAvailable.Int(),
		"bestBeforeDate":     deal.BestBeforeDate,
		"pickupInstructions": deal.PickupInstructions.String(),
		"imageURL":           deal.ImageURL.String(),
		"isActive":           deal.IsActive,
		"updatedAt":          deal.UpdatedAt,
	}}
	res, err := r.collection.UpdateByID(ctx, objectID, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return bizapp.ErrDealNotFound
	}
	return nil
}

func (r *BusinessDealRepository) Delete(ctx context.Context, id string) (err error) {
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
		return bizapp.ErrDealNotFound
	}
	return nil
}

func mapBusinessDeal(doc DealDocument) bizdomain.Deal {
	return bizdomain.Deal{
		ID:                 doc.ID.Hex(),
		StoreID:            doc.Store.Hex(),
		UserID:             doc.User.Hex(),
		ItemName:           bizdomain.Text(doc.ItemName),
		Description:        bizdomain.Text(doc.Description),
		Category:           bizdomain.Text(doc.Category),
		OriginalPrice:      bizdomain.Money(doc.OriginalPrice),
		DiscountedPrice:    bizdomain.Money(doc.DiscountedPrice),
		QuantityAvailable:  bizdomain.Quantity(doc.QuantityAvailable),
		BestBeforeDate:     doc.BestBeforeDate,
		PickupInstructions: bizdomain.Text(doc.PickupInstructions),
		ImageURL:           bizdomain.URL(doc.ImageURL),
		IsActive:           doc.IsActive,
		CreatedAt:          doc.CreatedAt,
		UpdatedAt:          doc.UpdatedAt,
	}
}

func buildDealDocument(deal *bizdomain.Deal) (*DealDocument, error) {
	if deal == nil {
		return nil, fmt.Errorf("deal payload is nil")
	}
	storeID, err := primitive.ObjectIDFromHex(deal.StoreID)
	if err != nil {
		return nil, fmt.Errorf("deal store id: %w", bizapp.ErrInvalidID)
	}
	userID, err := primitive.ObjectIDFromHex(deal.UserID)
	if err != nil {
		return nil, fmt.Errorf("deal user id: %w", bizapp.ErrInvalidID)
	}
	return &DealDocument{
		Store:              storeID,
		User:               userID,
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
	}, nil
}
