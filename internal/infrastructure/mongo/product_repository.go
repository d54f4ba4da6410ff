package mongo

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/mzansi-fresh-finds/api/internal/observability"
	"github.com/mzansi-fresh-finds/api/internal/public/application"
	"github.com/mzansi-fresh-finds/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductRepository implements application.ProductRepository.
type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database, collection string) *ProductRepository {
	return &ProductRepository{collection: db.Collection(collection)}
}

// Find は商品名の部分一致（大文字小文字を区別しない）で絞り込む。keyword が空なら全件。
func (r *ProductRepository) Find(ctx context.Context, keyword string) (products []domain.Product, err error) {
	done := observability.TrackRepository("find", r.collection.Name())
	defer func() { done(err) }()

	cursor, err := r.collection.Find(ctx, productKeywordFilter(keyword), options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products = make([]domain.Product, 0)
	for cursor.Next(ctx) {
		var doc ProductDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		products = append(products, mapProductDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (product *domain.Product, err error) {
	done := observability.TrackRepository("find_by_id", r.collection.Name())
	defer func() { done(err) }()

	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, application.ErrInvalidID
	}
	var doc ProductDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, application.ErrProductNotFound
		}
		return nil, err
	}
	result := mapProductDocument(doc)
	return &result, nil
}

func productKeywordFilter(keyword string) bson.M {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return bson.M{}
	}
	return bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}}
}

func mapProductDocument(doc ProductDocument) domain.Product {
	return domain.Product{
		ID:           doc.ID.Hex(),
		Name:         doc.Name,
		Image:        doc.Image,
		Brand:        doc.Brand,
		Category:     doc.Category,
		Description:  doc.Description,
		Rating:       doc.Rating,
		NumReviews:   doc.NumReviews,
		Price:        doc.Price,
		CountInStock: doc.CountInStock,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}
