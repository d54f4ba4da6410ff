package mongo

import (
	"context"
	"errors"
	"strings"

	"github.com/mzansi-fresh-finds/api/internal/observability"
	"github.com/mzansi-fresh-finds/api/internal/public/application"
	"github.com/mzansi-fresh-finds/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository reads account profiles. Password hashes are never loaded.
type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database, collection string) *UserRepository {
	return &UserRepository{collection: db.Collection(collection)}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (user *domain.User, err error) {
	done := observability.TrackRepository("find_by_id", r.collection.Name())
	defer func() { done(err) }()

	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, application.ErrInvalidID
	}

	opts := options.FindOne().SetProjection(bson.M{"name": 1, "email": 1, "role": 1, "createdAt": 1})
	var doc UserDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, application.ErrUserNotFound
		}
		return nil, err
	}

	role := doc.Role
	if role == "" {
		role = domain.RoleConsumer
	}
	return &domain.User{
		ID:    doc.ID.Hex(),
		Name:  doc.Name,
		Email: doc.Email,
		Role:  role,
	}, nil
}
