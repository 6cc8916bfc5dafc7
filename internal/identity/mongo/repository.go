// Package mongo provides MongoDB implementation of the identity repository.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bissquit/job-board/internal/domain"
	"github.com/bissquit/job-board/internal/identity"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// CollectionName is the users collection.
const CollectionName = "users"

type userDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Email     string        `bson:"email"`
	Password  string        `bson:"password"`
	CreatedAt time.Time     `bson:"createdAt"`
}

func (d *userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:        d.ID.Hex(),
		Email:     d.Email,
		Password:  d.Password,
		CreatedAt: d.CreatedAt,
	}
}

// Repository implements identity.Repository using a MongoDB collection.
type Repository struct {
	users *mongo.Collection
}

// NewRepository creates a new MongoDB repository.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{users: db.Collection(CollectionName)}
}

// EnsureIndexes creates the unique email index. Safe to call on every start.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}
	return nil
}

// CreateUser inserts a user. The unique email index rejects duplicates.
func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	doc := userDocument{
		Email:     user.Email,
		Password:  user.Password,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	res, err := r.users.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return identity.ErrEmailExists
		}
		return fmt.Errorf("create user: %w", err)
	}

	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return fmt.Errorf("create user: unexpected id type %T", res.InsertedID)
	}

	user.ID = id.Hex()
	user.CreatedAt = doc.CreatedAt
	return nil
}

// GetUserByID retrieves a user by its hex ObjectID.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, identity.ErrUserNotFound
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

// GetUserByEmail retrieves a user by email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *Repository) findOne(ctx context.Context, filter bson.D) (*domain.User, error) {
	var doc userDocument
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, identity.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return doc.toDomain(), nil
}
