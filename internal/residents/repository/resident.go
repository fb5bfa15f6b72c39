package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	residentserrors "maison/internal/residents/errors"
	"maison/pkg/config"
	"maison/pkg/model"
)

const (
	CollectionName = "Residents"
)

type ResidentRepository interface {
	Create(ctx context.Context, resident *model.Resident) error
	FindByID(ctx context.Context, id string) (*model.Resident, error)
	FindByUsername(ctx context.Context, username string) (*model.Resident, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Resident, error)
	Count(ctx context.Context) (int64, error)
}

type mongoResidentRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoResidentRepository(cfg *config.Config) ResidentRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoResidentRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoResidentRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

// Create relies on the unique index on username to reject duplicates.
func (r *mongoResidentRepository) Create(ctx context.Context, resident *model.Resident) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	resident.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, resident)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return residentserrors.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create resident: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		resident.ID = oid.Hex()
	}
	return nil
}

func (r *mongoResidentRepository) FindByID(ctx context.Context, id string) (*model.Resident, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", residentserrors.ErrInvalidID, id)
	}

	var resident model.Resident
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&resident)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, residentserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find resident: %w", err)
	}

	return &resident, nil
}

func (r *mongoResidentRepository) FindByUsername(ctx context.Context, username string) (*model.Resident, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var resident model.Resident
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&resident)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, residentserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find resident by username: %w", err)
	}

	return &resident, nil
}

func (r *mongoResidentRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Resident, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find residents: %w", err)
	}
	defer cursor.Close(ctx)

	var residents []*model.Resident
	if err = cursor.All(ctx, &residents); err != nil {
		return nil, fmt.Errorf("failed to decode residents: %w", err)
	}

	return residents, nil
}

func (r *mongoResidentRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count residents: %w", err)
	}

	return count, nil
}
