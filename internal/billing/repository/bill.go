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

	billingerrors "maison/internal/billing/errors"
	"maison/pkg/config"
	"maison/pkg/model"
)

const (
	CollectionName = "Bills"
)

type BillRepository interface {
	Create(ctx context.Context, bill *model.Bill) error
	FindByID(ctx context.Context, id string) (*model.Bill, error)
	FindAll(ctx context.Context, userID string, limit int, offset int64) ([]*model.Bill, error)
	Count(ctx context.Context, userID string) (int64, error)
	MarkPaid(ctx context.Context, id string, paidDate string) error
}

type mongoBillRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBillRepository(cfg *config.Config) BillRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoBillRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoBillRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoBillRepository) Create(ctx context.Context, bill *model.Bill) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, bill)
	if err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		bill.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBillRepository) FindByID(ctx context.Context, id string) (*model.Bill, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", billingerrors.ErrInvalidID, id)
	}

	var bill model.Bill
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&bill)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, billingerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bill: %w", err)
	}

	return &bill, nil
}

func (r *mongoBillRepository) FindAll(ctx context.Context, userID string, limit int, offset int64) ([]*model.Bill, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "due_date", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, userFilter(userID), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bills: %w", err)
	}
	defer cursor.Close(ctx)

	var bills []*model.Bill
	if err = cursor.All(ctx, &bills); err != nil {
		return nil, fmt.Errorf("failed to decode bills: %w", err)
	}

	return bills, nil
}

func (r *mongoBillRepository) Count(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, userFilter(userID))
	if err != nil {
		return 0, fmt.Errorf("failed to count bills: %w", err)
	}

	return count, nil
}

func userFilter(userID string) bson.M {
	if userID == "" {
		return bson.M{}
	}
	return bson.M{"user_id": userID}
}

func (r *mongoBillRepository) MarkPaid(ctx context.Context, id string, paidDate string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", billingerrors.ErrInvalidID, id)
	}

	update := bson.M{"$set": bson.M{
		"status":    config.BillPaid,
		"paid_date": paidDate,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to mark bill paid: %w", err)
	}
	if result.MatchedCount == 0 {
		return billingerrors.ErrNotFound
	}

	return nil
}
