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

	announcementserrors "maison/internal/announcements/errors"
	"maison/pkg/config"
	"maison/pkg/model"
)

const (
	CollectionName = "Announcements"
)

type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *model.Announcement) error
	FindByID(ctx context.Context, id string) (*model.Announcement, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Announcement, error)
	Count(ctx context.Context) (int64, error)
}

type mongoAnnouncementRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAnnouncementRepository(cfg *config.Config) AnnouncementRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoAnnouncementRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoAnnouncementRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoAnnouncementRepository) Create(ctx context.Context, announcement *model.Announcement) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	announcement.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, announcement)
	if err != nil {
		return fmt.Errorf("failed to create announcement: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		announcement.ID = oid.Hex()
	}
	return nil
}

func (r *mongoAnnouncementRepository) FindByID(ctx context.Context, id string) (*model.Announcement, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", announcementserrors.ErrInvalidID, id)
	}

	var announcement model.Announcement
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&announcement)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, announcementserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find announcement: %w", err)
	}

	return &announcement, nil
}

func (r *mongoAnnouncementRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Announcement, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find announcements: %w", err)
	}
	defer cursor.Close(ctx)

	var announcements []*model.Announcement
	if err = cursor.All(ctx, &announcements); err != nil {
		return nil, fmt.Errorf("failed to decode announcements: %w", err)
	}

	return announcements, nil
}

func (r *mongoAnnouncementRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count announcements: %w", err)
	}

	return count, nil
}
