// Package mongo implements the booking store on MongoDB. One document per
// booking record in the Bookings collection; updates run inside a
// transaction so the version read and the write land atomically.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	availerrors "hotelops/internal/availability/errors"
	"hotelops/pkg/config"
	mongotx "hotelops/pkg/db/mongo"
	"hotelops/pkg/model"
)

const (
	CollectionName = "Bookings"
)

type Store struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewStore(cfg *config.Config) *Store {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &Store{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// EnsureIndexes creates the compound index conflict reads depend on. Call
// once at startup.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "resource.kind", Value: 1},
			{Key: "resource.id", Value: 1},
			{Key: "status", Value: 1},
			{Key: "interval.start", Value: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}

// withTimeout wraps the context with a timeout unless it is already a
// SessionContext (inside a transaction), which must not be re-wrapped.
func (s *Store) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline {
		if remaining := time.Until(deadline); remaining < timeout {
			return context.WithTimeout(ctx, remaining)
		}
	}

	return context.WithTimeout(ctx, timeout)
}

func (s *Store) ActiveRecordsFor(ctx context.Context, ref model.ResourceRef) ([]model.BookingRecord, error) {
	ctx, cancel := s.withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"resource.kind": ref.Kind,
		"resource.id":   ref.ID,
		"status":        bson.M{"$in": []model.BookingStatus{model.StatusPending, model.StatusConfirmed}},
	}

	opts := options.Find().SetSort(bson.D{{Key: "interval.start", Value: 1}})

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find active bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var records []model.BookingRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode active bookings: %w", err)
	}

	return records, nil
}

func (s *Store) Persist(ctx context.Context, record *model.BookingRecord) (*model.BookingRecord, error) {
	if record.ID == "" {
		return s.insert(ctx, record)
	}
	return s.update(ctx, record)
}

func (s *Store) insert(ctx context.Context, record *model.BookingRecord) (*model.BookingRecord, error) {
	ctx, cancel := s.withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	stored := *record
	now := time.Now().UTC().Truncate(time.Millisecond)
	stored.ID = uuid.NewString()
	stored.Version = 1
	stored.CreatedAt = now
	stored.UpdatedAt = now

	if _, err := s.collection.InsertOne(ctx, stored); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return &stored, nil
}

// update rewrites the mutable fields and bumps the version inside a
// transaction, so a concurrent update cannot produce two records with the
// same version.
func (s *Store) update(ctx context.Context, record *model.BookingRecord) (*model.BookingRecord, error) {
	ctx, cancel := s.withTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	var stored model.BookingRecord

	err := s.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		var existing model.BookingRecord
		if err := s.collection.FindOne(sessCtx, bson.M{"_id": record.ID}).Decode(&existing); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return availerrors.ErrNotFound
			}
			return fmt.Errorf("failed to find booking: %w", err)
		}

		stored = *record
		stored.CreatedAt = existing.CreatedAt
		stored.Version = existing.Version + 1
		stored.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

		update := bson.M{
			"$set": bson.M{
				"resource":      stored.Resource,
				"interval":      stored.Interval,
				"status":        stored.Status,
				"owner_id":      stored.OwnerID,
				"owner_label":   stored.OwnerLabel,
				"capacity_used": stored.CapacityUsed,
				"version":       stored.Version,
				"updated_at":    stored.UpdatedAt,
			},
		}

		result, err := s.collection.UpdateOne(sessCtx, bson.M{"_id": record.ID, "version": existing.Version}, update)
		if err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}
		if result.MatchedCount == 0 {
			return availerrors.ErrVersionConflict
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*model.BookingRecord, error) {
	ctx, cancel := s.withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	if id == "" {
		return nil, fmt.Errorf("%w: empty id", availerrors.ErrInvalidID)
	}

	var record model.BookingRecord
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, availerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &record, nil
}

func (s *Store) ListFor(ctx context.Context, ref model.ResourceRef, limit, offset int) ([]model.BookingRecord, int64, error) {
	ctx, cancel := s.withTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"resource.kind": ref.Kind,
		"resource.id":   ref.ID,
	}

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "interval.start", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	records := []model.BookingRecord{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return records, total, nil
}
