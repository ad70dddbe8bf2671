package guard

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "hotelops/pkg/errors"
	"hotelops/pkg/logger"
	"hotelops/pkg/model"
)

const (
	LockCollectionName = "Reservation_locks"

	lockKeyPrefix = "resource_guard:"
	retryInterval = 50 * time.Millisecond
)

// Mongo is the store-level guard for multi-instance deployments: an
// advisory lock document per resource, acquired by unique _id insert.
// Every lock carries a lease so a crashed holder cannot block the resource
// past LeaseTTL; live contenders poll until the caller's deadline expires.
type Mongo struct {
	collection     *mongo.Collection
	acquireTimeout time.Duration
	leaseTTL       time.Duration
	log            *logger.Logger
}

func NewMongo(db *mongo.Database, acquireTimeout, leaseTTL time.Duration, log *logger.Logger) *Mongo {
	return &Mongo{
		collection:     db.Collection(LockCollectionName),
		acquireTimeout: acquireTimeout,
		leaseTTL:       leaseTTL,
		log:            log,
	}
}

func (g *Mongo) WithExclusiveAccess(ctx context.Context, ref model.ResourceRef, fn func(ctx context.Context) error) error {
	lockID := lockKeyPrefix + ref.Key()

	acquireCtx := ctx
	if g.acquireTimeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, g.acquireTimeout)
		defer cancel()
	}

	if err := g.acquire(acquireCtx, lockID); err != nil {
		return err
	}

	defer func() {
		// Release must not inherit a cancelled ctx, or the lock would
		// linger until its lease expires.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := g.collection.DeleteOne(releaseCtx, bson.M{"_id": lockID}); err != nil {
			g.log.Warn("Failed to release resource guard", "lock_id", lockID, "error", err)
		}
	}()

	return fn(ctx)
}

func (g *Mongo) acquire(ctx context.Context, lockID string) error {
	for {
		now := time.Now()
		lock := model.ReservationLock{
			ID:        lockID,
			CreatedAt: now,
			ExpiresAt: now.Add(g.leaseTTL),
		}

		_, err := g.collection.InsertOne(ctx, lock)
		if err == nil {
			return nil
		}

		if !mongo.IsDuplicateKeyError(err) {
			return apperrors.Store("failed to acquire resource guard", err)
		}

		// Someone holds the lock. Reap it if its lease has expired, then
		// retry until our own deadline runs out.
		if _, delErr := g.collection.DeleteOne(ctx, bson.M{
			"_id":        lockID,
			"expires_at": bson.M{"$lt": now},
		}); delErr != nil {
			return apperrors.Store("failed to reap expired resource guard", delErr)
		}

		select {
		case <-ctx.Done():
			return apperrors.GuardTimeout("timed out waiting for resource guard: " + lockID)
		case <-time.After(retryInterval):
		}
	}
}

// EnsureIndexes creates the TTL index backing lease expiry. Mongo's TTL
// monitor is a backstop; the acquire path reaps expired locks itself.
func (g *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := g.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return apperrors.Store("failed to create guard TTL index", err)
	}
	return nil
}
