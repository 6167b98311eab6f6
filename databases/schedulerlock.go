package databases

// go generate: mockery --name SchedulerLockDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medlove-app/medlove-api/models"
)

const schedulerLockCollectionName = "schedulerLocks"

// SchedulerLockDatabase contains the methods to coordinate background jobs
// across API instances through a mongo-backed lease
type SchedulerLockDatabase interface {
	TryAcquireLock(ctx context.Context, name, instanceID string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, name, instanceID string) error
}

type schedulerLockDatabase struct {
	db DatabaseHelper
}

// NewSchedulerLockDatabase initializes a new instance of scheduler lock
// database with the provided db connection
func NewSchedulerLockDatabase(db DatabaseHelper) SchedulerLockDatabase {
	return &schedulerLockDatabase{db: db}
}

// TryAcquireLock attempts to take the named lease. It succeeds when no lock
// document exists, the previous holder's lease expired, or this instance
// already holds it.
func (s *schedulerLockDatabase) TryAcquireLock(ctx context.Context, name, instanceID string, ttl time.Duration) (bool, error) {
	now := time.Now()
	lock := models.SchedulerLock{
		ID:         name,
		InstanceID: instanceID,
		AcquiredAt: primitive.NewDateTimeFromTime(now),
		ExpiresAt:  primitive.NewDateTimeFromTime(now.Add(ttl)),
	}

	filter := bson.M{
		"_id": name,
		"$or": []bson.M{
			{"expiresAt": bson.M{"$lt": primitive.NewDateTimeFromTime(now)}},
			{"instanceId": instanceID},
		},
	}

	opts := options.Replace().SetUpsert(true)
	_, err := s.db.Collection(schedulerLockCollectionName).ReplaceOne(ctx, filter, lock, opts)
	if err != nil {
		// A duplicate key error means another instance holds a live lease.
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ReleaseLock drops the lease if this instance still holds it
func (s *schedulerLockDatabase) ReleaseLock(ctx context.Context, name, instanceID string) error {
	return s.db.Collection(schedulerLockCollectionName).DeleteOne(ctx, bson.M{
		"_id":        name,
		"instanceId": instanceID,
	})
}
