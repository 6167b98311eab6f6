package databases_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medlove-app/medlove-api/databases"
	"github.com/medlove-app/medlove-api/databases/mocks"
	"github.com/medlove-app/medlove-api/reminder"
)

func newStoreWithMocks() (*mocks.MedicationDatabase, reminder.Store) {
	meds := &mocks.MedicationDatabase{}
	store := databases.NewReminderStore(meds, &mocks.MedicationLogDatabase{}, &mocks.StreakDatabase{}, &mocks.UserDatabase{})
	return meds, store
}

func TestReminderStoreDeactivateForTodayStampsCallerClock(t *testing.T) {
	meds, store := newStoreWithMocks()

	medID := primitive.NewObjectID()
	when := time.Date(2025, 3, 10, 8, 5, 0, 0, time.UTC)

	meds.On("UpdateOne",
		mock.Anything,
		bson.M{"_id": medID},
		mock.MatchedBy(func(update bson.M) bool {
			set, ok := update["$set"].(bson.M)
			if !ok {
				return false
			}
			stamped := primitive.NewDateTimeFromTime(when)
			return set["isActive"] == false &&
				set["takenToday"] == true &&
				set["takenOnDate"] == "2025-03-10" &&
				set["lastTakenAt"] == stamped &&
				set["updatedAt"] == stamped
		}),
	).Return(&mongo.UpdateResult{MatchedCount: 1}, nil)

	err := store.DeactivateForToday(context.Background(), medID.Hex(), "2025-03-10", when)
	assert.NoError(t, err)
	meds.AssertExpectations(t)
}

func TestReminderStoreResetDailyStatusStampsCallerClock(t *testing.T) {
	meds, store := newStoreWithMocks()

	now := time.Date(2025, 3, 11, 0, 0, 5, 0, time.UTC)

	meds.On("UpdateMany",
		mock.Anything,
		bson.M{
			"takenToday":  true,
			"takenOnDate": bson.M{"$ne": "2025-03-11"},
		},
		mock.MatchedBy(func(update bson.M) bool {
			set, ok := update["$set"].(bson.M)
			if !ok {
				return false
			}
			return set["isActive"] == true &&
				set["takenToday"] == false &&
				set["updatedAt"] == primitive.NewDateTimeFromTime(now)
		}),
	).Return(&mongo.UpdateResult{ModifiedCount: 2}, nil)

	err := store.ResetDailyStatus(context.Background(), "2025-03-11", now)
	assert.NoError(t, err)
	meds.AssertExpectations(t)
}
