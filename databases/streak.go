package databases

// go generate: mockery --name StreakDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medlove-app/medlove-api/models"
)

const streakCollectionName = "streaks"

// StreakDatabase contains the methods to use with the streak database
type StreakDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.Streak, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Streak, error)
	Upsert(ctx context.Context, streak *models.Streak) error
}

type streakDatabase struct {
	db DatabaseHelper
}

// NewStreakDatabase initializes a new instance of streak database with the
// provided db connection
func NewStreakDatabase(db DatabaseHelper) StreakDatabase {
	return &streakDatabase{db: db}
}

func (s *streakDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Streak, error) {
	streak := &models.Streak{}
	err := s.db.Collection(streakCollectionName).FindOne(ctx, filter, opts...).Decode(streak)
	if err != nil {
		return nil, err
	}
	return streak, nil
}

func (s *streakDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Streak, error) {
	var streaks []models.Streak
	cur, err := s.db.Collection(streakCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	if err := cur.All(ctx, &streaks); err != nil {
		return nil, err
	}
	return streaks, nil
}

// Upsert writes the streak document keyed by its composite id, creating it on
// first take
func (s *streakDatabase) Upsert(ctx context.Context, streak *models.Streak) error {
	streak.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())
	opts := options.Replace().SetUpsert(true)
	_, err := s.db.Collection(streakCollectionName).ReplaceOne(ctx, bson.M{"_id": streak.ID}, streak, opts)
	return err
}
