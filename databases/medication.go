package databases

// go generate: mockery --name MedicationDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medlove-app/medlove-api/models"
)

const medicationCollectionName = "medications"

// MedicationDatabase contains the methods to use with the medication database
type MedicationDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.Medication, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Medication, error)
	FindDue(ctx context.Context, timeOfDay string) ([]models.Medication, error)
	InsertOne(context.Context, *models.Medication) error
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	UpdateMany(context.Context, interface{}, interface{}, ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) error
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
}

type medicationDatabase struct {
	db DatabaseHelper
}

// NewMedicationDatabase initializes a new instance of medication database
// with the provided db connection
func NewMedicationDatabase(db DatabaseHelper) MedicationDatabase {
	return &medicationDatabase{db: db}
}

func (m *medicationDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Medication, error) {
	med := &models.Medication{}
	err := m.db.Collection(medicationCollectionName).FindOne(ctx, filter, opts...).Decode(med)
	if err != nil {
		return nil, err
	}
	return med, nil
}

func (m *medicationDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Medication, error) {
	var meds []models.Medication
	cur, err := m.db.Collection(medicationCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	if err := cur.All(ctx, &meds); err != nil {
		return nil, err
	}
	return meds, nil
}

// FindDue returns all active medications scheduled at the given HH:MM time,
// the same array-contains query the sweep has always run
func (m *medicationDatabase) FindDue(ctx context.Context, timeOfDay string) ([]models.Medication, error) {
	filter := bson.M{
		"isActive": true,
		"times":    timeOfDay,
	}
	return m.Find(ctx, filter)
}

func (m *medicationDatabase) InsertOne(ctx context.Context, med *models.Medication) error {
	now := primitive.NewDateTimeFromTime(time.Now())
	med.CreatedAt = now
	med.UpdatedAt = now
	if med.ID.IsZero() {
		med.ID = primitive.NewObjectID()
	}
	_, err := m.db.Collection(medicationCollectionName).InsertOne(ctx, med)
	return err
}

func (m *medicationDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return m.db.Collection(medicationCollectionName).UpdateOne(ctx, filter, update, opts...)
}

func (m *medicationDatabase) UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return m.db.Collection(medicationCollectionName).UpdateMany(ctx, filter, update, opts...)
}

func (m *medicationDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return m.db.Collection(medicationCollectionName).DeleteOne(ctx, filter, opts...)
}

func (m *medicationDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return m.db.Collection(medicationCollectionName).CountDocuments(ctx, filter, opts...)
}
