package databases

// go generate: mockery --name MedicationLogDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medlove-app/medlove-api/models"
)

const medicationLogCollectionName = "medicationLogs"

// MedicationLogDatabase contains the methods to use with the medication log
// database
type MedicationLogDatabase interface {
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.MedicationLog, error)
	InsertOne(context.Context, *models.MedicationLog) error
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
}

type medicationLogDatabase struct {
	db DatabaseHelper
}

// NewMedicationLogDatabase initializes a new instance of medication log
// database with the provided db connection
func NewMedicationLogDatabase(db DatabaseHelper) MedicationLogDatabase {
	return &medicationLogDatabase{db: db}
}

func (l *medicationLogDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.MedicationLog, error) {
	var logs []models.MedicationLog
	cur, err := l.db.Collection(medicationLogCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	if err := cur.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (l *medicationLogDatabase) InsertOne(ctx context.Context, log *models.MedicationLog) error {
	if log.CreatedAt == 0 {
		log.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	}
	if log.ID.IsZero() {
		log.ID = primitive.NewObjectID()
	}
	_, err := l.db.Collection(medicationLogCollectionName).InsertOne(ctx, log)
	return err
}

func (l *medicationLogDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return l.db.Collection(medicationLogCollectionName).CountDocuments(ctx, filter, opts...)
}
