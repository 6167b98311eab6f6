package databases

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medlove-app/medlove-api/models"
	"github.com/medlove-app/medlove-api/reminder"
)

// reminderStore adapts the collection databases to the reminder engine's
// Store interface. All shape coercion between mongo documents and the
// engine's typed records happens here and nowhere else.
type reminderStore struct {
	meds    MedicationDatabase
	logs    MedicationLogDatabase
	streaks StreakDatabase
	users   UserDatabase
}

// NewReminderStore builds the engine-facing store over the collection
// databases
func NewReminderStore(meds MedicationDatabase, logs MedicationLogDatabase, streaks StreakDatabase, users UserDatabase) reminder.Store {
	return &reminderStore{
		meds:    meds,
		logs:    logs,
		streaks: streaks,
		users:   users,
	}
}

func entryFromMedication(med models.Medication) reminder.Entry {
	return reminder.Entry{
		SubjectID:    med.UserID,
		MedicationID: med.ID.Hex(),
		Name:         med.Name,
		Dosage:       med.Dosage,
		Times:        med.Times,
		Active:       med.IsActive,
	}
}

func (s *reminderStore) QueryDueMedications(ctx context.Context, timeOfDay string) ([]reminder.Entry, error) {
	meds, err := s.meds.FindDue(ctx, timeOfDay)
	if err != nil {
		return nil, err
	}
	entries := make([]reminder.Entry, 0, len(meds))
	for _, med := range meds {
		entries = append(entries, entryFromMedication(med))
	}
	return entries, nil
}

func (s *reminderStore) GetEntry(ctx context.Context, medicationID string) (reminder.Entry, error) {
	objectID, err := primitive.ObjectIDFromHex(medicationID)
	if err != nil {
		return reminder.Entry{}, err
	}
	med, err := s.meds.FindOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return reminder.Entry{}, err
	}
	return entryFromMedication(*med), nil
}

func (s *reminderStore) GetSubject(ctx context.Context, subjectID string) (reminder.Subject, error) {
	user, err := s.users.FindOne(ctx, bson.M{"_id": subjectID})
	if err != nil {
		return reminder.Subject{}, err
	}
	name := user.DisplayName
	if name == "" {
		name = "there"
	}
	return reminder.Subject{
		ID:    user.ID,
		Email: user.Email,
		Name:  name,
	}, nil
}

func (s *reminderStore) WriteReminderRecord(ctx context.Context, rec reminder.ReminderRecord) error {
	log := &models.MedicationLog{
		UserID:         rec.SubjectID,
		MedicationID:   rec.MedicationID,
		MedicationName: rec.MedicationName,
		Dosage:         rec.Dosage,
		ScheduledTime:  rec.ScheduledTime,
		Date:           rec.Date,
		Status:         rec.Status,
		CreatedAt:      primitive.NewDateTimeFromTime(rec.CreatedAt),
	}
	switch rec.Status {
	case reminder.StatusTaken:
		log.TakenAt = primitive.NewDateTimeFromTime(rec.CreatedAt)
	default:
		log.ReminderSentAt = primitive.NewDateTimeFromTime(rec.CreatedAt)
	}
	return s.logs.InsertOne(ctx, log)
}

func (s *reminderStore) QueryTakenToday(ctx context.Context, subjectID, medicationID, date string) (bool, error) {
	count, err := s.logs.CountDocuments(ctx, bson.M{
		"userId":       subjectID,
		"medicationId": medicationID,
		"date":         date,
		"status":       models.LogStatusTaken,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *reminderStore) ListSentOccurrences(ctx context.Context, date string) ([]reminder.OccurrenceKey, error) {
	logs, err := s.logs.Find(ctx, bson.M{
		"date":   date,
		"status": models.LogStatusReminderSent,
	})
	if err != nil {
		return nil, err
	}
	keys := make([]reminder.OccurrenceKey, 0, len(logs))
	for _, log := range logs {
		keys = append(keys, reminder.OccurrenceKey{
			SubjectID:    log.UserID,
			MedicationID: log.MedicationID,
			Date:         log.Date,
			Time:         log.ScheduledTime,
		})
	}
	return keys, nil
}

func (s *reminderStore) ReadStreak(ctx context.Context, subjectID, medicationID string) (reminder.StreakRecord, error) {
	streak, err := s.streaks.FindOne(ctx, bson.M{"_id": models.StreakID(subjectID, medicationID)})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return reminder.StreakRecord{}, reminder.ErrStreakNotFound
	}
	if err != nil {
		return reminder.StreakRecord{}, err
	}

	rec := reminder.StreakRecord{
		CurrentStreak: streak.CurrentStreak,
		LongestStreak: streak.LongestStreak,
	}
	if streak.LastTaken != 0 {
		rec.LastTaken = streak.LastTaken.Time()
	}
	return rec, nil
}

func (s *reminderStore) WriteStreak(ctx context.Context, subjectID, medicationID string, rec reminder.StreakRecord) error {
	streak := &models.Streak{
		ID:            models.StreakID(subjectID, medicationID),
		UserID:        subjectID,
		MedicationID:  medicationID,
		CurrentStreak: rec.CurrentStreak,
		LongestStreak: rec.LongestStreak,
		LastTaken:     primitive.NewDateTimeFromTime(rec.LastTaken),
	}
	return s.streaks.Upsert(ctx, streak)
}

func (s *reminderStore) IncrementNotificationCount(ctx context.Context, subjectID string, at time.Time) error {
	_, err := s.users.UpdateOne(ctx, bson.M{"_id": subjectID}, bson.M{
		"$inc": bson.M{"notificationCount": 1},
		"$set": bson.M{"lastNotificationSent": primitive.NewDateTimeFromTime(at)},
	})
	return err
}

func (s *reminderStore) DeactivateForToday(ctx context.Context, medicationID, date string, when time.Time) error {
	objectID, err := primitive.ObjectIDFromHex(medicationID)
	if err != nil {
		return err
	}
	_, err = s.meds.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{
		"$set": bson.M{
			"isActive":    false,
			"takenToday":  true,
			"takenOnDate": date,
			"lastTakenAt": primitive.NewDateTimeFromTime(when),
			"updatedAt":   primitive.NewDateTimeFromTime(when),
		},
	})
	return err
}

func (s *reminderStore) ResetDailyStatus(ctx context.Context, date string, now time.Time) error {
	_, err := s.meds.UpdateMany(ctx, bson.M{
		"takenToday":  true,
		"takenOnDate": bson.M{"$ne": date},
	}, bson.M{
		"$set": bson.M{
			"isActive":   true,
			"takenToday": false,
			"updatedAt":  primitive.NewDateTimeFromTime(now),
		},
	})
	return err
}
