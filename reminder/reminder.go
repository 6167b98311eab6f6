// Package reminder implements the medication reminder core: the due-time
// matcher, the per-occurrence dedup ledger, the email dispatcher with its
// bounded follow-up chains, and the adherence streak engine. The package is
// independent of any concrete store or mail transport; callers inject both
// through the Store and Mailer interfaces and drive the engine via OnTick
// and OnDoseTaken.
package reminder

import (
	"context"
	"time"
)

// Layouts for the minute key and calendar date used throughout the engine.
// All matching happens at minute granularity in the engine's configured
// location; seconds are never compared.
const (
	TimeLayout = "15:04"
	DateLayout = "2006-01-02"
)

// Entry is one schedulable medication as seen by the engine
type Entry struct {
	SubjectID    string
	MedicationID string
	Name         string
	Dosage       string
	Times        []string
	Active       bool
}

// Subject is the owner of an entry, read only to address notifications
type Subject struct {
	ID    string
	Email string
	Name  string
}

// StreakRecord is the consecutive-day adherence state for one
// (subject, medication) pair. A zero LastTaken means no dose was ever taken.
type StreakRecord struct {
	CurrentStreak int
	LongestStreak int
	LastTaken     time.Time
}

// ReminderRecord is the persisted trace of one dispatched reminder or one
// taken dose
type ReminderRecord struct {
	SubjectID      string
	MedicationID   string
	MedicationName string
	Dosage         string
	ScheduledTime  string
	Date           string
	Status         string
	CreatedAt      time.Time
}

// Reminder record status values, mirrored by the medicationLogs collection
const (
	StatusReminderSent = "reminder_sent"
	StatusTaken        = "taken"
)

// OccurrenceKey identifies one (subject, medication, date, time) slot that
// receives at most one notification chain
type OccurrenceKey struct {
	SubjectID    string
	MedicationID string
	Date         string
	Time         string
}

// Store is the document store surface the engine consumes. Implementations
// wrap the concrete database; the engine never builds queries itself.
type Store interface {
	// QueryDueMedications returns the active entries scheduled for the given
	// HH:MM minute key.
	QueryDueMedications(ctx context.Context, timeOfDay string) ([]Entry, error)
	// GetEntry returns a single entry by medication id.
	GetEntry(ctx context.Context, medicationID string) (Entry, error)
	// GetSubject returns the owning user's contact details.
	GetSubject(ctx context.Context, subjectID string) (Subject, error)
	// WriteReminderRecord persists one reminder_sent or taken record.
	WriteReminderRecord(ctx context.Context, rec ReminderRecord) error
	// QueryTakenToday reports whether a taken record exists for the pair on
	// the given date.
	QueryTakenToday(ctx context.Context, subjectID, medicationID, date string) (bool, error)
	// ListSentOccurrences returns the occurrence keys already dispatched on
	// the given date, used to rebuild the dedup ledger after a restart.
	ListSentOccurrences(ctx context.Context, date string) ([]OccurrenceKey, error)
	// ReadStreak returns the streak for the pair, or ErrStreakNotFound when
	// no record exists. Transient failures must not be mapped to not-found.
	ReadStreak(ctx context.Context, subjectID, medicationID string) (StreakRecord, error)
	// WriteStreak upserts the streak for the pair.
	WriteStreak(ctx context.Context, subjectID, medicationID string, rec StreakRecord) error
	// IncrementNotificationCount bumps the subject's lifetime notification
	// counter and last-notified timestamp.
	IncrementNotificationCount(ctx context.Context, subjectID string, at time.Time) error
	// DeactivateForToday excludes the entry from further same-day matches
	// after a dose is taken at the given time.
	DeactivateForToday(ctx context.Context, medicationID, date string, when time.Time) error
	// ResetDailyStatus reactivates entries whose taken-today marker belongs
	// to a previous date. Invoked by the midnight reset.
	ResetDailyStatus(ctx context.Context, date string, now time.Time) error
}

// Mailer is the notification transport the dispatcher consumes
type Mailer interface {
	Send(toAddress, toName, subject, htmlBody, plainText string) error
}
