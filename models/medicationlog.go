package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Medication log status values. A log starts as reminder_sent when the
// scheduler dispatches a reminder and becomes taken when the user confirms.
const (
	LogStatusReminderSent = "reminder_sent"
	LogStatusTaken        = "taken"
)

// MedicationLog holds the structure for the medicationLogs collection in mongo.
// One reminder_sent log exists per (medication, date, scheduled time) and at
// most one taken log per (user, medication, date).
type MedicationLog struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID         string             `json:"userId" bson:"userId"`
	MedicationID   string             `json:"medicationId" bson:"medicationId"`
	MedicationName string             `json:"medicationName" bson:"medicationName"`
	Dosage         string             `json:"dosage" bson:"dosage"`
	ScheduledTime  string             `json:"scheduledTime" bson:"scheduledTime"`
	Date           string             `json:"date" bson:"date"`
	Status         string             `json:"status" bson:"status"`
	ReminderSentAt primitive.DateTime `json:"reminderSentAt,omitempty" bson:"reminderSentAt,omitempty"`
	TakenAt        primitive.DateTime `json:"takenAt,omitempty" bson:"takenAt,omitempty"`
	CreatedAt      primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
