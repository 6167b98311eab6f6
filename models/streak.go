package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Streak holds the structure for the streaks collection in mongo, keyed by
// the composite "<userId>_<medicationId>" document id
type Streak struct {
	ID            string             `json:"_id" bson:"_id"`
	UserID        string             `json:"userId" bson:"userId"`
	MedicationID  string             `json:"medicationId" bson:"medicationId"`
	CurrentStreak int                `json:"currentStreak" bson:"currentStreak"`
	LongestStreak int                `json:"longestStreak" bson:"longestStreak"`
	LastTaken     primitive.DateTime `json:"lastTaken,omitempty" bson:"lastTaken,omitempty"`
	UpdatedAt     primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// StreakID builds the composite document id for a (user, medication) pair
func StreakID(userID, medicationID string) string {
	return userID + "_" + medicationID
}
