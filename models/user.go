package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User holds the structure for the users collection in mongo
type User struct {
	ID                   string             `json:"_id" bson:"_id"`
	Email                string             `json:"email" bson:"email"`
	DisplayName          string             `json:"displayName" bson:"displayName"`
	Password             string             `json:"-" bson:"password"`
	PhotoURL             string             `json:"photoURL,omitempty" bson:"photoURL,omitempty"`
	Preferences          UserPreferences    `json:"preferences" bson:"preferences"`
	NotificationCount    int64              `json:"notificationCount" bson:"notificationCount"`
	LastNotificationSent primitive.DateTime `json:"lastNotificationSent,omitempty" bson:"lastNotificationSent,omitempty"`
	CreatedAt            primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt            primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// UserPreferences holds the per-user display and notification settings
type UserPreferences struct {
	Theme         string `json:"theme" bson:"theme"`
	Notifications bool   `json:"notifications" bson:"notifications"`
	Timezone      string `json:"timezone" bson:"timezone"`
}
