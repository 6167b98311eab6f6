package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SchedulerLock holds the structure for the schedulerLocks collection in
// mongo, used so only one API instance runs a given background job at a time
type SchedulerLock struct {
	ID         string             `json:"_id" bson:"_id"`
	InstanceID string             `json:"instanceId" bson:"instanceId"`
	AcquiredAt primitive.DateTime `json:"acquiredAt" bson:"acquiredAt"`
	ExpiresAt  primitive.DateTime `json:"expiresAt" bson:"expiresAt"`
}
