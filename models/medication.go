package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Medication holds the structure for the medications collection in mongo
type Medication struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID      string             `json:"userId" bson:"userId"`
	Name        string             `json:"name" bson:"name"`
	Dosage      string             `json:"dosage" bson:"dosage"`
	Frequency   string             `json:"frequency" bson:"frequency"`
	Times       []string           `json:"times" bson:"times"`
	StartDate   string             `json:"startDate" bson:"startDate"`
	EndDate     string             `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Notes       string             `json:"notes,omitempty" bson:"notes,omitempty"`
	Color       string             `json:"color" bson:"color"`
	Icon        string             `json:"icon" bson:"icon"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	TakenToday  bool               `json:"takenToday" bson:"takenToday"`
	TakenOnDate string             `json:"takenOnDate,omitempty" bson:"takenOnDate,omitempty"`
	LastTakenAt primitive.DateTime `json:"lastTakenAt,omitempty" bson:"lastTakenAt,omitempty"`
	CreatedAt   primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt   primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// MedicationResponse represents the paginated medication list response
type MedicationResponse struct {
	Medications []Medication `json:"medications"`
	Pagination  Pagination   `json:"pagination"`
}

// Pagination holds the pagination details for list responses
type Pagination struct {
	CurrentPage  int64 `json:"currentPage"`
	TotalPages   int64 `json:"totalPages"`
	TotalRecords int64 `json:"totalRecords"`
	Limit        int64 `json:"limit"`
}
