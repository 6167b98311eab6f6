package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/medlove-app/medlove-api/api"
	"github.com/medlove-app/medlove-api/config"
	"github.com/medlove-app/medlove-api/databases"
	"github.com/medlove-app/medlove-api/models"
	"github.com/medlove-app/medlove-api/reminder"
)

// Medication exported for testing purposes
type Medication struct {
	DB     databases.MedicationDatabase
	Engine *reminder.Engine
}

// GetMedicationsHandler returns all medications for a user, paginated
func (m Medication) GetMedicationsHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		config.ErrorStatus("user_id is required", http.StatusBadRequest, w, errors.New("missing user_id query param"))
		return
	}

	limit, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if err != nil || limit <= 0 {
		limit = 10
	}
	page, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if err != nil || page < 0 {
		page = 0
	}

	filter := bson.M{"userId": userID}
	if r.URL.Query().Get("active") == "true" {
		filter["isActive"] = true
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	totalRecords, err := m.DB.CountDocuments(ctx, filter)
	if err != nil {
		config.ErrorStatus("failed to count medications", http.StatusInternalServerError, w, err)
		return
	}

	dbResp, err := m.DB.Find(ctx, filter, databases.PaginatedOpts(limit, page))
	if err != nil {
		config.ErrorStatus("failed to get medications", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Medication{}
	}

	totalPages := totalRecords / limit
	if totalRecords%limit != 0 {
		totalPages++
	}

	b, err := json.Marshal(models.MedicationResponse{
		Medications: dbResp,
		Pagination: models.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalRecords: totalRecords,
			Limit:        limit,
		},
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// GetMedicationByIDHandler returns a medication given a medication ID
func (m Medication) GetMedicationByIDHandler(w http.ResponseWriter, r *http.Request) {
	medID := mux.Vars(r)["id"]

	zap.S().Debugf("medication_id: %v", medID)

	mID, err := primitive.ObjectIDFromHex(medID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := m.DB.FindOne(ctx, bson.M{"_id": mID})
	if err != nil {
		config.ErrorStatus("failed to get medication by ID", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateMedicationHandler creates a new medication for a user
func (m Medication) CreateMedicationHandler(w http.ResponseWriter, r *http.Request) {
	var med models.Medication
	if err := json.NewDecoder(r.Body).Decode(&med); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if med.UserID == "" || med.Name == "" {
		config.ErrorStatus("userId and name are required", http.StatusBadRequest, w, errors.New("missing required fields"))
		return
	}
	for _, t := range med.Times {
		if _, err := time.Parse(reminder.TimeLayout, t); err != nil {
			config.ErrorStatus("times must be in HH:MM format", http.StatusBadRequest, w, err)
			return
		}
	}

	med.IsActive = true
	med.TakenToday = false

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := m.DB.InsertOne(ctx, &med); err != nil {
		config.ErrorStatus("failed to insert medication", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(med)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// UpdateMedicationHandler applies a partial update to a medication
func (m Medication) UpdateMedicationHandler(w http.ResponseWriter, r *http.Request) {
	medID := mux.Vars(r)["id"]

	mID, err := primitive.ObjectIDFromHex(medID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	// _id and userId are immutable once created
	delete(patch, "_id")
	delete(patch, "userId")

	if rawTimes, ok := patch["times"].([]interface{}); ok {
		for _, raw := range rawTimes {
			t, ok := raw.(string)
			if !ok {
				config.ErrorStatus("times must be strings", http.StatusBadRequest, w, errors.New("invalid times entry"))
				return
			}
			if _, err := time.Parse(reminder.TimeLayout, t); err != nil {
				config.ErrorStatus("times must be in HH:MM format", http.StatusBadRequest, w, err)
				return
			}
		}
	}

	patch["updatedAt"] = primitive.NewDateTimeFromTime(time.Now())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := m.DB.UpdateOne(ctx, bson.M{"_id": mID}, bson.M{"$set": patch})
	if err != nil {
		config.ErrorStatus("failed to update medication", http.StatusInternalServerError, w, err)
		return
	}
	if res.MatchedCount == 0 {
		config.ErrorStatus("medication not found", http.StatusNotFound, w, errors.New("no medication matched the given ID"))
		return
	}

	dbResp, err := m.DB.FindOne(ctx, bson.M{"_id": mID})
	if err != nil {
		config.ErrorStatus("failed to get medication by ID", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeleteMedicationHandler deletes a medication given a medication ID
func (m Medication) DeleteMedicationHandler(w http.ResponseWriter, r *http.Request) {
	medID := mux.Vars(r)["id"]

	mID, err := primitive.ObjectIDFromHex(medID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := m.DB.DeleteOne(ctx, bson.M{"_id": mID}); err != nil {
		config.ErrorStatus("failed to delete medication", http.StatusInternalServerError, w, err)
		return
	}

	b, _ := json.Marshal(models.MessageResponse{Message: "medication deleted"})
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ToggleTakenHandler marks a medication dose as taken and returns the
// resulting streak
func (m Medication) ToggleTakenHandler(w http.ResponseWriter, r *http.Request) {
	medID := mux.Vars(r)["id"]

	mID, err := primitive.ObjectIDFromHex(medID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := m.DB.FindOne(ctx, bson.M{"_id": mID})
	if err != nil {
		config.ErrorStatus("failed to get medication by ID", http.StatusNotFound, w, err)
		return
	}

	streak, err := m.Engine.OnDoseTaken(ctx, dbResp.UserID, medID, time.Now())
	if err != nil {
		if errors.Is(err, reminder.ErrAlreadyTaken) {
			config.ErrorStatus("medication already taken today", http.StatusConflict, w, err)
			return
		}
		config.ErrorStatus("failed to record dose", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(models.Streak{
		ID:            models.StreakID(dbResp.UserID, medID),
		UserID:        dbResp.UserID,
		MedicationID:  medID,
		CurrentStreak: streak.CurrentStreak,
		LongestStreak: streak.LongestStreak,
		LastTaken:     primitive.NewDateTimeFromTime(streak.LastTaken),
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
