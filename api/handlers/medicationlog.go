package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/medlove-app/medlove-api/api"
	"github.com/medlove-app/medlove-api/config"
	"github.com/medlove-app/medlove-api/databases"
	"github.com/medlove-app/medlove-api/models"
)

// MedicationLog exported for testing purposes
type MedicationLog struct {
	DB databases.MedicationLogDatabase
}

// GetMedicationLogsHandler returns the medication log history for a user,
// optionally filtered by medication, date and status
func (l MedicationLog) GetMedicationLogsHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		config.ErrorStatus("user_id is required", http.StatusBadRequest, w, errors.New("missing user_id query param"))
		return
	}

	zap.S().Debugf("user_id: %v", userID)

	filter := bson.M{"userId": userID}
	if medID := r.URL.Query().Get("medication_id"); medID != "" {
		filter["medicationId"] = medID
	}
	if date := r.URL.Query().Get("date"); date != "" {
		filter["date"] = date
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	limit, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if err != nil || limit <= 0 {
		limit = 50
	}
	page, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if err != nil || page < 0 {
		page = 0
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := l.DB.Find(ctx, filter, databases.PaginatedOpts(limit, page))
	if err != nil {
		config.ErrorStatus("failed to get medication logs", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.MedicationLog{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
