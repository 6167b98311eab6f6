package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medlove-app/medlove-api/api"
	"github.com/medlove-app/medlove-api/config"
	"github.com/medlove-app/medlove-api/databases"
	"github.com/medlove-app/medlove-api/models"
)

// Streak exported for testing purposes
type Streak struct {
	DB databases.StreakDatabase
}

// GetStreakHandler returns the streak record for a (user, medication) pair.
// A pair with no recorded doses gets a zero streak rather than a 404.
func (s Streak) GetStreakHandler(w http.ResponseWriter, r *http.Request) {
	medID := mux.Vars(r)["medication_id"]
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		config.ErrorStatus("user_id is required", http.StatusBadRequest, w, errors.New("missing user_id query param"))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := s.DB.FindOne(ctx, bson.M{"_id": models.StreakID(userID, medID)})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			dbResp = &models.Streak{
				ID:           models.StreakID(userID, medID),
				UserID:       userID,
				MedicationID: medID,
			}
		} else {
			config.ErrorStatus("failed to get streak", http.StatusInternalServerError, w, err)
			return
		}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
