package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/medlove-app/medlove-api/api"
	"github.com/medlove-app/medlove-api/config"
	"github.com/medlove-app/medlove-api/databases"
	"github.com/medlove-app/medlove-api/models"
	"github.com/medlove-app/medlove-api/reminder"
)

// Stats exported for testing purposes
type Stats struct {
	MedDB    databases.MedicationDatabase
	LogDB    databases.MedicationLogDatabase
	StreakDB databases.StreakDatabase
	Location *time.Location
}

// GetStatsHandler returns the adherence dashboard numbers for a user: best
// current streak, 7-day compliance, weekly taken count and today's progress
func (s Stats) GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		config.ErrorStatus("user_id is required", http.StatusBadRequest, w, errors.New("missing user_id query param"))
		return
	}

	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)
	today := now.Format(reminder.DateLayout)

	weekDates := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		weekDates = append(weekDates, now.AddDate(0, 0, -i).Format(reminder.DateLayout))
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	meds, err := s.MedDB.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		config.ErrorStatus("failed to get medications", http.StatusInternalServerError, w, err)
		return
	}

	// expected doses per day is the sum of scheduled times across all meds
	var dosesPerDay int64
	for _, m := range meds {
		dosesPerDay += int64(len(m.Times))
	}

	weeklyCount, err := s.LogDB.CountDocuments(ctx, bson.M{
		"userId": userID,
		"status": models.LogStatusTaken,
		"date":   bson.M{"$in": weekDates},
	})
	if err != nil {
		config.ErrorStatus("failed to count weekly doses", http.StatusInternalServerError, w, err)
		return
	}

	todayCompleted, err := s.LogDB.CountDocuments(ctx, bson.M{
		"userId": userID,
		"status": models.LogStatusTaken,
		"date":   today,
	})
	if err != nil {
		config.ErrorStatus("failed to count today's doses", http.StatusInternalServerError, w, err)
		return
	}

	streaks, err := s.StreakDB.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		config.ErrorStatus("failed to get streaks", http.StatusInternalServerError, w, err)
		return
	}
	bestStreak := 0
	for _, st := range streaks {
		if st.CurrentStreak > bestStreak {
			bestStreak = st.CurrentStreak
		}
	}

	var compliance float64
	if dosesPerDay > 0 {
		compliance = float64(weeklyCount) / float64(dosesPerDay*7) * 100
		if compliance > 100 {
			compliance = 100
		}
	}

	b, err := json.Marshal(models.Stats{
		Streak:         bestStreak,
		Compliance:     compliance,
		WeeklyCount:    weeklyCount,
		TodayCompleted: todayCompleted,
		TodayTotal:     dosesPerDay,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
