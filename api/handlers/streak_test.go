package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medlove-app/medlove-api/api/handlers"
	"github.com/medlove-app/medlove-api/databases/mocks"
	"github.com/medlove-app/medlove-api/models"
)

func TestStreak_GetStreakHandler_Success(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/streaks/m1?user_id=u1", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"medication_id": "m1"})

	streakDB := &mocks.StreakDatabase{}
	streakDB.On("FindOne", mock.Anything, mock.Anything).Return(&models.Streak{
		ID:            "u1_m1",
		UserID:        "u1",
		MedicationID:  "m1",
		CurrentStreak: 4,
		LongestStreak: 9,
	}, nil)
	s := handlers.Streak{DB: streakDB}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(s.GetStreakHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"currentStreak":4`)
	assert.Contains(t, rr.Body.String(), `"longestStreak":9`)
}

func TestStreak_GetStreakHandler_NoRecordReturnsZeroStreak(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/streaks/m1?user_id=u1", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"medication_id": "m1"})

	streakDB := &mocks.StreakDatabase{}
	streakDB.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)
	s := handlers.Streak{DB: streakDB}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(s.GetStreakHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"currentStreak":0`)
}

func TestStreak_GetStreakHandler_MissingUserID(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/streaks/m1", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"medication_id": "m1"})

	s := handlers.Streak{DB: &mocks.StreakDatabase{}}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(s.GetStreakHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
