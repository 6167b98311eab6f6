package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/medlove-app/medlove-api/api/handlers"
	"github.com/medlove-app/medlove-api/databases/mocks"
	"github.com/medlove-app/medlove-api/models"
)

func TestStats_GetStatsHandler_Success(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/stats?user_id=u1", nil)
	if err != nil {
		t.Fatal(err)
	}

	medDB := &mocks.MedicationDatabase{}
	logDB := &mocks.MedicationLogDatabase{}
	streakDB := &mocks.StreakDatabase{}

	// two meds, three doses per day
	medDB.On("Find", mock.Anything, bson.M{"userId": "u1"}).Return([]models.Medication{
		{Name: "Aspirin", Times: []string{"08:00", "20:00"}},
		{Name: "Vitamin D", Times: []string{"09:00"}},
	}, nil)
	// 14 taken over the week, 2 taken today
	logDB.On("CountDocuments", mock.Anything, mock.MatchedBy(func(f bson.M) bool {
		_, weekly := f["date"].(bson.M)
		return weekly
	})).Return(int64(14), nil)
	logDB.On("CountDocuments", mock.Anything, mock.MatchedBy(func(f bson.M) bool {
		_, weekly := f["date"].(bson.M)
		return !weekly
	})).Return(int64(2), nil)
	streakDB.On("Find", mock.Anything, mock.Anything).Return([]models.Streak{
		{MedicationID: "m1", CurrentStreak: 3},
		{MedicationID: "m2", CurrentStreak: 7},
	}, nil)

	s := handlers.Stats{MedDB: medDB, LogDB: logDB, StreakDB: streakDB, Location: time.UTC}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(s.GetStatsHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"streak":7`)
	assert.Contains(t, rr.Body.String(), `"weeklyCount":14`)
	assert.Contains(t, rr.Body.String(), `"todayCompleted":2`)
	assert.Contains(t, rr.Body.String(), `"todayTotal":3`)
	// 14 of 21 possible doses
	assert.Contains(t, rr.Body.String(), `"compliance":66.6`)
}

func TestStats_GetStatsHandler_MissingUserID(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/stats", nil)
	if err != nil {
		t.Fatal(err)
	}

	s := handlers.Stats{}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(s.GetStatsHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStats_GetStatsHandler_NoMedications(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/stats?user_id=u1", nil)
	if err != nil {
		t.Fatal(err)
	}

	medDB := &mocks.MedicationDatabase{}
	logDB := &mocks.MedicationLogDatabase{}
	streakDB := &mocks.StreakDatabase{}

	medDB.On("Find", mock.Anything, mock.Anything).Return(nil, nil)
	logDB.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), nil)
	streakDB.On("Find", mock.Anything, mock.Anything).Return(nil, nil)

	s := handlers.Stats{MedDB: medDB, LogDB: logDB, StreakDB: streakDB, Location: time.UTC}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(s.GetStatsHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"compliance":0`)
}
