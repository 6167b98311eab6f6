package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/medlove-app/medlove-api/api/handlers"
	"github.com/medlove-app/medlove-api/databases/mocks"
	"github.com/medlove-app/medlove-api/models"
)

func TestMedicationLog_GetMedicationLogsHandler_MissingUserID(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/medication-logs", nil)
	if err != nil {
		t.Fatal(err)
	}

	l := handlers.MedicationLog{DB: &mocks.MedicationLogDatabase{}}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(l.GetMedicationLogsHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMedicationLog_GetMedicationLogsHandler_FiltersApplied(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/medication-logs?user_id=u1&date=2025-03-10&status=taken", nil)
	if err != nil {
		t.Fatal(err)
	}

	logDB := &mocks.MedicationLogDatabase{}
	logDB.On("Find", mock.Anything, mock.MatchedBy(func(f bson.M) bool {
		return f["userId"] == "u1" && f["date"] == "2025-03-10" && f["status"] == "taken"
	}), mock.Anything).Return([]models.MedicationLog{
		{UserID: "u1", MedicationName: "Aspirin", Status: models.LogStatusTaken},
	}, nil)
	l := handlers.MedicationLog{DB: logDB}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(l.GetMedicationLogsHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Aspirin")
	logDB.AssertExpectations(t)
}

func TestMedicationLog_GetMedicationLogsHandler_EmptyResult(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/medication-logs?user_id=u1", nil)
	if err != nil {
		t.Fatal(err)
	}

	logDB := &mocks.MedicationLogDatabase{}
	logDB.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	l := handlers.MedicationLog{DB: logDB}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(l.GetMedicationLogsHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())
}
