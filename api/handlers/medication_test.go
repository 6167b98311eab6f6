package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medlove-app/medlove-api/api"
	"github.com/medlove-app/medlove-api/api/handlers"
	"github.com/medlove-app/medlove-api/databases/mocks"
	"github.com/medlove-app/medlove-api/models"
)

func TestMedication_GetMedicationByIDHandler_BadID(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/medications/not-an-objectid", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"id": "not-an-objectid"})

	medDB := &mocks.MedicationDatabase{}
	m := handlers.Medication{DB: medDB}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(m.GetMedicationByIDHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMedication_GetMedicationByIDHandler_NotFound(t *testing.T) {
	id := primitive.NewObjectID()
	req, err := http.NewRequest("GET", "/api/v1/medications/"+id.Hex(), nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"id": id.Hex()})

	medDB := &mocks.MedicationDatabase{}
	medDB.On("FindOne", mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))
	m := handlers.Medication{DB: medDB}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(m.GetMedicationByIDHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMedication_GetMedicationByIDHandler_Success(t *testing.T) {
	id := primitive.NewObjectID()
	req, err := http.NewRequest("GET", "/api/v1/medications/"+id.Hex(), nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"id": id.Hex()})

	medDB := &mocks.MedicationDatabase{}
	medDB.On("FindOne", mock.Anything, mock.Anything).Return(&models.Medication{
		ID:     id,
		UserID: "u1",
		Name:   "Aspirin",
		Times:  []string{"08:00"},
	}, nil)
	m := handlers.Medication{DB: medDB}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(m.GetMedicationByIDHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Aspirin")
}

func TestMedication_GetMedicationByIDHandler_BoundsQueryContext(t *testing.T) {
	id := primitive.NewObjectID()
	req, err := http.NewRequest("GET", "/api/v1/medications/"+id.Hex(), nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"id": id.Hex()})

	medDB := &mocks.MedicationDatabase{}
	medDB.On("FindOne", mock.MatchedBy(func(ctx context.Context) bool {
		deadline, ok := ctx.Deadline()
		return ok && time.Until(deadline) <= api.QueryTimeout
	}), mock.Anything).Return(&models.Medication{ID: id, UserID: "u1", Name: "Aspirin"}, nil)
	m := handlers.Medication{DB: medDB}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(m.GetMedicationByIDHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	medDB.AssertExpectations(t)
}

func TestMedication_GetMedicationsHandler_MissingUserID(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/medications", nil)
	if err != nil {
		t.Fatal(err)
	}

	m := handlers.Medication{DB: &mocks.MedicationDatabase{}}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(m.GetMedicationsHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMedication_GetMedicationsHandler_EmptyResult(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/medications?user_id=u1", nil)
	if err != nil {
		t.Fatal(err)
	}

	medDB := &mocks.MedicationDatabase{}
	medDB.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), nil)
	medDB.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	m := handlers.Medication{DB: medDB}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(m.GetMedicationsHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"medications":[]`)
}

func TestMedication_CreateMedicationHandler_InvalidTimeFormat(t *testing.T) {
	body := `{"userId":"u1","name":"Aspirin","times":["8am"]}`
	req, err := http.NewRequest("POST", "/api/v1/medications", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	m := handlers.Medication{DB: &mocks.MedicationDatabase{}}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(m.CreateMedicationHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMedication_CreateMedicationHandler_Success(t *testing.T) {
	body := `{"userId":"u1","name":"Aspirin","dosage":"100mg","times":["08:00","20:00"]}`
	req, err := http.NewRequest("POST", "/api/v1/medications", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	medDB := &mocks.MedicationDatabase{}
	medDB.On("InsertOne", mock.Anything, mock.AnythingOfType("*models.Medication")).Return(nil)
	m := handlers.Medication{DB: medDB}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(m.CreateMedicationHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"isActive":true`)
	medDB.AssertExpectations(t)
}

func TestMedication_DeleteMedicationHandler_Success(t *testing.T) {
	id := primitive.NewObjectID()
	req, err := http.NewRequest("DELETE", "/api/v1/medications/"+id.Hex(), nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"id": id.Hex()})

	medDB := &mocks.MedicationDatabase{}
	medDB.On("DeleteOne", mock.Anything, mock.Anything).Return(nil)
	m := handlers.Medication{DB: medDB}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(m.DeleteMedicationHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
