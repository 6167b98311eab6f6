package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/medlove-app/medlove-api/api/handlers"
	"github.com/medlove-app/medlove-api/databases/mocks"
	"github.com/medlove-app/medlove-api/models"
)

func TestUser_UserHandler_NotFound(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/user/u1", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"user_id": "u1"})

	userDB := &mocks.UserDatabase{}
	userDB.On("FindOne", mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))
	u := handlers.User{DB: userDB}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.UserHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUser_UserHandler_Success(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/user/u1", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"user_id": "u1"})

	userDB := &mocks.UserDatabase{}
	userDB.On("FindOne", mock.Anything, mock.Anything).Return(&models.User{
		ID:          "u1",
		Email:       "alice@example.com",
		DisplayName: "Alice",
		Password:    "hashed-secret",
	}, nil)
	u := handlers.User{DB: userDB}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.UserHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "alice@example.com")
	// the password hash never leaves the API
	assert.NotContains(t, rr.Body.String(), "hashed-secret")
}

func TestUser_UserCreateHandler_DuplicateEmail(t *testing.T) {
	body := `{"email":"alice@example.com","password":"secret"}`
	req, err := http.NewRequest("POST", "/api/v1/user/create-user", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	userDB := &mocks.UserDatabase{}
	userDB.On("FindOne", mock.Anything, mock.Anything).Return(&models.User{ID: "u1", Email: "alice@example.com"}, nil)
	u := handlers.User{DB: userDB}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.UserCreateHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestUser_UserCreateHandler_MissingFields(t *testing.T) {
	body := `{"email":"alice@example.com"}`
	req, err := http.NewRequest("POST", "/api/v1/user/create-user", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	u := handlers.User{DB: &mocks.UserDatabase{}}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.UserCreateHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUser_UserCreateHandler_Success(t *testing.T) {
	body := `{"email":"alice@example.com","password":"secret","displayName":"Alice"}`
	req, err := http.NewRequest("POST", "/api/v1/user/create-user", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	userDB := &mocks.UserDatabase{}
	userDB.On("FindOne", mock.Anything, mock.Anything).Return(nil, errors.New("not found"))
	userDB.On("InsertOne", mock.Anything, mock.AnythingOfType("models.User")).Return(nil)
	u := handlers.User{DB: userDB}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.UserCreateHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), "Alice")
	assert.NotContains(t, rr.Body.String(), "secret")
	userDB.AssertExpectations(t)
}

func TestUser_UserCheckEmailHandler_Available(t *testing.T) {
	body := `{"email":"new@example.com"}`
	req, err := http.NewRequest("POST", "/api/v1/user/check-user", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	userDB := &mocks.UserDatabase{}
	userDB.On("FindOne", mock.Anything, mock.Anything).Return(nil, errors.New("not found"))
	u := handlers.User{DB: userDB}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.UserCheckEmailHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
