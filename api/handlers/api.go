package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/medlove-app/medlove-api/api"
	"github.com/medlove-app/medlove-api/api/scheduler"
	"github.com/medlove-app/medlove-api/config"
	"github.com/medlove-app/medlove-api/databases"
	"github.com/medlove-app/medlove-api/mailer"
	"github.com/medlove-app/medlove-api/models"
	"github.com/medlove-app/medlove-api/reminder"
)

// App stores the router, db connection and reminder engine so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Engine    *reminder.Engine
	Scheduler *scheduler.Scheduler
	Hub       *EventHub
	dbHelper  databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewUserDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	medDB := databases.NewMedicationDatabase(a.dbHelper)
	logDB := databases.NewMedicationLogDatabase(a.dbHelper)
	streakDB := databases.NewStreakDatabase(a.dbHelper)
	userDB := databases.NewUserDatabase(a.dbHelper)

	med := Medication{DB: medDB, Engine: a.Engine}
	logs := MedicationLog{DB: logDB}
	streak := Streak{DB: streakDB}
	stats := Stats{MedDB: medDB, LogDB: logDB, StreakDB: streakDB, Location: a.Config.ResetLocation}
	u := User{DB: userDB}
	email := Email{Engine: a.Engine}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	// outbound event feed for the UI
	r.HandleFunc("/ws/events", a.Hub.HandleEventsWebSocket)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(30 * time.Second))

	apiCreate.Handle("/auth/token", http.HandlerFunc(m.CreateToken)).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")
	apiCreate.Handle("/auth/verify", http.HandlerFunc(m.VerifyToken)).Methods("GET")

	apiCreate.Handle("/user/create-user", http.HandlerFunc(u.UserCreateHandler)).Methods("POST")
	apiCreate.Handle("/user/check-user", http.HandlerFunc(u.UserCheckEmailHandler)).Methods("POST")
	apiCreate.Handle("/user/{user_id}", api.Middleware(http.HandlerFunc(u.UserHandler))).Methods("GET")

	apiCreate.Handle("/medications", api.Middleware(http.HandlerFunc(med.GetMedicationsHandler))).Methods("GET")
	apiCreate.Handle("/medications", api.Middleware(http.HandlerFunc(med.CreateMedicationHandler))).Methods("POST")
	apiCreate.Handle("/medications/{id}", api.Middleware(http.HandlerFunc(med.GetMedicationByIDHandler))).Methods("GET")
	apiCreate.Handle("/medications/{id}", api.Middleware(http.HandlerFunc(med.UpdateMedicationHandler))).Methods("PATCH")
	apiCreate.Handle("/medications/{id}", api.Middleware(http.HandlerFunc(med.DeleteMedicationHandler))).Methods("DELETE")
	apiCreate.Handle("/medications/{id}/toggle-taken", api.Middleware(http.HandlerFunc(med.ToggleTakenHandler))).Methods("POST")

	apiCreate.Handle("/medication-logs", api.Middleware(http.HandlerFunc(logs.GetMedicationLogsHandler))).Methods("GET")

	apiCreate.Handle("/streaks/{medication_id}", api.Middleware(http.HandlerFunc(streak.GetStreakHandler))).Methods("GET")

	apiCreate.Handle("/stats", api.Middleware(http.HandlerFunc(stats.GetStatsHandler))).Methods("GET")

	apiCreate.Handle("/emails/reminder", api.Middleware(http.HandlerFunc(email.SendReminderHandler))).Methods("POST")

	return r
}

// Initialize is invoked by main to connect with the database, build the
// reminder engine and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("medlove-api has connected to the database")

	a.Hub = NewEventHub()

	medDB := databases.NewMedicationDatabase(a.dbHelper)
	logDB := databases.NewMedicationLogDatabase(a.dbHelper)
	streakDB := databases.NewStreakDatabase(a.dbHelper)
	userDB := databases.NewUserDatabase(a.dbHelper)
	lockDB := databases.NewSchedulerLockDatabase(a.dbHelper)

	engineStore := databases.NewReminderStore(medDB, logDB, streakDB, userDB)
	mail := mailer.NewSendGrid(a.Config.SendGridAPIKey, a.Config.FromName, a.Config.FromEmail)

	a.Engine = reminder.NewEngine(engineStore, mail, reminder.Config{
		FollowUpDelay: a.Config.FollowUpDelay,
		MaxFollowUps:  a.Config.MaxFollowUps,
		Location:      a.Config.ResetLocation,
		AppBaseURL:    a.Config.AppBaseURL,
	}, reminder.Events{
		ReminderDispatched: a.Hub.BroadcastReminder,
		StreakUpdated:      a.Hub.BroadcastStreak,
	})

	a.Scheduler = scheduler.NewScheduler(a.Engine, lockDB, a.Config.SweepSpec, a.Config.ResetLocation)
	a.Scheduler.Start()

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
