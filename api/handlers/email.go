package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/medlove-app/medlove-api/config"
	"github.com/medlove-app/medlove-api/models"
	"github.com/medlove-app/medlove-api/reminder"
)

// Email exported for testing purposes
type Email struct {
	Engine *reminder.Engine
}

type sendReminderRequest struct {
	MedicationID string `json:"medicationId"`
}

// SendReminderHandler sends an immediate reminder email for a medication,
// outside the scheduled sweep
func (e Email) SendReminderHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var req sendReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if req.MedicationID == "" {
		config.ErrorStatus("medicationId is required", http.StatusBadRequest, w, fmt.Errorf("missing medicationId"))
		return
	}

	zap.S().Infow("manual reminder requested", "medicationId", req.MedicationID)

	if err := e.Engine.SendManualReminder(r.Context(), req.MedicationID, time.Now()); err != nil {
		config.ErrorStatus("failed to send reminder", http.StatusInternalServerError, w, err)
		return
	}

	b, _ := json.Marshal(models.MessageResponse{Message: "reminder sent"})
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
