package reminder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	templates "github.com/medlove-app/medlove-api/templates/html"
)

// Dispatcher renders and sends reminder emails and keeps the subject's
// notification bookkeeping up to date. Transport failures are wrapped in
// DeliveryError and never panic the caller.
type Dispatcher struct {
	mailer      Mailer
	store       Store
	appBaseURL  string
	maxAttempts int
}

// NewDispatcher creates a dispatcher. maxAttempts is the total notification
// bound per occurrence (primary plus follow-ups).
func NewDispatcher(mailer Mailer, store Store, appBaseURL string, maxAttempts int) *Dispatcher {
	return &Dispatcher{
		mailer:      mailer,
		store:       store,
		appBaseURL:  appBaseURL,
		maxAttempts: maxAttempts,
	}
}

// SendReminder sends the primary reminder for one due occurrence. On success
// it increments the subject's lifetime notification counter and records the
// last-notified timestamp.
func (d *Dispatcher) SendReminder(ctx context.Context, subject Subject, m Match, now time.Time) error {
	emailSubject := fmt.Sprintf("💊 Time for %s!", m.Entry.Name)
	htmlContent := templates.RenderMedicationReminderEmail(subject.Name, m.Entry.Name, m.Entry.Dosage, m.Time, m.Entry.MedicationID, d.appBaseURL)
	plainText := fmt.Sprintf("Hi %s! It's time to take %s (%s), scheduled for %s.", subject.Name, m.Entry.Name, m.Entry.Dosage, m.Time)

	if err := d.mailer.Send(subject.Email, subject.Name, emailSubject, htmlContent, plainText); err != nil {
		return &DeliveryError{Address: subject.Email, Err: err}
	}

	if err := d.store.IncrementNotificationCount(ctx, subject.ID, now); err != nil {
		zap.S().Errorw("failed to increment notification count",
			"userId", subject.ID,
			"error", err,
		)
	}
	return nil
}

// SendFollowUp sends follow-up attempt number attempt (2-based). Attempts
// beyond the configured maximum are a no-op, not an error.
func (d *Dispatcher) SendFollowUp(ctx context.Context, subject Subject, m Match, attempt int) error {
	if attempt > d.maxAttempts {
		return nil
	}

	emailSubject := fmt.Sprintf("⏰ Gentle Reminder: %s (%s reminder)", m.Entry.Name, ordinal(attempt))
	htmlContent := templates.RenderFollowUpReminderEmail(subject.Name, m.Entry.Name, m.Entry.Dosage, m.Time, m.Entry.MedicationID, d.appBaseURL, attempt)
	plainText := fmt.Sprintf("Hi %s! Just checking in: %s (%s) was scheduled for %s. This is your %s reminder.",
		subject.Name, m.Entry.Name, m.Entry.Dosage, m.Time, ordinal(attempt))

	if err := d.mailer.Send(subject.Email, subject.Name, emailSubject, htmlContent, plainText); err != nil {
		return &DeliveryError{Address: subject.Email, Err: err}
	}
	return nil
}

func ordinal(n int) string {
	switch n {
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", n)
	}
}
