package reminder

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Config holds the engine knobs. All values are supplied at construction;
// nothing is read from ambient globals.
type Config struct {
	// FollowUpDelay is the gap between notification attempts for one
	// occurrence. Defaults to 15 minutes.
	FollowUpDelay time.Duration
	// MaxFollowUps bounds the follow-up chain after the primary reminder.
	// Defaults to 3, for at most 4 notifications per occurrence.
	MaxFollowUps int
	// Location fixes the wall-clock used for minute keys, calendar dates and
	// the midnight reset. Defaults to UTC.
	Location *time.Location
	// AppBaseURL is the public URL embedded in the mark-as-taken email link.
	AppBaseURL string
}

func (c Config) withDefaults() Config {
	if c.FollowUpDelay <= 0 {
		c.FollowUpDelay = 15 * time.Minute
	}
	if c.MaxFollowUps == 0 {
		c.MaxFollowUps = 3
	}
	if c.Location == nil {
		c.Location = time.UTC
	}
	return c
}

// chain is the escalation state for one dispatched occurrence. attempt counts
// notifications already sent; the chain is removed once the bound is reached,
// the date rolls over, or a taken event stops it.
type chain struct {
	subject Subject
	match   Match
	date    string
	attempt int
	nextAt  time.Time
}

// Engine orchestrates the reminder sweep and the adherence bookkeeping. One
// engine owns its dedup ledger and escalation chains; multiple engines can
// coexist in tests because nothing is process-global.
type Engine struct {
	cfg        Config
	store      Store
	dispatcher *Dispatcher
	ledger     *SentLedger
	events     Events

	mu     sync.Mutex
	chains map[OccurrenceKey]*chain
}

// NewEngine wires an engine from its collaborators
func NewEngine(store Store, mailer Mailer, cfg Config, events Events) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		cfg:        cfg,
		store:      store,
		dispatcher: NewDispatcher(mailer, store, cfg.AppBaseURL, 1+cfg.MaxFollowUps),
		ledger:     NewSentLedger(""),
		events:     events,
		chains:     make(map[OccurrenceKey]*chain),
	}
}

// Restore rebuilds the dedup ledger from reminder records already persisted
// for the current date, so a restarted process does not re-send this
// morning's reminders.
func (e *Engine) Restore(ctx context.Context, now time.Time) error {
	date := now.In(e.cfg.Location).Format(DateLayout)
	e.ledger.Reset(date)

	keys, err := e.store.ListSentOccurrences(ctx, date)
	if err != nil {
		return &StoreError{Op: "listSentOccurrences", Err: err}
	}
	for _, k := range keys {
		e.ledger.MarkSent(k)
	}
	zap.S().Infow("reminder ledger restored",
		"date", date,
		"occurrences", len(keys),
	)
	return nil
}

// OnTick runs one sweep: fire due follow-ups, match entries scheduled for the
// current minute, and dispatch a primary reminder for every occurrence not
// already notified. One occurrence failing never stops the rest of the tick.
func (e *Engine) OnTick(ctx context.Context, now time.Time) error {
	local := now.In(e.cfg.Location)
	date := local.Format(DateLayout)
	e.ledger.Reset(date)

	e.processFollowUps(ctx, local, date)

	timeOfDay := local.Format(TimeLayout)
	entries, err := e.store.QueryDueMedications(ctx, timeOfDay)
	if err != nil {
		zap.S().Errorw("failed to query due medications", "time", timeOfDay, "error", err)
		return &StoreError{Op: "queryDueMedications", Err: err}
	}

	matches := DueNow(entries, local)
	if len(matches) == 0 {
		zap.S().Debugw("no medications due", "time", timeOfDay)
		return nil
	}

	dispatched := 0
	for _, m := range matches {
		if e.dispatchPrimary(ctx, m, local, date) {
			dispatched++
		}
	}
	zap.S().Infow("reminder sweep complete",
		"time", timeOfDay,
		"due", len(matches),
		"dispatched", dispatched,
	)
	return nil
}

// dispatchPrimary handles one due match and reports whether an email went out
func (e *Engine) dispatchPrimary(ctx context.Context, m Match, now time.Time, date string) bool {
	key := OccurrenceKey{
		SubjectID:    m.Entry.SubjectID,
		MedicationID: m.Entry.MedicationID,
		Date:         date,
		Time:         m.Time,
	}
	if e.ledger.AlreadySent(key) {
		return false
	}

	taken, err := e.store.QueryTakenToday(ctx, key.SubjectID, key.MedicationID, date)
	if err != nil {
		zap.S().Errorw("failed to check taken status", "medicationId", key.MedicationID, "error", err)
		return false
	}
	if taken {
		// Dose already confirmed; suppress the whole slot.
		e.ledger.MarkSent(key)
		return false
	}

	subject, err := e.store.GetSubject(ctx, key.SubjectID)
	if err != nil {
		zap.S().Errorw("failed to load user for reminder", "userId", key.SubjectID, "error", err)
		return false
	}

	rec := ReminderRecord{
		SubjectID:      key.SubjectID,
		MedicationID:   key.MedicationID,
		MedicationName: m.Entry.Name,
		Dosage:         m.Entry.Dosage,
		ScheduledTime:  m.Time,
		Date:           date,
		Status:         StatusReminderSent,
		CreatedAt:      now,
	}
	// Fail closed: without the persisted record the dedup state would be
	// ambiguous after a restart, so no record means no email.
	if err := e.store.WriteReminderRecord(ctx, rec); err != nil {
		zap.S().Errorw("failed to persist reminder record, skipping dispatch",
			"medicationId", key.MedicationID,
			"error", err,
		)
		return false
	}
	e.ledger.MarkSent(key)

	if err := e.dispatcher.SendReminder(ctx, subject, m, now); err != nil {
		// Best effort: the record persists, the chain for this slot ends.
		zap.S().Errorw("failed to send reminder email",
			"userId", subject.ID,
			"medicationId", key.MedicationID,
			"error", err,
		)
		return false
	}

	e.events.emitReminder(ReminderEvent{
		SubjectID:      key.SubjectID,
		MedicationID:   key.MedicationID,
		MedicationName: m.Entry.Name,
		Dosage:         m.Entry.Dosage,
		ScheduledTime:  m.Time,
		Date:           date,
		Attempt:        1,
	})

	if e.cfg.MaxFollowUps > 0 {
		e.mu.Lock()
		e.chains[key] = &chain{
			subject: subject,
			match:   m,
			date:    date,
			attempt: 1,
			nextAt:  now.Add(e.cfg.FollowUpDelay),
		}
		e.mu.Unlock()
	}
	return true
}

// processFollowUps fires every escalation step that has come due. A taken
// dose observed at fire time stops the chain even if the cancel signal raced
// the timer; a delivery failure advances the chain anyway so a failed second
// attempt does not cancel the third.
func (e *Engine) processFollowUps(ctx context.Context, now time.Time, date string) {
	type due struct {
		key OccurrenceKey
		c   *chain
	}

	e.mu.Lock()
	var fire []due
	for key, c := range e.chains {
		if c.date != date {
			delete(e.chains, key)
			continue
		}
		if !now.Before(c.nextAt) {
			fire = append(fire, due{key: key, c: c})
		}
	}
	e.mu.Unlock()

	for _, d := range fire {
		taken, err := e.store.QueryTakenToday(ctx, d.key.SubjectID, d.key.MedicationID, date)
		if err != nil {
			// Leave the chain in place; the next sweep retries the check.
			zap.S().Errorw("failed to check taken status for follow-up", "medicationId", d.key.MedicationID, "error", err)
			continue
		}
		if taken {
			e.removeChain(d.key)
			continue
		}

		attempt := d.c.attempt + 1
		if err := e.dispatcher.SendFollowUp(ctx, d.c.subject, d.c.match, attempt); err != nil {
			zap.S().Errorw("failed to send follow-up email",
				"userId", d.c.subject.ID,
				"medicationId", d.key.MedicationID,
				"attempt", attempt,
				"error", err,
			)
		} else {
			e.events.emitReminder(ReminderEvent{
				SubjectID:      d.key.SubjectID,
				MedicationID:   d.key.MedicationID,
				MedicationName: d.c.match.Entry.Name,
				Dosage:         d.c.match.Entry.Dosage,
				ScheduledTime:  d.c.match.Time,
				Date:           date,
				Attempt:        attempt,
			})
		}

		e.mu.Lock()
		d.c.attempt = attempt
		d.c.nextAt = now.Add(e.cfg.FollowUpDelay)
		if d.c.attempt >= 1+e.cfg.MaxFollowUps {
			delete(e.chains, d.key)
		}
		e.mu.Unlock()
	}
}

// OnDoseTaken records a confirmed dose: it folds the event into the streak,
// writes the taken log, excludes the entry from further same-day matches, and
// stops any pending follow-up chain. A same-day duplicate returns
// ErrAlreadyTaken. The streak path is independent of email delivery.
func (e *Engine) OnDoseTaken(ctx context.Context, subjectID, medicationID string, when time.Time) (StreakRecord, error) {
	local := when.In(e.cfg.Location)
	date := local.Format(DateLayout)

	taken, err := e.store.QueryTakenToday(ctx, subjectID, medicationID, date)
	if err != nil {
		return StreakRecord{}, &StoreError{Op: "queryTakenToday", Err: err}
	}
	if taken {
		e.stopChains(subjectID, medicationID, date)
		return StreakRecord{}, ErrAlreadyTaken
	}

	entry, err := e.store.GetEntry(ctx, medicationID)
	if err != nil {
		zap.S().Warnw("failed to load medication for taken log", "medicationId", medicationID, "error", err)
		entry = Entry{SubjectID: subjectID, MedicationID: medicationID}
	}

	existing, err := e.store.ReadStreak(ctx, subjectID, medicationID)
	if errors.Is(err, ErrStreakNotFound) {
		existing = StreakRecord{}
	} else if err != nil {
		// A transient failure is not absence; surfacing it avoids silently
		// restarting a real streak at 1.
		return StreakRecord{}, &StoreError{Op: "readStreak", Err: err}
	}

	// The streak is written first. Once the taken log exists a same-day
	// retry stops at ErrAlreadyTaken, so a streak write deferred past the
	// log could never be replayed.
	updated, changed := recordTaken(existing, when)
	if changed {
		if err := e.store.WriteStreak(ctx, subjectID, medicationID, updated); err != nil {
			return updated, &StoreError{Op: "writeStreak", Err: err}
		}
	}

	rec := ReminderRecord{
		SubjectID:      subjectID,
		MedicationID:   medicationID,
		MedicationName: entry.Name,
		Dosage:         entry.Dosage,
		ScheduledTime:  local.Format(TimeLayout),
		Date:           date,
		Status:         StatusTaken,
		CreatedAt:      when,
	}
	if err := e.store.WriteReminderRecord(ctx, rec); err != nil {
		return updated, &StoreError{Op: "writeTakenRecord", Err: err}
	}

	if err := e.store.DeactivateForToday(ctx, medicationID, date, when); err != nil {
		// Reminder suppression still holds through the taken record.
		zap.S().Warnw("failed to deactivate medication for today", "medicationId", medicationID, "error", err)
	}

	e.stopChains(subjectID, medicationID, date)

	e.events.emitStreak(StreakEvent{
		SubjectID:     subjectID,
		MedicationID:  medicationID,
		CurrentStreak: updated.CurrentStreak,
		LongestStreak: updated.LongestStreak,
	})
	return updated, nil
}

// SendManualReminder dispatches an immediate reminder outside the sweep,
// bypassing the dedup ledger. Used by the manual/test email endpoint.
func (e *Engine) SendManualReminder(ctx context.Context, medicationID string, now time.Time) error {
	entry, err := e.store.GetEntry(ctx, medicationID)
	if err != nil {
		return &StoreError{Op: "getEntry", Err: err}
	}
	subject, err := e.store.GetSubject(ctx, entry.SubjectID)
	if err != nil {
		return &StoreError{Op: "getSubject", Err: err}
	}

	local := now.In(e.cfg.Location)
	m := Match{Entry: entry, Time: local.Format(TimeLayout)}
	return e.dispatcher.SendReminder(ctx, subject, m, now)
}

// ResetDay clears the dedup ledger, drops leftover chains, and reactivates
// entries taken on a previous date. Invoked by the midnight reset timer.
func (e *Engine) ResetDay(ctx context.Context, now time.Time) error {
	date := now.In(e.cfg.Location).Format(DateLayout)
	e.ledger.Reset(date)

	e.mu.Lock()
	for key, c := range e.chains {
		if c.date != date {
			delete(e.chains, key)
		}
	}
	e.mu.Unlock()

	if err := e.store.ResetDailyStatus(ctx, date, now); err != nil {
		return &StoreError{Op: "resetDailyStatus", Err: err}
	}
	zap.S().Infow("daily reminder state reset", "date", date)
	return nil
}

// stopChains ends every pending escalation chain for the pair on the given
// date, across all scheduled time slots
func (e *Engine) stopChains(subjectID, medicationID, date string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for key := range e.chains {
		if key.SubjectID == subjectID && key.MedicationID == medicationID && key.Date == date {
			delete(e.chains, key)
		}
	}
}

func (e *Engine) removeChain(key OccurrenceKey) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.chains, key)
}

// PendingChains reports the number of live escalation chains, used by logging
// and tests
func (e *Engine) PendingChains() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.chains)
}
