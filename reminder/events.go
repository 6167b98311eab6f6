package reminder

// ReminderEvent is emitted after a reminder or follow-up email is dispatched
type ReminderEvent struct {
	SubjectID      string `json:"userId"`
	MedicationID   string `json:"medicationId"`
	MedicationName string `json:"medicationName"`
	Dosage         string `json:"dosage"`
	ScheduledTime  string `json:"scheduledTime"`
	Date           string `json:"date"`
	Attempt        int    `json:"attempt"`
}

// StreakEvent is emitted after a taken dose updates the adherence streak
type StreakEvent struct {
	SubjectID     string `json:"userId"`
	MedicationID  string `json:"medicationId"`
	CurrentStreak int    `json:"currentStreak"`
	LongestStreak int    `json:"longestStreak"`
}

// Events holds the optional outbound hooks the UI layer can subscribe to.
// Nil hooks are skipped.
type Events struct {
	ReminderDispatched func(ReminderEvent)
	StreakUpdated      func(StreakEvent)
}

func (e Events) emitReminder(ev ReminderEvent) {
	if e.ReminderDispatched != nil {
		e.ReminderDispatched(ev)
	}
}

func (e Events) emitStreak(ev StreakEvent) {
	if e.StreakUpdated != nil {
		e.StreakUpdated(ev)
	}
}
