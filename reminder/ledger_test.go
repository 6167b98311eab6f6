package reminder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentLedgerMarkAndCheck(t *testing.T) {
	l := NewSentLedger("2025-03-10")
	key := OccurrenceKey{SubjectID: "u1", MedicationID: "m1", Date: "2025-03-10", Time: "08:00"}

	assert.False(t, l.AlreadySent(key))
	l.MarkSent(key)
	assert.True(t, l.AlreadySent(key))
	assert.Equal(t, 1, l.Len())
}

func TestSentLedgerMarkSentIdempotent(t *testing.T) {
	l := NewSentLedger("2025-03-10")
	key := OccurrenceKey{SubjectID: "u1", MedicationID: "m1", Date: "2025-03-10", Time: "08:00"}

	l.MarkSent(key)
	l.MarkSent(key)

	assert.Equal(t, 1, l.Len())
}

func TestSentLedgerDistinguishesTimeSlots(t *testing.T) {
	l := NewSentLedger("2025-03-10")
	morning := OccurrenceKey{SubjectID: "u1", MedicationID: "m1", Date: "2025-03-10", Time: "08:00"}
	evening := OccurrenceKey{SubjectID: "u1", MedicationID: "m1", Date: "2025-03-10", Time: "20:00"}

	l.MarkSent(morning)

	assert.True(t, l.AlreadySent(morning))
	assert.False(t, l.AlreadySent(evening))
}

func TestSentLedgerResetOnNewDate(t *testing.T) {
	l := NewSentLedger("2025-03-10")
	key := OccurrenceKey{SubjectID: "u1", MedicationID: "m1", Date: "2025-03-10", Time: "08:00"}
	l.MarkSent(key)

	// same date keeps entries
	l.Reset("2025-03-10")
	assert.True(t, l.AlreadySent(key))

	// new date clears them
	l.Reset("2025-03-11")
	assert.False(t, l.AlreadySent(key))
	assert.Equal(t, 0, l.Len())
}
