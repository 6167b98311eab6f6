package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDueNowMatchesCurrentMinute(t *testing.T) {
	entries := []Entry{
		{SubjectID: "u1", MedicationID: "m1", Name: "Aspirin", Times: []string{"08:00", "20:00"}, Active: true},
		{SubjectID: "u1", MedicationID: "m2", Name: "Vitamin D", Times: []string{"09:00"}, Active: true},
	}

	now := time.Date(2025, 3, 10, 8, 0, 30, 0, time.UTC)
	matches := DueNow(entries, now)

	assert.Len(t, matches, 1)
	assert.Equal(t, "m1", matches[0].Entry.MedicationID)
	assert.Equal(t, "08:00", matches[0].Time)
}

func TestDueNowTruncatesSeconds(t *testing.T) {
	entries := []Entry{
		{SubjectID: "u1", MedicationID: "m1", Times: []string{"14:30"}, Active: true},
	}

	// any second within the minute matches
	for _, sec := range []int{0, 1, 30, 59} {
		now := time.Date(2025, 3, 10, 14, 30, sec, 0, time.UTC)
		assert.Len(t, DueNow(entries, now), 1, "second %d should match", sec)
	}

	// the adjacent minutes do not
	assert.Empty(t, DueNow(entries, time.Date(2025, 3, 10, 14, 29, 59, 0, time.UTC)))
	assert.Empty(t, DueNow(entries, time.Date(2025, 3, 10, 14, 31, 0, 0, time.UTC)))
}

func TestDueNowSkipsInactiveEntries(t *testing.T) {
	entries := []Entry{
		{SubjectID: "u1", MedicationID: "m1", Times: []string{"08:00"}, Active: false},
		{SubjectID: "u1", MedicationID: "m2", Times: []string{"08:00"}, Active: true},
	}

	matches := DueNow(entries, time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))

	assert.Len(t, matches, 1)
	assert.Equal(t, "m2", matches[0].Entry.MedicationID)
}

func TestDueNowMatchesEachEntryOnce(t *testing.T) {
	// duplicate time values in one entry must not produce duplicate matches
	entries := []Entry{
		{SubjectID: "u1", MedicationID: "m1", Times: []string{"08:00", "08:00"}, Active: true},
	}

	matches := DueNow(entries, time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))

	assert.Len(t, matches, 1)
}

func TestDueNowKeepsInputOrder(t *testing.T) {
	entries := []Entry{
		{SubjectID: "u1", MedicationID: "m3", Times: []string{"12:00"}, Active: true},
		{SubjectID: "u1", MedicationID: "m1", Times: []string{"12:00"}, Active: true},
		{SubjectID: "u2", MedicationID: "m2", Times: []string{"12:00"}, Active: true},
	}

	matches := DueNow(entries, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))

	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.Entry.MedicationID)
	}
	assert.Equal(t, []string{"m3", "m1", "m2"}, ids)
}

func TestDueNowEmptyEntries(t *testing.T) {
	assert.Empty(t, DueNow(nil, time.Now()))
}
