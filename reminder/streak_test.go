package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordTakenFirstDose(t *testing.T) {
	when := time.Date(2025, 3, 10, 8, 5, 0, 0, time.UTC)

	updated, changed := recordTaken(StreakRecord{}, when)

	assert.True(t, changed)
	assert.Equal(t, 1, updated.CurrentStreak)
	assert.Equal(t, 1, updated.LongestStreak)
	assert.Equal(t, when, updated.LastTaken)
}

func TestRecordTakenConsecutiveDay(t *testing.T) {
	day1 := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	existing := StreakRecord{CurrentStreak: 1, LongestStreak: 1, LastTaken: day1}
	updated, changed := recordTaken(existing, day2)

	assert.True(t, changed)
	assert.Equal(t, 2, updated.CurrentStreak)
	assert.Equal(t, 2, updated.LongestStreak)
}

func TestRecordTakenSkippedDayResetsCurrent(t *testing.T) {
	day1 := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	day3 := day1.Add(48 * time.Hour)

	existing := StreakRecord{CurrentStreak: 5, LongestStreak: 5, LastTaken: day1}
	updated, changed := recordTaken(existing, day3)

	assert.True(t, changed)
	assert.Equal(t, 1, updated.CurrentStreak)
	assert.Equal(t, 5, updated.LongestStreak, "longest survives a broken streak")
}

func TestRecordTakenSameDayNoOp(t *testing.T) {
	morning := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	evening := morning.Add(10 * time.Hour)

	existing := StreakRecord{CurrentStreak: 3, LongestStreak: 4, LastTaken: morning}
	updated, changed := recordTaken(existing, evening)

	assert.False(t, changed)
	assert.Equal(t, existing, updated)
}

func TestRecordTakenLongestOnlyMovesWithCurrent(t *testing.T) {
	// a rebuilt streak must pass the old record before longest moves again
	last := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	rec := StreakRecord{CurrentStreak: 2, LongestStreak: 7, LastTaken: last}

	for i := 1; i <= 4; i++ {
		rec, _ = recordTaken(rec, last.Add(time.Duration(i)*24*time.Hour))
	}
	assert.Equal(t, 6, rec.CurrentStreak)
	assert.Equal(t, 7, rec.LongestStreak)

	rec, _ = recordTaken(rec, last.Add(5*24*time.Hour))
	rec, _ = recordTaken(rec, last.Add(6*24*time.Hour))
	assert.Equal(t, 8, rec.CurrentStreak)
	assert.Equal(t, 8, rec.LongestStreak)
}
