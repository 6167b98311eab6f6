package reminder

import "time"

const day = 24 * time.Hour

// recordTaken folds one taken event into the streak state and reports whether
// the state changed. Day distance is the floor of the elapsed time over 24h,
// matching the dashboard's counting:
//
//	no prior record        -> current = longest = 1
//	exactly one day later  -> current++, longest = max(longest, current)
//	more than one day late -> current = 1, longest unchanged
//	same day               -> no-op
//
// longest never exceeds a streak actually achieved; it only moves when
// current passes it.
func recordTaken(existing StreakRecord, when time.Time) (StreakRecord, bool) {
	if existing.LastTaken.IsZero() {
		return StreakRecord{CurrentStreak: 1, LongestStreak: 1, LastTaken: when}, true
	}

	daysSince := int(when.Sub(existing.LastTaken) / day)
	switch {
	case daysSince == 1:
		updated := existing
		updated.CurrentStreak++
		if updated.CurrentStreak > updated.LongestStreak {
			updated.LongestStreak = updated.CurrentStreak
		}
		updated.LastTaken = when
		return updated, true
	case daysSince > 1:
		updated := existing
		updated.CurrentStreak = 1
		updated.LastTaken = when
		return updated, true
	default:
		// Already taken today (or clock skew). Leave the record untouched.
		return existing, false
	}
}
