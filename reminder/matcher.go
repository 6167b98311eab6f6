package reminder

import "time"

// Match pairs a due entry with the exact schedule time that matched. An entry
// with several daily times can surface once per matched time.
type Match struct {
	Entry Entry
	Time  string
}

// DueNow selects the entries scheduled for the minute containing now. The
// caller is responsible for localizing now; the comparison truncates to
// HH:MM and ignores seconds. Inactive entries never match. The result keeps
// the input order so a sweep over a fixed entry set is reproducible.
func DueNow(entries []Entry, now time.Time) []Match {
	current := now.Format(TimeLayout)

	var matches []Match
	for _, e := range entries {
		if !e.Active {
			continue
		}
		for _, t := range e.Times {
			if t == current {
				matches = append(matches, Match{Entry: e, Time: t})
				break
			}
		}
	}
	return matches
}
