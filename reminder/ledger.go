package reminder

import "sync"

// SentLedger tracks which occurrences have already been dispatched today so a
// slot never receives more than one primary reminder. The set is in-process
// and owned by a single engine; it is rebuilt from persisted reminder_sent
// records on restart and cleared when the calendar date rolls over.
type SentLedger struct {
	mu   sync.Mutex
	date string
	sent map[OccurrenceKey]struct{}
}

// NewSentLedger returns an empty ledger pinned to the given date
func NewSentLedger(date string) *SentLedger {
	return &SentLedger{
		date: date,
		sent: make(map[OccurrenceKey]struct{}),
	}
}

// AlreadySent reports whether MarkSent was called for the key since the last
// reset
func (l *SentLedger) AlreadySent(key OccurrenceKey) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.sent[key]
	return ok
}

// MarkSent records the key. Calling it twice for the same key is a no-op, so
// overlapping ticks cannot double-dispatch.
func (l *SentLedger) MarkSent(key OccurrenceKey) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sent[key] = struct{}{}
}

// Reset clears the ledger when date differs from the ledger's current date.
// Calling it again with the same date keeps the entries.
func (l *SentLedger) Reset(date string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if date == l.date {
		return
	}
	l.date = date
	l.sent = make(map[OccurrenceKey]struct{})
}

// Len returns the number of marked occurrences, used by logging
func (l *SentLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.sent)
}
