// Package activity keeps the rolling log of mutating actions shown in
// the activity pane. It is informational only: in-memory, never
// persisted, no failure modes.
package activity

import "time"

// maxEntries bounds the log; the oldest entry is evicted first.
const maxEntries = 50

// Log is an append-only, size-bounded record of mutating actions.
type Log struct {
	entries []string
	now     func() time.Time
}

func New() *Log {
	return &Log{now: time.Now}
}

// Append stamps the message with the local time and stores it.
func (l *Log) Append(message string) {
	entry := l.now().Format("2006-01-02 15:04:05") + " " + message
	l.entries = append(l.entries, entry)
	if len(l.entries) > maxEntries {
		l.entries = l.entries[len(l.entries)-maxEntries:]
	}
}

// Entries returns the retained entries, oldest first. The slice is a
// copy.
func (l *Log) Entries() []string {
	return append([]string(nil), l.entries...)
}

// Len returns the number of retained entries.
func (l *Log) Len() int {
	return len(l.entries)
}
