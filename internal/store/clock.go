package store

import (
	"time"
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// stamp returns the next timestamp. Stamps from one DB never repeat or go
// backwards, even when the wall clock does. Callers must hold db.mu.
func (db *DB) stamp() time.Time {
	t := db.now().UTC()
	if !t.After(db.last) {
		t = db.last.Add(time.Nanosecond)
	}
	db.last = t
	return t
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
