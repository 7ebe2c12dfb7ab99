// Package testutil provides shared test helpers for setting up storage.
package testutil

import (
	"testing"
	"time"

	"github.com/starford/notebase/internal/store"
)

// TestDB opens a storage engine in a temporary data directory that is
// removed when the test ends.
func TestDB(t *testing.T, opts ...store.Option) *store.DB {
	t.Helper()
	db, err := store.Open(t.TempDir(), opts...)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// FixedClock returns a clock that always reports the same instant. The
// engine still hands out strictly increasing stamps.
func FixedClock(at time.Time) store.Option {
	return store.WithClock(func() time.Time { return at })
}
