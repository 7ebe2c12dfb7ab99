// Package store is the SQLite persistence layer for workspaces, tabs,
// projects, notes, tags and tasks.
//
// All access goes through one connection guarded by a mutex, so concurrent
// callers are serialized one operation at a time. Relations between tables
// are not enforced: deleting a project, note or tag leaves dependent rows in
// place, and a note may carry the same tag more than once.
package store

import (
	"database/sql"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/notebase/internal/apperr"
)

// FileName is the database file created inside the data directory.
const FileName = "app.db"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS workspaces (
	id       TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	type     TEXT NOT NULL,
	theme_id TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS workspace_settings (
	workspace_id  TEXT PRIMARY KEY,
	dark_mode     INTEGER NOT NULL DEFAULT 0,
	split_view    INTEGER NOT NULL DEFAULT 0,
	privacy_level TEXT NOT NULL,
	auto_save     INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS custom_themes (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	type             TEXT NOT NULL,
	primary_color    TEXT NOT NULL DEFAULT '',
	secondary_color  TEXT NOT NULL DEFAULT '',
	background_color TEXT NOT NULL DEFAULT '',
	surface_color    TEXT NOT NULL DEFAULT '',
	text_color       TEXT NOT NULL DEFAULT '',
	accent_color     TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS tabs (
	id           TEXT PRIMARY KEY,
	workspace_id TEXT NOT NULL,
	title        TEXT NOT NULL,
	content      TEXT,
	type         TEXT NOT NULL,
	position     INTEGER NOT NULL DEFAULT 0,
	is_active    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS backups (
	id           TEXT PRIMARY KEY,
	workspace_id TEXT NOT NULL,
	data         TEXT NOT NULL,
	created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS projects (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS notes (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	content    TEXT NOT NULL DEFAULT '',
	project_id TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	is_pinned  INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS tags (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id         TEXT PRIMARY KEY,
	content    TEXT NOT NULL,
	completed  INTEGER NOT NULL DEFAULT 0,
	note_id    TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS note_tags (
	note_id TEXT NOT NULL,
	tag_id  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tabs_workspace ON tabs(workspace_id, position);
CREATE INDEX IF NOT EXISTS idx_notes_project ON notes(project_id);
CREATE INDEX IF NOT EXISTS idx_tasks_note ON tasks(note_id);
CREATE INDEX IF NOT EXISTS idx_note_tags_note ON note_tags(note_id);
CREATE INDEX IF NOT EXISTS idx_backups_workspace ON backups(workspace_id);
`

// DB is the storage engine. It is safe for concurrent use.
type DB struct {
	mu   sync.Mutex
	conn *sql.DB
	path string

	now  func() time.Time
	last time.Time
}

// Option configures a DB.
type Option func(*DB)

// WithClock replaces the wall clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(db *DB) {
		db.now = now
	}
}

// Open creates dataDir if needed, opens (or creates) the database file in it
// and applies the schema. The schema batch is idempotent.
func Open(dataDir string, opts ...Option) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, apperr.New(apperr.KindIO, "store: create data dir", err)
	}
	path := filepath.Join(dataDir, FileName)
	dsn, err := dataSourceName(path)
	if err != nil {
		return nil, apperr.New(apperr.KindIO, "store: resolve db path", err)
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, apperr.New(apperr.KindIO, "store: open db", err)
	}
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, apperr.New(apperr.KindIO, "store: ping", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, apperr.New(apperr.KindSchema, "store: apply schema", err)
	}

	db := &DB{conn: conn, path: path, now: time.Now}
	for _, opt := range opts {
		opt(db)
	}
	if db.last, err = latestStamp(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// dataSourceName builds a file: URI for path so characters such as '?' and
// '#' in the directory name reach SQLite as part of the path.
func dataSourceName(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(abs),
		RawQuery: "_journal_mode=WAL&_busy_timeout=5000",
	}
	return u.String(), nil
}

// latestStamp returns the newest timestamp already stored, so stamps keep
// increasing across restarts even if the wall clock moved backwards.
func latestStamp(conn *sql.DB) (time.Time, error) {
	const op = "store: read latest stamp"
	var latest sql.NullString
	err := conn.QueryRow(`
		SELECT MAX(ts) FROM (
			SELECT MAX(updated_at) AS ts FROM projects
			UNION ALL SELECT MAX(updated_at) FROM notes
			UNION ALL SELECT MAX(updated_at) FROM tasks
			UNION ALL SELECT MAX(created_at) FROM tags
			UNION ALL SELECT MAX(created_at) FROM backups
		)`).Scan(&latest)
	if err != nil {
		return time.Time{}, classify(op, err)
	}
	if !latest.Valid {
		return time.Time{}, nil
	}
	t, err := parseTime(latest.String)
	if err != nil {
		return time.Time{}, classify(op, err)
	}
	return t, nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Ping checks that the database file is still reachable.
func (db *DB) Ping() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if err := db.conn.Ping(); err != nil {
		return apperr.New(apperr.KindIO, "store: ping", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.conn.Close()
}
