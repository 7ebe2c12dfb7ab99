package store

import (
	"database/sql"
	"errors"

	"github.com/starford/notebase/internal/models"
)

const noteColumns = `id, title, content, project_id, created_at, updated_at, is_pinned`

func scanNote(s scanner) (models.Note, error) {
	var (
		n                    models.Note
		createdAt, updatedAt string
		err                  error
	)
	if err = s.Scan(&n.ID, &n.Title, &n.Content, &n.ProjectID, &createdAt, &updatedAt, &n.IsPinned); err != nil {
		return n, err
	}
	if n.CreatedAt, err = parseTime(createdAt); err != nil {
		return n, err
	}
	n.UpdatedAt, err = parseTime(updatedAt)
	return n, err
}

// CreateNote inserts a note and returns it with created_at == updated_at
// set to the current time.
func (db *DB) CreateNote(n models.Note) (models.Note, error) {
	const op = "store: create note"
	if err := n.Validate(); err != nil {
		return models.Note{}, invalid(op, err)
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	now := db.stamp()
	n.CreatedAt, n.UpdatedAt = now, now
	err := db.exec(op,
		`INSERT INTO notes (`+noteColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.Title, n.Content, n.ProjectID, formatTime(now), formatTime(now), n.IsPinned)
	if err != nil {
		return models.Note{}, err
	}
	return n, nil
}

// GetNotes returns the notes of one project in insertion order.
func (db *DB) GetNotes(projectID string) ([]models.Note, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return queryAll(db, "store: get notes",
		`SELECT `+noteColumns+` FROM notes WHERE project_id = ? ORDER BY rowid`,
		scanNote, projectID)
}

// UpdateNote writes title, content and is_pinned and re-stamps updated_at.
// The project a note belongs to cannot be changed. A missing note is not an
// error: n is returned with the new updated_at.
func (db *DB) UpdateNote(n models.Note) (models.Note, error) {
	const op = "store: update note"
	if err := n.Validate(); err != nil {
		return models.Note{}, invalid(op, err)
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	now := db.stamp()
	row := db.conn.QueryRow(`
		UPDATE notes SET title = ?, content = ?, is_pinned = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+noteColumns,
		n.Title, n.Content, n.IsPinned, formatTime(now), n.ID)
	updated, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		n.UpdatedAt = now
		return n, nil
	}
	if err != nil {
		return models.Note{}, classify(op, err)
	}
	return updated, nil
}

// DeleteNote removes a note. Its tasks and tag associations are left in place.
func (db *DB) DeleteNote(id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.exec("store: delete note", `DELETE FROM notes WHERE id = ?`, id)
}
