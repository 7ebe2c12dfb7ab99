package store

import (
	"database/sql"
	"errors"

	"github.com/starford/notebase/internal/models"
)

const taskColumns = `id, content, completed, note_id, created_at, updated_at`

func scanTask(s scanner) (models.Task, error) {
	var (
		t                    models.Task
		createdAt, updatedAt string
		err                  error
	)
	if err = s.Scan(&t.ID, &t.Content, &t.Completed, &t.NoteID, &createdAt, &updatedAt); err != nil {
		return t, err
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return t, err
	}
	t.UpdatedAt, err = parseTime(updatedAt)
	return t, err
}

// CreateTask inserts a task and returns it with its timestamps set.
func (db *DB) CreateTask(t models.Task) (models.Task, error) {
	const op = "store: create task"
	if err := t.Validate(); err != nil {
		return models.Task{}, invalid(op, err)
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	now := db.stamp()
	t.CreatedAt, t.UpdatedAt = now, now
	err := db.exec(op,
		`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Content, t.Completed, t.NoteID, formatTime(now), formatTime(now))
	if err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// GetTasks returns the tasks of one note in insertion order.
func (db *DB) GetTasks(noteID string) ([]models.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return queryAll(db, "store: get tasks",
		`SELECT `+taskColumns+` FROM tasks WHERE note_id = ? ORDER BY rowid`,
		scanTask, noteID)
}

// UpdateTask writes content and completed and re-stamps updated_at. A
// missing task is not an error.
func (db *DB) UpdateTask(t models.Task) (models.Task, error) {
	const op = "store: update task"
	if err := t.Validate(); err != nil {
		return models.Task{}, invalid(op, err)
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	now := db.stamp()
	row := db.conn.QueryRow(
		`UPDATE tasks SET content = ?, completed = ?, updated_at = ? WHERE id = ? RETURNING `+taskColumns,
		t.Content, t.Completed, formatTime(now), t.ID)
	updated, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		t.UpdatedAt = now
		return t, nil
	}
	if err != nil {
		return models.Task{}, classify(op, err)
	}
	return updated, nil
}

// DeleteTask removes a task.
func (db *DB) DeleteTask(id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.exec("store: delete task", `DELETE FROM tasks WHERE id = ?`, id)
}
