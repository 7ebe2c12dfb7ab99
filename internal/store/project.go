package store

import (
	"database/sql"
	"errors"

	"github.com/starford/notebase/internal/models"
)

const projectColumns = `id, name, created_at, updated_at`

func scanProject(s scanner) (models.Project, error) {
	var (
		p                    models.Project
		createdAt, updatedAt string
		err                  error
	)
	if err = s.Scan(&p.ID, &p.Name, &createdAt, &updatedAt); err != nil {
		return p, err
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return p, err
	}
	p.UpdatedAt, err = parseTime(updatedAt)
	return p, err
}

// CreateProject inserts a project and returns it with both timestamps set
// to the current time. Caller-supplied timestamps are ignored.
func (db *DB) CreateProject(p models.Project) (models.Project, error) {
	const op = "store: create project"
	if err := p.Validate(); err != nil {
		return models.Project{}, invalid(op, err)
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	now := db.stamp()
	p.CreatedAt, p.UpdatedAt = now, now
	err := db.exec(op,
		`INSERT INTO projects (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		p.ID, p.Name, formatTime(now), formatTime(now))
	if err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// GetProjects returns every project in insertion order.
func (db *DB) GetProjects() ([]models.Project, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return queryAll(db, "store: get projects",
		`SELECT `+projectColumns+` FROM projects ORDER BY rowid`, scanProject)
}

// UpdateProject renames a project and re-stamps updated_at. It returns the
// stored row. When no project has p.ID, nothing is written and p is
// returned with the new updated_at and no error.
func (db *DB) UpdateProject(p models.Project) (models.Project, error) {
	const op = "store: update project"
	if err := p.Validate(); err != nil {
		return models.Project{}, invalid(op, err)
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	now := db.stamp()
	row := db.conn.QueryRow(
		`UPDATE projects SET name = ?, updated_at = ? WHERE id = ? RETURNING `+projectColumns,
		p.Name, formatTime(now), p.ID)
	updated, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		p.UpdatedAt = now
		return p, nil
	}
	if err != nil {
		return models.Project{}, classify(op, err)
	}
	return updated, nil
}

// DeleteProject removes a project. Its notes are left in place.
func (db *DB) DeleteProject(id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.exec("store: delete project", `DELETE FROM projects WHERE id = ?`, id)
}
