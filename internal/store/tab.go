package store

import (
	"database/sql"

	"github.com/starford/notebase/internal/models"
)

// CreateTab inserts a tab.
func (db *DB) CreateTab(t models.Tab) error {
	const op = "store: create tab"
	if err := t.Validate(); err != nil {
		return invalid(op, err)
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.exec(op, `
		INSERT INTO tabs (id, workspace_id, title, content, type, position, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.WorkspaceID, t.Title, t.Content, t.Type, t.Position, t.IsActive)
}

// GetWorkspaceTabs returns the tabs of one workspace ordered by position.
// Tabs sharing a position keep insertion order.
func (db *DB) GetWorkspaceTabs(workspaceID string) ([]models.Tab, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return queryAll(db, "store: get workspace tabs", `
		SELECT id, workspace_id, title, content, type, position, is_active
		FROM tabs WHERE workspace_id = ?
		ORDER BY position, rowid
	`, func(s scanner) (models.Tab, error) {
		var (
			t       models.Tab
			content sql.NullString
		)
		if err := s.Scan(&t.ID, &t.WorkspaceID, &t.Title, &content, &t.Type, &t.Position, &t.IsActive); err != nil {
			return t, err
		}
		if content.Valid {
			t.Content = &content.String
		}
		return t, nil
	}, workspaceID)
}

// UpdateTabActiveState sets is_active on one tab. A missing tab is not an error.
func (db *DB) UpdateTabActiveState(tabID string, isActive bool) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.exec("store: update tab active state",
		`UPDATE tabs SET is_active = ? WHERE id = ?`, isActive, tabID)
}

// DeleteTab removes a tab.
func (db *DB) DeleteTab(tabID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.exec("store: delete tab", `DELETE FROM tabs WHERE id = ?`, tabID)
}
