package store

import (
	"database/sql"
	"errors"

	"github.com/starford/notebase/internal/apperr"
	"github.com/starford/notebase/internal/models"
)

// CreateWorkspace inserts a workspace. A duplicate id fails with a conflict.
func (db *DB) CreateWorkspace(w models.Workspace) error {
	const op = "store: create workspace"
	if err := w.Validate(); err != nil {
		return invalid(op, err)
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.exec(op,
		`INSERT INTO workspaces (id, name, type, theme_id) VALUES (?, ?, ?, ?)`,
		w.ID, w.Name, w.Type, w.ThemeID)
}

// GetWorkspaces returns every workspace in insertion order.
func (db *DB) GetWorkspaces() ([]models.Workspace, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return queryAll(db, "store: get workspaces",
		`SELECT id, name, type, theme_id FROM workspaces ORDER BY rowid`,
		func(s scanner) (models.Workspace, error) {
			var w models.Workspace
			err := s.Scan(&w.ID, &w.Name, &w.Type, &w.ThemeID)
			return w, err
		})
}

// DeleteWorkspace removes a workspace. Its tabs, settings and backups stay.
func (db *DB) DeleteWorkspace(id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.exec("store: delete workspace", `DELETE FROM workspaces WHERE id = ?`, id)
}

// SaveWorkspaceSettings writes the settings for a workspace, replacing every
// column of an existing row.
func (db *DB) SaveWorkspaceSettings(s models.WorkspaceSettings) error {
	const op = "store: save workspace settings"
	if err := s.Validate(); err != nil {
		return invalid(op, err)
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.exec(op, `
		INSERT INTO workspace_settings (workspace_id, dark_mode, split_view, privacy_level, auto_save)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(workspace_id) DO UPDATE SET
			dark_mode     = excluded.dark_mode,
			split_view    = excluded.split_view,
			privacy_level = excluded.privacy_level,
			auto_save     = excluded.auto_save
	`, s.WorkspaceID, s.DarkMode, s.SplitView, s.PrivacyLevel, s.AutoSave)
}

// GetWorkspaceSettings returns the settings row for a workspace, or an
// apperr.KindNotFound error when none was saved.
func (db *DB) GetWorkspaceSettings(workspaceID string) (*models.WorkspaceSettings, error) {
	const op = "store: get workspace settings"
	db.mu.Lock()
	defer db.mu.Unlock()

	var s models.WorkspaceSettings
	err := db.conn.QueryRow(`
		SELECT workspace_id, dark_mode, split_view, privacy_level, auto_save
		FROM workspace_settings WHERE workspace_id = ?
	`, workspaceID).Scan(&s.WorkspaceID, &s.DarkMode, &s.SplitView, &s.PrivacyLevel, &s.AutoSave)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.KindNotFound, op, err)
	}
	if err != nil {
		return nil, classify(op, err)
	}
	return &s, nil
}

// CreateCustomTheme inserts a theme.
func (db *DB) CreateCustomTheme(t models.CustomTheme) error {
	const op = "store: create custom theme"
	if err := t.Validate(); err != nil {
		return invalid(op, err)
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.exec(op, `
		INSERT INTO custom_themes
			(id, name, type, primary_color, secondary_color, background_color,
			 surface_color, text_color, accent_color)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Name, t.Type, t.PrimaryColor, t.SecondaryColor, t.BackgroundColor,
		t.SurfaceColor, t.TextColor, t.AccentColor)
}

// GetCustomThemes returns every theme in insertion order.
func (db *DB) GetCustomThemes() ([]models.CustomTheme, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return queryAll(db, "store: get custom themes", `
		SELECT id, name, type, primary_color, secondary_color, background_color,
		       surface_color, text_color, accent_color
		FROM custom_themes ORDER BY rowid
	`, func(s scanner) (models.CustomTheme, error) {
		var t models.CustomTheme
		err := s.Scan(&t.ID, &t.Name, &t.Type, &t.PrimaryColor, &t.SecondaryColor,
			&t.BackgroundColor, &t.SurfaceColor, &t.TextColor, &t.AccentColor)
		return t, err
	})
}

// DeleteCustomTheme removes a theme. Workspaces referencing it keep the id.
func (db *DB) DeleteCustomTheme(id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.exec("store: delete custom theme", `DELETE FROM custom_themes WHERE id = ?`, id)
}
