// Package models defines the domain types for Notebase.
package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Workspace is the top-level user environment. ThemeID is not checked
// against custom_themes.
type Workspace struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	ThemeID string `json:"theme_id"`
}

// Validate validates the workspace.
func (w Workspace) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.ID, validation.Required),
		validation.Field(&w.Name, validation.Required),
		validation.Field(&w.Type, validation.Required),
	)
}

// WorkspaceSettings holds per-workspace preferences. There is at most one
// row per workspace; saving again replaces it.
type WorkspaceSettings struct {
	WorkspaceID  string `json:"workspace_id"`
	DarkMode     bool   `json:"dark_mode"`
	SplitView    bool   `json:"split_view"`
	PrivacyLevel string `json:"privacy_level"`
	AutoSave     bool   `json:"auto_save"`
}

// Validate validates the settings.
func (s WorkspaceSettings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.WorkspaceID, validation.Required),
		validation.Field(&s.PrivacyLevel, validation.Required),
	)
}

// CustomTheme is a user-defined color scheme.
type CustomTheme struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	PrimaryColor    string `json:"primary_color"`
	SecondaryColor  string `json:"secondary_color"`
	BackgroundColor string `json:"background_color"`
	SurfaceColor    string `json:"surface_color"`
	TextColor       string `json:"text_color"`
	AccentColor     string `json:"accent_color"`
}

// Validate validates the theme.
func (c CustomTheme) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required),
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Type, validation.Required),
	)
}

// Tab is a positioned content pane within a workspace. Position defines
// display order.
type Tab struct {
	ID          string  `json:"id"`
	WorkspaceID string  `json:"workspace_id"`
	Title       string  `json:"title"`
	Content     *string `json:"content"`
	Type        string  `json:"type"`
	Position    int     `json:"position"`
	IsActive    bool    `json:"is_active"`
}

// Validate validates the tab.
func (t Tab) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.ID, validation.Required),
		validation.Field(&t.WorkspaceID, validation.Required),
		validation.Field(&t.Title, validation.Required),
		validation.Field(&t.Type, validation.Required),
		validation.Field(&t.Position, validation.Min(0)),
	)
}

// Backup is an opaque snapshot appended for a workspace. It is never read
// back by the storage engine.
type Backup struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	Data        string    `json:"data"`
	CreatedAt   time.Time `json:"created_at"`
}
