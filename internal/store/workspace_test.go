package store

import (
	"errors"
	"testing"

	"github.com/starford/notebase/internal/apperr"
	"github.com/starford/notebase/internal/models"
)

func strPtr(s string) *string { return &s }

func TestWorkspaceRoundTrip(t *testing.T) {
	db := testDB(t)
	want := models.Workspace{ID: "w1", Name: "Personal", Type: "default", ThemeID: "gruvbox"}
	if err := db.CreateWorkspace(want); err != nil {
		t.Fatalf("CreateWorkspace: %v", err)
	}
	got, err := db.GetWorkspaces()
	if err != nil {
		t.Fatalf("GetWorkspaces: %v", err)
	}
	if len(got) != 1 || got[0] != want {
		t.Errorf("workspaces = %+v, want [%+v]", got, want)
	}
}

func TestWorkspaceDuplicateID(t *testing.T) {
	db := testDB(t)
	w := models.Workspace{ID: "w1", Name: "A", Type: "default"}
	if err := db.CreateWorkspace(w); err != nil {
		t.Fatalf("CreateWorkspace: %v", err)
	}
	err := db.CreateWorkspace(w)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("duplicate err = %v, want conflict", err)
	}
}

func TestWorkspaceMissingName(t *testing.T) {
	db := testDB(t)
	err := db.CreateWorkspace(models.Workspace{ID: "w1", Type: "default"})
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("err = %v, want invalid", err)
	}
	got, _ := db.GetWorkspaces()
	if len(got) != 0 {
		t.Errorf("invalid workspace was stored: %+v", got)
	}
}

func TestGetWorkspacesEmpty(t *testing.T) {
	db := testDB(t)
	got, err := db.GetWorkspaces()
	if err != nil {
		t.Fatalf("GetWorkspaces: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestDeleteWorkspaceLeavesTabs(t *testing.T) {
	db := testDB(t)
	_ = db.CreateWorkspace(models.Workspace{ID: "w1", Name: "A", Type: "default"})
	_ = db.CreateTab(models.Tab{ID: "t1", WorkspaceID: "w1", Title: "Tab", Type: "markdown"})

	if err := db.DeleteWorkspace("w1"); err != nil {
		t.Fatalf("DeleteWorkspace: %v", err)
	}
	if err := db.DeleteWorkspace("w1"); err != nil {
		t.Fatalf("second DeleteWorkspace: %v", err)
	}
	tabs, _ := db.GetWorkspaceTabs("w1")
	if len(tabs) != 1 {
		t.Errorf("tabs after workspace delete = %d, want 1", len(tabs))
	}
}

func TestSaveWorkspaceSettingsReplaces(t *testing.T) {
	db := testDB(t)
	first := models.WorkspaceSettings{WorkspaceID: "w1", DarkMode: true, SplitView: true, PrivacyLevel: "high", AutoSave: true}
	if err := db.SaveWorkspaceSettings(first); err != nil {
		t.Fatalf("SaveWorkspaceSettings: %v", err)
	}
	second := models.WorkspaceSettings{WorkspaceID: "w1", PrivacyLevel: "low"}
	if err := db.SaveWorkspaceSettings(second); err != nil {
		t.Fatalf("SaveWorkspaceSettings again: %v", err)
	}

	got, err := db.GetWorkspaceSettings("w1")
	if err != nil {
		t.Fatalf("GetWorkspaceSettings: %v", err)
	}
	if *got != second {
		t.Errorf("settings = %+v, want %+v", *got, second)
	}

	var rows int
	_ = db.conn.QueryRow(`SELECT count(*) FROM workspace_settings`).Scan(&rows)
	if rows != 1 {
		t.Errorf("settings rows = %d, want 1", rows)
	}
}

func TestGetWorkspaceSettingsNotFound(t *testing.T) {
	db := testDB(t)
	_, err := db.GetWorkspaceSettings("missing")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestCustomThemeRoundTrip(t *testing.T) {
	db := testDB(t)
	want := models.CustomTheme{
		ID: "th1", Name: "Gruvbox", Type: "dark",
		PrimaryColor: "#fabd2f", SecondaryColor: "#83a598", BackgroundColor: "#282828",
		SurfaceColor: "#3c3836", TextColor: "#ebdbb2", AccentColor: "#fe8019",
	}
	if err := db.CreateCustomTheme(want); err != nil {
		t.Fatalf("CreateCustomTheme: %v", err)
	}
	got, err := db.GetCustomThemes()
	if err != nil {
		t.Fatalf("GetCustomThemes: %v", err)
	}
	if len(got) != 1 || got[0] != want {
		t.Errorf("themes = %+v", got)
	}

	if err := db.DeleteCustomTheme("th1"); err != nil {
		t.Fatalf("DeleteCustomTheme: %v", err)
	}
	got, _ = db.GetCustomThemes()
	if len(got) != 0 {
		t.Errorf("theme survived delete: %+v", got)
	}
}

func TestTabsOrderedByPosition(t *testing.T) {
	db := testDB(t)
	tabs := []models.Tab{
		{ID: "c", WorkspaceID: "w1", Title: "Third", Type: "markdown", Position: 2},
		{ID: "a", WorkspaceID: "w1", Title: "First", Type: "markdown", Position: 0, Content: strPtr("# hi"), IsActive: true},
		{ID: "b", WorkspaceID: "w1", Title: "Second", Type: "code", Position: 1},
	}
	for _, tab := range tabs {
		if err := db.CreateTab(tab); err != nil {
			t.Fatalf("CreateTab %s: %v", tab.ID, err)
		}
	}

	got, err := db.GetWorkspaceTabs("w1")
	if err != nil {
		t.Fatalf("GetWorkspaceTabs: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d tabs, want 3", len(got))
	}
	for i, id := range []string{"a", "b", "c"} {
		if got[i].ID != id {
			t.Errorf("tab[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
	if got[0].Content == nil || *got[0].Content != "# hi" {
		t.Errorf("content = %v, want # hi", got[0].Content)
	}
	if got[1].Content != nil {
		t.Errorf("content = %q, want nil", *got[1].Content)
	}
	if !got[0].IsActive || got[1].IsActive {
		t.Errorf("is_active not preserved: %+v", got)
	}
}

func TestTabsScopedByWorkspace(t *testing.T) {
	db := testDB(t)
	_ = db.CreateTab(models.Tab{ID: "t1", WorkspaceID: "A", Title: "A tab", Type: "markdown"})
	_ = db.CreateTab(models.Tab{ID: "t2", WorkspaceID: "B", Title: "B tab", Type: "markdown"})

	got, err := db.GetWorkspaceTabs("B")
	if err != nil {
		t.Fatalf("GetWorkspaceTabs: %v", err)
	}
	if len(got) != 1 || got[0].ID != "t2" {
		t.Errorf("workspace B tabs = %+v", got)
	}
}

func TestUpdateTabActiveStateAndDelete(t *testing.T) {
	db := testDB(t)
	_ = db.CreateTab(models.Tab{ID: "t1", WorkspaceID: "w1", Title: "Tab", Type: "markdown"})

	if err := db.UpdateTabActiveState("t1", true); err != nil {
		t.Fatalf("UpdateTabActiveState: %v", err)
	}
	got, _ := db.GetWorkspaceTabs("w1")
	if len(got) != 1 || !got[0].IsActive {
		t.Fatalf("tab not active: %+v", got)
	}

	if err := db.UpdateTabActiveState("missing", true); err != nil {
		t.Errorf("update of missing tab should succeed: %v", err)
	}
	if err := db.DeleteTab("t1"); err != nil {
		t.Fatalf("DeleteTab: %v", err)
	}
	if err := db.DeleteTab("t1"); err != nil {
		t.Errorf("second DeleteTab: %v", err)
	}
	got, _ = db.GetWorkspaceTabs("w1")
	if len(got) != 0 {
		t.Errorf("tab survived delete: %+v", got)
	}
}

func TestCreateBackup(t *testing.T) {
	db := testDB(t)
	if err := db.CreateBackup("w1", `{"tabs":[]}`); err != nil {
		t.Fatalf("CreateBackup: %v", err)
	}
	if err := db.CreateBackup("w1", `{"tabs":[]}`); err != nil {
		t.Fatalf("second CreateBackup: %v", err)
	}

	rows, err := db.conn.Query(`SELECT id, workspace_id, data, created_at FROM backups`)
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()
	ids := map[string]bool{}
	for rows.Next() {
		var id, ws, data, createdAt string
		if err := rows.Scan(&id, &ws, &data, &createdAt); err != nil {
			t.Fatal(err)
		}
		if id == "" || ws != "w1" || data != `{"tabs":[]}` {
			t.Errorf("unexpected backup row: %q %q %q", id, ws, data)
		}
		if _, err := parseTime(createdAt); err != nil {
			t.Errorf("created_at %q: %v", createdAt, err)
		}
		ids[id] = true
	}
	if len(ids) != 2 {
		t.Errorf("expected 2 distinct backup ids, got %d", len(ids))
	}
}

func TestCreateBackupRequiresWorkspace(t *testing.T) {
	db := testDB(t)
	if err := db.CreateBackup("", "data"); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("err = %v, want invalid", err)
	}
}
