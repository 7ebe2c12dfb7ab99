package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/starford/notebase/internal/models"
	"github.com/starford/notebase/internal/testutil"
)

type recordedChange struct {
	entity, action, id string
}

type recorder struct {
	mu      sync.Mutex
	changes []recordedChange
}

func (r *recorder) PublishChange(entity, action, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, recordedChange{entity, action, id})
}

func (r *recorder) all() []recordedChange {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedChange(nil), r.changes...)
}

// testEnv sets up a temp data dir, storage engine and router.
// An empty authToken means auth is disabled.
func testEnv(t *testing.T, authToken string) (http.Handler, *recorder) {
	t.Helper()
	db := testutil.TestDB(t)
	rec := &recorder{}
	router := NewRouter(db, rec, authToken != "", authToken, nil)
	return router, rec
}

func invoke(t *testing.T, router http.Handler, name string, args any) *httptest.ResponseRecorder {
	t.Helper()
	var body []byte
	if args != nil {
		var err error
		if body, err = json.Marshal(args); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(http.MethodPost, "/commands/"+name, bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResult[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var resp struct {
		Result T `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return resp.Result
}

func TestCreateAndListNotes(t *testing.T) {
	router, rec := testEnv(t, "")

	w := invoke(t, router, "create_project", map[string]any{"project": map[string]any{"id": "p1", "name": "Inbox"}})
	if w.Code != http.StatusOK {
		t.Fatalf("create_project status = %d, body = %s", w.Code, w.Body.String())
	}

	w = invoke(t, router, "create_note", map[string]any{
		"note": map[string]any{"id": "n1", "title": "Groceries", "content": "", "project_id": "p1", "is_pinned": false},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create_note status = %d, body = %s", w.Code, w.Body.String())
	}
	created := decodeResult[models.Note](t, w)
	if created.ID != "n1" || created.CreatedAt.IsZero() || !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Errorf("created note = %+v", created)
	}

	w = invoke(t, router, "get_notes", map[string]any{"projectId": "p1"})
	if w.Code != http.StatusOK {
		t.Fatalf("get_notes status = %d", w.Code)
	}
	notes := decodeResult[[]models.Note](t, w)
	if len(notes) != 1 || notes[0].Title != "Groceries" {
		t.Errorf("notes = %+v", notes)
	}

	changes := rec.all()
	if len(changes) != 2 || changes[1] != (recordedChange{"note", "created", "n1"}) {
		t.Errorf("changes = %+v", changes)
	}
}

func TestUpdateNoteCommand(t *testing.T) {
	router, _ := testEnv(t, "")
	w := invoke(t, router, "create_note", map[string]any{"note": map[string]any{"id": "n1", "title": "Old", "project_id": "p1"}})
	created := decodeResult[models.Note](t, w)

	created.Title = "New"
	created.IsPinned = true
	w = invoke(t, router, "update_note", map[string]any{"note": created})
	if w.Code != http.StatusOK {
		t.Fatalf("update_note status = %d, body = %s", w.Code, w.Body.String())
	}
	updated := decodeResult[models.Note](t, w)
	if updated.Title != "New" || !updated.IsPinned || !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("updated = %+v", updated)
	}
}

func TestTimestampsComeFromEngineClock(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	router := NewRouter(testutil.TestDB(t, testutil.FixedClock(at)), nil, false, "", nil)

	w := invoke(t, router, "create_note", map[string]any{"note": map[string]any{
		"id": "n1", "title": "Groceries", "project_id": "p1",
		"created_at": "1999-01-01T00:00:00Z", "updated_at": "1999-01-01T00:00:00Z",
	}})
	created := decodeResult[models.Note](t, w)
	if !created.CreatedAt.Equal(at) || !created.UpdatedAt.Equal(at) {
		t.Errorf("created timestamps = %v / %v, want %v", created.CreatedAt, created.UpdatedAt, at)
	}

	created.IsPinned = true
	updated := decodeResult[models.Note](t, invoke(t, router, "update_note", map[string]any{"note": created}))
	if !updated.CreatedAt.Equal(at) {
		t.Errorf("created_at changed to %v", updated.CreatedAt)
	}
	if want := at.Add(time.Nanosecond); !updated.UpdatedAt.Equal(want) {
		t.Errorf("updated_at = %v, want %v", updated.UpdatedAt, want)
	}
}

func TestEmptyResultIsArray(t *testing.T) {
	router, _ := testEnv(t, "")
	w := invoke(t, router, "get_tags", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"result":[]}` {
		t.Errorf("body = %s", got)
	}
}

func TestVoidCommandReturnsNull(t *testing.T) {
	router, rec := testEnv(t, "")
	w := invoke(t, router, "create_workspace", map[string]any{
		"workspace": map[string]any{"id": "w1", "name": "Personal", "type": "default", "theme_id": "gruvbox"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"result":null}` {
		t.Errorf("body = %s", got)
	}
	if changes := rec.all(); len(changes) != 1 || changes[0].entity != "workspace" {
		t.Errorf("changes = %+v", changes)
	}
}

func TestDuplicateCreateIsConflict(t *testing.T) {
	router, rec := testEnv(t, "")
	args := map[string]any{"tag": map[string]any{"id": "t1", "name": "errand"}}
	if w := invoke(t, router, "create_tag", args); w.Code != http.StatusOK {
		t.Fatalf("first create = %d", w.Code)
	}
	w := invoke(t, router, "create_tag", args)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate create = %d, want 409", w.Code)
	}
	var body errResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if !strings.Contains(body.Error, "conflict") {
		t.Errorf("error text = %q", body.Error)
	}
	if len(rec.all()) != 1 {
		t.Errorf("failed write should not publish a change")
	}
}

func TestInvalidArguments(t *testing.T) {
	router, _ := testEnv(t, "")

	w := invoke(t, router, "create_project", map[string]any{"project": map[string]any{"id": "p1"}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing name = %d, want 400", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/commands/create_project", strings.NewReader("{not json"))
	rw := httptest.NewRecorder()
	router.ServeHTTP(rw, req)
	if rw.Code != http.StatusBadRequest {
		t.Errorf("malformed body = %d, want 400", rw.Code)
	}
}

func TestUnknownCommand(t *testing.T) {
	router, _ := testEnv(t, "")
	w := invoke(t, router, "drop_database", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestWorkspaceSettingsNotFound(t *testing.T) {
	router, _ := testEnv(t, "")
	w := invoke(t, router, "get_workspace_settings", map[string]any{"workspaceId": "w1"})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}

	w = invoke(t, router, "save_workspace_settings", map[string]any{
		"settings": map[string]any{"workspace_id": "w1", "dark_mode": true, "privacy_level": "high"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("save status = %d, body = %s", w.Code, w.Body.String())
	}
	w = invoke(t, router, "get_workspace_settings", map[string]any{"workspaceId": "w1"})
	settings := decodeResult[models.WorkspaceSettings](t, w)
	if !settings.DarkMode || settings.PrivacyLevel != "high" {
		t.Errorf("settings = %+v", settings)
	}
}

func TestTabCommands(t *testing.T) {
	router, _ := testEnv(t, "")
	for i, id := range []string{"b", "a"} {
		w := invoke(t, router, "create_tab", map[string]any{"tab": map[string]any{
			"id": id, "workspace_id": "w1", "title": id, "type": "markdown", "position": 1 - i, "is_active": false,
		}})
		if w.Code != http.StatusOK {
			t.Fatalf("create_tab status = %d, body = %s", w.Code, w.Body.String())
		}
	}
	if w := invoke(t, router, "update_tab_active_state", map[string]any{"tabId": "a", "isActive": true}); w.Code != http.StatusOK {
		t.Fatalf("update_tab_active_state = %d", w.Code)
	}
	if w := invoke(t, router, "delete_tab", map[string]any{"tabId": "b"}); w.Code != http.StatusOK {
		t.Fatalf("delete_tab = %d", w.Code)
	}

	w := invoke(t, router, "get_workspace_tabs", map[string]any{"workspaceId": "w1"})
	tabs := decodeResult[[]models.Tab](t, w)
	if len(tabs) != 1 || tabs[0].ID != "a" || !tabs[0].IsActive {
		t.Errorf("tabs = %+v", tabs)
	}
}

func TestNoteTagCommands(t *testing.T) {
	router, _ := testEnv(t, "")
	invoke(t, router, "create_tag", map[string]any{"tag": map[string]any{"id": "t1", "name": "errand"}})
	if w := invoke(t, router, "add_tag_to_note", map[string]any{"noteId": "n1", "tagId": "t1"}); w.Code != http.StatusOK {
		t.Fatalf("add_tag_to_note = %d", w.Code)
	}
	tags := decodeResult[[]models.Tag](t, invoke(t, router, "get_note_tags", map[string]any{"noteId": "n1"}))
	if len(tags) != 1 || tags[0].Name != "errand" {
		t.Errorf("tags = %+v", tags)
	}

	invoke(t, router, "remove_tag_from_note", map[string]any{"noteId": "n1", "tagId": "t1"})
	tags = decodeResult[[]models.Tag](t, invoke(t, router, "get_note_tags", map[string]any{"noteId": "n1"}))
	if len(tags) != 0 {
		t.Errorf("tags after remove = %+v", tags)
	}
}

func TestCreateBackupCommand(t *testing.T) {
	router, _ := testEnv(t, "")
	w := invoke(t, router, "create_backup", map[string]any{"workspaceId": "w1", "data": `{"tabs":[]}`})
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestListCommands(t *testing.T) {
	router, _ := testEnv(t, "")
	req := httptest.NewRequest(http.MethodGet, "/commands", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp struct {
		Commands []string `json:"commands"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Commands) != 31 {
		t.Errorf("got %d commands, want 31: %v", len(resp.Commands), resp.Commands)
	}
	if resp.Commands[0] != "add_tag_to_note" {
		t.Errorf("commands not sorted: %v", resp.Commands)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	router, _ := testEnv(t, "secret123")
	req := httptest.NewRequest(http.MethodPost, "/commands/get_projects", nil)
	req.Header.Set("Authorization", "Bearer secret123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestAuthMiddleware_QueryToken(t *testing.T) {
	router, _ := testEnv(t, "secret123")
	req := httptest.NewRequest(http.MethodPost, "/commands/get_projects?token=secret123", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	router, _ := testEnv(t, "secret123")
	req := httptest.NewRequest(http.MethodPost, "/commands/get_projects", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddleware_WrongToken(t *testing.T) {
	router, _ := testEnv(t, "secret123")
	req := httptest.NewRequest(http.MethodPost, "/commands/get_projects", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestSSEEvents_AuthProtected(t *testing.T) {
	db := testutil.TestDB(t)
	sse := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	router := NewRouter(db, nil, true, "tok", sse)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/events?token=tok", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
