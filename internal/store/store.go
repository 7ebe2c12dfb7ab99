package store

import "github.com/starford/notebase/internal/models"

// Repository is the full set of storage operations. Consumers should depend
// on this interface rather than the concrete *DB type.
type Repository interface {
	CreateWorkspace(w models.Workspace) error
	GetWorkspaces() ([]models.Workspace, error)
	DeleteWorkspace(id string) error

	SaveWorkspaceSettings(s models.WorkspaceSettings) error
	GetWorkspaceSettings(workspaceID string) (*models.WorkspaceSettings, error)

	CreateCustomTheme(t models.CustomTheme) error
	GetCustomThemes() ([]models.CustomTheme, error)
	DeleteCustomTheme(id string) error

	CreateTab(t models.Tab) error
	GetWorkspaceTabs(workspaceID string) ([]models.Tab, error)
	UpdateTabActiveState(tabID string, isActive bool) error
	DeleteTab(tabID string) error

	CreateBackup(workspaceID, data string) error

	CreateProject(p models.Project) (models.Project, error)
	GetProjects() ([]models.Project, error)
	UpdateProject(p models.Project) (models.Project, error)
	DeleteProject(id string) error

	CreateNote(n models.Note) (models.Note, error)
	GetNotes(projectID string) ([]models.Note, error)
	UpdateNote(n models.Note) (models.Note, error)
	DeleteNote(id string) error

	CreateTag(t models.Tag) (models.Tag, error)
	GetTags() ([]models.Tag, error)
	DeleteTag(id string) error

	CreateTask(t models.Task) (models.Task, error)
	GetTasks(noteID string) ([]models.Task, error)
	UpdateTask(t models.Task) (models.Task, error)
	DeleteTask(id string) error

	AddTagToNote(noteID, tagID string) error
	RemoveTagFromNote(noteID, tagID string) error
	GetNoteTags(noteID string) ([]models.Tag, error)

	Ping() error
	Close() error
}

// Verify *DB satisfies Repository at compile time.
var _ Repository = (*DB)(nil)

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// queryAll runs query and materializes every row before returning. The
// result is never nil. Callers must hold db.mu.
func queryAll[T any](db *DB, op, query string, scan func(scanner) (T, error), args ...any) ([]T, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, classify(op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return out, nil
}

// exec runs a single write statement. Zero affected rows is not an error.
// Callers must hold db.mu.
func (db *DB) exec(op, query string, args ...any) error {
	if _, err := db.conn.Exec(query, args...); err != nil {
		return classify(op, err)
	}
	return nil
}
