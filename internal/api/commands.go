package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/starford/notebase/internal/apperr"
	"github.com/starford/notebase/internal/store"
)

// Command decodes its arguments, calls exactly one storage operation and
// returns the value to encode.
type Command func(args json.RawMessage) (any, error)

// Notifier is told about every successful write.
type Notifier interface {
	PublishChange(entity, action, id string)
}

type nopNotifier struct{}

func (nopNotifier) PublishChange(string, string, string) {}

// command adapts a typed function into a Command.
func command[A any](fn func(A) (any, error)) Command {
	return func(raw json.RawMessage) (any, error) {
		var args A
		if len(bytes.TrimSpace(raw)) > 0 {
			if err := json.Unmarshal(raw, &args); err != nil {
				return nil, apperr.New(apperr.KindInvalid, "decode arguments", err)
			}
		}
		return fn(args)
	}
}

// Commands is the dispatch table keyed by command name.
type Commands map[string]Command

// Names returns the command names in sorted order.
func (c Commands) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs the named command.
func (c Commands) Invoke(name string, args json.RawMessage) (any, error) {
	cmd, ok := c[name]
	if !ok {
		return nil, errUnknownCommand(name)
	}
	return cmd(args)
}

type errUnknownCommand string

func (e errUnknownCommand) Error() string {
	return fmt.Sprintf("unknown command %q", string(e))
}

// NewCommands builds the dispatch table over repo. n may be nil.
func NewCommands(repo store.Repository, n Notifier) Commands {
	if n == nil {
		n = nopNotifier{}
	}

	// done publishes a change and returns v once a write succeeded.
	done := func(entity, action, id string, v any, err error) (any, error) {
		if err != nil {
			return nil, err
		}
		n.PublishChange(entity, action, id)
		return v, nil
	}

	return Commands{
		// Workspaces.
		"create_workspace": command(func(a workspaceArgs) (any, error) {
			return done("workspace", "created", a.Workspace.ID, nil, repo.CreateWorkspace(a.Workspace))
		}),
		"get_workspaces": command(func(struct{}) (any, error) {
			return repo.GetWorkspaces()
		}),
		"delete_workspace": command(func(a idArgs) (any, error) {
			return done("workspace", "deleted", a.ID, nil, repo.DeleteWorkspace(a.ID))
		}),
		"save_workspace_settings": command(func(a settingsArgs) (any, error) {
			return done("workspace_settings", "saved", a.Settings.WorkspaceID, nil, repo.SaveWorkspaceSettings(a.Settings))
		}),
		"get_workspace_settings": command(func(a workspaceIDArgs) (any, error) {
			return repo.GetWorkspaceSettings(a.WorkspaceID)
		}),

		// Themes.
		"create_custom_theme": command(func(a themeArgs) (any, error) {
			return done("custom_theme", "created", a.Theme.ID, nil, repo.CreateCustomTheme(a.Theme))
		}),
		"get_custom_themes": command(func(struct{}) (any, error) {
			return repo.GetCustomThemes()
		}),
		"delete_custom_theme": command(func(a idArgs) (any, error) {
			return done("custom_theme", "deleted", a.ID, nil, repo.DeleteCustomTheme(a.ID))
		}),

		// Tabs.
		"create_tab": command(func(a tabArgs) (any, error) {
			return done("tab", "created", a.Tab.ID, nil, repo.CreateTab(a.Tab))
		}),
		"get_workspace_tabs": command(func(a workspaceIDArgs) (any, error) {
			return repo.GetWorkspaceTabs(a.WorkspaceID)
		}),
		"update_tab_active_state": command(func(a tabActiveArgs) (any, error) {
			return done("tab", "updated", a.TabID, nil, repo.UpdateTabActiveState(a.TabID, a.IsActive))
		}),
		"delete_tab": command(func(a tabIDArgs) (any, error) {
			return done("tab", "deleted", a.TabID, nil, repo.DeleteTab(a.TabID))
		}),

		// Backups.
		"create_backup": command(func(a backupArgs) (any, error) {
			return done("backup", "created", a.WorkspaceID, nil, repo.CreateBackup(a.WorkspaceID, a.Data))
		}),

		// Projects.
		"create_project": command(func(a projectArgs) (any, error) {
			p, err := repo.CreateProject(a.Project)
			return done("project", "created", p.ID, p, err)
		}),
		"get_projects": command(func(struct{}) (any, error) {
			return repo.GetProjects()
		}),
		"update_project": command(func(a projectArgs) (any, error) {
			p, err := repo.UpdateProject(a.Project)
			return done("project", "updated", p.ID, p, err)
		}),
		"delete_project": command(func(a idArgs) (any, error) {
			return done("project", "deleted", a.ID, nil, repo.DeleteProject(a.ID))
		}),

		// Notes.
		"create_note": command(func(a noteArgs) (any, error) {
			note, err := repo.CreateNote(a.Note)
			return done("note", "created", note.ID, note, err)
		}),
		"get_notes": command(func(a projectIDArgs) (any, error) {
			return repo.GetNotes(a.ProjectID)
		}),
		"update_note": command(func(a noteArgs) (any, error) {
			note, err := repo.UpdateNote(a.Note)
			return done("note", "updated", note.ID, note, err)
		}),
		"delete_note": command(func(a idArgs) (any, error) {
			return done("note", "deleted", a.ID, nil, repo.DeleteNote(a.ID))
		}),

		// Tags.
		"create_tag": command(func(a tagArgs) (any, error) {
			tag, err := repo.CreateTag(a.Tag)
			return done("tag", "created", tag.ID, tag, err)
		}),
		"get_tags": command(func(struct{}) (any, error) {
			return repo.GetTags()
		}),
		"delete_tag": command(func(a idArgs) (any, error) {
			return done("tag", "deleted", a.ID, nil, repo.DeleteTag(a.ID))
		}),

		// Tasks.
		"create_task": command(func(a taskArgs) (any, error) {
			task, err := repo.CreateTask(a.Task)
			return done("task", "created", task.ID, task, err)
		}),
		"get_tasks": command(func(a noteIDArgs) (any, error) {
			return repo.GetTasks(a.NoteID)
		}),
		"update_task": command(func(a taskArgs) (any, error) {
			task, err := repo.UpdateTask(a.Task)
			return done("task", "updated", task.ID, task, err)
		}),
		"delete_task": command(func(a idArgs) (any, error) {
			return done("task", "deleted", a.ID, nil, repo.DeleteTask(a.ID))
		}),

		// Note tags.
		"add_tag_to_note": command(func(a noteTagArgs) (any, error) {
			return done("note_tag", "added", a.NoteID, nil, repo.AddTagToNote(a.NoteID, a.TagID))
		}),
		"remove_tag_from_note": command(func(a noteTagArgs) (any, error) {
			return done("note_tag", "removed", a.NoteID, nil, repo.RemoveTagFromNote(a.NoteID, a.TagID))
		}),
		"get_note_tags": command(func(a noteIDArgs) (any, error) {
			return repo.GetNoteTags(a.NoteID)
		}),
	}
}
