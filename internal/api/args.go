package api

import "github.com/starford/notebase/internal/models"

// Argument shapes for each command. Keys follow the desktop client:
// entity payloads under their entity name, scalar ids in camelCase.

type idArgs struct {
	ID string `json:"id"`
}

type workspaceArgs struct {
	Workspace models.Workspace `json:"workspace"`
}

type workspaceIDArgs struct {
	WorkspaceID string `json:"workspaceId"`
}

type settingsArgs struct {
	Settings models.WorkspaceSettings `json:"settings"`
}

type themeArgs struct {
	Theme models.CustomTheme `json:"theme"`
}

type tabArgs struct {
	Tab models.Tab `json:"tab"`
}

type tabIDArgs struct {
	TabID string `json:"tabId"`
}

type tabActiveArgs struct {
	TabID    string `json:"tabId"`
	IsActive bool   `json:"isActive"`
}

type backupArgs struct {
	WorkspaceID string `json:"workspaceId"`
	Data        string `json:"data"`
}

type projectArgs struct {
	Project models.Project `json:"project"`
}

type projectIDArgs struct {
	ProjectID string `json:"projectId"`
}

type noteArgs struct {
	Note models.Note `json:"note"`
}

type noteIDArgs struct {
	NoteID string `json:"noteId"`
}

type tagArgs struct {
	Tag models.Tag `json:"tag"`
}

type taskArgs struct {
	Task models.Task `json:"task"`
}

type noteTagArgs struct {
	NoteID string `json:"noteId"`
	TagID  string `json:"tagId"`
}
