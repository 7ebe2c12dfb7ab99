// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Notebase records as tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/notebase/internal/models"
	"github.com/starford/notebase/internal/store"
)

const dataModelURI = "notebase://data-model"

// Server wraps the MCP server with Notebase tools.
type Server struct {
	mcp  *server.MCPServer
	repo store.Repository
}

// New creates a new MCP server with all Notebase tools registered.
func New(repo store.Repository, version string) *Server {
	s := &Server{repo: repo}

	s.mcp = server.NewMCPServer(
		"Notebase",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	// Projects.
	s.mcp.AddTool(mcp.NewTool("list_projects",
		mcp.WithDescription("List all projects in creation order."),
	), s.listProjects)

	s.mcp.AddTool(mcp.NewTool("create_project",
		mcp.WithDescription("Create a project. Notes belong to exactly one project."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Unique project id")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Display name")),
	), s.createProject)

	// Notes.
	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List the notes of a project in creation order."),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Project to list")),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a note inside a project. Read the data model first via "+
			"the get_data_model tool or the "+dataModelURI+" resource."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Unique note id")),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Owning project id")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Note title")),
		mcp.WithString("content", mcp.Description("Note body (may be empty)")),
		mcp.WithBoolean("is_pinned", mcp.Description("Pin the note")),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("update_note",
		mcp.WithDescription("Update the title, content or pinned flag of an existing note. "+
			"Omitted fields keep their current value."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Project the note belongs to")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("content", mcp.Description("New body")),
		mcp.WithBoolean("is_pinned", mcp.Description("New pinned flag")),
	), s.updateNote)

	// Tags.
	s.mcp.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("List all tags."),
	), s.listTags)

	s.mcp.AddTool(mcp.NewTool("create_tag",
		mcp.WithDescription("Create a tag."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Unique tag id")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Tag name")),
	), s.createTag)

	s.mcp.AddTool(mcp.NewTool("tag_note",
		mcp.WithDescription("Attach a tag to a note."),
		mcp.WithString("note_id", mcp.Required(), mcp.Description("Note id")),
		mcp.WithString("tag_id", mcp.Required(), mcp.Description("Tag id")),
	), s.tagNote)

	s.mcp.AddTool(mcp.NewTool("list_note_tags",
		mcp.WithDescription("List the tags attached to a note."),
		mcp.WithString("note_id", mcp.Required(), mcp.Description("Note id")),
	), s.listNoteTags)

	// Tasks.
	s.mcp.AddTool(mcp.NewTool("list_tasks",
		mcp.WithDescription("List the tasks of a note in creation order."),
		mcp.WithString("note_id", mcp.Required(), mcp.Description("Note id")),
	), s.listTasks)

	s.mcp.AddTool(mcp.NewTool("create_task",
		mcp.WithDescription("Add a task to a note."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Unique task id")),
		mcp.WithString("note_id", mcp.Required(), mcp.Description("Owning note id")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Task text")),
	), s.createTask)

	s.mcp.AddTool(mcp.NewTool("complete_task",
		mcp.WithDescription("Mark a task as completed, or reopen it with completed=false."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Task id")),
		mcp.WithString("note_id", mcp.Required(), mcp.Description("Note the task belongs to")),
		mcp.WithBoolean("completed", mcp.Description("Completion state (default true)")),
	), s.completeTask)

	s.mcp.AddTool(mcp.NewTool("get_data_model",
		mcp.WithDescription("Returns the Notebase data model. "+
			"Call this before creating or updating records."),
	), s.getDataModel)

	s.mcp.AddResource(
		mcp.NewResource(dataModelURI, "Data Model",
			mcp.WithResourceDescription("Records, required fields and deletion rules."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readDataModelResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// jsonResult renders v as indented JSON, or err as a tool error.
func jsonResult(v any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listProjects(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.repo.GetProjects())
}

func (s *Server) createProject(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.repo.CreateProject(models.Project{ID: id, Name: name}))
}

func (s *Server) listNotes(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.repo.GetNotes(projectID))
}

func (s *Server) createNote(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.repo.CreateNote(models.Note{
		ID:        id,
		ProjectID: projectID,
		Title:     title,
		Content:   req.GetString("content", ""),
		IsPinned:  req.GetBool("is_pinned", false),
	}))
}

func (s *Server) updateNote(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	notes, err := s.repo.GetNotes(projectID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var note *models.Note
	for i := range notes {
		if notes[i].ID == id {
			note = &notes[i]
			break
		}
	}
	if note == nil {
		return mcp.NewToolResultError(fmt.Sprintf("note not found: %s", id)), nil
	}

	note.Title = req.GetString("title", note.Title)
	note.Content = req.GetString("content", note.Content)
	note.IsPinned = req.GetBool("is_pinned", note.IsPinned)
	return jsonResult(s.repo.UpdateNote(*note))
}

func (s *Server) listTags(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.repo.GetTags())
}

func (s *Server) createTag(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.repo.CreateTag(models.Tag{ID: id, Name: name}))
}

func (s *Server) tagNote(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	noteID, err := req.RequireString("note_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tagID, err := req.RequireString("tag_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.repo.AddTagToNote(noteID, tagID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("tagged: %s with %s", noteID, tagID)), nil
}

func (s *Server) listNoteTags(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	noteID, err := req.RequireString("note_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.repo.GetNoteTags(noteID))
}

func (s *Server) listTasks(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	noteID, err := req.RequireString("note_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.repo.GetTasks(noteID))
}

func (s *Server) createTask(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	noteID, err := req.RequireString("note_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.repo.CreateTask(models.Task{ID: id, NoteID: noteID, Content: content}))
}

func (s *Server) completeTask(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	noteID, err := req.RequireString("note_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tasks, err := s.repo.GetTasks(noteID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	for _, t := range tasks {
		if t.ID == id {
			t.Completed = req.GetBool("completed", true)
			return jsonResult(s.repo.UpdateTask(t))
		}
	}
	return mcp.NewToolResultError(fmt.Sprintf("task not found: %s", id)), nil
}

func (s *Server) getDataModel(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(DataModel), nil
}

func (s *Server) readDataModelResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      dataModelURI,
			MIMEType: "text/markdown",
			Text:     DataModel,
		},
	}, nil
}
