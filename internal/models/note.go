package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Project is a named container for notes.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate validates the project.
func (p Project) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Name, validation.Required),
	)
}

// Note is a titled text document belonging to exactly one project.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ProjectID string    `json:"project_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsPinned  bool      `json:"is_pinned"`
}

// Validate validates the note. Content may be empty.
func (n Note) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.ID, validation.Required),
		validation.Field(&n.Title, validation.Required),
		validation.Field(&n.ProjectID, validation.Required),
	)
}

// Tag is a label shared across all notes.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate validates the tag.
func (t Tag) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.ID, validation.Required),
		validation.Field(&t.Name, validation.Required),
	)
}

// Task is a checklist item belonging to one note.
type Task struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Completed bool      `json:"completed"`
	NoteID    string    `json:"note_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate validates the task.
func (t Task) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.ID, validation.Required),
		validation.Field(&t.Content, validation.Required),
		validation.Field(&t.NoteID, validation.Required),
	)
}

// NoteTag associates a note with a tag. The pair is not unique: attaching
// the same tag twice stores two rows.
type NoteTag struct {
	NoteID string `json:"note_id"`
	TagID  string `json:"tag_id"`
}

// Validate validates the association.
func (nt NoteTag) Validate() error {
	return validation.ValidateStruct(&nt,
		validation.Field(&nt.NoteID, validation.Required),
		validation.Field(&nt.TagID, validation.Required),
	)
}
