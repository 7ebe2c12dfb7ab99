package store

import "github.com/starford/notebase/internal/models"

func scanTag(s scanner) (models.Tag, error) {
	var (
		t         models.Tag
		createdAt string
		err       error
	)
	if err = s.Scan(&t.ID, &t.Name, &createdAt); err != nil {
		return t, err
	}
	t.CreatedAt, err = parseTime(createdAt)
	return t, err
}

// CreateTag inserts a tag and returns it with created_at set.
func (db *DB) CreateTag(t models.Tag) (models.Tag, error) {
	const op = "store: create tag"
	if err := t.Validate(); err != nil {
		return models.Tag{}, invalid(op, err)
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	t.CreatedAt = db.stamp()
	err := db.exec(op,
		`INSERT INTO tags (id, name, created_at) VALUES (?, ?, ?)`,
		t.ID, t.Name, formatTime(t.CreatedAt))
	if err != nil {
		return models.Tag{}, err
	}
	return t, nil
}

// GetTags returns every tag in insertion order.
func (db *DB) GetTags() ([]models.Tag, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return queryAll(db, "store: get tags",
		`SELECT id, name, created_at FROM tags ORDER BY rowid`, scanTag)
}

// DeleteTag removes a tag. Associations pointing at it are left in place
// but no longer surface through GetNoteTags.
func (db *DB) DeleteTag(id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.exec("store: delete tag", `DELETE FROM tags WHERE id = ?`, id)
}

// AddTagToNote records an association. It does not check for an existing
// pair; adding twice stores two rows and the tag is listed twice.
func (db *DB) AddTagToNote(noteID, tagID string) error {
	const op = "store: add tag to note"
	if err := (models.NoteTag{NoteID: noteID, TagID: tagID}).Validate(); err != nil {
		return invalid(op, err)
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.exec(op, `INSERT INTO note_tags (note_id, tag_id) VALUES (?, ?)`, noteID, tagID)
}

// RemoveTagFromNote deletes every association row for the exact pair.
func (db *DB) RemoveTagFromNote(noteID, tagID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.exec("store: remove tag from note",
		`DELETE FROM note_tags WHERE note_id = ? AND tag_id = ?`, noteID, tagID)
}

// GetNoteTags returns the tags attached to a note, once per association row.
func (db *DB) GetNoteTags(noteID string) ([]models.Tag, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return queryAll(db, "store: get note tags", `
		SELECT t.id, t.name, t.created_at
		FROM tags t
		INNER JOIN note_tags nt ON t.id = nt.tag_id
		WHERE nt.note_id = ?
		ORDER BY nt.rowid
	`, scanTag, noteID)
}
