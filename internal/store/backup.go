package store

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// CreateBackup appends an opaque blob for a workspace under a fresh id.
// Backups are never read back or pruned here.
func (db *DB) CreateBackup(workspaceID, data string) error {
	const op = "store: create backup"
	if err := validation.Validate(workspaceID, validation.Required); err != nil {
		return invalid(op, fmt.Errorf("workspace_id: %w", err))
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.exec(op,
		`INSERT INTO backups (id, workspace_id, data, created_at) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), workspaceID, data, formatTime(db.stamp()))
}
