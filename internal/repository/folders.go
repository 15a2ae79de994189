package repository

import (
	"context"
	"fmt"

	"qrtracker/internal/domain/models"
	"qrtracker/internal/repository/dto"
	"qrtracker/internal/storage"
)

// Folders persists folder records. Names are unique and immutable; the
// unique constraint is the only guard, there is no check-then-insert.
type Folders struct {
	store *storage.Store
}

func NewFolders(store *storage.Store) *Folders {
	return &Folders{store: store}
}

// Create inserts optimistically and classifies a unique violation on the
// name as ErrConflict so callers can render "already exists".
func (r *Folders) Create(ctx context.Context, folder models.Folder) error {
	row := dto.FolderFromDomain(folder)

	_, err := r.store.ExecContext(ctx, `
		INSERT INTO folders (id, name, created_at)
		VALUES (?, ?, ?)`,
		row.ID, row.Name, row.CreatedAt,
	)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return fmt.Errorf("%w: folder %q", models.ErrConflict, folder.Name)
		}
		return fmt.Errorf("failed to insert folder: %w", err)
	}
	return nil
}

// List returns every folder, oldest first, so the seeded General folder
// sorts ahead of user-created ones.
func (r *Folders) List(ctx context.Context) ([]models.Folder, error) {
	rows, err := r.store.QueryContext(ctx,
		`SELECT id, name, created_at FROM folders ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	defer rows.Close()

	var result []models.Folder
	for rows.Next() {
		var d dto.FolderDB
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		result = append(result, d.ToDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate folders: %w", err)
	}
	return result, nil
}

// DeleteByName removes the folder row. The dependent-record cascade is
// orchestrated by the caller around this call.
func (r *Folders) DeleteByName(ctx context.Context, name string) error {
	res, err := r.store.ExecContext(ctx, `DELETE FROM folders WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: folder %q", models.ErrNotFound, name)
	}
	return nil
}
