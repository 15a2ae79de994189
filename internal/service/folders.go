package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"qrtracker/internal/domain/models"
	"qrtracker/internal/shortid"
)

// CreateFolder inserts a new folder. The insert is optimistic: a
// duplicate name comes back as ErrConflict from the unique constraint,
// never from a racy existence check.
func (t *Tracker) CreateFolder(ctx context.Context, name string) (models.Folder, error) {
	if strings.TrimSpace(name) == "" {
		return models.Folder{}, fmt.Errorf("%w: folder name must not be empty", models.ErrInvalidData)
	}

	folder := models.Folder{
		ID:        shortid.NewFolderID(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	if err := t.folders.Create(ctx, folder); err != nil {
		return models.Folder{}, err
	}
	return folder, nil
}

// ListFolders returns every folder, oldest first.
func (t *Tracker) ListFolders(ctx context.Context) ([]models.Folder, error) {
	return t.folders.List(ctx)
}

// DeleteFolder removes a folder after reassigning its QR codes to the
// General folder. The General folder itself is rejected before any other
// logic runs. Both cascade steps run inside one transaction when the
// backend supports it; otherwise they run sequentially and a failure of
// the second step leaves the reassignment applied, with the error still
// propagated.
func (t *Tracker) DeleteFolder(ctx context.Context, name string) error {
	if name == models.DefaultFolder {
		return fmt.Errorf("%w: %q cannot be deleted", models.ErrProtectedFolder, models.DefaultFolder)
	}

	return t.tx.WithinTx(ctx, func(ctx context.Context) error {
		moved, err := t.qrCodes.ReassignFolder(ctx, name, models.DefaultFolder)
		if err != nil {
			return err
		}

		if err := t.folders.DeleteByName(ctx, name); err != nil {
			return err
		}

		t.log.Info().Str("folder", name).Int64("reassigned", moved).Msg("folder deleted")
		return nil
	})
}
