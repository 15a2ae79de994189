package dto

import (
	"qrtracker/internal/domain/models"
)

type (
	FolderDB struct {
		ID        string `db:"id"`
		Name      string `db:"name"`
		CreatedAt string `db:"created_at"`
	}
)

func (d *FolderDB) ToDomain() models.Folder {
	return models.Folder{
		ID:        d.ID,
		Name:      d.Name,
		CreatedAt: ParseTime(d.CreatedAt),
	}
}

func FolderFromDomain(folder models.Folder) *FolderDB {
	return &FolderDB{
		ID:        folder.ID,
		Name:      folder.Name,
		CreatedAt: FormatTime(folder.CreatedAt),
	}
}
