// Package service exposes the plain data operations the outer layers
// (HTTP handlers, rendering) call: QR-code lifecycle, folder lifecycle
// and the best-effort scan counter.
package service

import (
	"context"

	"github.com/rs/zerolog"

	"qrtracker/internal/domain/models"
)

//go:generate mockgen -source=service.go -destination=../mocks/mock_storage.go -package=mocks
type (
	// QRCodeStorage is the persistence contract for QR-code records.
	QRCodeStorage interface {
		Create(ctx context.Context, qr models.QRCode) error
		GetByID(ctx context.Context, id string) (models.QRCode, error)
		ListAll(ctx context.Context) ([]models.QRCode, error)
		Update(ctx context.Context, id string, patch models.QRCodePatch) error
		IncrementScans(ctx context.Context, id string) error
		ReassignFolder(ctx context.Context, from, to string) (int64, error)
	}

	// FolderStorage is the persistence contract for folder records.
	FolderStorage interface {
		Create(ctx context.Context, folder models.Folder) error
		List(ctx context.Context) ([]models.Folder, error)
		DeleteByName(ctx context.Context, name string) error
	}

	// TxRunner runs a function transactionally when the backend supports
	// it, and as sequential statements when it does not.
	TxRunner interface {
		WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
	}
)

// Tracker implements the exposed operations over the injected storage.
type Tracker struct {
	qrCodes QRCodeStorage
	folders FolderStorage
	tx      TxRunner
	log     zerolog.Logger
}

func NewTracker(qrCodes QRCodeStorage, folders FolderStorage, tx TxRunner, log zerolog.Logger) *Tracker {
	return &Tracker{
		qrCodes: qrCodes,
		folders: folders,
		tx:      tx,
		log:     log,
	}
}
