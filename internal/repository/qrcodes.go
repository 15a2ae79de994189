package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"qrtracker/internal/domain/models"
	"qrtracker/internal/repository/dto"
	"qrtracker/internal/storage"
)

const qrCodeColumns = `id, type, title, destination_url, landing_content, folder,
	custom_domain, organization, content_category, verification_hash, style, created_at, scans`

// QRCodes persists QR-code records through the shared store. Records are
// never deleted; the only mutations are the allow-listed update, the
// atomic scan increment and the folder-cascade reassignment.
type QRCodes struct {
	store *storage.Store
}

func NewQRCodes(store *storage.Store) *QRCodes {
	return &QRCodes{store: store}
}

// Create inserts a new record. An id collision surfaces as ErrConflict
// from the primary-key constraint; there is no retry here.
func (r *QRCodes) Create(ctx context.Context, qr models.QRCode) error {
	row := dto.FromDomain(qr)

	_, err := r.store.ExecContext(ctx, `
		INSERT INTO qr_codes (`+qrCodeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID, row.Type, row.Title, row.DestinationURL, row.LandingContent,
		row.Folder, row.CustomDomain, row.Organization, row.ContentCategory,
		row.VerificationHash, row.Style, row.CreatedAt, row.Scans,
	)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return fmt.Errorf("%w: id %q", models.ErrConflict, qr.ID)
		}
		return fmt.Errorf("failed to insert qr code: %w", err)
	}
	return nil
}

// GetByID returns one record or ErrNotFound. An empty id is just an
// unknown id; reads never return validation errors.
func (r *QRCodes) GetByID(ctx context.Context, id string) (models.QRCode, error) {
	row := r.store.QueryRowContext(ctx,
		`SELECT `+qrCodeColumns+` FROM qr_codes WHERE id = ?`, id)

	qr, err := scanQRCode(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.QRCode{}, fmt.Errorf("%w: qr code %q", models.ErrNotFound, id)
		}
		return models.QRCode{}, fmt.Errorf("failed to get qr code: %w", err)
	}
	return qr, nil
}

// ListAll returns every record, newest first. Unbounded by design.
func (r *QRCodes) ListAll(ctx context.Context) ([]models.QRCode, error) {
	rows, err := r.store.QueryContext(ctx,
		`SELECT `+qrCodeColumns+` FROM qr_codes ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list qr codes: %w", err)
	}
	defer rows.Close()

	var result []models.QRCode
	for rows.Next() {
		qr, err := scanQRCode(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan qr code: %w", err)
		}
		result = append(result, qr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate qr codes: %w", err)
	}
	return result, nil
}

// Update applies the non-nil patch fields. The patch struct is the
// allow-list; an empty patch is a successful no-op.
func (r *QRCodes) Update(ctx context.Context, id string, patch models.QRCodePatch) error {
	if id == "" {
		return models.ErrInvalidData
	}
	if patch.Empty() {
		return nil
	}

	var (
		assignments []string
		args        []any
	)

	if patch.Title != nil {
		assignments = append(assignments, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.DestinationURL != nil {
		assignments = append(assignments, "destination_url = ?")
		args = append(args, dto.NullString(*patch.DestinationURL))
	}
	if patch.LandingContent != nil {
		assignments = append(assignments, "landing_content = ?")
		args = append(args, dto.EncodeLandingContent(patch.LandingContent))
	}
	if patch.Folder != nil {
		// Deliberately unchecked against the folders table; the folder
		// field is a denormalized name.
		assignments = append(assignments, "folder = ?")
		args = append(args, *patch.Folder)
	}
	if patch.Style != nil {
		assignments = append(assignments, "style = ?")
		args = append(args, dto.EncodeStyle(patch.Style))
	}
	if patch.CustomDomain != nil {
		assignments = append(assignments, "custom_domain = ?")
		args = append(args, dto.NullString(*patch.CustomDomain))
	}

	args = append(args, id)
	res, err := r.store.ExecContext(ctx,
		`UPDATE qr_codes SET `+strings.Join(assignments, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update qr code: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: qr code %q", models.ErrNotFound, id)
	}
	return nil
}

// IncrementScans bumps the counter in a single backend-level statement,
// so concurrent scans are never lost to read-then-write races.
func (r *QRCodes) IncrementScans(ctx context.Context, id string) error {
	res, err := r.store.ExecContext(ctx,
		`UPDATE qr_codes SET scans = scans + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to increment scans: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read increment result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: qr code %q", models.ErrNotFound, id)
	}
	return nil
}

// ReassignFolder moves every record in folder from to folder to. It
// returns the number of records moved.
func (r *QRCodes) ReassignFolder(ctx context.Context, from, to string) (int64, error) {
	res, err := r.store.ExecContext(ctx,
		`UPDATE qr_codes SET folder = ? WHERE folder = ?`, to, from)
	if err != nil {
		return 0, fmt.Errorf("failed to reassign folder: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read reassign result: %w", err)
	}
	return affected, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQRCode(row rowScanner) (models.QRCode, error) {
	var d dto.QRCodeDB
	err := row.Scan(
		&d.ID, &d.Type, &d.Title, &d.DestinationURL, &d.LandingContent,
		&d.Folder, &d.CustomDomain, &d.Organization, &d.ContentCategory,
		&d.VerificationHash, &d.Style, &d.CreatedAt, &d.Scans,
	)
	if err != nil {
		return models.QRCode{}, err
	}
	return d.ToDomain(), nil
}
