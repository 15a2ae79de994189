package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"qrtracker/internal/domain/models"
	"qrtracker/internal/repository/dto"
	"qrtracker/internal/shortid"
)

// verificationHashLength is the truncation applied to the hex digest.
// The stored value is never recomputed or validated afterwards.
const verificationHashLength = 16

// CreateQRCode validates the payload, fills defaults, generates the id
// and, for verified content, the verification hash, then inserts. The
// created record is returned with its id.
func (t *Tracker) CreateQRCode(ctx context.Context, input models.NewQRCode) (models.QRCode, error) {
	if strings.TrimSpace(input.Title) == "" {
		return models.QRCode{}, models.ErrTitleRequired
	}

	qrType := input.Type
	if qrType == "" {
		qrType = models.TypeLink
	}
	if !qrType.Valid() {
		return models.QRCode{}, fmt.Errorf("%w: unknown type %q", models.ErrInvalidData, input.Type)
	}

	folder := input.Folder
	if folder == "" {
		folder = models.DefaultFolder
	}

	destination := input.DestinationURL
	if len(input.SourceURLs) > 0 {
		destination = dto.EncodeSourceURLs(input.SourceURLs)
	}

	qr := models.QRCode{
		ID:              shortid.NewQRCodeID(),
		Type:            qrType,
		Title:           input.Title,
		DestinationURL:  destination,
		LandingContent:  input.LandingContent,
		Folder:          folder,
		CustomDomain:    input.CustomDomain,
		Organization:    input.Organization,
		ContentCategory: input.ContentCategory,
		Style:           input.Style,
		CreatedAt:       time.Now().UTC(),
	}

	if qrType == models.TypeVerifiedContent {
		qr.VerificationHash = verificationHash(qr.ID, qr.Title, qr.CreatedAt)
	}

	if err := t.qrCodes.Create(ctx, qr); err != nil {
		return models.QRCode{}, fmt.Errorf("failed to create qr code: %w", err)
	}
	return qr, nil
}

// GetQRCode returns one record; no ownership filtering happens here.
func (t *Tracker) GetQRCode(ctx context.Context, id string) (models.QRCode, error) {
	return t.qrCodes.GetByID(ctx, id)
}

// ListQRCodes returns all records, newest first.
func (t *Tracker) ListQRCodes(ctx context.Context) ([]models.QRCode, error) {
	return t.qrCodes.ListAll(ctx)
}

// UpdateQRCode applies the allow-listed partial update. A reassignment
// to a folder that does not exist is accepted; the folder field is a
// denormalized name.
func (t *Tracker) UpdateQRCode(ctx context.Context, id string, patch models.QRCodePatch) error {
	return t.qrCodes.Update(ctx, id, patch)
}

// IncrementScanCount bumps the scan counter. Failures, including an
// unknown id, are logged and swallowed: serving the scanned content must
// never fail because analytics failed.
func (t *Tracker) IncrementScanCount(ctx context.Context, id string) {
	if err := t.qrCodes.IncrementScans(ctx, id); err != nil {
		t.log.Warn().Err(err).Str("id", id).Msg("scan increment failed")
	}
}

// verificationHash derives the short content token from the id, title
// and creation timestamp, matching what verifiers were issued at
// creation time.
func verificationHash(id, title string, createdAt time.Time) string {
	sum := sha256.Sum256([]byte(id + title + createdAt.Format(time.RFC3339)))
	return hex.EncodeToString(sum[:])[:verificationHashLength]
}
