// Package dto maps storage rows to domain models and owns the codec for
// the opaque text columns (style, landing content, source-URL lists).
// Decoding never fails: malformed or absent blobs yield defined defaults.
package dto

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"qrtracker/internal/domain/models"
)

// timeLayout is fixed-width so lexicographic text ordering matches
// chronological ordering in both backends.
const timeLayout = "2006-01-02 15:04:05.000"

type (
	QRCodeDB struct {
		ID               string         `db:"id"`
		Type             string         `db:"type"`
		Title            string         `db:"title"`
		DestinationURL   sql.NullString `db:"destination_url"`
		LandingContent   sql.NullString `db:"landing_content"`
		Folder           string         `db:"folder"`
		CustomDomain     sql.NullString `db:"custom_domain"`
		Organization     sql.NullString `db:"organization"`
		ContentCategory  sql.NullString `db:"content_category"`
		VerificationHash sql.NullString `db:"verification_hash"`
		Style            sql.NullString `db:"style"`
		CreatedAt        string         `db:"created_at"`
		Scans            int64          `db:"scans"`
	}
)

// ToDomain decodes the row into a domain model.
func (d *QRCodeDB) ToDomain() models.QRCode {
	return models.QRCode{
		ID:               d.ID,
		Type:             models.QRType(d.Type),
		Title:            d.Title,
		DestinationURL:   d.DestinationURL.String,
		LandingContent:   DecodeLandingContent(d.LandingContent),
		Folder:           d.Folder,
		CustomDomain:     d.CustomDomain.String,
		Organization:     d.Organization.String,
		ContentCategory:  d.ContentCategory.String,
		VerificationHash: d.VerificationHash.String,
		Style:            DecodeStyle(d.Style),
		CreatedAt:        ParseTime(d.CreatedAt),
		Scans:            d.Scans,
	}
}

// FromDomain encodes a domain model into a storage row.
func FromDomain(qr models.QRCode) *QRCodeDB {
	return &QRCodeDB{
		ID:               qr.ID,
		Type:             string(qr.Type),
		Title:            qr.Title,
		DestinationURL:   NullString(qr.DestinationURL),
		LandingContent:   EncodeLandingContent(qr.LandingContent),
		Folder:           qr.Folder,
		CustomDomain:     NullString(qr.CustomDomain),
		Organization:     NullString(qr.Organization),
		ContentCategory:  NullString(qr.ContentCategory),
		VerificationHash: NullString(qr.VerificationHash),
		Style:            EncodeStyle(qr.Style),
		CreatedAt:        FormatTime(qr.CreatedAt),
		Scans:            qr.Scans,
	}
}

// NullString maps the empty string to SQL NULL.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// EncodeStyle serializes a style blob; a nil style stays NULL.
func EncodeStyle(style *models.Style) sql.NullString {
	if style == nil {
		return sql.NullString{}
	}
	raw, err := json.Marshal(style)
	if err != nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(raw), Valid: true}
}

// DecodeStyle deserializes a style blob. Absent or malformed text yields
// the black-on-white default instead of a parse error.
func DecodeStyle(ns sql.NullString) *models.Style {
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return models.DefaultStyle()
	}

	var style models.Style
	if err := json.Unmarshal([]byte(ns.String), &style); err != nil {
		return models.DefaultStyle()
	}
	return &style
}

// EncodeLandingContent serializes landing-page content; nil stays NULL.
func EncodeLandingContent(content *models.LandingContent) sql.NullString {
	if content == nil {
		return sql.NullString{}
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(raw), Valid: true}
}

// DecodeLandingContent deserializes landing-page content. Absent or
// malformed text yields nil, never an error.
func DecodeLandingContent(ns sql.NullString) *models.LandingContent {
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return nil
	}

	var content models.LandingContent
	if err := json.Unmarshal([]byte(ns.String), &content); err != nil {
		return nil
	}
	return &content
}

// EncodeSourceURLs serializes a verified-content source-URL list into
// the destination_url column format.
func EncodeSourceURLs(urls []string) string {
	if len(urls) == 0 {
		return ""
	}
	raw, err := json.Marshal(urls)
	if err != nil {
		return ""
	}
	return string(raw)
}

// DecodeSourceURLs parses a destination_url value as a source-URL list.
// Plain single URLs decode as a one-element list.
func DecodeSourceURLs(destination string) []string {
	if destination == "" {
		return nil
	}

	var urls []string
	if err := json.Unmarshal([]byte(destination), &urls); err != nil {
		return []string{destination}
	}
	return urls
}

// FormatTime renders a timestamp in the storage layout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// ParseTime reads a stored timestamp, tolerating the layouts the
// backends default to when a column was filled server-side.
func ParseTime(s string) time.Time {
	for _, layout := range []string{timeLayout, "2006-01-02 15:04:05", time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
