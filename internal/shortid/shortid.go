// Package shortid generates fixed-length random identifiers over a
// URL-safe alphabet. It does not check uniqueness; the primary-key
// constraint at insert time is the only guard.
package shortid

import (
	"crypto/rand"
	"math/big"
)

const (
	// nanoid default alphabet, URL-safe so ids can live in a path segment.
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz-"

	QRCodeLength = 8
	FolderLength = 6
)

// New returns a random identifier of the given length.
func New(length int) string {
	b := make([]byte, length)
	letterCount := big.NewInt(int64(len(alphabet)))

	for i := range b {
		n, _ := rand.Int(rand.Reader, letterCount)
		b[i] = alphabet[n.Int64()]
	}
	return string(b)
}

// NewQRCodeID returns an id for a QR-code record.
func NewQRCodeID() string {
	return New(QRCodeLength)
}

// NewFolderID returns an id for a folder record.
func NewFolderID() string {
	return New(FolderLength)
}
