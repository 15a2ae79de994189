package models

import (
	"errors"
	"time"
)

// QRType discriminates what a scan of the code resolves to.
type QRType string

const (
	TypeLink            QRType = "link"
	TypeLanding         QRType = "landing"
	TypeVerifiedContent QRType = "verified_content"
)

func (t QRType) Valid() bool {
	switch t {
	case TypeLink, TypeLanding, TypeVerifiedContent:
		return true
	}
	return false
}

// DefaultFolder is seeded at schema init and can never be deleted.
const DefaultFolder = "General"

type (
	// QRCode is one trackable, scannable endpoint. Records are never
	// deleted; they live for the lifetime of the dataset.
	QRCode struct {
		ID               string
		Type             QRType
		Title            string
		DestinationURL   string // single URL, or a JSON array of source URLs for verified_content
		LandingContent   *LandingContent
		Folder           string
		CustomDomain     string
		Organization     string
		ContentCategory  string
		VerificationHash string // set iff Type == TypeVerifiedContent, stored verbatim
		Style            *Style
		CreatedAt        time.Time
		Scans            int64
	}

	// Folder is a flat named grouping of QR codes. Name is immutable,
	// there is no rename.
	Folder struct {
		ID        string
		Name      string
		CreatedAt time.Time
	}
)

// Style carries the visual customization of a rendered code. It is
// persisted as an opaque JSON blob; rendering happens outside this core.
type Style struct {
	FgColor   string `json:"fgColor"`
	BgColor   string `json:"bgColor"`
	LogoImage string `json:"logoImage,omitempty"`
	EyeRadius [4]int `json:"eyeRadius"` // top-left, top-right, bottom-right, bottom-left
	LabelText string `json:"labelText,omitempty"`
}

// DefaultStyle is the decode fallback for absent or malformed style blobs.
func DefaultStyle() *Style {
	return &Style{
		FgColor:   "#000000",
		BgColor:   "#ffffff",
		EyeRadius: [4]int{0, 0, 0, 0},
	}
}

type (
	// LandingContent is the mini landing page shown for landing-type codes.
	LandingContent struct {
		Title       string        `json:"title"`
		Description string        `json:"description,omitempty"`
		Image       string        `json:"image,omitempty"`
		Links       []LandingLink `json:"links,omitempty"`
		Theme       LandingTheme  `json:"theme"`
	}

	LandingLink struct {
		Title string `json:"title"`
		URL   string `json:"url"`
		Icon  string `json:"icon,omitempty"`
	}

	LandingTheme struct {
		Background string `json:"background,omitempty"`
		Primary    string `json:"primary,omitempty"`
		Text       string `json:"text,omitempty"`
	}
)

// NewQRCode is the creation payload. Title is the only required field;
// SourceURLs, when set, is encoded into DestinationURL as a JSON array.
type NewQRCode struct {
	Type            QRType
	Title           string
	DestinationURL  string
	SourceURLs      []string
	LandingContent  *LandingContent
	Folder          string
	CustomDomain    string
	Organization    string
	ContentCategory string
	Style           *Style
}

// QRCodePatch is a partial update. Nil fields are left untouched; the
// struct itself is the allow-list, so immutable columns cannot appear here.
type QRCodePatch struct {
	Title          *string
	DestinationURL *string
	LandingContent *LandingContent
	Folder         *string
	Style          *Style
	CustomDomain   *string
}

// Empty reports whether the patch changes nothing.
func (p QRCodePatch) Empty() bool {
	return p.Title == nil && p.DestinationURL == nil && p.LandingContent == nil &&
		p.Folder == nil && p.Style == nil && p.CustomDomain == nil
}

var (
	ErrInvalidData     = errors.New("invalid input data")
	ErrTitleRequired   = errors.New("title is required")
	ErrNotFound        = errors.New("record not found")
	ErrConflict        = errors.New("name already exists")
	ErrProtectedFolder = errors.New("folder is protected")
)
