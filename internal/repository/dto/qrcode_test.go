package dto

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrtracker/internal/domain/models"
)

func TestStyleCodec_RoundTrip(t *testing.T) {
	style := &models.Style{
		FgColor:   "#112233",
		BgColor:   "#fafafa",
		LogoImage: "/logo.png",
		EyeRadius: [4]int{4, 8, 12, 16},
		LabelText: "Scan me",
	}

	encoded := EncodeStyle(style)
	require.True(t, encoded.Valid)

	decoded := DecodeStyle(encoded)
	assert.Equal(t, style, decoded)
}

func TestDecodeStyle_Fallback(t *testing.T) {
	tests := []struct {
		name string
		in   sql.NullString
	}{
		{name: "null column", in: sql.NullString{}},
		{name: "empty string", in: sql.NullString{String: "", Valid: true}},
		{name: "whitespace", in: sql.NullString{String: "   ", Valid: true}},
		{name: "malformed json", in: sql.NullString{String: "{not json", Valid: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded := DecodeStyle(tt.in)
			assert.Equal(t, models.DefaultStyle(), decoded)
		})
	}
}

func TestLandingContentCodec_RoundTrip(t *testing.T) {
	content := &models.LandingContent{
		Title:       "My Page",
		Description: "All my links",
		Image:       "https://example.com/me.png",
		Links: []models.LandingLink{
			{Title: "Site", URL: "https://example.com", Icon: "globe"},
			{Title: "Shop", URL: "https://shop.example.com"},
		},
		Theme: models.LandingTheme{Background: "#0f172a", Primary: "#ff0000", Text: "#ffffff"},
	}

	decoded := DecodeLandingContent(EncodeLandingContent(content))
	assert.Equal(t, content, decoded)
}

func TestLandingContentCodec_PreservesThemeColors(t *testing.T) {
	raw := sql.NullString{
		String: `{"title":"Links","theme":{"background":"#0f172a","primary":"#ff0000","text":"#ffffff"}}`,
		Valid:  true,
	}

	decoded := DecodeLandingContent(raw)
	require.NotNil(t, decoded)
	assert.Equal(t, "#ff0000", decoded.Theme.Primary)
	assert.Equal(t, "#ffffff", decoded.Theme.Text)

	// A decode/re-encode cycle must not drop theme fields.
	recoded := DecodeLandingContent(EncodeLandingContent(decoded))
	assert.Equal(t, decoded, recoded)
}

func TestDecodeLandingContent_Fallback(t *testing.T) {
	assert.Nil(t, DecodeLandingContent(sql.NullString{}))
	assert.Nil(t, DecodeLandingContent(sql.NullString{String: "[broken", Valid: true}))
}

func TestEncodeLandingContent_Nil(t *testing.T) {
	assert.False(t, EncodeLandingContent(nil).Valid)
}

func TestSourceURLsCodec(t *testing.T) {
	urls := []string{"https://a.example.com", "https://b.example.com"}

	encoded := EncodeSourceURLs(urls)
	require.NotEmpty(t, encoded)
	assert.Equal(t, urls, DecodeSourceURLs(encoded))

	// Plain single URLs decode as a one-element list.
	assert.Equal(t, []string{"https://plain.example.com"}, DecodeSourceURLs("https://plain.example.com"))
	assert.Nil(t, DecodeSourceURLs(""))
	assert.Empty(t, EncodeSourceURLs(nil))
}

func TestQRCodeDB_RoundTrip(t *testing.T) {
	qr := models.QRCode{
		ID:               "aB3xYz_9",
		Type:             models.TypeVerifiedContent,
		Title:            "Press kit",
		DestinationURL:   `["https://a.example.com","https://b.example.com"]`,
		Folder:           "Marketing",
		CustomDomain:     "verify.example.com",
		Organization:     "Example Org",
		ContentCategory:  "news",
		VerificationHash: "deadbeefdeadbeef",
		Style:            models.DefaultStyle(),
		CreatedAt:        time.Date(2026, 3, 14, 9, 26, 53, 589_000_000, time.UTC),
		Scans:            7,
	}

	got := FromDomain(qr).ToDomain()
	assert.Equal(t, qr, got)
}

func TestTimeLayout_OrdersLexicographically(t *testing.T) {
	earlier := FormatTime(time.Date(2026, 1, 2, 10, 0, 0, 500_000_000, time.UTC))
	later := FormatTime(time.Date(2026, 1, 2, 10, 0, 0, 510_000_000, time.UTC))
	assert.Less(t, earlier, later)
}

func TestParseTime_BackendDefaults(t *testing.T) {
	// CURRENT_TIMESTAMP on both backends renders without fractions.
	parsed := ParseTime("2026-03-14 09:26:53")
	assert.Equal(t, time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC), parsed)

	assert.True(t, ParseTime("garbage").IsZero())
}
