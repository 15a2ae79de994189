package shortid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Length(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{name: "qr code length", length: QRCodeLength},
		{name: "folder length", length: FolderLength},
		{name: "single char", length: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := New(tt.length)
			assert.Len(t, id, tt.length)
		})
	}
}

func TestNew_Alphabet(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := New(QRCodeLength)
		for _, r := range id {
			require.True(t, strings.ContainsRune(alphabet, r),
				"unexpected character %q in id %q", r, id)
		}
	}
}

func TestNew_Dispersion(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewQRCodeID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %q after %d draws", id, i)
		seen[id] = struct{}{}
	}
}
