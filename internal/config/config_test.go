package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_UseRemote(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{
			name: "url and token present",
			cfg:  Config{RemoteURL: "libsql://db.example.turso.io", RemoteAuthToken: "token"},
			want: true,
		},
		{
			name: "url without token",
			cfg:  Config{RemoteURL: "libsql://db.example.turso.io"},
			want: false,
		},
		{
			name: "token without url",
			cfg:  Config{RemoteAuthToken: "token"},
			want: false,
		},
		{
			name: "neither",
			cfg:  Config{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.UseRemote())
		})
	}
}

func TestConfig_ResolveFilePath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "qrcodes.db")

	cfg := Config{StoragePath: abs}
	assert.Equal(t, abs, cfg.resolveFilePath())

	cfg = Config{StoragePath: "tmp/qrcodes.db"}
	assert.True(t, filepath.IsAbs(cfg.resolveFilePath()))
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Setenv("QR_STORAGE_PATH", "/data/qr.db")

	cfg := Config{StoragePath: defaultStoragePath}
	cfg.applyEnv(envStoragePath, &cfg.StoragePath)
	assert.Equal(t, "/data/qr.db", cfg.StoragePath)

	unset := "untouched"
	cfg.applyEnv("QR_TRACKER_MISSING_ENV", &unset)
	assert.Equal(t, "untouched", unset)
}
