package config

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	envRemoteURL       = "TURSO_DATABASE_URL"
	envRemoteAuthToken = "TURSO_AUTH_TOKEN"
	envStoragePath     = "QR_STORAGE_PATH"
	envLogLevel        = "LOG_LEVEL"
)

const (
	defaultStoragePath = "tmp/qrcodes.db"
	defaultLogLevel    = "info"

	// dotEnvFile is loaded before the environment is read; absence is fine.
	dotEnvFile = ".env.local"
)

type Config struct {
	RemoteURL       string
	RemoteAuthToken string
	StoragePath     string
	LogLevel        string
}

func NewConfig() *Config {
	cfg := &Config{
		StoragePath: defaultStoragePath,
		LogLevel:    defaultLogLevel,
	}

	// Parse flags
	flag.StringVar(&cfg.RemoteURL, "remote-url", cfg.RemoteURL, "Remote store URL")
	flag.StringVar(&cfg.RemoteAuthToken, "remote-auth-token", cfg.RemoteAuthToken, "Remote store auth token")
	flag.StringVar(&cfg.StoragePath, "storage-path", cfg.StoragePath, "Embedded store file path")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	flag.Parse()

	// Apply environment variables
	_ = godotenv.Load(dotEnvFile)
	cfg.applyEnv(envRemoteURL, &cfg.RemoteURL)
	cfg.applyEnv(envRemoteAuthToken, &cfg.RemoteAuthToken)
	cfg.applyEnv(envStoragePath, &cfg.StoragePath)
	cfg.applyEnv(envLogLevel, &cfg.LogLevel)

	// Final setup
	cfg.StoragePath = cfg.resolveFilePath()

	return cfg
}

// UseRemote reports whether the remote backend is fully configured.
// A partial pair selects the embedded store.
func (c *Config) UseRemote() bool {
	return c.RemoteURL != "" && c.RemoteAuthToken != ""
}

func (c *Config) applyEnv(key string, target *string) {
	if val, ok := os.LookupEnv(key); ok {
		*target = val
	}
}

func (c *Config) resolveFilePath() string {
	if filepath.IsAbs(c.StoragePath) {
		return c.StoragePath
	}

	absPath, err := filepath.Abs(c.StoragePath)
	if err != nil {
		return filepath.Clean(c.StoragePath)
	}
	return absPath
}
