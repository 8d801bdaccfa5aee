package config

import (
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Config struct {
	ListenAddr string
	DataDir    string
	DBPath     string
	UploadsDir string
	NamesFile  string
	LogLevel   string
	LogFile    string
}

// Load builds the configuration from environment variables. DBPath and
// UploadsDir default to locations under DataDir so all persisted state lives
// beneath one configurable base directory.
func Load() *Config {
	dataDir := getEnv("DATA_DIR", "./data")
	return &Config{
		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),
		DataDir:    dataDir,
		DBPath:     getEnv("DB_PATH", filepath.Join(dataDir, "renotrack.db")),
		UploadsDir: getEnv("UPLOADS_DIR", filepath.Join(dataDir, "uploads")),
		NamesFile:  getEnv("NAMES_FILE", ""),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFile:    getEnv("LOG_FILE", ""),
	}
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ListenAddr, validation.Required),
		validation.Field(&c.DataDir, validation.Required),
		validation.Field(&c.DBPath, validation.Required),
		validation.Field(&c.UploadsDir, validation.Required),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
	)
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
