package cli

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds environment-driven settings. Flags override these.
type Config struct {
	// DBPath is where the SQLite database lives. MEDQ_DB_PATH.
	DBPath string

	// LogLevel is the zerolog level name. MEDQ_LOG_LEVEL.
	LogLevel string

	// SchemaDir optionally points at a directory of CUE schema files
	// replacing the embedded default. MEDQ_SCHEMA_DIR.
	SchemaDir string
}

// LoadConfig reads settings from the environment, after loading a .env
// file when one exists in the working directory. A missing .env is not
// an error.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		DBPath:    envOr("MEDQ_DB_PATH", "medq.db"),
		LogLevel:  envOr("MEDQ_LOG_LEVEL", "warn"),
		SchemaDir: os.Getenv("MEDQ_SCHEMA_DIR"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
