package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// dotenvFile is loaded if present. Variables already set in the process
// environment win over the file.
var dotenvFile = ".env"

// parseEnv reads PORT and DATABASE_URL. PORT may be a bare port number or
// a full host:port.
func parseEnv(cfg *Config) {
	_ = godotenv.Load(dotenvFile)

	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		if strings.Contains(port, ":") {
			cfg.HTTPAddr = port
		} else {
			cfg.HTTPAddr = ":" + port
		}
	}
	if dsn := strings.TrimSpace(os.Getenv("DATABASE_URL")); dsn != "" {
		cfg.DatabaseDSN = dsn
	}
}
