package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds the server configuration, read from the environment with an
// optional .env file for local development.
type Config struct {
	Addr      string
	DataDir   string
	UploadDir string
	JWTSecret string
	LogPath   string
}

// Load reads configuration from the environment. All values have defaults;
// an empty JWT secret means one is generated at startup (sessions are then
// invalidated on restart).
func Load() *Config {
	_ = godotenv.Load()

	dataDir := getEnv("TRZNICA_DATA_DIR", "data")

	return &Config{
		Addr:      getEnv("TRZNICA_ADDR", ":8080"),
		DataDir:   dataDir,
		UploadDir: getEnv("TRZNICA_UPLOAD_DIR", filepath.Join(dataDir, "uploads")),
		JWTSecret: getEnv("TRZNICA_JWT_SECRET", ""),
		LogPath:   getEnv("TRZNICA_LOG", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
