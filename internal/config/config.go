package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port          string
	Mode          string
	AllowOrigins  string
	JWTSecret     string
	TokenTTLHours int
	UploadDir     string
	MaxUploadMB   int64
	ImportSchema  string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func Load() *Config {
	return &Config{
		Port:          getenv("PORT", "8080"),
		Mode:          getenv("GIN_MODE", ""),
		AllowOrigins:  getenv("ALLOW_ORIGINS", "*"),
		JWTSecret:     getenv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTLHours: atoi("TOKEN_TTL_HOURS", 24),
		UploadDir:     getenv("UPLOAD_DIR", "uploads"),
		MaxUploadMB:   int64(atoi("MAX_UPLOAD_MB", 15)),
		ImportSchema:  getenv("IMPORT_SCHEMA", "schemas/record_import.schema.json"),
	}
}
