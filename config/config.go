package config

import (
	"os"
	"strings"
)

type Config struct {
	Port          string
	GinMode       string
	DatabaseURL   string
	JWTSecret     string
	EmailDomain   string
	UploadDir     string
	ClientOrigins []string
}

// Load reads configuration from the environment, falling back to the
// defaults the original deployment used.
func Load() Config {
	return Config{
		Port:          getenv("PORT", "5001"),
		GinMode:       getenv("GIN_MODE", "debug"),
		DatabaseURL:   getenv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=events port=5432 sslmode=disable"),
		JWTSecret:     getenv("JWT_SECRET", "your-secret-key-change-in-production"),
		EmailDomain:   getenv("COLLEGE_EMAIL_DOMAIN", "@nie.ac.in"),
		UploadDir:     getenv("UPLOAD_DIR", "uploads"),
		ClientOrigins: splitList(getenv("CLIENT_ORIGINS", "http://localhost:3000")),
	}
}

func getenv(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
