package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	AppPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimezone string

	AdminUsername string
	AdminPassword string

	SessionSecret string
	SessionTTL    time.Duration

	UploadDir string
	SeedDemo  bool
}

var C AppConfig

func Load() {
	_ = godotenv.Load() // missing .env is fine

	C = AppConfig{
		AppPort:    getEnv("APP_PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "111111"),
		DBName:     getEnv("DB_NAME", "forensync"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBTimezone: getEnv("DB_TIMEZONE", "UTC"),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),

		SessionSecret: getEnv("SESSION_SECRET", "dev-session-secret"),
		SessionTTL:    getDuration("SESSION_TTL", 12*time.Hour),

		UploadDir: getEnv("UPLOAD_DIR", "uploads"),
		SeedDemo:  os.Getenv("SEED_DEMO") == "true",
	}
}

func GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		C.DBHost, C.DBPort, C.DBUser, C.DBPassword, C.DBName, C.DBSSLMode, C.DBTimezone,
	)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid %s=%q", key, v)
	}
	return d
}
