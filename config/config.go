package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DBUrl     string
	JWTSecret string
	// SMTP Configuration (notification delivery)
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string
	// S3-compatible document storage
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Region          string
	S3Bucket          string
	S3Endpoint        string
	S3PresignTTL      time.Duration
	// Redis (rate limiting)
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	RateLimitUploadThreshold int
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		DBUrl:     getEnv("DATABASE_URL", ""),
		JWTSecret: getEnv("JWT_SECRET", ""),
		// SMTP Configuration
		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", "noreply@localhost"),
		// Document storage
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3PresignTTL:      time.Duration(getEnvInt("S3_PRESIGN_TTL_MINUTES", 15)) * time.Minute,
		// Redis
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitUploadThreshold: getEnvInt("RATE_LIMIT_UPLOAD_THRESHOLD", 10),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. Authenticated requests will be rejected.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
