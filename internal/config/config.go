package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every environment-supplied setting the app needs. It is
// loaded once at startup and injected; nothing else reads os.Getenv.
type Config struct {
	Port        string
	PostgresURL string

	RedisAddr     string
	RedisPassword string

	JWTSecret string
	JWTTTL    time.Duration

	ReplicateToken string
	ModelOwner     string
	TrainerOwner   string
	TrainerName    string
	TrainerVersion string
	Hardware       string

	SiteBaseURL string

	ResendAPIKey string
	MailFrom     string
	AppName      string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	TrainRateLimit    int
	GenerateRateLimit int
	RateLimitWindow   time.Duration
}

// Load reads .env when present (development convenience) and then the
// process environment. Missing required values are reported together.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		PostgresURL:    os.Getenv("POSTGRES_URL"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTTTL:         getDuration("JWT_TTL", time.Hour),
		ReplicateToken: os.Getenv("REPLICATE_API_TOKEN"),
		ModelOwner:     os.Getenv("REPLICATE_MODEL_OWNER"),
		TrainerOwner:   getEnv("REPLICATE_TRAINER_OWNER", "ostris"),
		TrainerName:    getEnv("REPLICATE_TRAINER_NAME", "flux-dev-lora-trainer"),
		TrainerVersion: getEnv("REPLICATE_TRAINER_VERSION", "e440909d3512c31646ee2e0c7d6f6f4923224863a6a10c494606e79fb5844497"),
		Hardware:       getEnv("REPLICATE_HARDWARE", "gpu-a100-large"),
		SiteBaseURL:    os.Getenv("SITE_BASE_URL"),
		ResendAPIKey:   os.Getenv("RESEND_API_KEY"),
		MailFrom:       getEnv("MAIL_FROM", "Artify AI <onboarding@resend.dev>"),
		AppName:        getEnv("APP_NAME", "Artify AI"),
		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getEnv("MINIO_BUCKET", "training-data"),
		MinioUseSSL:    getBool("MINIO_USE_SSL", false),

		TrainRateLimit:    getInt("TRAIN_RATE_LIMIT", 5),
		GenerateRateLimit: getInt("GENERATE_RATE_LIMIT", 20),
		RateLimitWindow:   getDuration("RATE_LIMIT_WINDOW", time.Minute),
	}

	required := map[string]string{
		"POSTGRES_URL":        cfg.PostgresURL,
		"JWT_SECRET":          cfg.JWTSecret,
		"REPLICATE_API_TOKEN": cfg.ReplicateToken,
		"SITE_BASE_URL":       cfg.SiteBaseURL,
	}
	for name, v := range required {
		if v == "" {
			return nil, fmt.Errorf("missing required environment variable %s", name)
		}
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
