package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// turnstileTestSecret is Cloudflare's published dummy secret that always passes.
// Only ever used when APP_ENV=development and no real secret is configured.
const turnstileTestSecret = "1x0000000000000000000000000000000AA"

type Config struct {
	Port           string
	Environment    string
	AllowedOrigin  string
	TrustedProxies []string
	DBUrl          string
	// Request hardening
	MaxBodyBytes     int64
	MinSubmitElapsed time.Duration
	BcryptCost       int
	RegisterEchoUser bool // Reveal the created user (legacy 201 body) instead of the generic reply
	// Turnstile CAPTCHA
	TurnstileSecret    string
	TurnstileVerifyURL string
	// Email: Resend API takes precedence over SMTP; neither means log-only delivery
	ResendAPIKey   string
	EmailFrom      string
	ContactEmailTo string
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SMTPFromEmail  string // Verified sender email (different from SMTP login)
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration (requests per hour per IP)
	RateLimitContact    int
	RateLimitNewsletter int
	RateLimitRegister   int
	RateLimitSweep      time.Duration
	RateLimitMaxKeys    int
	// Observability
	MetricsEnabled bool
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    strings.ToLower(getEnv("APP_ENV", EnvDevelopment)),
		AllowedOrigin:  strings.TrimRight(getEnv("ALLOWED_ORIGIN", ""), "/"),
		TrustedProxies: getEnvList("TRUSTED_PROXIES"),
		DBUrl:          getEnv("DATABASE_URL", ""),

		MaxBodyBytes:     int64(getEnvInt("MAX_BODY_BYTES", 100*1024)),
		MinSubmitElapsed: time.Duration(getEnvInt("MIN_SUBMIT_SECONDS", 2)) * time.Second,
		BcryptCost:       getEnvInt("BCRYPT_COST", 12),
		RegisterEchoUser: getEnvBool("REGISTER_ECHO_USER", false),

		TurnstileSecret:    getEnv("TURNSTILE_SECRET_KEY", ""),
		TurnstileVerifyURL: getEnv("TURNSTILE_VERIFY_URL", "https://challenges.cloudflare.com/turnstile/v0/siteverify"),

		ResendAPIKey:   getEnv("RESEND_API_KEY", ""),
		EmailFrom:      getEnv("EMAIL_FROM", ""),
		ContactEmailTo: getEnv("CONTACT_EMAIL", "hello@example.com"),
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail:  getEnv("SMTP_FROM_EMAIL", ""),

		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),

		RateLimitContact:    getEnvInt("RATE_LIMIT_CONTACT", 5),
		RateLimitNewsletter: getEnvInt("RATE_LIMIT_NEWSLETTER", 3),
		RateLimitRegister:   getEnvInt("RATE_LIMIT_REGISTER", 3),
		RateLimitSweep:      getEnvDuration("RATE_LIMIT_SWEEP_INTERVAL", 5*time.Minute),
		RateLimitMaxKeys:    getEnvInt("RATE_LIMIT_MAX_KEYS", 100000),

		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
	}

	if cfg.AllowedOrigin == "" {
		if !cfg.IsDevelopment() {
			return nil, errors.New("ALLOWED_ORIGIN is required")
		}
		cfg.AllowedOrigin = "http://localhost:3000"
	}

	if cfg.TurnstileSecret == "" && cfg.IsDevelopment() {
		log.Println("WARNING: TURNSTILE_SECRET_KEY not configured. Using the always-pass test secret (development only).")
		cfg.TurnstileSecret = turnstileTestSecret
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Registrations will be kept in memory only.")
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
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

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping empty entries
func getEnvList(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
