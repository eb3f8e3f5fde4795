package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	AppEnv string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTKey string

	BackendApiURL       string
	BackendServiceToken string // used by background jobs that run without a caller token
	RequestTimeout      time.Duration

	WompiApiURL        string
	WompiPublicKey     string
	RedisAddr          string
	AcceptanceCacheTTL time.Duration

	OptimisticFallback bool
	ReconcileCron      string
	ReconcileAbandon   time.Duration

	SendgridApiKey  string
	EmailSender     string
	EmailSenderName string
	FrontendURL     string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:   getEnv("PORT", "3000"),
		AppEnv: getEnv("APP_ENV", "development"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "tincadia_checkout"),
		DBPort:     getEnv("DB_PORT", "5432"),

		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		BackendApiURL:       getEnv("BACKEND_API_URL", "http://localhost:4000/api"),
		BackendServiceToken: getEnv("BACKEND_SERVICE_TOKEN", ""),
		RequestTimeout:      getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),

		WompiApiURL:        getEnv("WOMPI_API_URL", "https://sandbox.wompi.co/v1"),
		WompiPublicKey:     getEnv("WOMPI_PUBLIC_KEY", ""),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		AcceptanceCacheTTL: getEnvDuration("ACCEPTANCE_CACHE_TTL", 30*time.Minute),

		OptimisticFallback: getEnvBool("RECONCILE_OPTIMISTIC_FALLBACK", true),
		ReconcileCron:      getEnv("RECONCILE_CRON", "*/5 * * * *"),
		ReconcileAbandon:   getEnvDuration("RECONCILE_ABANDON_AFTER", 48*time.Hour),

		SendgridApiKey:  getEnv("SENDGRID_API_KEY", ""),
		EmailSender:     getEnv("EMAIL_SENDER", "no-reply@tincadia.com"),
		EmailSenderName: getEnv("EMAIL_SENDER_NAME", "Tincadia"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.WompiPublicKey == "" {
		log.Println("Warning: WOMPI_PUBLIC_KEY is not set. Acceptance tokens will be unavailable.")
	}
	if AppConfig.BackendServiceToken == "" {
		log.Println("Warning: BACKEND_SERVICE_TOKEN is not set. Pending payments cannot be re-verified in the background.")
	}
}

// IsProduction reports whether APP_ENV selects the production profile
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.AppEnv)
	return env == "prod" || env == "production"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return b
}

// getEnvDuration accepts Go durations ("90s") or a bare number of seconds
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs := getEnvInt(key, -1); secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
