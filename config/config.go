package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	TokenTTLHours int

	DBDriver   string // postgres or sqlite
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	SQLitePath string
	DBLogLevel string // silent, error, warn, info

	TrainingValidityDays   int
	TrainingExpirySchedule string // cron spec for the expiry job

	BackendURL     string // training service base URL used by the kiosk
	BackendTimeout int    // seconds
	KioskStorePath string
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
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		TokenTTLHours: getEnvInt("TOKEN_TTL_HOURS", 12),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "vms"),
		DBPort:     getEnv("DB_PORT", "5432"),
		SQLitePath: getEnv("SQLITE_PATH", "vms.db"),
		DBLogLevel: getEnv("DB_LOG_LEVEL", "warn"),

		TrainingValidityDays:   getEnvInt("TRAINING_VALIDITY_DAYS", 365),
		TrainingExpirySchedule: getEnv("TRAINING_EXPIRY_SCHEDULE", "0 2 * * *"),

		BackendURL:     getEnv("BACKEND_URL", "http://localhost:3000"),
		BackendTimeout: getEnvInt("BACKEND_TIMEOUT", 15),
		KioskStorePath: getEnv("KIOSK_STORE_PATH", "kiosk.db"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.DBDriver != "postgres" && AppConfig.DBDriver != "sqlite" {
		log.Printf("Warning: unknown DB_DRIVER %q, falling back to postgres.", AppConfig.DBDriver)
		AppConfig.DBDriver = "postgres"
	}
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
