package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
// The values are loaded from environment variables.
type AppConfig struct {
	// Core settings
	Port     string
	Host     string
	LogLevel string

	// CSV ingestion settings
	DefaultCsvPath     string
	CsvDataDir         string
	MaxUploadSizeBytes int64

	// Loader cache settings
	CacheExpiration      time.Duration
	CacheCleanupInterval time.Duration

	// Remote spreadsheet fetch settings
	SpreadsheetEndpoint string
	SpreadsheetPSK      string
	SpreadsheetTimeout  time.Duration

	// Static assets served alongside the API
	PublicDir string
}

// Cfg is a global instance of the AppConfig.
var Cfg *AppConfig

// LoadConfig loads configuration from environment variables or a .env file.
// It centralizes all configuration logic for the application.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		if os.IsNotExist(err) {
			log.Println("Info: No .env file found. Relying on OS environment variables.")
		} else {
			log.Printf("Warning: Error loading .env file: %v. Relying on OS environment variables.", err)
		}
	}

	maxUploadSizeBytesStr := getEnv("MAX_UPLOAD_SIZE_BYTES", "10485760") // 10MB default
	maxUploadSizeBytes, err := strconv.ParseInt(maxUploadSizeBytesStr, 10, 64)
	if err != nil {
		log.Printf("WARNING: Invalid MAX_UPLOAD_SIZE_BYTES format '%s'. Using default 10MB. Error: %v", maxUploadSizeBytesStr, err)
		maxUploadSizeBytes = 10 * 1024 * 1024
	}

	Cfg = &AppConfig{
		Port:     getEnv("PORT", "3000"),
		Host:     getEnv("HOST", "localhost"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DefaultCsvPath:     getEnv("CSV_PATH", "data/dummy.csv"),
		CsvDataDir:         getEnv("CSV_DATA_DIR", "data"),
		MaxUploadSizeBytes: maxUploadSizeBytes,

		CacheExpiration:      getEnvAsDuration("CACHE_EXPIRATION", 15*time.Minute),
		CacheCleanupInterval: getEnvAsDuration("CACHE_CLEANUP_INTERVAL", 30*time.Minute),

		SpreadsheetEndpoint: getEnv("SPREADSHEET_ENDPOINT", ""),
		SpreadsheetPSK:      getEnv("SPREADSHEET_PSK", ""),
		SpreadsheetTimeout:  getEnvAsDuration("SPREADSHEET_TIMEOUT", 15*time.Second),

		PublicDir: getEnv("PUBLIC_DIR", "public"),
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, CsvPath=%s, CsvDataDir=%s",
		Cfg.Port, Cfg.LogLevel, Cfg.DefaultCsvPath, Cfg.CsvDataDir)
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

// getEnvAsDuration retrieves an environment variable as a time.Duration or returns a fallback.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}
