package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App AppConfig
	LLM LLMConfig
	OCR OCRConfig
	Log LogConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	CorsAllowedOrigins string
	UploadMaxBytes     int
}

type LLMConfig struct {
	APIKey   string
	Model    string
	Timeout  time.Duration // 0 = no timeout
	MaxTries int           // 1 = single attempt
}

type OCRConfig struct {
	Language    string
	TessdataDir string
}

type LogConfig struct {
	FilePath string // empty = console only
	Level    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}
	return FromEnv()
}

// FromEnv reads the environment without touching .env files.
func FromEnv() *Config {
	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "5000"),
			Environment:        getEnv("GO_ENV", "development"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			UploadMaxBytes:     getEnvAsInt("UPLOAD_MAX_BYTES", 10*1024*1024),
		},
		LLM: LLMConfig{
			APIKey:   getEnv("GOOGLE_API_KEY", ""),
			Model:    getEnv("GEMINI_MODEL", "gemini-2.5-flash-lite"),
			Timeout:  getEnvAsDuration("LLM_TIMEOUT", 0),
			MaxTries: getEnvAsInt("LLM_MAX_TRIES", 1),
		},
		OCR: OCRConfig{
			Language:    getEnv("OCR_LANGUAGE", "eng"),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
		},
		Log: LogConfig{
			FilePath: getEnv("LOG_FILE_PATH", ""),
			Level:    getEnv("LOG_LEVEL", "info"),
		},
	}
}

func (c *Config) IsProduction() bool { return c.App.Environment == "production" }

// Validate checks what the model-backed commands need.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return errors.New("GOOGLE_API_KEY is required")
	}
	if c.App.UploadMaxBytes <= 0 {
		return errors.New("UPLOAD_MAX_BYTES must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
