package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL     string
	AppHost         string
	SessionSecret   string
	FrontendBaseURL string
}

// Load reads the .env file if present, then the process environment.
// System environment variables win over the .env file.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		AppHost:         os.Getenv("APP_HOST"),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		FrontendBaseURL: os.Getenv("FRONTEND_BASE_URL"),
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is not set")
	}
	if cfg.AppHost == "" {
		cfg.AppHost = ":8080"
	}
	if cfg.FrontendBaseURL == "" {
		cfg.FrontendBaseURL = "http://localhost:3000"
	}

	return cfg
}
