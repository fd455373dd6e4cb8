package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every process-wide setting. It is built once in main and
// passed down to the components that need it.
type Config struct {
	DatabaseURL    string
	JWTSecret      string
	AIAPIKey       string
	EmailSender    string
	BrevoAPIKey    string
	FrontendURL    string
	AllowedOrigins string
	Port           string
}

const (
	defaultFrontendURL = "http://localhost:5173"
	defaultPort        = "5000"
)

// Load reads the .env file (if present) and the process environment and
// returns a validated Config. It returns an error naming every required
// variable that is missing.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AIAPIKey:       os.Getenv("API_KEY"),
		EmailSender:    os.Getenv("EMAIL_SENDER"),
		BrevoAPIKey:    os.Getenv("BREVO_API_KEY"),
		FrontendURL:    os.Getenv("FRONTEND_URL"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		Port:           os.Getenv("PORT"),
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if cfg.AIAPIKey == "" {
		missing = append(missing, "API_KEY")
	}
	if cfg.EmailSender == "" {
		missing = append(missing, "EMAIL_SENDER")
	}
	if cfg.BrevoAPIKey == "" {
		missing = append(missing, "BREVO_API_KEY")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if cfg.FrontendURL == "" {
		log.Printf("⚠️ FRONTEND_URL not set, password reset links will default to %s", defaultFrontendURL)
		cfg.FrontendURL = defaultFrontendURL
	}
	if cfg.AllowedOrigins == "" {
		cfg.AllowedOrigins = strings.Join([]string{
			"https://ai-englishfrontend.vercel.app",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}, ",")
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	return cfg, nil
}
