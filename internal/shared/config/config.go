package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// SMTPConfig holds the mail transport settings. Credentials live here and
// nowhere else; the mailer receives them by injection at startup.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// Config holds all configuration for the application.
type Config struct {
	AppEnv        string
	HTTPAddr      string
	DatabaseURL   string
	EncryptionKey string
	JWTSecret     string
	UploadDir     string
	CORSOrigins   []string
	SMTP          SMTPConfig
}

// bindings maps viper keys to their environment variable names.
var bindings = map[string]string{
	"app.env":        "APP_ENV",
	"http.addr":      "HTTP_ADDR",
	"database.url":   "DATABASE_URL",
	"encryption.key": "ENCRYPTION_KEY",
	"jwt.secret":     "JWT_SECRET",
	"upload.dir":     "UPLOAD_DIR",
	"cors.origins":   "CORS_ORIGINS",
	"smtp.host":      "SMTP_HOST",
	"smtp.port":      "SMTP_PORT",
	"smtp.user":      "SMTP_USER",
	"smtp.pass":      "SMTP_PASS",
	"smtp.from":      "SMTP_FROM",
}

// Load loads configuration from the environment, reading a .env file first
// when one is present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// A missing .env is fine in prod; anything else we want to know about.
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("could not bind %s: %w", key, err)
		}
	}

	viper.SetDefault("app.env", "dev")
	viper.SetDefault("http.addr", ":5000")
	viper.SetDefault("upload.dir", "uploads")
	viper.SetDefault("cors.origins", "*")
	viper.SetDefault("smtp.port", 587)

	cfg := Config{
		AppEnv:        viper.GetString("app.env"),
		HTTPAddr:      viper.GetString("http.addr"),
		DatabaseURL:   viper.GetString("database.url"),
		EncryptionKey: viper.GetString("encryption.key"),
		JWTSecret:     viper.GetString("jwt.secret"),
		UploadDir:     viper.GetString("upload.dir"),
		CORSOrigins:   splitOrigins(viper.GetString("cors.origins")),
		SMTP: SMTPConfig{
			Host: viper.GetString("smtp.host"),
			Port: viper.GetInt("smtp.port"),
			User: viper.GetString("smtp.user"),
			Pass: viper.GetString("smtp.pass"),
			From: viper.GetString("smtp.from"),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set in environment or .env file")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set in environment or .env file")
	}
	if cfg.EncryptionKey == "" {
		return nil, errors.New("ENCRYPTION_KEY is not set in environment or .env file")
	}
	if len(cfg.EncryptionKey) != 64 {
		return nil, fmt.Errorf("ENCRYPTION_KEY must be a 64-character hex string (32 bytes), but got %d chars", len(cfg.EncryptionKey))
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.User
	}

	return &cfg, nil
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
