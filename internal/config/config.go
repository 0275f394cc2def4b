package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment names accepted for NODE_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config holds application level configuration loaded from environment variables.
// It is built once in main and injected into constructors; there is no package
// level singleton.
type Config struct {
	Env                 string
	Port                int
	DatabaseURL         string
	OpenAIAPIKey        string
	DiscordClientID     string
	DiscordClientSecret string
	DiscordRedirectURI  string
	ResendAPIKey        string
	UIHomeURL           string

	// Redis is optional; an empty addr disables the session cache.
	RedisAddr string
	RedisPass string
	RedisDB   int
}

// Load reads and validates configuration from the environment. A .env file in
// the working directory is merged in first, without overriding real variables.
// Any missing or malformed required value returns an error naming the key;
// callers treat that as fatal.
func Load() (*Config, error) {
	// Best effort: absence of a .env file is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Env:       getEnv("NODE_ENV", EnvDevelopment),
		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisPass: os.Getenv("REDIS_PASSWORD"),
	}

	switch cfg.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		return nil, fmt.Errorf("NODE_ENV: %q is not one of development, production, test", cfg.Env)
	}

	var err error
	if cfg.DatabaseURL, err = requireURL("DATABASE_URL"); err != nil {
		return nil, err
	}
	if cfg.OpenAIAPIKey, err = require("OPENAI_API_KEY"); err != nil {
		return nil, err
	}
	if cfg.DiscordClientID, err = require("DISCORD_CLIENT_ID"); err != nil {
		return nil, err
	}
	if cfg.DiscordClientSecret, err = require("DISCORD_CLIENT_SECRET"); err != nil {
		return nil, err
	}
	if cfg.DiscordRedirectURI, err = requireURL("DISCORD_REDIRECT_URI"); err != nil {
		return nil, err
	}
	if cfg.ResendAPIKey, err = require("RESEND_API_KEY"); err != nil {
		return nil, err
	}

	cfg.UIHomeURL = getEnv("UI_HOME_URL", "http://localhost:5173")
	if u, err := url.Parse(cfg.UIHomeURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("UI_HOME_URL: %q is not a valid URL", cfg.UIHomeURL)
	}

	if cfg.Port, err = getEnvInt("PORT", 3000); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}

	return cfg, nil
}

func require(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("%s: required environment variable is not set", key)
	}
	return v, nil
}

func requireURL(key string) (string, error) {
	v, err := require(key)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(v)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%s: %q is not a valid URL", key, v)
	}
	return v, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", key, v)
	}
	return parsed, nil
}
