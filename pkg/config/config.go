package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port          string
	DatabaseURL   string
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	// LLMProvider selects the chat backend: "gemini" (default) or "openrouter".
	LLMProvider        string
	GeminiAPIKey       string
	GeminiModel        string
	OpenRouterAPIKey   string
	OpenRouterBase     string
	OpenRouterModel    string
	OpenRouterAppTitle string
	OpenRouterReferer  string

	GoogleClientID string

	GenerateTimeout time.Duration
	LoadingTick     time.Duration

	LogLevel    string
	LogJSON     bool
	LogFile     string
	SessionFile string
}

// fileConfig is the optional YAML overlay pointed to by CAREERPILOT_CONFIG.
// Environment variables always win over values from the file.
type fileConfig struct {
	Port            string `yaml:"port"`
	DatabaseURL     string `yaml:"database_url"`
	JWTIssuer       string `yaml:"jwt_issuer"`
	JWTTTLMinutes   int    `yaml:"jwt_ttl_minutes"`
	LLMProvider     string `yaml:"llm_provider"`
	GeminiModel     string `yaml:"gemini_model"`
	OpenRouterBase  string `yaml:"openrouter_base"`
	OpenRouterModel string `yaml:"openrouter_model"`
	GoogleClientID  string `yaml:"google_client_id"`
	GenerateTimeout string `yaml:"generate_timeout"`
	LoadingTick     string `yaml:"loading_tick"`
	LogLevel        string `yaml:"log_level"`
	LogJSON         bool   `yaml:"log_json"`
	LogFile         string `yaml:"log_file"`
	SessionFile     string `yaml:"session_file"`
}

// Load reads environment variables, optionally from a .env file if present,
// on top of the YAML file named by CAREERPILOT_CONFIG.
func Load() (Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	var file fileConfig
	if path := os.Getenv("CAREERPILOT_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg := Config{
		Port:          getEnv("PORT", or(file.Port, "8080")),
		DatabaseURL:   getEnv("DATABASE_URL", file.DatabaseURL),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:     getEnv("JWT_ISSUER", or(file.JWTIssuer, "careerpilot")),
		JWTTTLMinutes: getEnvInt("JWT_TTL_MINUTES", orInt(file.JWTTTLMinutes, 7*24*60)),

		LLMProvider:        getEnv("LLM_PROVIDER", or(file.LLMProvider, "gemini")),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getEnv("GEMINI_MODEL", or(file.GeminiModel, "gemini-2.5-flash")),
		OpenRouterAPIKey:   os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBase:     getEnv("OPENROUTER_BASE_URL", file.OpenRouterBase),
		OpenRouterModel:    getEnv("OPENROUTER_MODEL", file.OpenRouterModel),
		OpenRouterAppTitle: getEnv("OPENROUTER_APP_TITLE", "CareerPilot AI"),
		OpenRouterReferer:  os.Getenv("OPENROUTER_REFERER"),

		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", file.GoogleClientID),

		GenerateTimeout: getEnvDuration("GENERATE_TIMEOUT", orDuration(file.GenerateTimeout, 90*time.Second)),
		LoadingTick:     getEnvDuration("LOADING_TICK", orDuration(file.LoadingTick, 1200*time.Millisecond)),

		LogLevel:    getEnv("LOG_LEVEL", or(file.LogLevel, "info")),
		LogJSON:     getEnvBool("LOG_JSON", file.LogJSON),
		LogFile:     getEnv("LOG_FILE", file.LogFile),
		SessionFile: getEnv("SESSION_FILE", or(file.SessionFile, defaultSessionFile())),
	}
	return cfg, nil
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".careerpilot-session.json"
	}
	return dir + string(os.PathSeparator) + "careerpilot" + string(os.PathSeparator) + "session.json"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func or(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func orInt(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func orDuration(v string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	return def
}
