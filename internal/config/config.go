package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"db"`
	Gemini GeminiConfig `mapstructure:"gemini"`
	Auth   AuthConfig   `mapstructure:"auth"`
	CORS   CORSConfig   `mapstructure:"cors"`

	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig holds the database connection settings.
type DBConfig struct {
	URL string `mapstructure:"url"`
}

// GeminiConfig holds the generative model settings. When LocalURL is set,
// an OpenAI-compatible local endpoint is used instead of the hosted API.
type GeminiConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
	LocalURL string `mapstructure:"local_url"`
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// CORSConfig holds allowed origins for the frontend.
type CORSConfig struct {
	AllowOrigin string `mapstructure:"allow_origin"`
}

// Load reads configuration from .env and environment variables.
func Load() (*Config, error) {
	// .env is optional; environment variables alone are enough.
	_ = godotenv.Load()

	setDefaults()

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("db.url", "DATABASE_URL")
	viper.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	viper.BindEnv("gemini.model", "GEMINI_MODEL")
	viper.BindEnv("gemini.local_url", "LOCAL_LLM_URL")
	viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	viper.BindEnv("cors.allow_origin", "CORS_ALLOW_ORIGIN")
	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("log_level", "LOG_LEVEL")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("gemini.model", "gemini-1.5-flash")
	viper.SetDefault("cors.allow_origin", "http://localhost:8081")
	viper.SetDefault("log_level", "info")
}

func validate(cfg *Config) error {
	if cfg.DB.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Gemini.APIKey == "" && cfg.Gemini.LocalURL == "" {
		return fmt.Errorf("GEMINI_API_KEY or LOCAL_LLM_URL is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}
