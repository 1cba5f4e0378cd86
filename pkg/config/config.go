package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database   DatabaseConfig
	OpenAI     OpenAIConfig
	Generation GenerationConfig
	CORS       CORSConfig
	Log        LogConfig
	Seed       SeedConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// OpenAIConfig carries the completion provider settings. The credential is
// passed through to the client untouched; nothing here inspects it.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// GenerationConfig tunes the two generation strategies. Initial passes use
// Temperature with no penalties; regeneration uses RefreshTemperature plus
// the presence/frequency penalties to push the model off the rejected draft.
type GenerationConfig struct {
	Temperature        float64
	RefreshTemperature float64
	PresencePenalty    float64
	FrequencyPenalty   float64
	MaxTokens          int64
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SeedConfig gates sample-corpus population on startup.
type SeedConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.OpenAI = OpenAIConfig{
		APIKey:  v.GetString("OPENAI_API_KEY"),
		Model:   v.GetString("OPENAI_MODEL"),
		BaseURL: v.GetString("OPENAI_BASE_URL"),
		Timeout: parseDuration(v.GetString("OPENAI_TIMEOUT"), 90*time.Second),
	}

	cfg.Generation = GenerationConfig{
		Temperature:        v.GetFloat64("GEN_TEMPERATURE"),
		RefreshTemperature: v.GetFloat64("GEN_REFRESH_TEMPERATURE"),
		PresencePenalty:    v.GetFloat64("GEN_PRESENCE_PENALTY"),
		FrequencyPenalty:   v.GetFloat64("GEN_FREQUENCY_PENALTY"),
		MaxTokens:          v.GetInt64("GEN_MAX_TOKENS"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Seed = SeedConfig{
		Enabled: v.GetBool("SEED_SAMPLE_DATA"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "mp_statement_writer")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_MODEL", "gpt-4o")
	v.SetDefault("OPENAI_BASE_URL", "")
	v.SetDefault("OPENAI_TIMEOUT", "90s")

	v.SetDefault("GEN_TEMPERATURE", 0.7)
	v.SetDefault("GEN_REFRESH_TEMPERATURE", 0.9)
	v.SetDefault("GEN_PRESENCE_PENALTY", 0.6)
	v.SetDefault("GEN_FREQUENCY_PENALTY", 0.6)
	v.SetDefault("GEN_MAX_TOKENS", 1500)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SEED_SAMPLE_DATA", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
