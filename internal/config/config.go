package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Upload   UploadConfig   `mapstructure:"upload"`
	LLM      LLMConfig      `mapstructure:"llm"`
}

type ServerConfig struct {
	Port            int `mapstructure:"port" validate:"min=1,max=65535"`
	TimeoutSeconds  int `mapstructure:"timeout_seconds" validate:"min=1"`
	ShutdownSeconds int `mapstructure:"shutdown_seconds" validate:"min=1"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type UploadConfig struct {
	MaxSize      int64    `mapstructure:"max_size" validate:"min=1"`
	AllowedTypes []string `mapstructure:"allowed_types" validate:"min=1"`
}

type LLMConfig struct {
	Provider    string  `mapstructure:"provider" validate:"required"`
	Model       string  `mapstructure:"model" validate:"required"`
	APIKey      string  `mapstructure:"api_key"`
	Temperature float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int     `mapstructure:"max_tokens" validate:"min=1"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.timeout_seconds", 30)
	viper.SetDefault("server.shutdown_seconds", 5)
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.name", "patient_notes")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("upload.max_size", 10<<20)
	viper.SetDefault("upload.allowed_types", []string{"text/plain"})
	viper.SetDefault("llm.provider", "openai")
	viper.SetDefault("llm.model", "gpt-4o-mini")
	viper.SetDefault("llm.temperature", 0.3)
	viper.SetDefault("llm.max_tokens", 1000)

	// Nested keys map to underscored env names, so llm.provider reads
	// LLM_PROVIDER, database.host reads DATABASE_HOST, and so on.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.BindEnv("llm.api_key", "OPENAI_API_KEY")

	// The config file is optional; environment and defaults carry a bare
	// deployment.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}
