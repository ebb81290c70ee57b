package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// Supported LLM provider names. The provider is chosen once at startup;
// requests never probe for a working client.
const (
	ProviderArk    = "ark"
	ProviderOpenAI = "openai"
)

// Config aggregates every setting of the service.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	FAQ    FAQConfig
	AI     AIConfig
}

// Load reads configuration from the environment. A missing LLM API key is
// an error here so the process refuses to start without one.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: server,
		Store: StoreConfig{
			Path: databasePath(getEnvOrDefault("DATABASE_URL", "clara_sessions.db")),
		},
		FAQ: FAQConfig{
			Path: getEnvOrDefault("FAQ_PATH", "faqs/faqs.json"),
		},
		AI: ai,
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr      string
	SecretKey string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	addr := port
	if !strings.Contains(port, ":") {
		if strings.Contains(port, " ") {
			return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
		}
		addr = ":" + port
	}

	return ServerConfig{
		Addr:      addr,
		SecretKey: getEnvOrDefault("SECRET_KEY", "dev-secret"),
	}, nil
}

// StoreConfig locates the SQLite database file.
type StoreConfig struct {
	Path string
}

// FAQConfig locates the FAQ backing file.
type FAQConfig struct {
	Path string
}

// AIConfig describes the completion-service client.
type AIConfig struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature *float64
	MaxTokens   *int
	Timeout     time.Duration
}

func loadAIConfig() (AIConfig, error) {
	apiKey := strings.TrimSpace(os.Getenv("LLM_API_KEY"))
	if apiKey == "" {
		return AIConfig{}, fmt.Errorf("LLM_API_KEY is not set")
	}

	temperature, err := parseOptionalFloatEnv("LLM_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("LLM_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	timeout := 30 * time.Second
	if raw := strings.TrimSpace(os.Getenv("LLM_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return AIConfig{}, fmt.Errorf("invalid LLM_TIMEOUT value %q: %w", raw, err)
		}
		timeout = d
	}

	return AIConfig{
		Provider:    getEnvOrDefault("LLM_PROVIDER", ProviderArk),
		APIKey:      apiKey,
		Model:       strings.TrimSpace(os.Getenv("LLM_MODEL")),
		BaseURL:     strings.TrimSpace(os.Getenv("LLM_BASE_URL")),
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Timeout:     timeout,
	}, nil
}

// NewChatModel builds the provider implementation named by the config.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if c.Model == "" {
		return nil, fmt.Errorf("LLM_MODEL is not set")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	switch c.Provider {
	case ProviderArk:
		return ark.NewChatModel(ctx, &ark.ChatModelConfig{
			BaseURL:     c.BaseURL,
			APIKey:      c.APIKey,
			Model:       c.Model,
			MaxTokens:   c.MaxTokens,
			Temperature: temperature,
		})
	case ProviderOpenAI:
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL:     c.BaseURL,
			APIKey:      c.APIKey,
			Model:       c.Model,
			MaxTokens:   c.MaxTokens,
			Temperature: temperature,
		})
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", c.Provider)
	}
}

// databasePath accepts either a bare file path or a sqlite:/// URI.
func databasePath(raw string) string {
	return strings.TrimPrefix(raw, "sqlite:///")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
