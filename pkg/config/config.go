package config

import "time"

// Environment tags carried on every dispatched webhook event.
const (
	EnvTest = "test"
	EnvProd = "prod"
)

// Config represents the complete configuration for the gateway. It is built
// once at process start and treated as immutable for the process lifetime.
type Config struct {
	Server   ServerConfig   `koanf:"server"   validate:"required"`
	Groq     GroqConfig     `koanf:"groq"     validate:"required"`
	Webhooks WebhookConfig  `koanf:"webhooks"`
	WhatsApp WhatsAppConfig `koanf:"whatsapp"`
	Runtime  RuntimeConfig  `koanf:"runtime"  validate:"required"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host           string          `koanf:"host"            env:"HOST"`
	Port           int             `koanf:"port"            env:"PORT"             validate:"min=1,max=65535"`
	BearerToken    SensitiveString `koanf:"bearer_token"    env:"API_BEARER_TOKEN" validate:"required"       sensitive:"true"`
	AllowedOrigins []string        `koanf:"allowed_origins" env:"ALLOWED_ORIGINS"`
}

// GroqConfig contains the upstream completion API configuration.
type GroqConfig struct {
	APIKey  SensitiveString `koanf:"api_key"  env:"GROQ_API_KEY" validate:"required"     sensitive:"true"`
	Model   string          `koanf:"model"    env:"MODEL_NAME"   validate:"required"`
	BaseURL string          `koanf:"base_url" env:"BASE_URL"     validate:"required,url"`
}

// WebhookConfig contains the outbound n8n webhook destinations. Both URLs are
// optional; every configured destination receives every event.
type WebhookConfig struct {
	ProdURL string        `koanf:"prod_url" env:"N8N_WEBHOOK_PROD" validate:"omitempty,url"`
	TestURL string        `koanf:"test_url" env:"N8N_WEBHOOK_TEST" validate:"omitempty,url"`
	Timeout time.Duration `koanf:"timeout"  env:"WEBHOOK_TIMEOUT"`
}

// Configured reports whether at least one webhook destination is set.
func (w *WebhookConfig) Configured() bool {
	return w.ProdURL != "" || w.TestURL != ""
}

// WhatsAppConfig contains the deep-link destination.
type WhatsAppConfig struct {
	Phone string `koanf:"phone" env:"WHATSAPP_PHONE"`
}

// RuntimeConfig contains runtime behavior configuration.
type RuntimeConfig struct {
	Environment string `koanf:"environment" env:"ENVIRONMENT" validate:"oneof=test prod"`
	LogLevel    string `koanf:"log_level"   env:"LOG_LEVEL"   validate:"oneof=debug info warn error"`
}

// Default returns the built-in configuration, before environment overrides.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8000,
			AllowedOrigins: []string{"*"},
		},
		Groq: GroqConfig{
			Model:   "openai/gpt-oss-20b",
			BaseURL: "https://api.groq.com/openai/v1",
		},
		Webhooks: WebhookConfig{
			Timeout: 5 * time.Second,
		},
		Runtime: RuntimeConfig{
			Environment: EnvProd,
			LogLevel:    "info",
		},
	}
}
