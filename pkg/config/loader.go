package config

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// envMappings maps process environment variables to configuration paths. The
// names match what the hosting platform and .env files already use.
var envMappings = map[string]string{
	"HOST":             "server.host",
	"PORT":             "server.port",
	"API_BEARER_TOKEN": "server.bearer_token",
	"ALLOWED_ORIGINS":  "server.allowed_origins",
	"GROQ_API_KEY":     "groq.api_key",
	"MODEL_NAME":       "groq.model",
	"BASE_URL":         "groq.base_url",
	"N8N_WEBHOOK_PROD": "webhooks.prod_url",
	"N8N_WEBHOOK_TEST": "webhooks.test_url",
	"WEBHOOK_TIMEOUT":  "webhooks.timeout",
	"WHATSAPP_PHONE":   "whatsapp.phone",
	"ENVIRONMENT":      "runtime.environment",
	"LOG_LEVEL":        "runtime.log_level",
}

// cleanEnvValue strips surrounding whitespace and quotes, which .env files
// copied between platforms tend to accumulate.
func cleanEnvValue(v string) string {
	v = strings.TrimSpace(v)
	v = strings.Trim(v, `"`)
	v = strings.Trim(v, `'`)
	return v
}

// sensitiveStringDecodeHook is a mapstructure decode hook that converts
// strings to SensitiveString
func sensitiveStringDecodeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(SensitiveString("")) {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return SensitiveString(v), nil
	case []byte:
		return SensitiveString(v), nil
	default:
		return data, nil
	}
}

// Load builds the process configuration: struct defaults overridden by
// environment variables, unmarshaled and validated. Missing mandatory secrets
// abort with an error.
func Load(_ context.Context) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: "",
		TransformFunc: func(key string, value string) (string, any) {
			path, ok := envMappings[key]
			if !ok {
				return "", nil
			}
			return path, cleanEnvValue(value)
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	return unmarshalAndValidate(k)
}

func unmarshalAndValidate(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
				sensitiveStringDecodeHook,
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if cfg.Groq.APIKey.Value() == "" || cfg.Server.BearerToken.Value() == "" {
		return nil, fmt.Errorf("GROQ_API_KEY and API_BEARER_TOKEN must be set")
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}
