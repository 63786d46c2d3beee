package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gastos-labs/gastos-gateway/engine/assistant"
	"github.com/gastos-labs/gastos-gateway/engine/infra/server"
	"github.com/gastos-labs/gastos-gateway/engine/llm"
	"github.com/gastos-labs/gastos-gateway/engine/webhook"
	"github.com/gastos-labs/gastos-gateway/pkg/config"
	"github.com/gastos-labs/gastos-gateway/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// ServeCmd runs the HTTP gateway until interrupted.
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the gateway HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	loadEnvFile(cmd)
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log := newLogger(cmd, cfg)

	client, err := llm.NewGroqClient(&cfg.Groq)
	if err != nil {
		return err
	}
	dispatcher := webhook.NewHTTPDispatcher(cfg.Webhooks.Timeout)
	svc := assistant.NewService(cfg, client, dispatcher, log)

	return server.New(cfg, svc, log).Run(ctx)
}

// loadEnvFile imports the .env file when present; a missing file is fine.
func loadEnvFile(cmd *cobra.Command) {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil || envFile == "" {
		return
	}
	if _, statErr := os.Stat(envFile); statErr != nil {
		return
	}
	_ = godotenv.Load(envFile)
}

func newLogger(cmd *cobra.Command, cfg *config.Config) logger.Logger {
	level := cfg.Runtime.LogLevel
	if override, err := cmd.Flags().GetString("log-level"); err == nil && override != "" {
		level = override
	}
	logCfg := logger.DefaultConfig()
	logCfg.Level = logger.LogLevel(level)
	return logger.NewLogger(logCfg)
}
