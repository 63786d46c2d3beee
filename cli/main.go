// Package cli wires the gateway's cobra commands.
package cli

import (
	"github.com/spf13/cobra"
)

// RootCmd builds the top-level command.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gastos-gateway",
		Short: "HTTP gateway for the Gastos Tracker assistant",
		Long: "gastos-gateway authenticates callers, forwards questions and reminders " +
			"to the Groq completion API, and fans events out to the configured n8n webhooks.",
	}

	rootCmd.PersistentFlags().String("env-file", ".env", "Path to the .env file (ignored when absent)")
	rootCmd.PersistentFlags().String("log-level", "", "Override the configured log level (debug|info|warn|error)")

	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(KeepAliveCmd())

	return rootCmd
}
