// Package cmd implements the CLI commands for vitam-chat.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/vitam-chat/internal/config"
)

var (
	cfgFile  string
	envFiles []string
)

var rootCmd = &cobra.Command{
	Use:   "vitam-chat",
	Short: "Chat gateway for the Vitam storefront assistant",
	Long: "An API-first gateway that forwards storefront chat messages to the conversational webhook, " +
		"normalizes its loosely shaped replies into text and product cards, and keeps a per-session cart.",
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return config.LoadEnv(envFiles...)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().
		StringSliceVar(&envFiles, "env-file", []string{".env.local", ".env"}, "env files loaded before the config (missing files are skipped)")

	rootCmd.AddCommand(versionCommand())
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
