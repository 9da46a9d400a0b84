// Package cmd implements the vchat CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/donaldgifford/vitam-chat/internal/api/client"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "vchat",
		Short: "CLI client for the vitam-chat gateway",
		Long: "vchat is a command-line client for the vitam-chat API.\n" +
			"It lets you open chat sessions, talk to the assistant, manage the\n" +
			"session cart and inspect the upstream exchange log from the terminal.",
		SilenceUsage: true,
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.vchat.yaml)")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")
	rootCmd.PersistentFlags().
		String("session", "", "chat session id (or VCHAT_SESSION)")

	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))
	cobra.CheckErr(viper.BindPFlag("session", rootCmd.PersistentFlags().Lookup("session")))

	rootCmd.AddCommand(sessionCmd())
	rootCmd.AddCommand(sendCmd())
	rootCmd.AddCommand(chatCmd())
	rootCmd.AddCommand(cartCmd())
	rootCmd.AddCommand(exchangesCmd())
	rootCmd.AddCommand(normalizeCmd())
	rootCmd.AddCommand(quotaCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".vchat")
	}

	viper.SetEnvPrefix("VCHAT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("server"))
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}

var errNoSession = errors.New("no session: pass --session, set VCHAT_SESSION, or run \"vchat session new\"")

// sessionID returns the session from the flag, config or environment.
func sessionID() (string, error) {
	id := viper.GetString("session")
	if id == "" {
		return "", errNoSession
	}
	return id, nil
}
