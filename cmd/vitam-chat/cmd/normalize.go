package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/vitam-chat/internal/config"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <file|->",
	Short: "Normalize a raw upstream payload offline",
	Long: "Read a raw webhook reply from a file (or stdin with \"-\") and print the " +
		"normalized reply as JSON. Chat copy comes from the config file when it exists.",
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	var chat config.ChatConfig
	if cfg, err := config.Load(cfgFile); err == nil {
		chat = cfg.Chat
	}

	data, err := readInput(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	reply := newNormalizer(chat).NormalizeBytes(data)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(reply)
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // path from CLI argument
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
