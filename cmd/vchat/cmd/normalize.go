package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func normalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <file|->",
		Short: "Normalize a raw upstream payload on the server",
		Long: "Send a raw webhook reply to the server's normalizer and print the\n" +
			"resolved shape, text and products. Nothing is added to any session.",
		Example: `  vchat normalize reply.json
  curl -s $WEBHOOK -d '{"chatInput":"bonjour"}' | vchat normalize -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readPayload(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			reply, err := newClient().Normalize(context.Background(), data)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), reply)
			}
			return printReply(cmd.OutOrStdout(), reply)
		},
	}
}

func readPayload(stdin io.Reader, path string) ([]byte, error) {
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

func quotaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quota",
		Short: "Show the upstream rate limit quota",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := newClient().Quota(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), q)
			}
			return printQuota(cmd.OutOrStdout(), q)
		},
	}
}
