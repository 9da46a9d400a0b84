package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func sessionCmd() *cobra.Command {
	sessionRoot := &cobra.Command{
		Use:   "session",
		Short: "Manage chat sessions",
	}

	sessionRoot.AddCommand(
		sessionNewCmd(),
		sessionMessagesCmd(),
	)

	return sessionRoot
}

func sessionNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Open a new chat session",
		Example: `  vchat session new
  export VCHAT_SESSION=$(vchat session new --output json | jq -r .id)`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newClient().CreateSession(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), s)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session created: %s\n\n", s.ID)
			return printMessages(cmd.OutOrStdout(), s.Messages)
		},
	}
}

func sessionMessagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "messages",
		Short: "Show the transcript of a session",
		Example: `  vchat session messages --session 5f0c...
  vchat session messages --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := sessionID()
			if err != nil {
				return err
			}
			t, err := newClient().Messages(context.Background(), id)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), t)
			}
			if err := printMessages(cmd.OutOrStdout(), t.Messages); err != nil {
				return err
			}
			if t.Typing {
				fmt.Fprintln(cmd.OutOrStdout(), "(assistant is typing...)")
			}
			return nil
		},
	}
}
