package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/vitam-chat/internal/api/client"
)

func sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <message>",
		Short: "Send one message and print the reply",
		Long: "Send a message to the assistant in the current session. The reply text\n" +
			"and any recommended products are printed; product ids can be passed to\n" +
			"\"vchat cart add\".",
		Example: `  vchat send --session 5f0c... "Que conseillez-vous pour le sommeil ?"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := sessionID()
			if err != nil {
				return err
			}
			res, err := newClient().Send(context.Background(), id, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), res)
			}
			return printMessage(cmd.OutOrStdout(), &res.AssistantMessage)
		},
	}
}

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat",
		Long: "Read messages line by line from stdin and print each reply. Without a\n" +
			"session a new one is opened. Type /cart to show the cart and /quit to leave.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := newClient()
			ctx := context.Background()

			id := sessionIDOrEmpty()
			if id == "" {
				s, err := c.CreateSession(ctx)
				if err != nil {
					return err
				}
				id = s.ID
				fmt.Fprintf(cmd.OutOrStdout(), "Session %s\n", id)
				if err := printMessages(cmd.OutOrStdout(), s.Messages); err != nil {
					return err
				}
			}
			return chatLoop(ctx, c, id, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func sessionIDOrEmpty() string {
	id, err := sessionID()
	if err != nil {
		return ""
	}
	return id
}

func chatLoop(ctx context.Context, c *apiclient.Client, id string, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/cart":
			summary, err := c.Cart(ctx, id)
			if err != nil {
				return err
			}
			if err := printCart(out, summary); err != nil {
				return err
			}
			continue
		}

		res, err := c.Send(ctx, id, line)
		if err != nil {
			// A failed send keeps the session usable; report and carry on.
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if err := printMessage(out, &res.AssistantMessage); err != nil {
			return err
		}
	}
}
