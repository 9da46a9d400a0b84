package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/vitam-chat/internal/api/client"
)

func exchangesCmd() *cobra.Command {
	exchangesRoot := &cobra.Command{
		Use:   "exchanges",
		Short: "Inspect the upstream exchange log",
		Long: "Query the log of upstream webhook round trips. Requires the server to\n" +
			"run with the database enabled.",
	}

	exchangesRoot.AddCommand(
		exchangesListCmd(),
		exchangesGetCmd(),
		exchangesStatsCmd(),
	)

	return exchangesRoot
}

func exchangesListCmd() *cobra.Command {
	var (
		f     apiclient.ExchangeFilter
		since time.Duration
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded exchanges",
		Example: `  vchat exchanges list --failed
  vchat exchanges list --shape embedded --since 1h
  vchat exchanges list --session 5f0c... --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.SessionID = sessionIDOrEmpty()
			if since > 0 {
				f.Since = time.Now().Add(-since)
			}
			page, err := newClient().ListExchanges(context.Background(), f)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), page)
			}
			if len(page.Exchanges) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No exchanges found.")
				return nil
			}
			if err := printExchangeTable(cmd.OutOrStdout(), page.Exchanges); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nShowing %d of %d\n", len(page.Exchanges), page.Total)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.Shape, "shape", "", "filter by shape (direct, embedded, plain, fallback, failed)")
	cmd.Flags().DurationVar(&since, "since", 0, "only exchanges newer than this (e.g. 30m, 24h)")
	cmd.Flags().BoolVar(&f.FailedOnly, "failed", false, "only failed exchanges")
	cmd.Flags().IntVar(&f.Limit, "limit", 50, "page size")
	cmd.Flags().IntVar(&f.Offset, "offset", 0, "page offset")
	cmd.Flags().StringVar(&f.OrderBy, "order-by", "", "sort order (created_at, latency)")

	return cmd
}

func exchangesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one exchange with its raw body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newClient().GetExchange(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), e)
			}
			return printExchangeDetail(cmd.OutOrStdout(), e)
		},
	}
}

func exchangesStatsCmd() *cobra.Command {
	var hours int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize exchanges by payload shape",
		Example: `  vchat exchanges stats
  vchat exchanges stats --hours 168`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := newClient().ExchangeStats(context.Background(), hours)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), stats)
			}
			return printStats(cmd.OutOrStdout(), stats)
		},
	}
	cmd.Flags().IntVar(&hours, "hours", 24, "window size in hours")

	return cmd
}
