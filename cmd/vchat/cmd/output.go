package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	apiclient "github.com/donaldgifford/vitam-chat/internal/api/client"
	domain "github.com/donaldgifford/vitam-chat/pkg/types"
)

const timeLayout = "2006-01-02 15:04:05"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printMessages(w io.Writer, msgs []domain.ChatMessage) error {
	for i := range msgs {
		if err := printMessage(w, &msgs[i]); err != nil {
			return err
		}
	}
	return nil
}

func printMessage(w io.Writer, m *domain.ChatMessage) error {
	if _, err := fmt.Fprintf(w, "[%s] %s: %s\n",
		m.Timestamp.Local().Format("15:04"), m.Role, m.Content); err != nil {
		return err
	}
	if len(m.Products) == 0 {
		return nil
	}
	tw := newTabWriter(w)
	for i := range m.Products {
		p := &m.Products[i]
		tw.writef("  - %s\t%s\t%s\n", p.ID, truncate(p.Name, 40), orDash(p.Price))
	}
	return tw.finish()
}

func printCart(w io.Writer, c *domain.CartSummary) error {
	if len(c.Items) == 0 {
		_, err := fmt.Fprintln(w, "Cart is empty.")
		return err
	}
	tw := newTabWriter(w)
	tw.writef("ID\tNAME\tQTY\tPRICE\n")
	for i := range c.Items {
		it := &c.Items[i]
		tw.writef("%s\t%s\t%d\t%s\n", it.ID, truncate(it.Name, 40), it.Quantity, orDash(it.Price))
	}
	tw.writef("\t\t%d\t%s\n", c.TotalItems, formatEuro(c.TotalPrice))
	return tw.finish()
}

func printExchangeTable(w io.Writer, exchanges []domain.Exchange) error {
	tw := newTabWriter(w)
	tw.writef("ID\tSESSION\tSHAPE\tPRODUCTS\tSTATUS\tLATENCY\tCREATED\n")
	for i := range exchanges {
		e := &exchanges[i]
		tw.writef("%s\t%s\t%s\t%d\t%d\t%dms\t%s\n",
			e.ID,
			truncate(e.SessionID, 12),
			e.Shape,
			e.ProductCount,
			e.HTTPStatus,
			e.LatencyMS,
			e.CreatedAt.Local().Format(timeLayout),
		)
	}
	return tw.finish()
}

func printExchangeDetail(w io.Writer, e *domain.Exchange) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", e.ID)
	tw.writef("Session:\t%s\n", e.SessionID)
	tw.writef("Input:\t%s\n", e.ChatInput)
	tw.writef("Shape:\t%s\n", e.Shape)
	tw.writef("Enveloped:\t%v\n", e.Enveloped)
	tw.writef("Reply:\t%s\n", truncate(e.ReplyText, 120))
	tw.writef("Products:\t%d\n", e.ProductCount)
	tw.writef("HTTP Status:\t%d\n", e.HTTPStatus)
	tw.writef("Latency:\t%dms\n", e.LatencyMS)
	if e.ErrorText != "" {
		tw.writef("Error:\t%s\n", e.ErrorText)
	}
	tw.writef("Created:\t%s\n", e.CreatedAt.Local().Format(timeLayout))
	if err := tw.finish(); err != nil {
		return err
	}
	if e.RawBody != "" {
		_, err := fmt.Fprintf(w, "\n%s\n", e.RawBody)
		return err
	}
	return nil
}

func printStats(w io.Writer, s *apiclient.ExchangeStats) error {
	tw := newTabWriter(w)
	tw.writef("SHAPE\tCOUNT\tENVELOPED\tAVG PRODUCTS\tAVG LATENCY\n")
	for i := range s.Shapes {
		st := &s.Shapes[i]
		tw.writef("%s\t%d\t%d\t%.1f\t%.0fms\n",
			st.Shape, st.Count, st.Enveloped, st.AvgProducts, st.AvgLatencyMS)
	}
	tw.writef("total\t%d\t\t\t\n", s.Total)
	return tw.finish()
}

func printReply(w io.Writer, r *domain.Reply) error {
	tw := newTabWriter(w)
	tw.writef("Shape:\t%s\n", r.Shape)
	tw.writef("Enveloped:\t%v\n", r.Enveloped)
	tw.writef("Text:\t%s\n", r.Text)
	for i := range r.Products {
		p := &r.Products[i]
		tw.writef("Product %d:\t%s  %s  %s\n", i+1, p.ID, p.Name, orDash(p.Price))
	}
	return tw.finish()
}

func printQuota(w io.Writer, q *apiclient.Quota) error {
	tw := newTabWriter(w)
	if !q.Enabled {
		tw.writef("Rate limiting:\tdisabled\n")
		return tw.finish()
	}
	tw.writef("Daily limit:\t%d\n", q.DailyLimit)
	tw.writef("Used:\t%d\n", q.DailyUsed)
	tw.writef("Remaining:\t%d\n", q.Remaining)
	tw.writef("Resets:\t%s\n", q.ResetAt.Local().Format(timeLayout))
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatEuro(v float64) string {
	return strings.Replace(fmt.Sprintf("%.2f €", v), ".", ",", 1)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
