package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

const (
	colorRed    = 0xE74C3C // upstream answered with an error status
	colorYellow = 0xF1C40F // rate limited
	colorOrange = 0xE67E22 // everything else

	// Discord rejects embed field values longer than this.
	maxFieldLen = 1024
)

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// SendFailure posts a failure alert as a Discord embed.
func (d *DiscordNotifier) SendFailure(ctx context.Context, alert *FailureAlert) error {
	payload := discordWebhookPayload{
		Embeds: []discordEmbed{buildEmbed(alert)},
	}
	return d.post(ctx, payload)
}

func buildEmbed(alert *FailureAlert) discordEmbed {
	status := "-"
	if alert.HTTPStatus > 0 {
		status = strconv.Itoa(alert.HTTPStatus)
	}

	embed := discordEmbed{
		Title:       fmt.Sprintf("Upstream failure: %s", alert.Reason),
		Color:       reasonColor(alert.Reason),
		Description: truncate(alert.Error, maxFieldLen),
		Fields: []discordEmbedField{
			{Name: "Session", Value: orDash(alert.SessionID), Inline: true},
			{Name: "Status", Value: status, Inline: true},
			{Name: "Latency", Value: alert.Latency.Round(time.Millisecond).String(), Inline: true},
			{Name: "Message", Value: orDash(truncate(alert.ChatInput, maxFieldLen))},
		},
	}

	if alert.Endpoint != "" {
		embed.Fields = append(embed.Fields, discordEmbedField{Name: "Endpoint", Value: alert.Endpoint})
	}
	if !alert.OccurredAt.IsZero() {
		embed.Timestamp = alert.OccurredAt.UTC().Format(time.RFC3339)
	}

	return embed
}

func reasonColor(reason string) int {
	switch reason {
	case "status", "too_large":
		return colorRed
	case "rate_limited":
		return colorYellow
	default:
		return colorOrange
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
