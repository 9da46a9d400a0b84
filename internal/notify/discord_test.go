package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFailure(reason string, status int) FailureAlert {
	return FailureAlert{
		SessionID:  "6f1c2d9e-5b1a-4c8e-9a43-0c2f4e7b8d11",
		ChatInput:  "Je cherche un complément pour le sommeil",
		Endpoint:   "https://n8n.example.com/webhook/chat",
		Reason:     reason,
		HTTPStatus: status,
		Error:      "upstream returned status 502",
		Latency:    1234 * time.Millisecond,
		OccurredAt: time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestDiscordNotifier_SendFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		alert      FailureAlert
		statusCode int
		wantErr    bool
		errMsg     string
		wantColor  int
		wantStatus string
	}{
		{
			name:       "status failure uses red",
			alert:      testFailure("status", 502),
			statusCode: http.StatusNoContent,
			wantColor:  colorRed,
			wantStatus: "502",
		},
		{
			name:       "oversized reply uses red",
			alert:      testFailure("too_large", 200),
			statusCode: http.StatusNoContent,
			wantColor:  colorRed,
			wantStatus: "200",
		},
		{
			name:       "rate limited uses yellow",
			alert:      testFailure("rate_limited", 0),
			statusCode: http.StatusNoContent,
			wantColor:  colorYellow,
			wantStatus: "-",
		},
		{
			name:       "transport failure uses orange",
			alert:      testFailure("transport", 0),
			statusCode: http.StatusOK,
			wantColor:  colorOrange,
			wantStatus: "-",
		},
		{
			name:       "discord returns 429 rate limited",
			alert:      testFailure("status", 500),
			statusCode: http.StatusTooManyRequests,
			wantErr:    true,
			errMsg:     "rate limited",
		},
		{
			name:       "discord returns 500",
			alert:      testFailure("status", 500),
			statusCode: http.StatusInternalServerError,
			wantErr:    true,
			errMsg:     "discord returned 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var received discordWebhookPayload

			srv := httptest.NewServer(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, http.MethodPost, r.Method)
					assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

					err := json.NewDecoder(r.Body).Decode(&received)
					assert.NoError(t, err)

					w.WriteHeader(tt.statusCode)
				}),
			)
			defer srv.Close()

			d := NewDiscordNotifier(srv.URL)
			err := d.SendFailure(context.Background(), &tt.alert)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			require.Len(t, received.Embeds, 1)

			embed := received.Embeds[0]
			assert.Equal(t, tt.wantColor, embed.Color)
			assert.Contains(t, embed.Title, tt.alert.Reason)
			assert.Equal(t, "2024-06-10T12:00:00Z", embed.Timestamp)

			fieldMap := make(map[string]string)
			for _, f := range embed.Fields {
				fieldMap[f.Name] = f.Value
			}
			assert.Equal(t, tt.alert.SessionID, fieldMap["Session"])
			assert.Equal(t, tt.wantStatus, fieldMap["Status"])
			assert.Equal(t, "1.234s", fieldMap["Latency"])
			assert.Equal(t, tt.alert.Endpoint, fieldMap["Endpoint"])
		})
	}
}

func TestBuildEmbed_Minimal(t *testing.T) {
	t.Parallel()

	embed := buildEmbed(&FailureAlert{Reason: "not_configured"})

	assert.Equal(t, colorOrange, embed.Color)
	assert.Empty(t, embed.Timestamp)
	for _, f := range embed.Fields {
		assert.NotEqual(t, "Endpoint", f.Name)
		if f.Name == "Session" || f.Name == "Message" {
			assert.Equal(t, "-", f.Value)
		}
	}
}

func TestBuildEmbed_TruncatesLongMessage(t *testing.T) {
	t.Parallel()

	alert := testFailure("status", 500)
	alert.ChatInput = strings.Repeat("é", 2000)

	embed := buildEmbed(&alert)
	for _, f := range embed.Fields {
		if f.Name == "Message" {
			assert.Len(t, []rune(f.Value), maxFieldLen)
			assert.True(t, strings.HasSuffix(f.Value, "…"))
		}
	}
}

func TestDiscordNotifier_NetworkError(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("http://127.0.0.1:1") // nothing listening
	alert := testFailure("status", 502)
	err := d.SendFailure(context.Background(), &alert)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending discord webhook")
}

func TestDiscordNotifier_InvalidWebhookURL(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("://not-a-valid-url")
	alert := testFailure("status", 502)
	err := d.SendFailure(context.Background(), &alert)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating discord request")
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	d := NewDiscordNotifier("https://example.com", WithHTTPClient(custom))
	assert.Same(t, custom, d.client)
}
