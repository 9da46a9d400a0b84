package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/donaldgifford/vitam-chat/internal/api/client"
	domain "github.com/donaldgifford/vitam-chat/pkg/types"
)

type fakeGateway struct {
	mu   sync.Mutex
	sent []string
}

func (g *fakeGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/v1/sessions/s1/messages":
		var body struct {
			Content string `json:"content"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		g.mu.Lock()
		g.sent = append(g.sent, body.Content)
		g.mu.Unlock()

		if body.Content == "boom" {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"status":502,"detail":"Une erreur s'est produite."}`))
			return
		}
		_ = json.NewEncoder(w).Encode(apiclient.SendResult{
			AssistantMessage: domain.ChatMessage{Role: domain.RoleAssistant, Content: "echo: " + body.Content},
		})
	case r.Method == http.MethodGet && r.URL.Path == "/api/v1/sessions/s1/cart":
		_ = json.NewEncoder(w).Encode(domain.CartSummary{})
	default:
		http.NotFound(w, r)
	}
}

func TestChatLoop(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{}
	srv := httptest.NewServer(gw)
	defer srv.Close()

	in := strings.NewReader("bonjour\n\n/cart\nboom\nmerci\n/quit\nignored\n")
	var out bytes.Buffer

	err := chatLoop(context.Background(), apiclient.New(srv.URL), "s1", in, &out)
	require.NoError(t, err)

	assert.Equal(t, []string{"bonjour", "boom", "merci"}, gw.sent)
	assert.Contains(t, out.String(), "assistant: echo: bonjour")
	assert.Contains(t, out.String(), "Cart is empty.")
	assert.Contains(t, out.String(), "error: ")
	assert.Contains(t, out.String(), "assistant: echo: merci")
	assert.NotContains(t, out.String(), "ignored")
}

func TestChatLoop_EOF(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(&fakeGateway{})
	defer srv.Close()

	var out bytes.Buffer
	err := chatLoop(context.Background(), apiclient.New(srv.URL), "s1", strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.Equal(t, "> \n", out.String())
}
