package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/vitam-chat/pkg/types"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.CreateSession(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantMsg    string
		wantDetail string
		notFound   bool
	}{
		{
			name:       "huma problem detail",
			status:     http.StatusBadGateway,
			body:       `{"title":"Bad Gateway","status":502,"detail":"Une erreur s'est produite. Veuillez réessayer."}`,
			wantMsg:    "API error (HTTP 502): Une erreur",
			wantDetail: "Une erreur s'est produite. Veuillez réessayer.",
		},
		{
			name:       "echo error body",
			status:     http.StatusServiceUnavailable,
			body:       `{"error":"unavailable"}`,
			wantMsg:    "API error (HTTP 503): unavailable",
			wantDetail: "unavailable",
		},
		{
			name:     "plain body",
			status:   http.StatusNotFound,
			body:     `not found`,
			wantMsg:  "API error (HTTP 404): not found",
			notFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).Messages(context.Background(), "s1")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Equal(t, tt.notFound, IsNotFound(err))

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantDetail, apiErr.Detail)
		})
	}
}

func TestClient_CreateSessionAndSend(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/sessions":
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(Session{
				ID:       "s1",
				Messages: []domain.ChatMessage{{ID: "welcome", Role: domain.RoleAssistant, Content: "Bonjour"}},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/sessions/s1/messages":
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var req map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			_ = json.NewEncoder(w).Encode(SendResult{
				UserMessage:      domain.ChatMessage{Role: domain.RoleUser, Content: req["content"]},
				AssistantMessage: domain.ChatMessage{Role: domain.RoleAssistant, Content: "Essayez le magnésium."},
				Shape:            domain.ShapeDirect,
			})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL + "/")

	s, err := c.CreateSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "s1", s.ID)
	require.Len(t, s.Messages, 1)

	res, err := c.Send(context.Background(), s.ID, "Je suis fatigué")
	require.NoError(t, err)
	assert.Equal(t, "Je suis fatigué", res.UserMessage.Content)
	assert.Equal(t, domain.ShapeDirect, res.Shape)
}

func TestClient_CartOperations(t *testing.T) {
	t.Parallel()

	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Method+" "+r.URL.EscapedPath())

		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost {
			var req addItemRequest
			assert.NoError(t, json.Unmarshal(body, &req))
			_ = json.NewEncoder(w).Encode(AddResult{Quantity: 1, Notice: "ajouté"})
			return
		}
		_ = json.NewEncoder(w).Encode(domain.CartSummary{IsOpen: r.Method == http.MethodPut})
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	_, err := c.Cart(ctx, "s1")
	require.NoError(t, err)
	_, err = c.AddProduct(ctx, "s1", &domain.Product{ID: "curcumine-001", Name: "Curcumine"})
	require.NoError(t, err)
	_, err = c.AddRecommended(ctx, "s1", "magnesium-002")
	require.NoError(t, err)
	_, err = c.RemoveItem(ctx, "s1", "a b")
	require.NoError(t, err)
	_, err = c.ClearCart(ctx, "s1")
	require.NoError(t, err)
	open, err := c.SetCartOpen(ctx, "s1", true)
	require.NoError(t, err)
	assert.True(t, open.IsOpen)

	assert.Equal(t, []string{
		"GET /api/v1/sessions/s1/cart",
		"POST /api/v1/sessions/s1/cart/items",
		"POST /api/v1/sessions/s1/cart/items",
		"DELETE /api/v1/sessions/s1/cart/items/a%20b",
		"DELETE /api/v1/sessions/s1/cart",
		"PUT /api/v1/sessions/s1/cart/open",
	}, got)
}

func TestExchangeFilter_Values(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		filter ExchangeFilter
		want   string
	}{
		{
			name:   "empty filter",
			filter: ExchangeFilter{},
			want:   "",
		},
		{
			name: "all fields",
			filter: ExchangeFilter{
				SessionID:  "s1",
				Shape:      "fallback",
				Since:      time.Date(2024, 6, 10, 14, 0, 0, 0, time.FixedZone("CEST", 2*3600)),
				FailedOnly: true,
				Limit:      10,
				Offset:     20,
				OrderBy:    "latency",
			},
			want: "failed_only=true&limit=10&offset=20&order_by=latency&session_id=s1" +
				"&shape=fallback&since=2024-06-10T12%3A00%3A00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.filter.values().Encode())
		})
	}
}

func TestClient_ExchangesNormalizeQuota(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/exchanges":
			assert.Equal(t, "fallback", r.URL.Query().Get("shape"))
			_ = json.NewEncoder(w).Encode(ExchangePage{
				Exchanges: []domain.Exchange{{ID: "e1", Shape: domain.ShapeFallback}},
				Total:     1,
			})
		case "/api/v1/exchanges/stats":
			assert.Equal(t, "12", r.URL.Query().Get("hours"))
			_ = json.NewEncoder(w).Encode(ExchangeStats{Total: 3})
		case "/api/v1/exchanges/e1":
			_ = json.NewEncoder(w).Encode(domain.Exchange{ID: "e1", RawBody: "{}"})
		case "/api/v1/normalize":
			assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
			body, _ := io.ReadAll(r.Body)
			assert.Equal(t, "plain words", string(body))
			_ = json.NewEncoder(w).Encode(domain.Reply{Text: "plain words", Shape: domain.ShapePlain})
		case "/api/v1/upstream/quota":
			_ = json.NewEncoder(w).Encode(Quota{Enabled: true, DailyLimit: 100, Remaining: 97})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	page, err := c.ListExchanges(ctx, ExchangeFilter{Shape: "fallback"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	stats, err := c.ExchangeStats(ctx, 12)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)

	e, err := c.GetExchange(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "{}", e.RawBody)

	reply, err := c.Normalize(ctx, []byte("plain words"))
	require.NoError(t, err)
	assert.Equal(t, domain.ShapePlain, reply.Shape)

	q, err := c.Quota(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(97), q.Remaining)
}
