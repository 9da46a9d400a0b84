// Package main implements a mock conversational webhook for local development.
// It answers chat messages with canned advice and product cards from a JSON
// catalog, rotating through the reply shapes the real flow is known to emit
// so the gateway's normalizer is exercised end to end.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// Reply shapes the mock can emit.
const (
	shapeDirect   = "direct"
	shapeEmbedded = "embedded"
	shapeFenced   = "fenced"
	shapePlain    = "plain"
)

var rotation = []string{shapeDirect, shapeEmbedded, shapeFenced, shapePlain}

type catalog struct {
	Greeting string  `json:"greeting"`
	Entries  []entry `json:"entries"`
}

type entry struct {
	Keywords []string          `json:"keywords"`
	Reply    string            `json:"reply"`
	Products []json.RawMessage `json:"products"`
}

type chatRequest struct {
	ChatInput string `json:"chatInput"`
	SessionID string `json:"sessionId"`
}

func main() {
	port := flag.Int("port", 5678, "port to listen on")
	catalogFile := flag.String("catalog", "tools/mock-server/testdata/catalog.json", "path to reply catalog")
	token := flag.String("token", "", "require this bearer token on webhook calls")
	latency := flag.Duration("latency", 0, "artificial delay before each reply")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cat, err := loadCatalog(*catalogFile)
	if err != nil {
		logger.Error("failed to load catalog", "path", *catalogFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded catalog", "entries", len(cat.Entries))

	mux := http.NewServeMux()
	mux.Handle("POST /webhook/chat", requireToken(logger, *token, chatHandler(logger, cat, *latency)))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock webhook", "addr", addr, "path", "/webhook/chat")

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadCatalog(path string) (*catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // catalog path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	var cat catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return &cat, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

// requireToken rejects calls without the bearer token. An empty token
// disables the check.
func requireToken(logger *slog.Logger, token string, next http.Handler) http.Handler {
	if token == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			logger.Warn("webhook call without valid token")
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"message": "Authorization data is wrong!",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// match returns the first entry sharing a keyword with input.
func (c *catalog) match(input string) (entry, bool) {
	lower := strings.ToLower(input)
	for _, e := range c.Entries {
		for _, kw := range e.Keywords {
			if strings.Contains(lower, kw) {
				return e, true
			}
		}
	}
	return entry{}, false
}

// chatHandler answers each call in the next shape of the rotation. A
// "shape" query parameter pins the shape; an input containing "erreur"
// fails with 500.
func chatHandler(logger *slog.Logger, cat *catalog, latency time.Duration) http.HandlerFunc {
	var calls atomic.Uint64

	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid JSON body"})
			return
		}

		if latency > 0 {
			select {
			case <-time.After(latency):
			case <-r.Context().Done():
				return
			}
		}

		if strings.Contains(strings.ToLower(req.ChatInput), "erreur") {
			logger.Info("simulating failure", "session", req.SessionID)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"message": "Error in workflow",
			})
			return
		}

		e, ok := cat.match(req.ChatInput)
		if !ok {
			e = entry{Reply: cat.Greeting}
		}
		if e.Products == nil {
			e.Products = []json.RawMessage{}
		}

		shape := r.URL.Query().Get("shape")
		if shape == "" {
			n := calls.Add(1) - 1
			shape = rotation[n%uint64(len(rotation))]
		}

		body, err := render(shape, e)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		w.Write(body)
		logger.Info("reply",
			"session", req.SessionID,
			"shape", shape,
			"matched", ok,
			"products", len(e.Products),
		)
	}
}

// render encodes e in one of the reply shapes.
func render(shape string, e entry) ([]byte, error) {
	direct := map[string]any{
		"reply":          e.Reply,
		"products_cards": e.Products,
	}

	switch shape {
	case shapeDirect:
		return json.Marshal(direct)
	case shapeEmbedded, shapeFenced:
		inner, err := json.Marshal(direct)
		if err != nil {
			return nil, err
		}
		output := string(inner)
		if shape == shapeFenced {
			output = "```json\n" + output + "\n```"
		}
		return json.Marshal([]map[string]string{{"output": output}})
	case shapePlain:
		return json.Marshal(map[string]any{
			"text":     e.Reply,
			"products": e.Products,
		})
	default:
		return nil, fmt.Errorf("unknown shape %q", shape)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}
