package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/donaldgifford/vitam-chat/internal/api/client"
	domain "github.com/donaldgifford/vitam-chat/pkg/types"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "short", in: "abc", max: 10, want: "abc"},
		{name: "exact", in: "abcdef", max: 6, want: "abcdef"},
		{name: "long", in: "abcdefghij", max: 6, want: "abc..."},
		{name: "multibyte", in: "éééééééé", max: 5, want: "éé..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, truncate(tt.in, tt.max))
		})
	}
}

func TestFormatEuro(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "35,00 €", formatEuro(35))
	assert.Equal(t, "0,50 €", formatEuro(0.5))
}

func TestPrintCart(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, printCart(&buf, &domain.CartSummary{}))
		assert.Equal(t, "Cart is empty.\n", buf.String())
	})

	t.Run("items and totals", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		summary := &domain.CartSummary{
			Items: []domain.CartItem{
				{Product: domain.Product{ID: "p1", Name: "Curcumine", Price: "10,00 €"}, Quantity: 2},
				{Product: domain.Product{ID: "p2", Name: "Tisane"}, Quantity: 1},
			},
			TotalItems: 3,
			TotalPrice: 20,
		}
		require.NoError(t, printCart(&buf, summary))

		out := buf.String()
		assert.Contains(t, out, "Curcumine")
		assert.Contains(t, out, "10,00 €")
		assert.Contains(t, out, "20,00 €")
		assert.Contains(t, out, "-") // missing price
	})
}

func TestPrintMessage_WithProducts(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	m := &domain.ChatMessage{
		Role:      domain.RoleAssistant,
		Content:   "Voici mes conseils",
		Timestamp: time.Date(2024, 6, 10, 9, 30, 0, 0, time.Local),
		Products:  []domain.Product{{ID: "bio-1", Name: "Magnésium", Price: "12,50 €"}},
	}
	require.NoError(t, printMessage(&buf, m))

	out := buf.String()
	assert.Contains(t, out, "[09:30] assistant: Voici mes conseils")
	assert.Contains(t, out, "bio-1")
	assert.Contains(t, out, "12,50 €")
}

func TestPrintQuota_Disabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, printQuota(&buf, &apiclient.Quota{}))
	assert.Contains(t, buf.String(), "disabled")
}

func TestPrintStats(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	stats := &apiclient.ExchangeStats{
		Total: 5,
		Shapes: []domain.ShapeStat{
			{Shape: domain.ShapeDirect, Count: 4, AvgProducts: 1.5, AvgLatencyMS: 820},
			{Shape: domain.ShapeFailed, Count: 1},
		},
	}
	require.NoError(t, printStats(&buf, stats))

	out := buf.String()
	assert.Contains(t, out, "direct")
	assert.Contains(t, out, "820ms")
	assert.Contains(t, out, "total")
}
