package normalize_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/vitam-chat/pkg/normalize"
	domain "github.com/donaldgifford/vitam-chat/pkg/types"
)

const (
	curcumineCard = `{"id":"curcumine-001","name":"Curcumine Bio Liposomale","price":"29,90 €"}`
	charbonCard   = `{"Nom":"Charbon Végétal Activé","Prix":"18,50 €","productUrl":"[Voir](https://x.test/ch)"}`
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func newTestNormalizer() *normalize.Normalizer {
	return normalize.New(normalize.WithMapper(newTestMapper()))
}

func TestNormalize_Shapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		payload       string
		wantText      string
		wantProducts  int
		wantShape     domain.Shape
		wantEnveloped bool
	}{
		{
			name:         "direct reply with products",
			payload:      `{"reply":"Voici mes conseils","products_cards":[` + curcumineCard + `,` + charbonCard + `]}`,
			wantText:     "Voici mes conseils",
			wantProducts: 2,
			wantShape:    domain.ShapeDirect,
		},
		{
			name:         "embedded json in output",
			payload:      `{"output":"{\"reply\":\"Je recommande\",\"products_cards\":[` + jsonEscape(curcumineCard) + `]}"}`,
			wantText:     "Je recommande",
			wantProducts: 1,
			wantShape:    domain.ShapeEmbedded,
		},
		{
			name:         "embedded json in text with code fence",
			payload:      `{"text":"` + jsonEscape("```json\n{\"reply\":\"Fenced\",\"products_cards\":[]}\n```") + `"}`,
			wantText:     "Fenced",
			wantProducts: 0,
			wantShape:    domain.ShapeEmbedded,
		},
		{
			name:         "plain text",
			payload:      `{"text":"plain sentence"}`,
			wantText:     "plain sentence",
			wantProducts: 0,
			wantShape:    domain.ShapePlain,
		},
		{
			name:          "array envelope",
			payload:       `[{"reply":"Bonjour","products_cards":[` + charbonCard + `]}]`,
			wantText:      "Bonjour",
			wantProducts:  1,
			wantShape:     domain.ShapeDirect,
			wantEnveloped: true,
		},
		{
			name:         "empty object",
			payload:      `{}`,
			wantText:     normalize.DefaultFallbackText,
			wantProducts: 0,
			wantShape:    domain.ShapeFallback,
		},
		{
			name:          "empty array",
			payload:       `[]`,
			wantText:      normalize.DefaultFallbackText,
			wantShape:     domain.ShapeFallback,
			wantEnveloped: true,
		},
		{
			name:      "null",
			payload:   `null`,
			wantText:  normalize.DefaultFallbackText,
			wantShape: domain.ShapeFallback,
		},
		{
			name:      "number",
			payload:   `42`,
			wantText:  normalize.DefaultFallbackText,
			wantShape: domain.ShapeFallback,
		},
		{
			name:      "whitespace reply",
			payload:   `{"reply":"   "}`,
			wantText:  normalize.DefaultFallbackText,
			wantShape: domain.ShapeDirect,
		},
		{
			name:         "direct reply beats embedded output",
			payload:      `{"reply":"top level","output":"{\"reply\":\"embedded\",\"products_cards\":[{},{}]}"}`,
			wantText:     "top level",
			wantProducts: 0,
			wantShape:    domain.ShapeDirect,
		},
		{
			name:         "embedded without reply falls through",
			payload:      `{"output":"{\"answer\":\"nope\"}"}`,
			wantText:     `{"answer":"nope"}`,
			wantProducts: 0,
			wantShape:    domain.ShapePlain,
		},
		{
			name:      "malformed embedded json falls through",
			payload:   `{"output":"{not json"}`,
			wantText:  "{not json",
			wantShape: domain.ShapePlain,
		},
		{
			name:         "plain with products list",
			payload:      `{"output":"Voici","products":[` + curcumineCard + `]}`,
			wantText:     "Voici",
			wantProducts: 1,
			wantShape:    domain.ShapePlain,
		},
		{
			name:         "plain prefers non-empty products_cards over products",
			payload:      `{"text":"t","products_cards":[],"products":[` + curcumineCard + `,` + charbonCard + `]}`,
			wantText:     "t",
			wantProducts: 2,
			wantShape:    domain.ShapePlain,
		},
		{
			name:      "structured reply is serialized",
			payload:   `{"reply":{"fr":"Bonjour"}}`,
			wantText:  `{"fr":"Bonjour"}`,
			wantShape: domain.ShapePlain,
		},
		{
			name:      "embedded null reply",
			payload:   `{"output":"{\"reply\":null}"}`,
			wantText:  normalize.DefaultFallbackText,
			wantShape: domain.ShapeEmbedded,
		},
		{
			name:      "string payload",
			payload:   `"juste du texte"`,
			wantText:  "juste du texte",
			wantShape: domain.ShapePlain,
		},
		{
			name:         "string payload holding json",
			payload:      `"{\"reply\":\"inside\",\"products_cards\":[{}]}"`,
			wantText:     "inside",
			wantProducts: 1,
			wantShape:    domain.ShapeEmbedded,
		},
	}

	n := newTestNormalizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := n.Normalize(decode(t, tt.payload))
			assert.Equal(t, tt.wantText, got.Text)
			assert.Len(t, got.Products, tt.wantProducts)
			assert.NotNil(t, got.Products)
			assert.Equal(t, tt.wantShape, got.Shape)
			assert.Equal(t, tt.wantEnveloped, got.Enveloped)
		})
	}
}

func TestNormalize_MapsProductsInOrder(t *testing.T) {
	t.Parallel()

	got := newTestNormalizer().Normalize(decode(t,
		`{"reply":"ok","products_cards":[`+curcumineCard+`,`+charbonCard+`]}`))

	require.Len(t, got.Products, 2)
	assert.Equal(t, "curcumine-001", got.Products[0].ID)
	assert.Equal(t, "Charbon Végétal Activé", got.Products[1].Name)
	assert.Equal(t, "product-1-1718020800000", got.Products[1].ID)
	assert.Equal(t, "https://x.test/ch", got.Products[1].Link)
}

func TestNormalize_Deterministic(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer()
	payload := `[{"output":"{\"reply\":\"r\",\"products_cards\":[{},{\"id\":\"b\"},{}]}"}]`

	first := n.Normalize(decode(t, payload))
	second := n.Normalize(decode(t, payload))
	assert.Equal(t, first, second)
}

func TestNormalize_CustomFallback(t *testing.T) {
	t.Parallel()

	n := normalize.New(normalize.WithFallbackText("No answer"))
	assert.Equal(t, "No answer", n.Normalize(map[string]any{}).Text)
}

func TestNormalize_GoValues(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer()

	tests := []struct {
		name     string
		payload  any
		wantText string
	}{
		{name: "typed map", payload: map[string]string{"reply": "typed"}, wantText: "typed"},
		{name: "raw message", payload: json.RawMessage(`{"text":"raw"}`), wantText: "raw"},
		{name: "bytes not json", payload: []byte("pas du json"), wantText: "pas du json"},
		{name: "unmarshalable", payload: make(chan int), wantText: normalize.DefaultFallbackText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantText, n.Normalize(tt.payload).Text)
		})
	}
}

func TestNormalizeBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		wantText  string
		wantShape domain.Shape
	}{
		{name: "json body", body: `{"reply":"ok"}`, wantText: "ok", wantShape: domain.ShapeDirect},
		{name: "not json", body: "not json", wantText: "not json", wantShape: domain.ShapePlain},
		{name: "empty body", body: "", wantText: normalize.DefaultFallbackText, wantShape: domain.ShapeFallback},
	}

	n := newTestNormalizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := n.NormalizeBytes([]byte(tt.body))
			assert.Equal(t, tt.wantText, got.Text)
			assert.Equal(t, tt.wantShape, got.Shape)
			assert.Empty(t, got.Products)
		})
	}
}

// jsonEscape returns s as it would appear inside a JSON string literal.
func jsonEscape(s string) string {
	data, _ := json.Marshal(s)
	return string(data[1 : len(data)-1])
}
