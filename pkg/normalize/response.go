// Package normalize turns whatever the upstream conversational service
// returns into a canonical reply: display text plus mapped products.
package normalize

import (
	"encoding/json"
	"strings"

	domain "github.com/donaldgifford/vitam-chat/pkg/types"
)

// DefaultFallbackText replaces replies that carry no usable text.
const DefaultFallbackText = "Désolé, je n'ai pas pu récupérer de texte."

// extraction is the intermediate result of one extractor.
type extraction struct {
	text     string
	products []any
	shape    domain.Shape
}

// extractor inspects the working payload and reports whether it recognised
// its shape.
type extractor func(working any) (extraction, bool)

// extractors run in order; the first match wins. The plain extractor always
// matches, so the list never falls through.
var extractors = []extractor{
	extractDirect,
	extractEmbedded,
	extractPlain,
}

// Normalizer resolves upstream payloads into domain.Reply values.
type Normalizer struct {
	mapper   *Mapper
	fallback string
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithMapper sets the product mapper.
func WithMapper(m *Mapper) Option {
	return func(n *Normalizer) {
		n.mapper = m
	}
}

// WithFallbackText sets the text used when a payload yields none.
func WithFallbackText(text string) Option {
	return func(n *Normalizer) {
		n.fallback = text
	}
}

// New creates a Normalizer.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		mapper:   NewMapper(),
		fallback: DefaultFallbackText,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize resolves payload, a JSON-decoded value, into a reply. It never
// fails: unrecognised payloads degrade to the fallback text with no products.
func (n *Normalizer) Normalize(payload any) domain.Reply {
	working, enveloped := unwrapEnvelope(canonical(payload))

	var res extraction
	for _, extract := range extractors {
		if r, ok := extract(working); ok {
			res = r
			break
		}
	}

	products := make([]domain.Product, 0, len(res.products))
	for i, raw := range res.products {
		products = append(products, n.mapper.MapProduct(raw, i))
	}

	text := res.text
	if strings.TrimSpace(text) == "" {
		text = n.fallback
	}

	return domain.Reply{
		Text:      text,
		Products:  products,
		Shape:     res.shape,
		Enveloped: enveloped,
	}
}

// NormalizeBytes decodes an upstream body and normalizes it. A body that is
// not JSON is treated as a plain string payload.
func (n *Normalizer) NormalizeBytes(data []byte) domain.Reply {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		payload = string(data)
	}
	return n.Normalize(payload)
}

// canonical coerces payload into the value types encoding/json produces.
func canonical(payload any) any {
	switch v := payload.(type) {
	case nil, bool, float64, string, []any, map[string]any:
		return v
	case json.RawMessage:
		return decodeOrString(v)
	case []byte:
		return decodeOrString(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		return decodeOrString(data)
	}
}

func decodeOrString(data []byte) any {
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return string(data)
	}
	return out
}

// unwrapEnvelope takes the first element of an array payload. An empty
// array leaves no working value.
func unwrapEnvelope(payload any) (any, bool) {
	arr, ok := payload.([]any)
	if !ok {
		return payload, false
	}
	if len(arr) == 0 {
		return nil, true
	}
	return arr[0], true
}

// extractDirect matches a top-level string "reply".
func extractDirect(working any) (extraction, bool) {
	obj, ok := working.(map[string]any)
	if !ok {
		return extraction{}, false
	}
	reply, ok := obj["reply"].(string)
	if !ok {
		return extraction{}, false
	}
	return extraction{
		text:     reply,
		products: listOf(obj["products_cards"]),
		shape:    domain.ShapeDirect,
	}, true
}

// extractEmbedded matches a JSON object serialized inside "output" or "text",
// or a working value that is itself such a string.
func extractEmbedded(working any) (extraction, bool) {
	candidate := embeddedCandidate(working)
	if candidate == "" {
		return extraction{}, false
	}

	body := stripCodeFence(candidate)
	if !strings.HasPrefix(body, "{") {
		return extraction{}, false
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(body), &obj); err != nil {
		return extraction{}, false
	}
	reply, ok := obj["reply"]
	if !ok {
		return extraction{}, false
	}

	return extraction{
		text:     textOf(reply),
		products: listOf(obj["products_cards"]),
		shape:    domain.ShapeEmbedded,
	}, true
}

func embeddedCandidate(working any) string {
	switch w := working.(type) {
	case string:
		return w
	case map[string]any:
		for _, key := range []string{"output", "text"} {
			if s, ok := w[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// extractPlain takes whatever text and product list it can find. It always
// matches; a payload with no text is reported as the fallback shape.
func extractPlain(working any) (extraction, bool) {
	res := extraction{shape: domain.ShapeFallback}

	switch w := working.(type) {
	case string:
		res.text = w
	case map[string]any:
		res.text = firstText(w, "reply", "text", "output")
		res.products = firstList(w, "products_cards", "products")
	}

	if strings.TrimSpace(res.text) != "" {
		res.shape = domain.ShapePlain
	}
	return res, true
}

// firstText prefers the first non-empty string field. Failing that, the
// first structured value is serialized so the content stays a string.
func firstText(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	for _, key := range keys {
		if v := obj[key]; isStructured(v) {
			return textOf(v)
		}
	}
	return ""
}

func firstList(obj map[string]any, keys ...string) []any {
	for _, key := range keys {
		if l := listOf(obj[key]); len(l) > 0 {
			return l
		}
	}
	return nil
}

func listOf(v any) []any {
	l, _ := v.([]any)
	return l
}

func isStructured(v any) bool {
	switch t := v.(type) {
	case map[string]any:
		return len(t) > 0
	case []any:
		return len(t) > 0
	case float64:
		return true
	case bool:
		return t
	default:
		return false
	}
}

// textOf renders a reply value as display text.
func textOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
