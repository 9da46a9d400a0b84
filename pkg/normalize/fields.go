package normalize

import (
	"encoding/json"
	"strconv"
)

// Alias keys per canonical product field, tried in order. Matching is
// case-sensitive; upstream flows mix English, capitalised and French keys.
var (
	idAliases          = []string{"id", "ID"}
	nameAliases        = []string{"name", "Name", "Nom", "title"}
	priceAliases       = []string{"price", "Price", "Prix"}
	imageAliases       = []string{"image", "Image", "img"}
	linkAliases        = []string{"link", "Link", "productUrl", "url"}
	descriptionAliases = []string{"description", "Description"}
	ingredientAliases  = []string{"ingredients", "Ingredients", "Ingrédients"}
)

// lookupString returns the first alias whose value renders as a non-empty
// string.
func lookupString(rec map[string]any, aliases []string) string {
	for _, key := range aliases {
		if s := scalarString(rec[key]); s != "" {
			return s
		}
	}
	return ""
}

// lookupList resolves a list-valued field. A list is kept element by element;
// a non-empty scalar becomes a one-element list.
func lookupList(rec map[string]any, aliases []string) []string {
	for _, key := range aliases {
		switch v := rec[key].(type) {
		case []any:
			out := make([]string, 0, len(v))
			for _, elem := range v {
				if elem == nil {
					continue
				}
				if s := scalarString(elem); s != "" {
					out = append(out, s)
					continue
				}
				if data, err := json.Marshal(elem); err == nil {
					out = append(out, string(data))
				}
			}
			return out
		case []string:
			return append([]string(nil), v...)
		default:
			if s := scalarString(v); s != "" {
				return []string{s}
			}
		}
	}
	return []string{}
}

// scalarString renders strings and numbers; everything else is "".
func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}
