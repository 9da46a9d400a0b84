package normalize

import (
	"fmt"
	"time"

	domain "github.com/donaldgifford/vitam-chat/pkg/types"
)

// DefaultPlaceholderName is used when no name alias resolves.
const DefaultPlaceholderName = "Produit sans nom"

// DefaultIDPrefix prefixes synthesized product ids.
const DefaultIDPrefix = "product"

// IDGenerator synthesizes ids for products the upstream sent without one.
type IDGenerator interface {
	ProductID(index int) string
}

// ClockIDs builds ids as "<prefix>-<index>-<unixMillis>". Two products with
// the same index mapped in the same millisecond collide; the index keeps
// siblings within one reply apart.
type ClockIDs struct {
	Prefix string
	Now    func() time.Time
}

// ProductID implements IDGenerator.
func (c ClockIDs) ProductID(index int) string {
	prefix := c.Prefix
	if prefix == "" {
		prefix = DefaultIDPrefix
	}
	now := c.Now
	if now == nil {
		now = time.Now
	}
	return fmt.Sprintf("%s-%d-%d", prefix, index, now().UnixMilli())
}

// Mapper converts loosely keyed product records into canonical products.
type Mapper struct {
	ids         IDGenerator
	placeholder string
}

// MapperOption configures a Mapper.
type MapperOption func(*Mapper)

// WithIDGenerator overrides the id synthesizer.
func WithIDGenerator(g IDGenerator) MapperOption {
	return func(m *Mapper) {
		m.ids = g
	}
}

// WithPlaceholderName sets the name used when none resolves.
func WithPlaceholderName(name string) MapperOption {
	return func(m *Mapper) {
		m.placeholder = name
	}
}

// NewMapper creates a Mapper with the given options.
func NewMapper(opts ...MapperOption) *Mapper {
	m := &Mapper{
		ids:         ClockIDs{Prefix: DefaultIDPrefix},
		placeholder: DefaultPlaceholderName,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MapProduct resolves each canonical field from the first matching alias.
// Anything that is not a JSON object maps to a placeholder product.
func (m *Mapper) MapProduct(raw any, index int) domain.Product {
	rec, _ := raw.(map[string]any)

	p := domain.Product{
		ID:          lookupString(rec, idAliases),
		Name:        lookupString(rec, nameAliases),
		Price:       lookupString(rec, priceAliases),
		Image:       CleanURL(lookupString(rec, imageAliases)),
		Link:        CleanURL(lookupString(rec, linkAliases)),
		Description: lookupString(rec, descriptionAliases),
		Ingredients: lookupList(rec, ingredientAliases),
	}

	if p.Name == "" {
		p.Name = m.placeholder
	}
	if p.ID == "" {
		p.ID = m.ids.ProductID(index)
	}

	return p
}

// MapProduct maps raw with a default Mapper.
func MapProduct(raw any, index int) domain.Product {
	return NewMapper().MapProduct(raw, index)
}
