package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/vitam-chat/internal/api/handlers"
	"github.com/donaldgifford/vitam-chat/internal/engine"
	upstreamMocks "github.com/donaldgifford/vitam-chat/internal/upstream/mocks"
	domain "github.com/donaldgifford/vitam-chat/pkg/types"
)

var curcumine = map[string]any{
	"id":    "curcumine-001",
	"name":  "Curcumine Bio",
	"price": "29,90 €",
}

func newCartAPI(t *testing.T, opts ...engine.EngineOption) (*engine.Engine, humatest.TestAPI) {
	t.Helper()

	eng := newTestEngine(upstreamMocks.NewMockClient(t), opts...)
	eng.CreateSession()

	_, api := humatest.New(t)
	handlers.RegisterCartRoutes(api, handlers.NewCartHandler(eng))
	return eng, api
}

func decodeCart(t *testing.T, body []byte) domain.CartSummary {
	t.Helper()
	var c domain.CartSummary
	require.NoError(t, json.Unmarshal(body, &c))
	return c
}

func TestGetCart(t *testing.T) {
	t.Parallel()

	_, api := newCartAPI(t)

	resp := api.Get("/api/v1/sessions/s1/cart")
	require.Equal(t, http.StatusOK, resp.Code)

	c := decodeCart(t, resp.Body.Bytes())
	assert.Empty(t, c.Items)
	assert.Zero(t, c.TotalItems)
	assert.InDelta(t, 0, c.TotalPrice, 0)
	assert.False(t, c.IsOpen)

	resp = api.Get("/api/v1/sessions/nope/cart")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestAddCartItem_Product(t *testing.T) {
	t.Parallel()

	_, api := newCartAPI(t)

	resp := api.Post("/api/v1/sessions/s1/cart/items", map[string]any{"product": curcumine})
	require.Equal(t, http.StatusOK, resp.Code)

	var first engine.AddResult
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &first))
	assert.Equal(t, 1, first.Quantity)
	assert.Equal(t, "Curcumine Bio ajouté au panier !", first.Notice)
	assert.False(t, first.Cart.IsOpen)

	resp = api.Post("/api/v1/sessions/s1/cart/items", map[string]any{"product": curcumine})
	require.Equal(t, http.StatusOK, resp.Code)

	var second engine.AddResult
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &second))
	assert.Equal(t, 2, second.Quantity)
	require.Len(t, second.Cart.Items, 1)
	assert.Equal(t, 2, second.Cart.TotalItems)
	assert.InDelta(t, 59.8, second.Cart.TotalPrice, 0.001)
}

func TestAddCartItem_OpenOnAdd(t *testing.T) {
	t.Parallel()

	_, api := newCartAPI(t, engine.WithOpenOnAdd(true))

	resp := api.Post("/api/v1/sessions/s1/cart/items", map[string]any{"product": curcumine})
	require.Equal(t, http.StatusOK, resp.Code)

	var res engine.AddResult
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &res))
	assert.True(t, res.Cart.IsOpen)
}

func TestAddCartItem_Recommended(t *testing.T) {
	t.Parallel()

	mc := upstreamMocks.NewMockClient(t)
	eng := newTestEngine(mc)
	eng.CreateSession()

	mc.EXPECT().
		Send(mock.Anything, mock.Anything).
		Return(okResponse(directBody), nil).
		Once()
	_, err := eng.Send(context.Background(), "s1", "Je suis fatigué")
	require.NoError(t, err)

	_, api := humatest.New(t)
	handlers.RegisterCartRoutes(api, handlers.NewCartHandler(eng))

	resp := api.Post("/api/v1/sessions/s1/cart/items", map[string]any{"product_id": "magnesium-002"})
	require.Equal(t, http.StatusOK, resp.Code)

	var res engine.AddResult
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &res))
	assert.Equal(t, "Magnésium Marin", res.Product.Name)
	assert.InDelta(t, 17.5, res.Cart.TotalPrice, 0.001)
}

func TestAddCartItem_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		body       map[string]any
		wantStatus int
	}{
		{
			name:       "neither product nor product_id",
			path:       "/api/v1/sessions/s1/cart/items",
			body:       map[string]any{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "product with empty id",
			path:       "/api/v1/sessions/s1/cart/items",
			body:       map[string]any{"product": map[string]any{"id": "", "name": "Sans id"}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "product_id never recommended",
			path:       "/api/v1/sessions/s1/cart/items",
			body:       map[string]any{"product_id": "ghost-404"},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unknown session",
			path:       "/api/v1/sessions/nope/cart/items",
			body:       map[string]any{"product": curcumine},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			eng, api := newCartAPI(t)

			resp := api.Post(tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, resp.Code)

			c, err := eng.Cart("s1")
			require.NoError(t, err)
			assert.Empty(t, c.Items)
		})
	}
}

func TestRemoveCartItem(t *testing.T) {
	t.Parallel()

	_, api := newCartAPI(t)
	require.Equal(t, http.StatusOK,
		api.Post("/api/v1/sessions/s1/cart/items", map[string]any{"product": curcumine}).Code)

	resp := api.Delete("/api/v1/sessions/s1/cart/items/unknown")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Len(t, decodeCart(t, resp.Body.Bytes()).Items, 1, "unknown id is a no-op")

	resp = api.Delete("/api/v1/sessions/s1/cart/items/curcumine-001")
	require.Equal(t, http.StatusOK, resp.Code)
	c := decodeCart(t, resp.Body.Bytes())
	assert.Empty(t, c.Items)
	assert.Zero(t, c.TotalItems)
}

func TestClearCart_KeepsOpenState(t *testing.T) {
	t.Parallel()

	_, api := newCartAPI(t)
	require.Equal(t, http.StatusOK,
		api.Post("/api/v1/sessions/s1/cart/items", map[string]any{"product": curcumine}).Code)
	require.Equal(t, http.StatusOK,
		api.Put("/api/v1/sessions/s1/cart/open", map[string]any{"open": true}).Code)

	resp := api.Delete("/api/v1/sessions/s1/cart")
	require.Equal(t, http.StatusOK, resp.Code)

	c := decodeCart(t, resp.Body.Bytes())
	assert.Empty(t, c.Items)
	assert.True(t, c.IsOpen)
}

func TestSetCartOpen(t *testing.T) {
	t.Parallel()

	_, api := newCartAPI(t)

	resp := api.Put("/api/v1/sessions/s1/cart/open", map[string]any{"open": true})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, decodeCart(t, resp.Body.Bytes()).IsOpen)

	resp = api.Put("/api/v1/sessions/s1/cart/open", map[string]any{"open": false})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.False(t, decodeCart(t, resp.Body.Bytes()).IsOpen)

	resp = api.Put("/api/v1/sessions/nope/cart/open", map[string]any{"open": true})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
