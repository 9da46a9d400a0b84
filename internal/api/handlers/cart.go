package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/vitam-chat/internal/engine"
	domain "github.com/donaldgifford/vitam-chat/pkg/types"
)

// CartHandler serves the per-session cart.
type CartHandler struct {
	engine *engine.Engine
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(eng *engine.Engine) *CartHandler {
	return &CartHandler{engine: eng}
}

// CartOutput is the cart summary returned by every cart operation.
type CartOutput struct {
	Body domain.CartSummary
}

// AddCartItemInput adds either a full product or one recommended earlier in
// the transcript.
type AddCartItemInput struct {
	SessionPath
	Body struct {
		Product   *domain.Product `json:"product,omitempty"    doc:"Full product to add"`
		ProductID string          `json:"product_id,omitempty" doc:"ID of a product recommended in this session"`
	}
}

// AddCartItemOutput is the result of an add.
type AddCartItemOutput struct {
	Body engine.AddResult
}

// RemoveCartItemInput names the line to remove.
type RemoveCartItemInput struct {
	SessionPath
	ProductID string `path:"productId" doc:"Product ID"`
}

// SetCartOpenInput sets the drawer state.
type SetCartOpenInput struct {
	SessionPath
	Body struct {
		Open bool `json:"open" doc:"Whether the cart drawer is open"`
	}
}

// GetCart returns the cart summary.
func (h *CartHandler) GetCart(_ context.Context, input *SessionPath) (*CartOutput, error) {
	summary, err := h.engine.Cart(input.ID)
	if err != nil {
		return nil, engineError(err)
	}
	return &CartOutput{Body: summary}, nil
}

// AddItem adds one unit of a product. A repeated id increments its quantity.
func (h *CartHandler) AddItem(_ context.Context, input *AddCartItemInput) (*AddCartItemOutput, error) {
	var (
		res *engine.AddResult
		err error
	)

	switch {
	case input.Body.Product != nil:
		if input.Body.Product.ID == "" {
			return nil, huma.Error400BadRequest("product.id is required")
		}
		res, err = h.engine.AddToCart(input.ID, *input.Body.Product)
	case input.Body.ProductID != "":
		res, err = h.engine.AddRecommended(input.ID, input.Body.ProductID)
	default:
		return nil, huma.Error400BadRequest("one of product or product_id is required")
	}
	if err != nil {
		return nil, engineError(err)
	}

	return &AddCartItemOutput{Body: *res}, nil
}

// RemoveItem deletes a product line. Unknown ids leave the cart unchanged.
func (h *CartHandler) RemoveItem(_ context.Context, input *RemoveCartItemInput) (*CartOutput, error) {
	summary, err := h.engine.RemoveFromCart(input.ID, input.ProductID)
	if err != nil {
		return nil, engineError(err)
	}
	return &CartOutput{Body: summary}, nil
}

// Clear empties the cart.
func (h *CartHandler) Clear(_ context.Context, input *SessionPath) (*CartOutput, error) {
	summary, err := h.engine.ClearCart(input.ID)
	if err != nil {
		return nil, engineError(err)
	}
	return &CartOutput{Body: summary}, nil
}

// SetOpen opens or closes the cart drawer.
func (h *CartHandler) SetOpen(_ context.Context, input *SetCartOpenInput) (*CartOutput, error) {
	summary, err := h.engine.SetCartOpen(input.ID, input.Body.Open)
	if err != nil {
		return nil, engineError(err)
	}
	return &CartOutput{Body: summary}, nil
}

// RegisterCartRoutes registers cart endpoints with the Huma API.
func RegisterCartRoutes(api huma.API, h *CartHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-cart",
		Method:      http.MethodGet,
		Path:        "/api/v1/sessions/{id}/cart",
		Summary:     "Get the session cart",
		Tags:        []string{"cart"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetCart)

	huma.Register(api, huma.Operation{
		OperationID: "add-cart-item",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/cart/items",
		Summary:     "Add a product to the cart",
		Description: "Adds a full product, or a product_id recommended earlier in the session. " +
			"Adding an id already in the cart increments its quantity.",
		Tags:   []string{"cart"},
		Errors: []int{http.StatusBadRequest, http.StatusNotFound},
	}, h.AddItem)

	huma.Register(api, huma.Operation{
		OperationID: "remove-cart-item",
		Method:      http.MethodDelete,
		Path:        "/api/v1/sessions/{id}/cart/items/{productId}",
		Summary:     "Remove a product line",
		Tags:        []string{"cart"},
		Errors:      []int{http.StatusNotFound},
	}, h.RemoveItem)

	huma.Register(api, huma.Operation{
		OperationID: "clear-cart",
		Method:      http.MethodDelete,
		Path:        "/api/v1/sessions/{id}/cart",
		Summary:     "Clear the cart",
		Tags:        []string{"cart"},
		Errors:      []int{http.StatusNotFound},
	}, h.Clear)

	huma.Register(api, huma.Operation{
		OperationID: "set-cart-open",
		Method:      http.MethodPut,
		Path:        "/api/v1/sessions/{id}/cart/open",
		Summary:     "Open or close the cart drawer",
		Tags:        []string{"cart"},
		Errors:      []int{http.StatusNotFound},
	}, h.SetOpen)
}
