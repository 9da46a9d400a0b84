package client

import (
	"context"
	"net/url"

	domain "github.com/donaldgifford/vitam-chat/pkg/types"
)

// AddResult is the outcome of a cart add.
type AddResult struct {
	Product  domain.Product     `json:"product"`
	Quantity int                `json:"quantity"`
	Notice   string             `json:"notice"`
	Cart     domain.CartSummary `json:"cart"`
}

type addItemRequest struct {
	Product   *domain.Product `json:"product,omitempty"`
	ProductID string          `json:"product_id,omitempty"`
}

// Cart returns the cart summary of a session.
func (c *Client) Cart(ctx context.Context, sessionID string) (*domain.CartSummary, error) {
	var s domain.CartSummary
	if err := c.get(ctx, sessionPath(sessionID)+"/cart", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// AddProduct adds a full product to the cart.
func (c *Client) AddProduct(ctx context.Context, sessionID string, p *domain.Product) (*AddResult, error) {
	return c.addItem(ctx, sessionID, addItemRequest{Product: p})
}

// AddRecommended adds a product recommended earlier in the session.
func (c *Client) AddRecommended(ctx context.Context, sessionID, productID string) (*AddResult, error) {
	return c.addItem(ctx, sessionID, addItemRequest{ProductID: productID})
}

func (c *Client) addItem(ctx context.Context, sessionID string, req addItemRequest) (*AddResult, error) {
	var res AddResult
	if err := c.post(ctx, sessionPath(sessionID)+"/cart/items", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// RemoveItem deletes a product line from the cart.
func (c *Client) RemoveItem(ctx context.Context, sessionID, productID string) (*domain.CartSummary, error) {
	var s domain.CartSummary
	path := sessionPath(sessionID) + "/cart/items/" + url.PathEscape(productID)
	if err := c.del(ctx, path, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ClearCart empties the cart.
func (c *Client) ClearCart(ctx context.Context, sessionID string) (*domain.CartSummary, error) {
	var s domain.CartSummary
	if err := c.del(ctx, sessionPath(sessionID)+"/cart", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SetCartOpen opens or closes the cart drawer.
func (c *Client) SetCartOpen(ctx context.Context, sessionID string, open bool) (*domain.CartSummary, error) {
	var s domain.CartSummary
	req := map[string]bool{"open": open}
	if err := c.put(ctx, sessionPath(sessionID)+"/cart/open", req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
