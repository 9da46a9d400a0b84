// Package domain defines the core business types for the storefront chat gateway.
package domain

import "time"

// Role identifies the author of a chat message.
type Role string

// Role constants.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Shape identifies which upstream payload layout a reply was resolved from.
type Shape string

// Shape constants, in the order the normalizer tries them.
const (
	ShapeDirect   Shape = "direct"
	ShapeEmbedded Shape = "embedded"
	ShapePlain    Shape = "plain"
	ShapeFallback Shape = "fallback"
)

// ShapeFailed marks an exchange whose upstream call never produced a payload.
// The normalizer never returns it.
const ShapeFailed Shape = "failed"

// Shapes lists every normalizer shape in resolution order.
var Shapes = []Shape{ShapeDirect, ShapeEmbedded, ShapePlain, ShapeFallback}

// Product is a canonical product recommendation. Once mapped, its ID never
// changes and is used as the cart merge key.
type Product struct {
	ID          string   `json:"id"                    example:"curcumine-001"`
	Name        string   `json:"name"                  example:"Curcumine Bio Liposomale"`
	Price       string   `json:"price,omitempty"       example:"29,90 €"`
	Image       string   `json:"image,omitempty"       example:"https://cdn.example.test/curcumine.png"`
	Link        string   `json:"link,omitempty"        example:"https://shop.example.test/curcumine"`
	Description string   `json:"description,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
}

// ChatMessage is a single transcript entry. Content is always plain text.
type ChatMessage struct {
	ID        string    `json:"id"                 example:"assistant-1718000000000-2"`
	Role      Role      `json:"role"               example:"assistant"`
	Content   string    `json:"content"`
	Products  []Product `json:"products,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Reply is the normalized form of one upstream payload.
type Reply struct {
	Text      string    `json:"reply_text"`
	Products  []Product `json:"products"`
	Shape     Shape     `json:"shape"     example:"direct"`
	Enveloped bool      `json:"enveloped" doc:"Payload arrived wrapped in an array"`
}

// CartItem is a product line in a cart.
type CartItem struct {
	Product
	Quantity int `json:"quantity" example:"1"`
}

// CartSummary is the externally visible cart state.
type CartSummary struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"total_items" example:"3"`
	TotalPrice float64    `json:"total_price" example:"21"`
	IsOpen     bool       `json:"is_open"`
}

// Exchange records one round trip to the upstream conversational service.
type Exchange struct {
	ID           string    `json:"id"                   db:"id"`
	SessionID    string    `json:"session_id"           db:"session_id"`
	ChatInput    string    `json:"chat_input"           db:"chat_input"`
	RawBody      string    `json:"raw_body,omitempty"   db:"raw_body"`
	Shape        Shape     `json:"shape"                db:"shape"`
	Enveloped    bool      `json:"enveloped"            db:"enveloped"`
	ReplyText    string    `json:"reply_text"           db:"reply_text"`
	ProductCount int       `json:"product_count"        db:"product_count"`
	HTTPStatus   int       `json:"http_status"          db:"http_status"`
	LatencyMS    int64     `json:"latency_ms"           db:"latency_ms"`
	ErrorText    string    `json:"error_text,omitempty" db:"error_text"`
	CreatedAt    time.Time `json:"created_at"           db:"created_at"`
}

// ShapeStat aggregates exchanges per resolved shape. Failed exchanges are
// grouped under the "failed" shape.
type ShapeStat struct {
	Shape        Shape   `json:"shape"          db:"shape"`
	Count        int     `json:"count"          db:"count"`
	Enveloped    int     `json:"enveloped"      db:"enveloped"`
	AvgProducts  float64 `json:"avg_products"   db:"avg_products"`
	AvgLatencyMS float64 `json:"avg_latency_ms" db:"avg_latency_ms"`
}
