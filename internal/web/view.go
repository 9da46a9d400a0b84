// Package web renders the read-only operator view of a chat session.
package web

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	domain "github.com/donaldgifford/vitam-chat/pkg/types"
)

const (
	timeLayout  = "02/01/2006 15:04"
	clockLayout = "15:04"
)

// TranscriptView is everything the transcript page shows.
type TranscriptView struct {
	SessionID string
	CreatedAt time.Time
	Messages  []domain.ChatMessage
	Cart      domain.CartSummary
	Typing    bool
}

// MessageCount returns the number of transcript entries.
func (v TranscriptView) MessageCount() string {
	return strconv.Itoa(len(v.Messages))
}

func itemCount(n int) string {
	return strconv.Itoa(n)
}

func openState(open bool) string {
	if open {
		return "true"
	}
	return "false"
}

// formatPrice renders a total the way the storefront does: two decimals,
// comma separator, euro suffix.
func formatPrice(v float64) string {
	return strings.Replace(fmt.Sprintf("%.2f", v), ".", ",", 1) + " €"
}
