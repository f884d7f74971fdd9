package models

import (
	"strings"
	"time"
)

// Customer event types read by condition predicates.
const (
	EventEmailOpened = "email_opened"
	EventEmailSent   = "email_sent"
	EventPurchase    = "purchase"
	EventCartUpdated = "cart_updated"
)

// CustomerEvent is one entry in a customer's behavioral history.
type CustomerEvent struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data,omitempty"`
}

// Customer is the profile snapshot the engine reads for personalization,
// delivery addressing and condition evaluation.
type Customer struct {
	ID        string `json:"id"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Location  string `json:"location,omitempty"`

	TotalPurchases int  `json:"total_purchases"`
	CartActive     bool `json:"cart_active"`

	Attributes map[string]any  `json:"attributes,omitempty"`
	Events     []CustomerEvent `json:"events,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName joins the name parts, falling back to "Unknown" when both are
// empty.
func (c *Customer) FullName() string {
	parts := make([]string, 0, 2)

	if c.FirstName != "" {
		parts = append(parts, c.FirstName)
	}

	if c.LastName != "" {
		parts = append(parts, c.LastName)
	}

	if len(parts) == 0 {
		return "Unknown"
	}

	return strings.Join(parts, " ")
}

// HasEvent reports whether the customer's history contains an event of the
// given type.
func (c *Customer) HasEvent(eventType string) bool {
	for _, event := range c.Events {
		if event.Type == eventType {
			return true
		}
	}

	return false
}

// AddressFor returns the delivery address for a channel, or empty when the
// customer cannot be reached on it.
func (c *Customer) AddressFor(channel string) string {
	switch channel {
	case "email":
		return c.Email
	case "sms":
		return c.Phone
	case "push":
		if token, ok := c.Attributes["device_token"].(string); ok {
			return token
		}

		return ""
	default:
		return ""
	}
}
