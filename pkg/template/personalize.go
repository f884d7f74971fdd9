// Package template renders personalization tokens in message content
// against a customer profile.
package template

import (
	"strings"

	"github.com/outflowhq/outflow/pkg/models"
)

// FallbackFirstName substitutes for an unknown first name so greetings
// still read naturally ("Hi there,").
const FallbackFirstName = "there"

// Personalize replaces {{first_name}}, {{last_name}}, {{full_name}},
// {{email}} and {{location}} tokens with customer data. Unresolved tokens
// render as empty strings, except first_name which falls back to a generic
// placeholder.
func Personalize(text string, customer *models.Customer) string {
	if text == "" {
		return text
	}

	firstName := customer.FirstName
	if firstName == "" {
		firstName = FallbackFirstName
	}

	replacer := strings.NewReplacer(
		"{{first_name}}", firstName,
		"{{last_name}}", customer.LastName,
		"{{full_name}}", customer.FullName(),
		"{{email}}", customer.Email,
		"{{location}}", customer.Location,
	)

	return replacer.Replace(text)
}
