package template

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/outflowhq/outflow/pkg/models"
)

func TestPersonalize(t *testing.T) {
	customer := &models.Customer{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Location:  "London",
	}

	got := Personalize("Hi {{first_name}} {{last_name}} ({{email}}) from {{location}}", customer)
	assert.Equal(t, "Hi Ada Lovelace (ada@example.com) from London", got)
}

func TestPersonalize_FullName(t *testing.T) {
	customer := &models.Customer{FirstName: "Ada", LastName: "Lovelace"}

	assert.Equal(t, "Dear Ada Lovelace", Personalize("Dear {{full_name}}", customer))
}

func TestPersonalize_Defaults(t *testing.T) {
	empty := &models.Customer{}

	assert.Equal(t, "Hi there,", Personalize("Hi {{first_name}},", empty))
	assert.Equal(t, "bye ", Personalize("bye {{last_name}}", empty))
	assert.Equal(t, "", Personalize("", empty))
}
