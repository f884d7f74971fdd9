package services

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/outflowhq/outflow/pkg/models"
)

// stepConfigSchemas maps each step type to the JSON schema its config
// must satisfy. Routing and terminal steps carry their own minimal
// schemas so a typo'd config fails at save time, not at dispatch.
var stepConfigSchemas = map[models.StepType]map[string]any{
	models.StepTypeSendMessage: {
		"type": "object",
		"properties": map[string]any{
			"channel": map[string]any{
				"type": "string",
				"enum": []string{"email", "sms", "push"},
			},
			"subject": map[string]any{"type": "string"},
			"body":    map[string]any{"type": "string"},
		},
		"required": []string{"channel"},
	},
	models.StepTypeWait: {
		"type": "object",
		"properties": map[string]any{
			"duration": map[string]any{
				"type":        "string",
				"description": "e.g. \"1 hour\", \"2 days\", \"1 week\"",
			},
		},
	},
	models.StepTypeCondition: {
		"type": "object",
		"properties": map[string]any{
			"condition": map[string]any{"type": "string"},
		},
		"required": []string{"condition"},
	},
	models.StepTypeSplit: {
		"type": "object",
		"properties": map[string]any{
			"condition": map[string]any{"type": "string"},
		},
		"required": []string{"condition"},
	},
	models.StepTypeUpdateProfile: {
		"type": "object",
		"properties": map[string]any{
			"updates": map[string]any{
				"type":          "object",
				"minProperties": 1,
			},
		},
		"required": []string{"updates"},
	},
	models.StepTypeWebhook: {
		"type": "object",
		"properties": map[string]any{
			"target":  map[string]any{"type": "string", "format": "uri"},
			"payload": map[string]any{"type": "object"},
		},
		"required": []string{"target"},
	},
	models.StepTypeEnd: {
		"type": "object",
	},
}

// validateStepConfig checks a step's config against the schema for its
// type.
func validateStepConfig(step *models.Step) error {
	schema, ok := stepConfigSchemas[step.Type]
	if !ok {
		return fmt.Errorf("%w: step %s has unknown type %q", ErrInvalidStepConfig, step.ID, step.Type)
	}

	config := step.Config
	if config == nil {
		config = map[string]any{}
	}

	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(config))
	if err != nil {
		return fmt.Errorf("failed to validate step %s config: %w", step.ID, err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}

		return fmt.Errorf("%w: step %s: %s", ErrInvalidStepConfig, step.ID, strings.Join(details, "; "))
	}

	return nil
}
