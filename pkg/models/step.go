package models

// StepType identifies the behavior of a workflow step.
type StepType string

const (
	StepTypeSendMessage   StepType = "send_message"
	StepTypeWait          StepType = "wait"
	StepTypeCondition     StepType = "condition"
	StepTypeSplit         StepType = "split"
	StepTypeUpdateProfile StepType = "update_profile"
	StepTypeWebhook       StepType = "webhook"
	StepTypeEnd           StepType = "end"
)

// Branch routes a condition or split step to a successor. An empty Label is
// the wildcard entry and matches any evaluator output; validation requires
// it to be the last entry so exact matches always win.
type Branch struct {
	Label string `json:"label"`
	Next  string `json:"next"`
}

// Step is one node in a workflow graph. A step with no Next and no matching
// branch is terminal by construction.
type Step struct {
	ID       string         `json:"id"       validate:"required"`
	Type     StepType       `json:"type"     validate:"required"`
	Name     string         `json:"name,omitempty"`
	Config   map[string]any `json:"config,omitempty"`
	Next     string         `json:"next,omitempty"`
	Branches []Branch       `json:"branches,omitempty"`
}

// HasBranches reports whether the step routes through branch entries.
func (s *Step) HasBranches() bool {
	return len(s.Branches) > 0
}

// IsRouting reports whether the step is transparent routing, which is never
// recorded in completed_steps.
func (s *Step) IsRouting() bool {
	return s.Type == StepTypeCondition || s.Type == StepTypeSplit
}
