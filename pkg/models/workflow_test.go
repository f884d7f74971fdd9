package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func branchedWorkflow() *Workflow {
	return &Workflow{
		ID:   "wf-1",
		Name: "welcome series",
		Steps: []*Step{
			{ID: "check", Type: StepTypeCondition, Branches: []Branch{
				{Label: "true", Next: "offer"},
				{Label: "false", Next: "nurture"},
				{Label: "", Next: "fallback"},
			}},
			{ID: "offer", Type: StepTypeSendMessage, Next: "done"},
			{ID: "nurture", Type: StepTypeSendMessage, Next: "done"},
			{ID: "fallback", Type: StepTypeSendMessage, Next: "done"},
			{ID: "done", Type: StepTypeEnd},
		},
	}
}

func TestWorkflowGetStep(t *testing.T) {
	wf := branchedWorkflow()

	require.NotNil(t, wf.GetStep("offer"))
	assert.Equal(t, StepTypeSendMessage, wf.GetStep("offer").Type)
	assert.Nil(t, wf.GetStep("missing"))
}

func TestWorkflowGetFirstStep(t *testing.T) {
	wf := branchedWorkflow()

	first := wf.GetFirstStep()
	require.NotNil(t, first)
	assert.Equal(t, "check", first.ID)

	empty := &Workflow{}
	assert.Nil(t, empty.GetFirstStep())
}

func TestWorkflowGetNextStep_ExactBranchMatch(t *testing.T) {
	wf := branchedWorkflow()

	next := wf.GetNextStep("check", "false")
	require.NotNil(t, next)
	assert.Equal(t, "nurture", next.ID)
}

func TestWorkflowGetNextStep_WildcardFallback(t *testing.T) {
	wf := branchedWorkflow()

	next := wf.GetNextStep("check", "maybe")
	require.NotNil(t, next)
	assert.Equal(t, "fallback", next.ID)
}

func TestWorkflowGetNextStep_NoMatchNoWildcard(t *testing.T) {
	wf := branchedWorkflow()
	wf.GetStep("check").Branches = []Branch{
		{Label: "true", Next: "offer"},
	}

	assert.Nil(t, wf.GetNextStep("check", "false"))
}

func TestWorkflowGetNextStep_LinearChain(t *testing.T) {
	wf := branchedWorkflow()

	next := wf.GetNextStep("offer", "")
	require.NotNil(t, next)
	assert.Equal(t, "done", next.ID)

	assert.Nil(t, wf.GetNextStep("done", ""), "terminal step has no successor")
	assert.Nil(t, wf.GetNextStep("missing", ""))
}
