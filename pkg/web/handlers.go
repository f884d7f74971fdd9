package web

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/outflowhq/outflow/pkg/engine"
	"github.com/outflowhq/outflow/pkg/models"
	"github.com/outflowhq/outflow/pkg/services"
)

type APIHandlers struct {
	workflowService *services.Workflow
	engine          *engine.Engine
	validator       *validator.Validate
}

func NewAPIHandlers(workflowService *services.Workflow, eng *engine.Engine, validate *validator.Validate) *APIHandlers {
	return &APIHandlers{
		workflowService: workflowService,
		engine:          eng,
		validator:       validate,
	}
}

func (h *APIHandlers) GetWorkflows(c fiber.Ctx) error {
	workflows, err := h.workflowService.List(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(workflows)
}

func (h *APIHandlers) GetWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	workflow, err := h.workflowService.Get(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(workflow)
}

func (h *APIHandlers) CreateWorkflow(c fiber.Ctx) error {
	var workflow models.Workflow

	if err := c.Bind().Body(&workflow); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	created, err := h.workflowService.Create(c.Context(), &workflow)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) UpdateWorkflow(c fiber.Ctx) error {
	id := c.Params("id")

	var workflow models.Workflow

	if err := c.Bind().Body(&workflow); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	updated, err := h.workflowService.Update(c.Context(), id, &workflow)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) DeleteWorkflow(c fiber.Ctx) error {
	id := c.Params("id")

	if err := h.workflowService.Delete(c.Context(), id); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// StartExecution puts a customer on a workflow and runs it until it
// parks on a wait step or terminates.
func (h *APIHandlers) StartExecution(c fiber.Ctx) error {
	workflowID := c.Params("id")

	var req StartExecutionRequest

	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	execution, err := h.engine.StartWorkflow(c.Context(), workflowID, req.CustomerID, req.CampaignID)
	if err != nil {
		return handleServiceError(c, err)
	}

	execution, err = h.engine.Drive(c.Context(), execution.ID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(execution)
}

func (h *APIHandlers) GetExecutions(c fiber.Ctx) error {
	executions, err := h.engine.ListExecutions(c.Context(), c.Query("workflow_id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(executions)
}

func (h *APIHandlers) GetExecution(c fiber.Ctx) error {
	execution, err := h.engine.GetExecution(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(execution)
}

func (h *APIHandlers) CancelExecution(c fiber.Ctx) error {
	execution, err := h.engine.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(execution)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	message, healthy := h.workflowService.HealthCheck(c.Context())
	if !healthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{
			Status:  "unhealthy",
			Message: message,
		})
	}

	return c.JSON(HealthResponse{Status: "healthy", Message: message})
}
