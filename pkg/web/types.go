// Package web provides the HTTP handlers for workflow management and
// execution control.
package web

// StartExecutionRequest is the request body for starting a customer on a
// workflow.
type StartExecutionRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	CampaignID string `json:"campaign_id,omitempty"`
}

// HealthResponse reports component health for the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
