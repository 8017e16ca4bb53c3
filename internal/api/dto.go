package api

import (
	"github.com/starford/portfolio/internal/contact"
)

// ContactRequest is the request body for a contact submission.
type ContactRequest = contact.Input

// ContactResponse is returned after a successful submission.
type ContactResponse = contact.Result

// FailureResponse is the body of every failed contact submission or listing.
type FailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message" example:"All fields are required"`
	Error   string `json:"error,omitempty"`
}

// NotFoundResponse is returned for unknown routes.
type NotFoundResponse struct {
	Error string `json:"error" example:"API route not found"`
	Path  string `json:"path" example:"/api/unknown"`
}

// StatusResponse describes the running API.
type StatusResponse struct {
	Status    string   `json:"status" example:"ok"`
	Message   string   `json:"message"`
	Endpoints []string `json:"endpoints"`
}

// HealthResponse reports the service and database state.
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	MongoDB string `json:"mongodb" example:"connected"`
}

// Database states reported by the health endpoint.
const (
	MongoConnected    = "connected"
	MongoDisconnected = "disconnected"
)
