package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/starford/portfolio/internal/apperr"
)

const maxBodyBytes = 1 << 20

// Response messages shown to visitors.
const (
	msgInvalidBody     = "Invalid JSON body"
	msgMissingFields   = "All fields are required"
	msgInvalidEmail    = "Invalid email address"
	msgDuplicate       = "This message has already been sent"
	msgEmailDispatch   = "Error while sending the email. Please check the SMTP configuration."
	msgServerError     = "Server error while sending the message"
	msgListFailed      = "Failed to load portfolio content"
	msgAPIRouteMissing = "API route not found"
)

// Handler holds API route handlers.
type Handler struct {
	contacts     ContactSubmitter
	portfolio    PortfolioReader
	db           Pinger
	exposeErrors bool
	pingTimeout  time.Duration
}

// NewHandler creates a new Handler. exposeErrors attaches the underlying
// error text to failure responses and is meant for development only.
func NewHandler(contacts ContactSubmitter, portfolio PortfolioReader, db Pinger, exposeErrors bool) *Handler {
	return &Handler{
		contacts:     contacts,
		portfolio:    portfolio,
		db:           db,
		exposeErrors: exposeErrors,
		pingTimeout:  2 * time.Second,
	}
}

// Status handles GET /api.
//
//	@Summary	API status descriptor
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	StatusResponse
//	@Router		/ [get]
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Status:  "ok",
		Message: "Portfolio API is running",
		Endpoints: []string{
			"GET /api/projects",
			"GET /api/skills",
			"POST /api/contacts",
			"GET /api/health",
		},
	})
}

// Health handles GET /api/health. It always answers 200; the database state
// is reported in the body.
//
//	@Summary	Service and database health
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Router		/health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	state := MongoDisconnected
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), h.pingTimeout)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			slog.Warn("health ping failed", slog.String("error", err.Error()))
		} else {
			state = MongoConnected
		}
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", MongoDB: state})
}

// ListProjects handles GET /api/projects.
//
//	@Summary	List all projects
//	@Tags		portfolio
//	@Produce	json
//	@Success	200	{array}		models.Project
//	@Failure	500	{object}	FailureResponse
//	@Router		/projects [get]
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.portfolio.ListProjects(r.Context())
	if err != nil {
		slog.Error("list projects failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, failure(msgListFailed, err, h.exposeErrors))
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// ListSkills handles GET /api/skills.
//
//	@Summary	List all skills
//	@Tags		portfolio
//	@Produce	json
//	@Success	200	{array}		models.Skill
//	@Failure	500	{object}	FailureResponse
//	@Router		/skills [get]
func (h *Handler) ListSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.portfolio.ListSkills(r.Context())
	if err != nil {
		slog.Error("list skills failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, failure(msgListFailed, err, h.exposeErrors))
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

// SubmitContact handles POST /api/contacts.
//
//	@Summary	Submit the contact form
//	@Tags		contact
//	@Accept		json
//	@Produce	json
//	@Param		body	body		ContactRequest	true	"Contact message"
//	@Success	201		{object}	ContactResponse
//	@Failure	400		{object}	FailureResponse
//	@Failure	500		{object}	FailureResponse
//	@Router		/contacts [post]
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, failure(msgInvalidBody, err, h.exposeErrors))
		return
	}

	res, err := h.contacts.Submit(r.Context(), req)
	if err != nil {
		status, msg := contactFailure(err)
		if status >= http.StatusInternalServerError {
			slog.Error("contact submission failed", slog.String("error", err.Error()))
		}
		writeJSON(w, status, failure(msg, err, h.exposeErrors && status >= http.StatusInternalServerError))
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// contactFailure maps a workflow error to a status and a visitor message.
func contactFailure(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrMissingFields):
		return http.StatusBadRequest, msgMissingFields
	case errors.Is(err, apperr.ErrInvalidEmail):
		return http.StatusBadRequest, msgInvalidEmail
	case errors.Is(err, apperr.ErrDuplicateSubmission):
		return http.StatusBadRequest, msgDuplicate
	case errors.Is(err, apperr.ErrEmailDispatch):
		return http.StatusInternalServerError, msgEmailDispatch
	default:
		return http.StatusInternalServerError, msgServerError
	}
}

// NotFound answers unknown /api routes and unsupported methods.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	notFound(w, r, msgAPIRouteMissing)
}
