package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mentorlink/mentorlink-backend/internal/models"
	"github.com/mentorlink/mentorlink-backend/internal/services"
	"github.com/mentorlink/mentorlink-backend/internal/storage"
)

// SessionHandler handles consultation session requests.
type SessionHandler struct {
	sessions *services.SessionService
	store    storage.Store
}

// NewSessionHandler creates the session handler.
func NewSessionHandler(sessions *services.SessionService, store storage.Store) *SessionHandler {
	return &SessionHandler{sessions: sessions, store: store}
}

// Create starts (or schedules) a session with an expert.
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var req models.SessionRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "ERR_INVALID_BODY", "Invalid request body")
	}
	if req.ExpertID == 0 {
		return Error(c, fiber.StatusBadRequest, "ERR_MISSING_FIELDS", "expert_id is required")
	}

	session, err := h.sessions.Create(userID(c), &req)
	if err != nil {
		return RenderError(c, err)
	}
	return Results(c, fiber.StatusCreated, session)
}

// Get returns one session visible to the caller.
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return Error(c, fiber.StatusBadRequest, "ERR_INVALID_ID", "Session id must be a positive integer")
	}

	session, err := h.sessions.Get(uint(id), userID(c))
	if err != nil {
		return RenderError(c, err)
	}
	return Results(c, fiber.StatusOK, session)
}

// List returns the caller's sessions.
func (h *SessionHandler) List(c *fiber.Ctx) error {
	sessions, err := h.store.ListSessionsByUser(userID(c))
	if err != nil {
		return RenderError(c, err)
	}
	return Results(c, fiber.StatusOK, sessions)
}

// UpdateStatus moves a session along its lifecycle.
func (h *SessionHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return Error(c, fiber.StatusBadRequest, "ERR_INVALID_ID", "Session id must be a positive integer")
	}

	var update models.SessionStatusUpdate
	if err := c.BodyParser(&update); err != nil {
		return Error(c, fiber.StatusBadRequest, "ERR_INVALID_BODY", "Invalid request body")
	}
	if update.CallStatus == "" {
		return Error(c, fiber.StatusBadRequest, "ERR_MISSING_FIELDS", "call_status is required")
	}

	session, err := h.sessions.UpdateStatus(uint(id), userID(c), &update)
	if err != nil {
		return RenderError(c, err)
	}
	return Results(c, fiber.StatusOK, session)
}

// Events returns the append-only event log for a session.
func (h *SessionHandler) Events(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return Error(c, fiber.StatusBadRequest, "ERR_INVALID_ID", "Session id must be a positive integer")
	}

	events, err := h.sessions.Events(uint(id), userID(c))
	if err != nil {
		return RenderError(c, err)
	}
	return Results(c, fiber.StatusOK, events)
}
