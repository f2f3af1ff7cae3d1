package controllers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	h "electionhub/internal/delivery/http/helpers"
	"electionhub/internal/domain"
)

// CreateEventRequest is the request body for POST /admin/events.
// Field rules (lengths, option count, time ordering) are enforced by the engine.
type CreateEventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Options     []string   `json:"options"`
	StartAt     *time.Time `json:"start_at,omitempty"`
	EndAt       *time.Time `json:"end_at,omitempty"`
}

// NullableTime distinguishes an omitted timestamp from an explicit null.
type NullableTime struct {
	Set   bool
	Value *time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullableTime) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(b, &t); err != nil {
		return err
	}
	n.Value = &t
	return nil
}

// UpdateEventRequest is the request body for PATCH /admin/events/{eventID}.
// Omitted fields are unchanged; "end_at": null removes the end time.
type UpdateEventRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Options     *[]string    `json:"options"`
	StartAt     *time.Time   `json:"start_at"`
	EndAt       NullableTime `json:"end_at" swaggertype:"string" format:"date-time"`
}

func (u UpdateEventRequest) patch() domain.EventPatch {
	p := domain.EventPatch{
		Title:       u.Title,
		Description: u.Description,
		Options:     u.Options,
		StartAt:     u.StartAt,
	}
	if u.EndAt.Set {
		if u.EndAt.Value == nil {
			p.ClearEndAt = true
		} else {
			p.EndAt = u.EndAt.Value
		}
	}
	return p
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// EventViewSuccessResponse is the success envelope for create and update (201/200).
type EventViewSuccessResponse struct {
	Data  *domain.EventView `json:"data"`
	Error *h.APIError       `json:"error"`
}

// OrganizerEventsSuccessResponse is the success envelope for GET /admin/events (200).
type OrganizerEventsSuccessResponse struct {
	Data  []*domain.OrganizerEventView `json:"data"`
	Error *h.APIError                  `json:"error"`
}

// ResultsSuccessResponse is the success envelope for GET /admin/events/{eventID}/results (200).
type ResultsSuccessResponse struct {
	Data  *domain.Results `json:"data"`
	Error *h.APIError     `json:"error"`
}

// AdminController serves the organizer endpoints under /admin.
type AdminController struct {
	Logger  *slog.Logger
	Service domain.ElectionService
}

func NewAdminController(logger *slog.Logger, svc domain.ElectionService) *AdminController {
	return &AdminController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEvents godoc
// @Summary List all events with vote counts
// @Description Organizer view of every event with status and total votes.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.OrganizerEventsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 503 {object} helpers.APIResponse "error.code: store_unavailable"
// @Router /admin/events [get]
func (c *AdminController) ListEvents(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	events, err := c.Service.ListOrganizerEvents(r.Context(), caller)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if events == nil {
		events = []*domain.OrganizerEventView{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, events)
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an election with 2 to 10 unique options. start_at defaults to now; end_at is optional and must follow start_at.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventViewSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 503 {object} helpers.APIResponse "error.code: store_unavailable"
// @Router /admin/events [post]
func (c *AdminController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req CreateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	view, err := c.Service.CreateEvent(r.Context(), caller, domain.NewEventInput{
		Title:       req.Title,
		Description: req.Description,
		Options:     req.Options,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
	})
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, view)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Partially updates an event. Replacing options is rejected once any vote exists.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body UpdateEventRequest true "Fields to change"
// @Success 200 {object} controllers.EventViewSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: voting_in_progress"
// @Failure 503 {object} helpers.APIResponse "error.code: store_unavailable"
// @Router /admin/events/{eventID} [patch]
func (c *AdminController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathEventID(w, r)
	if !ok {
		return
	}
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	view, err := c.Service.UpdateEvent(r.Context(), caller, eventID, req.patch())
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, view)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes an event and all of its votes. Only the organizer who created the event may delete it.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data.message confirms deletion"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: store_unavailable"
// @Router /admin/events/{eventID} [delete]
func (c *AdminController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathEventID(w, r)
	if !ok {
		return
	}
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), caller, eventID); err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, MessageResponse{Message: "event deleted"})
}

// GetResults godoc
// @Summary Get event results
// @Description Organizer tally per option, in option order, with the participants who chose each option.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.ResultsSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: store_unavailable"
// @Router /admin/events/{eventID}/results [get]
func (c *AdminController) GetResults(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathEventID(w, r)
	if !ok {
		return
	}
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	results, err := c.Service.GetResults(r.Context(), caller, eventID)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, results)
}
