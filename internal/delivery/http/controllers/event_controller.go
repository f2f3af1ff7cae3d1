package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "electionhub/internal/delivery/http/helpers"
	"electionhub/internal/delivery/http/middleware"
	"electionhub/internal/domain"
)

// CastVoteRequest is the request body for POST /events/{eventID}/vote.
type CastVoteRequest struct {
	OptionID string `json:"option_id"`
}

// Validate implements Validator.
func (c CastVoteRequest) Validate() []string {
	if strings.TrimSpace(c.OptionID) == "" {
		return []string{"option_id is required"}
	}
	return nil
}

// ListEventsResponse is the data of GET /events.
type ListEventsResponse struct {
	Items      []*domain.EventView `json:"items"`
	Pagination h.PaginationMeta    `json:"pagination"`
}

// ListEventsSuccessResponse is the success envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  ListEventsResponse `json:"data"`
	Error *h.APIError        `json:"error"`
}

// EventDetailSuccessResponse is the success envelope for GET /events/{eventID} (200).
type EventDetailSuccessResponse struct {
	Data  *domain.EventDetail `json:"data"`
	Error *h.APIError         `json:"error"`
}

// VoteSuccessResponse is the success envelope for vote endpoints.
type VoteSuccessResponse struct {
	Data  *domain.Vote `json:"data"`
	Error *h.APIError  `json:"error"`
}

// EventController serves the participant-facing event endpoints.
type EventController struct {
	Logger  *slog.Logger
	Service domain.ElectionService
}

func NewEventController(logger *slog.Logger, svc domain.ElectionService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Public, paginated list of events ordered by start time, newest first. Each event carries its derived status.
// @Tags events
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 503 {object} helpers.APIResponse "error.code: store_unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	params := h.ParsePagination(r)
	events, total, err := c.Service.ListEvents(r.Context(), params)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if events == nil {
		events = []*domain.EventView{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{
		Items:      events,
		Pagination: h.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// GetEvent godoc
// @Summary Get an event
// @Description Public view of one event with per-option vote counts. Voter identities are never included.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventDetailSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: store_unavailable"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathEventID(w, r)
	if !ok {
		return
	}
	detail, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, detail)
}

// CastVote godoc
// @Summary Vote on an event
// @Description Records the caller's single vote for one option. A participant may vote at most once per event.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body CastVoteRequest true "Chosen option"
// @Success 201 {object} controllers.VoteSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or invalid_option"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: duplicate_vote or voting_closed"
// @Failure 429 {object} helpers.APIResponse "error.code: rate_limited"
// @Failure 503 {object} helpers.APIResponse "error.code: store_unavailable"
// @Router /events/{eventID}/vote [post]
func (c *EventController) CastVote(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathEventID(w, r)
	if !ok {
		return
	}
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req CastVoteRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	vote, err := c.Service.CastVote(r.Context(), caller, eventID, strings.TrimSpace(req.OptionID))
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, vote)
}

// MyVote godoc
// @Summary Get my vote
// @Description Returns the caller's vote on the event, or 404 when the caller has not voted.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.VoteSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/my-vote [get]
func (c *EventController) MyVote(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathEventID(w, r)
	if !ok {
		return
	}
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	vote, err := c.Service.MyVote(r.Context(), caller, eventID)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, vote)
}

func pathEventID(w http.ResponseWriter, r *http.Request) (string, bool) {
	eventID := strings.TrimSpace(r.PathValue("eventID"))
	if eventID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing eventID")
		return "", false
	}
	return eventID, true
}

func requireCaller(w http.ResponseWriter, r *http.Request) (domain.Caller, bool) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return domain.Caller{}, false
	}
	return caller, true
}
