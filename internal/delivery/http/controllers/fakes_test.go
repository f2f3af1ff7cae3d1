package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"electionhub/internal/delivery/http/helpers"
	"electionhub/internal/delivery/http/middleware"
	"electionhub/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var (
	organizer   = domain.Caller{UserID: "org-1", Role: domain.RoleOrganizer}
	participant = domain.Caller{UserID: "p-1", Role: domain.RoleParticipant}
)

// fakeElectionService implements domain.ElectionService and records the last call.
type fakeElectionService struct {
	err error

	views     []*domain.EventView
	total     int
	orgViews  []*domain.OrganizerEventView
	view      *domain.EventView
	detail    *domain.EventDetail
	vote      *domain.Vote
	results   *domain.Results
	gotCaller domain.Caller
	gotEvent  string
	gotOption string
	gotParams domain.PaginationParams
	gotInput  domain.NewEventInput
	gotPatch  domain.EventPatch
}

func (f *fakeElectionService) CreateEvent(ctx context.Context, caller domain.Caller, input domain.NewEventInput) (*domain.EventView, error) {
	f.gotCaller, f.gotInput = caller, input
	return f.view, f.err
}

func (f *fakeElectionService) ListEvents(ctx context.Context, params domain.PaginationParams) ([]*domain.EventView, int, error) {
	f.gotParams = params
	return f.views, f.total, f.err
}

func (f *fakeElectionService) ListOrganizerEvents(ctx context.Context, caller domain.Caller) ([]*domain.OrganizerEventView, error) {
	f.gotCaller = caller
	return f.orgViews, f.err
}

func (f *fakeElectionService) GetEvent(ctx context.Context, eventID string) (*domain.EventDetail, error) {
	f.gotEvent = eventID
	return f.detail, f.err
}

func (f *fakeElectionService) UpdateEvent(ctx context.Context, caller domain.Caller, eventID string, patch domain.EventPatch) (*domain.EventView, error) {
	f.gotCaller, f.gotEvent, f.gotPatch = caller, eventID, patch
	return f.view, f.err
}

func (f *fakeElectionService) DeleteEvent(ctx context.Context, caller domain.Caller, eventID string) error {
	f.gotCaller, f.gotEvent = caller, eventID
	return f.err
}

func (f *fakeElectionService) CastVote(ctx context.Context, caller domain.Caller, eventID, optionID string) (*domain.Vote, error) {
	f.gotCaller, f.gotEvent, f.gotOption = caller, eventID, optionID
	return f.vote, f.err
}

func (f *fakeElectionService) MyVote(ctx context.Context, caller domain.Caller, eventID string) (*domain.Vote, error) {
	f.gotCaller, f.gotEvent = caller, eventID
	return f.vote, f.err
}

func (f *fakeElectionService) GetResults(ctx context.Context, caller domain.Caller, eventID string) (*domain.Results, error) {
	f.gotCaller, f.gotEvent = caller, eventID
	return f.results, f.err
}

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	err         error
	result      *domain.AuthResult
	user        *domain.User
	gotSignUp   domain.SignUpInput
	gotEmail    string
	gotID       string
	gotPassword [2]string
}

func (f *fakeAuthService) SignUp(ctx context.Context, input domain.SignUpInput) (*domain.AuthResult, error) {
	f.gotSignUp = input
	return f.result, f.err
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	f.gotEmail = email
	return f.result, f.err
}

func (f *fakeAuthService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	f.gotID = id
	return f.user, f.err
}

func (f *fakeAuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	f.gotID = userID
	f.gotPassword = [2]string{currentPassword, newPassword}
	return f.err
}

// newRequest builds a request with an optional JSON body, path value and caller.
func newRequest(method, target, body string, pathEventID string, caller *domain.Caller) *http.Request {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "http://test"+target, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if pathEventID != "" {
		req.SetPathValue("eventID", pathEventID)
	}
	if caller != nil {
		req = req.WithContext(middleware.SetCaller(req.Context(), *caller))
	}
	return req
}

// decodeEnvelope decodes the response envelope, unmarshalling data into dataOut when non-nil.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dataOut any) *helpers.APIError {
	t.Helper()
	var raw struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&raw))
	if dataOut != nil && raw.Error == nil {
		require.NoError(t, json.Unmarshal(raw.Data, dataOut))
	}
	return raw.Error
}
