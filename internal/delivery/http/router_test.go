package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	_ "electionhub/docs"
	"electionhub/internal/adapters/auth"
	"electionhub/internal/delivery/http/middleware"
	"electionhub/internal/domain"
	"electionhub/internal/repository/memory"
	"electionhub/internal/services"
	"electionhub/internal/validation"
)

const (
	testJWTSecret       = "router-test-secret"
	testOrganizerSecret = "let-me-organize"
)

func newTestServer(t *testing.T, limiter *middleware.RateLimiter) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()

	election := services.NewElectionService(store.Events(), store.Votes(), nil, services.ElectionOptions{
		StoreTimeout:        time.Second,
		EnforceVotingWindow: true,
	}, logger)
	authSvc := services.NewAuthService(store.Users(), auth.NewBcryptHasher(bcrypt.MinCost), auth.NewJWTIssuer(testJWTSecret), nil, services.AuthOptions{
		TokenExpiry:     time.Hour,
		OrganizerSecret: testOrganizerSecret,
		PasswordPolicy:  validation.DefaultPasswordPolicy(),
	}, logger)

	srv := httptest.NewServer(NewRouter(RouterConfig{
		Logger:      logger,
		Election:    election,
		Auth:        authSvc,
		Verifier:    auth.NewJWTVerifier(testJWTSecret),
		RateLimiter: limiter,
	}))
	t.Cleanup(srv.Close)
	return srv
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func do(t *testing.T, srv *httptest.Server, method, path, token, body string, headers ...string) (int, envelope) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, rdr)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func signUp(t *testing.T, srv *httptest.Server, body string, headers ...string) string {
	t.Helper()
	status, env := do(t, srv, http.MethodPost, "/auth/signup", "", body, headers...)
	require.Equal(t, http.StatusCreated, status, "signup: %+v", env.Error)
	var data struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, "Bearer", data.TokenType)
	return data.Token
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t, nil)
	status, env := do(t, srv, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(env.Data))
}

func TestRouter_BoardVote(t *testing.T) {
	srv := newTestServer(t, nil)

	orgToken := signUp(t, srv, `{"name":"Olga","email":"olga@example.com","password":"secret","role":"organizer"}`,
		"X-Organizer-Secret", testOrganizerSecret)
	p1 := signUp(t, srv, `{"name":"Pat","email":"pat@example.com","password":"secret"}`)

	// organizer sign-up without the secret is refused
	status, env := do(t, srv, http.MethodPost, "/auth/signup", "", `{"name":"Eve","email":"eve@example.com","password":"secret","role":"organizer"}`)
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "unauthorized", env.Error.Code)

	status, env = do(t, srv, http.MethodPost, "/admin/events", p1, `{"title":"Board Vote","options":["A","B"]}`)
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "forbidden", env.Error.Code)

	status, env = do(t, srv, http.MethodPost, "/admin/events", orgToken, `{"title":"Board Vote","description":"Pick one chair","options":["A","B"]}`)
	require.Equal(t, http.StatusCreated, status, "create: %+v", env.Error)
	var created domain.EventView
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.Len(t, created.Options, 2)
	assert.Equal(t, domain.StatusActive, created.Status)
	optA, optB := created.Options[0].ID, created.Options[1].ID

	status, _ = do(t, srv, http.MethodPost, "/events/"+created.ID+"/vote", "", `{"option_id":"`+optA+`"}`)
	require.Equal(t, http.StatusUnauthorized, status)

	status, env = do(t, srv, http.MethodPost, "/events/"+created.ID+"/vote", p1, `{"option_id":"`+optA+`"}`)
	require.Equal(t, http.StatusCreated, status, "vote: %+v", env.Error)

	status, env = do(t, srv, http.MethodPost, "/events/"+created.ID+"/vote", p1, `{"option_id":"`+optB+`"}`)
	require.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "duplicate_vote", env.Error.Code)

	status, env = do(t, srv, http.MethodGet, "/events/"+created.ID+"/my-vote", p1, "")
	require.Equal(t, http.StatusOK, status)
	var mine domain.Vote
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	assert.Equal(t, optA, mine.OptionID)

	status, env = do(t, srv, http.MethodGet, "/events/"+created.ID, "", "")
	require.Equal(t, http.StatusOK, status)
	var detail domain.EventDetail
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, 1, detail.TotalVotes)
	assert.Equal(t, 1, detail.Options[0].VoteCount)
	assert.Equal(t, 0, detail.Options[1].VoteCount)
	assert.NotContains(t, string(env.Data), "pat@example.com")

	status, env = do(t, srv, http.MethodPatch, "/admin/events/"+created.ID, orgToken, `{"options":["A","C"]}`)
	require.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "voting_in_progress", env.Error.Code)

	status, env = do(t, srv, http.MethodGet, "/admin/events/"+created.ID+"/results", orgToken, "")
	require.Equal(t, http.StatusOK, status)
	var results domain.Results
	require.NoError(t, json.Unmarshal(env.Data, &results))
	assert.Equal(t, 1, results.TotalVotes)
	require.Len(t, results.Results, 2)
	assert.Equal(t, "A", results.Results[0].Option)
	require.Len(t, results.Results[0].Voters, 1)
	assert.Equal(t, "pat@example.com", results.Results[0].Voters[0].Email)

	status, env = do(t, srv, http.MethodGet, "/events?page=1&page_size=10", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"total":1`)

	status, env = do(t, srv, http.MethodGet, "/events?page=9223372036854775807", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"items":[]`)

	status, _ = do(t, srv, http.MethodDelete, "/admin/events/"+created.ID, orgToken, "")
	require.Equal(t, http.StatusOK, status)
	status, env = do(t, srv, http.MethodGet, "/events/"+created.ID, "", "")
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", env.Error.Code)
}

func TestRouter_ProfileAndPassword(t *testing.T) {
	srv := newTestServer(t, nil)
	token := signUp(t, srv, `{"name":"Pat","email":"pat@example.com","password":"secret"}`)

	status, env := do(t, srv, http.MethodGet, "/users/me", token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"role":"participant"`)
	assert.NotContains(t, string(env.Data), "password")

	status, _ = do(t, srv, http.MethodGet, "/users/me", "not-a-jwt", "")
	require.Equal(t, http.StatusUnauthorized, status)

	status, _ = do(t, srv, http.MethodPatch, "/users/me/password", token, `{"current_password":"secret","new_password":"much-longer"}`)
	require.Equal(t, http.StatusOK, status)

	status, _ = do(t, srv, http.MethodPost, "/auth/login", "", `{"email":"pat@example.com","password":"secret"}`)
	require.Equal(t, http.StatusUnauthorized, status)
	status, _ = do(t, srv, http.MethodPost, "/auth/login", "", `{"email":"pat@example.com","password":"much-longer"}`)
	require.Equal(t, http.StatusOK, status)
}

func TestRouter_RateLimitsAuth(t *testing.T) {
	srv := newTestServer(t, middleware.NewRateLimiter(0.001, 1))

	status, _ := do(t, srv, http.MethodPost, "/auth/login", "", `{"email":"x@example.com","password":"whatever"}`)
	require.Equal(t, http.StatusUnauthorized, status)
	status, env := do(t, srv, http.MethodPost, "/auth/login", "", `{"email":"x@example.com","password":"whatever"}`)
	require.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "rate_limited", env.Error.Code)

	// public reads are not limited
	status, _ = do(t, srv, http.MethodGet, "/events", "", "")
	assert.Equal(t, http.StatusOK, status)
}

func TestRouter_SwaggerDoc(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, err := srv.Client().Get(srv.URL + "/swagger/doc.json")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var doc struct {
		Info  struct{ Title string } `json:"info"`
		Paths map[string]any         `json:"paths"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "Election Hub API", doc.Info.Title)
	assert.Contains(t, doc.Paths, "/events/{eventID}/vote")
}
