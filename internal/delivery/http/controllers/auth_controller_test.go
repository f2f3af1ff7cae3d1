package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"electionhub/internal/delivery/http/helpers"
	"electionhub/internal/domain"
)

func TestAuthController_SignUp(t *testing.T) {
	user := &domain.User{ID: "u-1", Name: "Olga", Email: "olga@example.com", Role: domain.RoleOrganizer, PasswordHash: "secret-hash"}

	tests := []struct {
		name       string
		body       string
		secret     string
		err        error
		wantStatus int
		wantCode   string
		wantRole   domain.Role
	}{
		{
			name:       "participant by default",
			body:       `{"name":"Pat","email":"pat@example.com","password":"secret"}`,
			wantStatus: http.StatusCreated,
			wantRole:   domain.RoleParticipant,
		},
		{
			name:       "organizer forwards secret header",
			body:       `{"name":"Olga","email":"olga@example.com","password":"secret","role":"Organizer"}`,
			secret:     "s3cret",
			wantStatus: http.StatusCreated,
			wantRole:   domain.RoleOrganizer,
		},
		{
			name:       "unknown role",
			body:       `{"name":"Pat","email":"pat@example.com","password":"secret","role":"admin"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "wrong organizer secret",
			body:       `{"name":"Olga","email":"olga@example.com","password":"secret","role":"organizer"}`,
			err:        domain.ErrUnauthorized,
			wantStatus: http.StatusUnauthorized,
			wantCode:   helpers.ErrCodeUnauthorized,
		},
		{
			name:       "duplicate email",
			body:       `{"name":"Pat","email":"pat@example.com","password":"secret"}`,
			err:        domain.ErrDuplicateEmail,
			wantStatus: http.StatusConflict,
			wantCode:   helpers.ErrCodeConflict,
		},
		{
			name:       "validation failure",
			body:       `{"name":"","email":"nope","password":"x"}`,
			err:        domain.NewValidationError([]string{"name is required"}),
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAuthService{err: tt.err, result: &domain.AuthResult{Token: "jwt", User: user}}
			req := newRequest(http.MethodPost, "/auth/signup", tt.body, "", nil)
			if tt.secret != "" {
				req.Header.Set(OrganizerSecretHeader, tt.secret)
			}
			rr := httptest.NewRecorder()
			NewAuthController(testLogger, fake).SignUp(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var data AuthResponse
			apiErr := decodeEnvelope(t, rr, &data)
			if tt.wantCode != "" {
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantCode, apiErr.Code)
				return
			}
			require.Nil(t, apiErr)
			assert.Equal(t, "jwt", data.Token)
			assert.Equal(t, "Bearer", data.TokenType)
			assert.Equal(t, "u-1", data.User.ID)
			assert.Equal(t, tt.wantRole, fake.gotSignUp.Role)
			assert.Equal(t, tt.secret, fake.gotSignUp.OrganizerSecret)
			assert.NotContains(t, rr.Body.String(), "secret-hash")
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"success", `{"email":"pat@example.com","password":"secret"}`, nil, http.StatusOK, "", ""},
		{"missing fields", `{}`, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest, "email is required; password is required"},
		{"invalid credentials", `{"email":"pat@example.com","password":"nope"}`, domain.ErrInvalidCredentials, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid credentials"},
		{"service error", `{"email":"pat@example.com","password":"secret"}`, assert.AnError, http.StatusInternalServerError, helpers.ErrCodeInternalError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAuthService{err: tt.err, result: &domain.AuthResult{Token: "jwt", User: &domain.User{ID: "u-1"}}}
			rr := httptest.NewRecorder()
			NewAuthController(testLogger, fake).Login(rr, newRequest(http.MethodPost, "/auth/login", tt.body, "", nil))

			require.Equal(t, tt.wantStatus, rr.Code)
			var data AuthResponse
			apiErr := decodeEnvelope(t, rr, &data)
			if tt.wantCode != "" {
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantCode, apiErr.Code)
				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, apiErr.Message)
				}
				return
			}
			require.Nil(t, apiErr)
			assert.Equal(t, "jwt", data.Token)
			assert.Equal(t, "pat@example.com", fake.gotEmail)
		})
	}
}
