package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "electionhub/internal/delivery/http/helpers"
	"electionhub/internal/domain"
)

// OrganizerSecretHeader carries the shared secret required for organizer sign-up.
const OrganizerSecretHeader = "X-Organizer-Secret"

// SignUpRequest is the request body for POST /auth/signup
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // optional: "participant" (default) or "organizer"
}

// Validate implements Validator. Name, email and password rules are applied by the auth service.
func (s SignUpRequest) Validate() []string {
	if strings.TrimSpace(s.Role) == "" {
		return nil
	}
	if _, err := domain.ParseRole(s.Role); err != nil {
		return []string{`role must be "participant" or "organizer"`}
	}
	return nil
}

func (s SignUpRequest) role() domain.Role {
	if strings.TrimSpace(s.Role) == "" {
		return domain.RoleParticipant
	}
	role, _ := domain.ParseRole(s.Role)
	return role
}

// LoginRequest is the request body for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Email) == "" {
		errs = append(errs, "email is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// AuthResponse is the data returned by sign-up and login.
type AuthResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	User      *domain.User `json:"user"`
}

// AuthSuccessResponse is the success envelope for the auth endpoints.
type AuthSuccessResponse struct {
	Data  AuthResponse `json:"data"`
	Error *h.APIError  `json:"error"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// SignUp godoc
// @Summary Sign up a new user
// @Description Registers a participant, or an organizer when the X-Organizer-Secret header matches the configured secret. Returns a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param X-Organizer-Secret header string false "Shared secret for organizer sign-up"
// @Param body body SignUpRequest true "Sign-up data"
// @Success 201 {object} controllers.AuthSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 429 {object} helpers.APIResponse "error.code: rate_limited"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/signup [post]
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	res, err := c.Service.SignUp(r.Context(), domain.SignUpInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		Role:            req.role(),
		OrganizerSecret: r.Header.Get(OrganizerSecretHeader),
	})
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, AuthResponse{Token: res.Token, TokenType: "Bearer", User: res.User})
}

// Login godoc
// @Summary Log in
// @Description Authenticate with email and password. Returns a JWT carrying the user id and role.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} controllers.AuthSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 429 {object} helpers.APIResponse "error.code: rate_limited"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	res, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, AuthResponse{Token: res.Token, TokenType: "Bearer", User: res.User})
}
