package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"electionhub/internal/delivery/http/controllers"
	h "electionhub/internal/delivery/http/helpers"
	"electionhub/internal/delivery/http/middleware"
	"electionhub/internal/domain"
)

// RouterConfig holds everything NewRouter needs to wire routes.
type RouterConfig struct {
	Logger         *slog.Logger
	Election       domain.ElectionService
	Auth           domain.AuthService
	Verifier       domain.TokenVerifier
	AllowedOrigins []string
	// RateLimiter guards the vote and auth routes. Nil disables limiting.
	RateLimiter *middleware.RateLimiter
}

// NewRouter initializes the HTTP router with all application routes,
// wrapped in CORS and request logging.
func NewRouter(cfg RouterConfig) http.Handler {
	events := controllers.NewEventController(cfg.Logger, cfg.Election)
	admin := controllers.NewAdminController(cfg.Logger, cfg.Election)
	auth := controllers.NewAuthController(cfg.Logger, cfg.Auth)
	users := controllers.NewUserController(cfg.Logger, cfg.Auth)

	requireAuth := middleware.RequireAuth(cfg.Verifier, cfg.Logger)
	organizerOnly := func(next http.HandlerFunc) http.HandlerFunc {
		return requireAuth(middleware.RequireOrganizer(next))
	}
	limit := func(next http.HandlerFunc) http.HandlerFunc {
		if cfg.RateLimiter == nil {
			return next
		}
		return cfg.RateLimiter.Limit(next)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", Health)

	// Auth
	mux.HandleFunc("POST /auth/signup", limit(auth.SignUp))
	mux.HandleFunc("POST /auth/login", limit(auth.Login))

	// Users
	mux.HandleFunc("GET /users/me", requireAuth(users.GetMe))
	mux.HandleFunc("PATCH /users/me/password", requireAuth(users.ChangePassword))

	// Events
	mux.HandleFunc("GET /events", events.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", events.GetEvent)
	mux.HandleFunc("POST /events/{eventID}/vote", limit(requireAuth(events.CastVote)))
	mux.HandleFunc("GET /events/{eventID}/my-vote", requireAuth(events.MyVote))

	// Admin
	mux.HandleFunc("GET /admin/events", organizerOnly(admin.ListEvents))
	mux.HandleFunc("POST /admin/events", organizerOnly(admin.CreateEvent))
	mux.HandleFunc("PATCH /admin/events/{eventID}", organizerOnly(admin.UpdateEvent))
	mux.HandleFunc("DELETE /admin/events/{eventID}", organizerOnly(admin.DeleteEvent))
	mux.HandleFunc("GET /admin/events/{eventID}/results", organizerOnly(admin.GetResults))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return middleware.LoggingMiddleware(cfg.Logger, middleware.CORS(cfg.AllowedOrigins, mux))
}

// HealthResponse is the data of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.status is ok"
// @Router /health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	h.WriteJSONSuccess(w, http.StatusOK, HealthResponse{Status: "ok"})
}
