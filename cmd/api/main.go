// @title Election Hub API
// @version 1.0
// @description Timed single-choice elections: organizers publish events with options, participants cast one vote each, organizers read the results.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"electionhub/config"
	_ "electionhub/docs"
	"electionhub/internal/adapters/auth"
	"electionhub/internal/adapters/cache"
	"electionhub/internal/adapters/email"
	deliveryhttp "electionhub/internal/delivery/http"
	"electionhub/internal/delivery/http/middleware"
	"electionhub/internal/domain"
	"electionhub/internal/repository/memory"
	"electionhub/internal/repository/postgres"
	"electionhub/internal/services"
	"electionhub/internal/validation"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logger := config.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	events, votes, users, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	var tallies domain.TallyCache
	if cfg.Redis.Addr != "" {
		rc := cache.NewRedisTallyCache(cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			// counts fall back to the vote store on every cache miss or error
			logger.Warn("tally cache unreachable", "addr", cfg.Redis.Addr, "err", err)
		} else {
			logger.Info("tally cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
		}
		tallies = rc
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKeyID,
			SecretAccessKey: cfg.Email.AWSSecretAccessKey,
		},
	}, logger)
	if err != nil {
		return err
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	election := services.NewElectionService(events, votes, tallies, services.ElectionOptions{
		StoreTimeout:        cfg.StoreTimeout,
		EnforceVotingWindow: cfg.EnforceVotingWindow,
	}, logger)
	authService := services.NewAuthService(users, auth.NewBcryptHasher(auth.DefaultBcryptCost), auth.NewJWTIssuer(cfg.JWTSecret), emailService, services.AuthOptions{
		TokenExpiry:     cfg.JWTExpiry,
		OrganizerSecret: cfg.OrganizerSecret,
		PasswordPolicy: validation.PasswordPolicy{
			MinPasswordLenRegister:    cfg.MinPasswordLenRegister,
			MinPasswordLenSelfService: cfg.MinPasswordLenSelfService,
		},
	}, logger)
	if cfg.OrganizerSecret == "" {
		logger.Warn("ORGANIZER_SECRET is empty; organizer sign-up is disabled")
	}

	router := deliveryhttp.NewRouter(deliveryhttp.RouterConfig{
		Logger:         logger,
		Election:       election,
		Auth:           authService,
		Verifier:       auth.NewJWTVerifier(cfg.JWTSecret),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimiter:    middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment, "store", cfg.StoreDriver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.EventRepository, domain.VoteRepository, domain.UserRepository, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Warn("using in-memory store; data is lost on restart")
		store := memory.New()
		return store.Events(), store.Votes(), store.Users(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, nil, nil, err
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, nil, nil, nil, err
	}
	logger.Info("database schema ready")
	return postgres.NewEventRepository(db), postgres.NewVoteRepository(db), postgres.NewUserRepository(db), func() { db.Close() }, nil
}
