package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"electionhub/internal/domain"
	"electionhub/internal/validation"
)

// AuthOptions configures registration and token issuance.
type AuthOptions struct {
	TokenExpiry time.Duration
	// OrganizerSecret gates organizer sign-up. Empty disables it.
	OrganizerSecret string
	PasswordPolicy  validation.PasswordPolicy
	Clock           func() time.Time
}

type authService struct {
	userRepo     domain.UserRepository
	hasher       domain.PasswordHasher
	issuer       domain.TokenIssuer
	emailService domain.EmailService
	opts         AuthOptions
	logger       *slog.Logger
}

// NewAuthService creates an AuthService with the given repository and auth ports.
// emailService may be nil.
func NewAuthService(userRepo domain.UserRepository, hasher domain.PasswordHasher, issuer domain.TokenIssuer, emailService domain.EmailService, opts AuthOptions, logger *slog.Logger) domain.AuthService {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.PasswordPolicy == (validation.PasswordPolicy{}) {
		opts.PasswordPolicy = validation.DefaultPasswordPolicy()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		userRepo:     userRepo,
		hasher:       hasher,
		issuer:       issuer,
		emailService: emailService,
		opts:         opts,
		logger:       logger,
	}
}

func (s *authService) SignUp(ctx context.Context, input domain.SignUpInput) (*domain.AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	violations := validation.IdentityPayload(name, email, input.Password, s.opts.PasswordPolicy, validation.EntryRegister)
	if err := domain.NewValidationError(violations); err != nil {
		return nil, err
	}
	if !input.Role.IsValid() {
		return nil, domain.NewValidationError([]string{"role must be participant or organizer"})
	}
	if input.Role == domain.RoleOrganizer && !s.organizerSecretMatches(input.OrganizerSecret) {
		return nil, domain.ErrUnauthorized
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(salt, input.Password)
	if err != nil {
		return nil, err
	}
	now := s.opts.Clock()
	user := domain.NewUser(name, email, input.Role, now, now)
	user.PasswordHash = hash
	user.Salt = salt
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issuer.Issue(user.ID, user.Role, s.opts.TokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	s.sendWelcome(ctx, user)
	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID, "role", user.Role.String())
	return &domain.AuthResult{Token: token, User: user}, nil
}

func (s *authService) organizerSecretMatches(presented string) bool {
	if s.opts.OrganizerSecret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(s.opts.OrganizerSecret)) == 1
}

// sendWelcome never fails the sign-up.
func (s *authService) sendWelcome(ctx context.Context, user *domain.User) {
	if s.emailService == nil {
		return
	}
	data := &domain.WelcomeMessageEmailData{Email: user.Email, Name: user.Name, Role: user.Role.String()}
	if err := s.emailService.SendWelcomeMessage(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "welcome email failed", "user_id", user.ID, "err", err)
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := s.issuer.Issue(user.ID, user.Role, s.opts.TokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &domain.AuthResult{Token: token, User: user}, nil
}

func (s *authService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, currentPassword); err != nil {
		return domain.ErrInvalidCredentials
	}
	violations := validation.Password(newPassword, s.opts.PasswordPolicy, validation.EntrySelfService)
	if err := domain.NewValidationError(violations); err != nil {
		return err
	}
	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return err
	}
	hash, err := s.hasher.Hash(salt, newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash, salt, s.opts.Clock()); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	s.logger.InfoContext(ctx, "password changed", "user_id", user.ID)
	return nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
