package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/solecrafted/internal/domain"
	"github.com/utafrali/solecrafted/internal/repository"
	apperrors "github.com/utafrali/solecrafted/pkg/errors"
	"github.com/utafrali/solecrafted/pkg/validator"
)

// RegisterInput holds the sign-up form.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginInput holds the sign-in form.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthService implements mocked authentication: any well-formed credentials
// are accepted and produce a session persisted in the user's preferences.
// No passwords are stored or verified.
type AuthService struct {
	prefsRepo repository.PreferencesRepository
	logger    *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(prefsRepo repository.PreferencesRepository, logger *slog.Logger) *AuthService {
	return &AuthService{
		prefsRepo: prefsRepo,
		logger:    logger,
	}
}

// Register creates an account and signs the user in.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     strings.ToLower(input.Email),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.saveSession(ctx, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// Login signs a user in. Credentials are accepted as given; the display
// name is derived from the email's local part.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domain.User, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	email := strings.ToLower(input.Email)
	user := &domain.User{
		ID:        uuid.NewString(),
		Name:      strings.SplitN(email, "@", 2)[0],
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.saveSession(ctx, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// Logout drops the session from the user's preferences. The theme choice
// survives the logout.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}

	prefs, err := s.prefsRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get preferences: %w", err)
	}

	prefs.User = nil
	if err := s.prefsRepo.Save(ctx, userID, prefs); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged out", slog.String("user_id", userID))

	return nil
}

func (s *AuthService) saveSession(ctx context.Context, user *domain.User) error {
	prefs, err := s.prefsRepo.Get(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("get preferences: %w", err)
		}
		defaults := domain.DefaultPreferences()
		prefs = &defaults
	}

	prefs.User = user
	if err := s.prefsRepo.Save(ctx, user.ID, prefs); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}
