package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/utafrali/solecrafted/internal/domain"
	"github.com/utafrali/solecrafted/internal/repository"
	apperrors "github.com/utafrali/solecrafted/pkg/errors"
)

// PreferencesService manages per-user UI preferences. A user without stored
// preferences gets the defaults.
type PreferencesService struct {
	repo   repository.PreferencesRepository
	logger *slog.Logger
}

// NewPreferencesService creates a new preferences service.
func NewPreferencesService(repo repository.PreferencesRepository, logger *slog.Logger) *PreferencesService {
	return &PreferencesService{
		repo:   repo,
		logger: logger,
	}
}

// GetPreferences retrieves the user's preferences, defaulting when absent.
func (s *PreferencesService) GetPreferences(ctx context.Context, userID string) (*domain.Preferences, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	prefs, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			defaults := domain.DefaultPreferences()
			return &defaults, nil
		}
		return nil, fmt.Errorf("get preferences: %w", err)
	}

	return prefs, nil
}

// SetTheme stores the user's theme choice.
func (s *PreferencesService) SetTheme(ctx context.Context, userID, theme string) (*domain.Preferences, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if !domain.ValidTheme(theme) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("theme must be %q or %q", domain.ThemeLight, domain.ThemeDark))
	}

	prefs, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	prefs.Theme = theme
	if err := s.repo.Save(ctx, userID, prefs); err != nil {
		return nil, fmt.Errorf("save preferences: %w", err)
	}

	s.logger.InfoContext(ctx, "theme updated",
		slog.String("user_id", userID),
		slog.String("theme", theme),
	)

	return prefs, nil
}
