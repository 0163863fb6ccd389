package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/solecrafted/internal/domain"
	apperrors "github.com/utafrali/solecrafted/pkg/errors"
)

const prefsKeyPrefix = "prefs:"

// PreferencesRepository implements repository.PreferencesRepository using
// Redis. Preferences have no TTL: a theme choice should outlive the cart.
type PreferencesRepository struct {
	client *redis.Client
}

// NewPreferencesRepository creates a new Redis-backed preferences repository.
func NewPreferencesRepository(client *redis.Client) *PreferencesRepository {
	return &PreferencesRepository{client: client}
}

// Get retrieves preferences by user ID from Redis.
func (r *PreferencesRepository) Get(ctx context.Context, userID string) (*domain.Preferences, error) {
	key := prefsKeyPrefix + userID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("preferences", userID)
		}
		return nil, fmt.Errorf("redis get preferences: %w", err)
	}

	var prefs domain.Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("unmarshal preferences: %w", err)
	}

	return &prefs, nil
}

// Save persists preferences to Redis.
func (r *PreferencesRepository) Save(ctx context.Context, userID string, prefs *domain.Preferences) error {
	key := prefsKeyPrefix + userID

	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set preferences: %w", err)
	}

	return nil
}
