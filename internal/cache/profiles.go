package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wishwell/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	profileKeyPrefix = "profile:%d"

	// ProfileTTL bounds staleness of counterparty profiles shown on friend edges.
	ProfileTTL = 5 * time.Minute
)

// ProfileKey returns the cache key for a user's public profile.
func ProfileKey(userID uint) string {
	return fmt.Sprintf(profileKeyPrefix, userID)
}

// GetProfile returns the cached public profile for a user, or nil on miss.
// Cache failures are treated as misses.
func GetProfile(ctx context.Context, rdb *redis.Client, userID uint) *models.Profile {
	if rdb == nil {
		return nil
	}
	raw, err := rdb.Get(ctx, ProfileKey(userID)).Result()
	if err != nil {
		return nil
	}
	var p models.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil
	}
	return &p
}

// SetProfile stores a user's public profile with the standard TTL.
func SetProfile(ctx context.Context, rdb *redis.Client, p models.Profile) {
	if rdb == nil {
		return
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	rdb.Set(ctx, ProfileKey(p.ID), raw, ProfileTTL)
}

// InvalidateProfile drops a user's cached profile, e.g. after a profile update.
func InvalidateProfile(ctx context.Context, rdb *redis.Client, userID uint) {
	if rdb == nil {
		return
	}
	rdb.Del(ctx, ProfileKey(userID))
}
