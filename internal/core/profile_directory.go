package core

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"assistix-backend-go/internal/db"
	"assistix-backend-go/pkg/cache"
)

// unknownUserName is the display fallback for a missing profile document,
// mirroring what clients have always rendered.
const unknownUserName = "Unknown User"

// profileCacheTTL bounds how stale a cached display profile may get.
const profileCacheTTL = 5 * time.Minute

// displayProfile is the pair of fields denormalized into request and pitch
// list items.
type displayProfile struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

// profileDirectory resolves user display fields for list denormalization.
// Lookups remain one per item (the historical N+1 pattern); the cache just
// makes the repeated lookups cheap across items and snapshots.
type profileDirectory struct {
	userRepo db.UserRepository
	cache    cache.Cache
	logger   *zap.Logger
}

func newProfileDirectory(userRepo db.UserRepository, c cache.Cache, logger *zap.Logger) *profileDirectory {
	if c == nil {
		c = cache.Noop{}
	}
	return &profileDirectory{userRepo: userRepo, cache: c, logger: logger}
}

func profileCacheKey(uid string) string {
	return "profile:" + uid
}

// lookup returns the display fields for uid. Cache and repository failures
// degrade to the unknown-user fallback; denormalization never fails a list.
func (d *profileDirectory) lookup(ctx context.Context, uid string) displayProfile {
	key := profileCacheKey(uid)
	if cached, err := d.cache.Get(ctx, key); err == nil && cached != "" {
		var profile displayProfile
		if err := json.Unmarshal([]byte(cached), &profile); err == nil {
			return profile
		}
	}

	user, err := d.userRepo.GetByID(ctx, uid)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			d.logger.Warn("Display profile lookup failed", zap.String("uid", uid), zap.Error(err))
		}
		return displayProfile{Name: unknownUserName}
	}

	profile := displayProfile{Name: user.Name, PhotoURL: user.PhotoURL}
	if profile.Name == "" {
		profile.Name = unknownUserName
	}
	if encoded, err := json.Marshal(profile); err == nil {
		if err := d.cache.Set(ctx, key, string(encoded), profileCacheTTL); err != nil {
			d.logger.Warn("Display profile cache write failed", zap.String("uid", uid), zap.Error(err))
		}
	}
	return profile
}

// invalidate drops the cached display fields after a profile mutation.
func (d *profileDirectory) invalidate(ctx context.Context, uid string) {
	if err := d.cache.Delete(ctx, profileCacheKey(uid)); err != nil {
		d.logger.Warn("Display profile cache invalidation failed", zap.String("uid", uid), zap.Error(err))
	}
}
