package profiles

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	oneHour            = 60 * 60
	profileCacheExpire = oneHour * 12 // expire in seconds
)

type profilesRepo interface {
	Get(ctx context.Context, ownerID string) (*Profile, error)
	Upsert(ctx context.Context, profile Profile) (*Profile, error)
}

// Cache is a read-through layer in front of the profiles repo. Profiles are
// read on every record save, so they get cached aggressively and invalidated
// on upsert.
type Cache struct {
	repo  profilesRepo
	cache *freecache.Cache
}

func NewCache(repo profilesRepo) *Cache {
	megabyte := 1024 * 1024
	cacheSize := 5 * megabyte

	return &Cache{
		repo:  repo,
		cache: freecache.NewCache(cacheSize),
	}
}

func (c *Cache) Get(ctx context.Context, ownerID string) (*Profile, error) {
	cacheKey := []byte(ownerID)
	if profileBytes, err := c.cache.Get(cacheKey); err == nil {
		log.Tracef("found profile for %s in cache", ownerID)
		var profile Profile
		if err = json.Unmarshal(profileBytes, &profile); err == nil {
			return &profile, nil
		}
		log.Errorf("failed to unmarshal profile from cache for %s: %s", ownerID, err)
	}

	profile, err := c.repo.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	profileBytes, err := json.Marshal(profile)
	if err != nil {
		log.Errorf("failed to marshal profile for cache %s: %s", ownerID, err)
		return profile, nil
	}
	if err := c.cache.Set(cacheKey, profileBytes, profileCacheExpire); err != nil {
		log.Errorf("failed to write profile cache for %s: %s", ownerID, err)
	}

	return profile, nil
}

func (c *Cache) Upsert(ctx context.Context, profile Profile) (*Profile, error) {
	saved, err := c.repo.Upsert(ctx, profile)
	if err != nil {
		return nil, err
	}

	c.cache.Del([]byte(profile.OwnerID))
	return saved, nil
}

// DisplayInfo resolves the name and gender stamped onto saved entries. A
// missing profile is not an error, it just means anonymous display.
func (c *Cache) DisplayInfo(ctx context.Context, ownerID string) (name string, gender string, err error) {
	profile, err := c.Get(ctx, ownerID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return "", "", nil
		}
		return "", "", err
	}
	return profile.DisplayName, profile.Gender, nil
}
