package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

var ErrNotLoggedIn = errors.New("not logged in")

// LoginChecker resolves a session token to the owner behind it. Used by the
// auth middleware on every authenticated request.
type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

// SessionOwner returns the owner id for a live session token, or
// ErrNotLoggedIn when the token is unknown or the session expired.
func (lc *LoginChecker) SessionOwner(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrNotLoggedIn
	}

	sessionKey := sessionKeyPrefix + token
	sessionVal, err := lc.redisClient.Get(ctx, sessionKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotLoggedIn
		}
		return "", err
	}

	ownerID, createdAtUnix, err := parseSessionValue(sessionVal)
	if err != nil {
		return "", err
	}

	createdAt := time.Unix(createdAtUnix, 0)
	if time.Since(createdAt) > lc.ttl {
		return "", ErrNotLoggedIn
	}

	return ownerID, nil
}

func (lc *LoginChecker) IsLogged(ctx context.Context, token string) (bool, error) {
	_, err := lc.SessionOwner(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotLoggedIn) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
