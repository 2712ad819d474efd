package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/mkovacc/liftboard/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "liftboard-session||"
	tokensSetKey     = "liftboard-sessions"
	codeKeyPrefix    = "liftboard-code||"

	// one-time login codes are short-lived by design
	DefaultCodeTTL = 10 * time.Minute
)

var (
	ErrWrongCredentials = errors.New("wrong credentials")
	ErrUnknownCredential = errors.New("unknown credential kind")
)

type Service struct {
	redisClient *redis.Client
	accounts    accountsRepo
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

type accountsRepo interface {
	GetByUsername(ctx context.Context, username string) (*Account, error)
}

func NewService(
	ttl time.Duration,
	redisClient *redis.Client,
	accounts accountsRepo,
) *Service {
	return &Service{
		ttl:            ttl,
		redisClient:    redisClient,
		accounts:       accounts,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

// EstablishSession is the single entry point for all login paths. Every
// credential kind normalizes to the same outcome: a session token bound to
// the resolved owner id.
func (as *Service) EstablishSession(
	ctx context.Context,
	credential Credential,
	createdAt time.Time,
) (token string, ownerID string, err error) {
	ownerID, err = as.resolveOwner(ctx, credential)
	if err != nil {
		return "", "", err
	}

	token, err = as.RandStringFunc(35)
	if err != nil {
		return "", "", err
	}

	sessionKey := sessionKeyPrefix + token
	sessionVal := fmt.Sprintf("%s|%d", ownerID, createdAt.Unix())
	if err := as.redisClient.Set(ctx, sessionKey, sessionVal, 0).Err(); err != nil {
		return "", "", err
	}

	// add token to list of sessions
	if err := as.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return "", "", err
	}

	return token, ownerID, nil
}

func (as *Service) resolveOwner(ctx context.Context, credential Credential) (string, error) {
	switch credential.Kind {
	case CredentialPassword:
		account, err := as.accounts.GetByUsername(ctx, credential.Username)
		if err != nil {
			log.Tracef("[username] failed login attempt for user: %s", credential.Username)
			return "", ErrWrongCredentials
		}
		if !pkg.CheckPasswordHash(credential.Password, account.PasswordHash) {
			log.Tracef("[password] failed login attempt for user: %s", credential.Username)
			return "", ErrWrongCredentials
		}
		return account.OwnerID, nil
	case CredentialExchangeCode, CredentialTokenHash, CredentialNumericCode:
		return as.redeemCode(ctx, credential.Kind, credential.Code)
	default:
		return "", ErrUnknownCredential
	}
}

// redeemCode resolves and burns a single-use login code.
func (as *Service) redeemCode(ctx context.Context, kind CredentialKind, code string) (string, error) {
	if code == "" {
		return "", ErrWrongCredentials
	}

	codeKey := codeKeyPrefix + string(kind) + "||" + code
	ownerID, err := as.redisClient.GetDel(ctx, codeKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrWrongCredentials
		}
		return "", err
	}

	return ownerID, nil
}

// IssueCode creates a short-lived, single-use login code of the given kind
// for the owner. Numeric codes get 6 digits, the other kinds a random
// URL-safe string.
func (as *Service) IssueCode(
	ctx context.Context,
	kind CredentialKind,
	ownerID string,
) (string, error) {
	var code string
	switch kind {
	case CredentialNumericCode:
		n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
		if err != nil {
			return "", err
		}
		code = fmt.Sprintf("%06d", n.Int64())
	case CredentialExchangeCode, CredentialTokenHash:
		var err error
		if code, err = as.RandStringFunc(25); err != nil {
			return "", err
		}
	default:
		return "", ErrUnknownCredential
	}

	codeKey := codeKeyPrefix + string(kind) + "||" + code
	if err := as.redisClient.Set(ctx, codeKey, ownerID, DefaultCodeTTL).Err(); err != nil {
		return "", err
	}

	return code, nil
}

func (as *Service) Logout(ctx context.Context, token string) (bool, error) {
	sessionKey := sessionKeyPrefix + token
	sessionVal, err := as.redisClient.Get(ctx, sessionKey).Result()
	if err != nil {
		return false, err
	}

	_, createdAtUnix, err := parseSessionValue(sessionVal)
	if err != nil {
		return false, err
	}

	if err := as.redisClient.Del(ctx, sessionKey).Err(); err != nil {
		return false, err
	}

	// remove token from the list of sessions
	if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
		return false, err
	}

	return createdAtUnix > 0, nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (as *Service) ScanAndClean(ctx context.Context) {
	cmd := as.redisClient.SMembers(ctx, tokensSetKey)
	if err := cmd.Err(); err != nil {
		log.Errorf("!!! auth service, scan and clean, get sessions: %s", err)
		return
	}

	sessionTokens := cmd.Val()
	if len(sessionTokens) == 0 {
		log.Warnln("=> auth service, scan and clean abort, no sessions")
		return
	}

	log.Warnf("=> auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	var toRemove []string
	for _, token := range sessionTokens {
		sessionKey := sessionKeyPrefix + token
		sessionVal, err := as.redisClient.Get(ctx, sessionKey).Result()
		if err != nil {
			log.Errorf("=> auth service, scan and clean token %s: %s", token, err)
			continue
		}

		_, createdAtUnix, err := parseSessionValue(sessionVal)
		if err != nil {
			log.Errorf("=> auth service, scan and clean token %s: %s", token, err)
			continue
		}

		createdAt := time.Unix(createdAtUnix, 0)
		if time.Since(createdAt) > as.ttl {
			log.Warnf("=>\twill clean the session with token: %s", token)
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		sessionKey := sessionKeyPrefix + token
		if err := as.redisClient.Del(ctx, sessionKey).Err(); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", token, err)
			continue
		}

		// remove token from the list of sessions
		if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", token, err)
			continue
		}
	}
}

func parseSessionValue(val string) (ownerID string, createdAtUnix int64, err error) {
	parts := strings.SplitN(val, "|", 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("malformed session value: %q", val)
	}
	createdAtUnix, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", 0, err
	}
	return parts[0], createdAtUnix, nil
}
