package auth

import (
	"context"
	"errors"
	"time"

	"github.com/mkovacc/liftboard/internal/telemetry/tracing"
	"github.com/mkovacc/liftboard/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrUsernameTaken   = errors.New("username taken")
)

type Account struct {
	OwnerID      string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, username, password string) (_ *Account, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.auth.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	passwordHash, err := pkg.HashPassword(password)
	if err != nil {
		return nil, err
	}

	account := &Account{
		OwnerID:      uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO account (owner_id, username, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		account.OwnerID, account.Username, account.PasswordHash, account.CreatedAt,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return account, nil
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (_ *Account, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.auth.getByUsername")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var account Account
	err = r.db.QueryRow(ctx,
		`SELECT owner_id, username, password_hash, created_at FROM account WHERE username = $1`,
		username,
	).Scan(&account.OwnerID, &account.Username, &account.PasswordHash, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return &account, nil
}
