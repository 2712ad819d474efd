package profiles

import (
	"context"
	"errors"
	"time"

	"github.com/mkovacc/liftboard/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Get(ctx context.Context, ownerID string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var profile Profile
	err = r.db.QueryRow(ctx,
		`SELECT owner_id, display_name, gender, updated_at FROM profile WHERE owner_id = $1`,
		ownerID,
	).Scan(&profile.OwnerID, &profile.DisplayName, &profile.Gender, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	return &profile, nil
}

// Upsert saves the profile for its owner, replacing the previous version.
func (r *Repo) Upsert(ctx context.Context, profile Profile) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	profile.UpdatedAt = time.Now()
	_, err = r.db.Exec(ctx,
		`INSERT INTO profile (owner_id, display_name, gender, updated_at)
			VALUES ($1, $2, $3, $4)
		ON CONFLICT (owner_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			gender = EXCLUDED.gender,
			updated_at = EXCLUDED.updated_at;`,
		profile.OwnerID, profile.DisplayName, profile.Gender, profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &profile, nil
}
