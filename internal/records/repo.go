package records

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mkovacc/liftboard/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrEntryNotFound = errors.New("entry not found")

type EntryParams struct {
	MovementName string
	OwnerID      string
	From         *time.Time
	To           *time.Time
}

type ListParams struct {
	EntryParams
	Page int
	Size int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Upsert saves the entry for its (owner, day) pair. A second save for the
// same day replaces the first one and keeps its id.
func (r *Repo) Upsert(ctx context.Context, entry Entry) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := entry.Validate(); err != nil {
		return nil, fmt.Errorf("validate entry: %w", err)
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO record_entry
				(owner_id, entry_date, movement_name, value, unit, owner_name, gender, notes)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (owner_id, entry_date) DO UPDATE SET
				movement_name = EXCLUDED.movement_name,
				value = EXCLUDED.value,
				unit = EXCLUDED.unit,
				owner_name = EXCLUDED.owner_name,
				gender = EXCLUDED.gender,
				notes = EXCLUDED.notes
			RETURNING id;`,
		entry.OwnerID, entry.Date, entry.MovementName, entry.Value,
		entry.Unit, entry.OwnerName, entry.Gender, entry.Notes,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("entry.id", id))

	entry.ID = id
	return &entry, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, owner_id, entry_date, movement_name, value, unit, owner_name, gender, notes
			FROM record_entry
			WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	entries, err := r.rows2entries(rows)
	if err != nil {
		return nil, err
	}

	if len(entries) != 1 {
		return nil, ErrEntryNotFound
	}

	return &entries[0], nil
}

// GetForDay returns the owner's entry for the given calendar day, if any.
func (r *Repo) GetForDay(ctx context.Context, ownerID string, day time.Time) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.getForDay")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("owner_id", ownerID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, owner_id, entry_date, movement_name, value, unit, owner_name, gender, notes
			FROM record_entry
			WHERE owner_id = $1 AND entry_date = $2;`,
		ownerID, day,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	entries, err := r.rows2entries(rows)
	if err != nil {
		return nil, err
	}

	if len(entries) != 1 {
		return nil, ErrEntryNotFound
	}

	return &entries[0], nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM record_entry WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// ListAll returns all entries matching the params, ordered by date ascending.
func (r *Repo) ListAll(ctx context.Context, params EntryParams) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("movement_name", params.MovementName))
	span.SetAttributes(attribute.String("owner_id", params.OwnerID))
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.String()))
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, owner_id, entry_date, movement_name, value, unit, owner_name, gender, notes
			FROM record_entry
				WHERE ($1::text = '' OR movement_name = $1)
				AND ($2::text = '' OR owner_id = $2)
				AND ($3::date IS NULL OR entry_date >= $3)
				AND ($4::date IS NULL OR entry_date <= $4)
			ORDER BY entry_date ASC;`,
		params.MovementName, params.OwnerID,
		params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	entries, err := r.rows2entries(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2entries: %w", err)
	}
	return entries, nil
}

// List is like ListAll, but returns the specific PAGE of entries,
// newest first, i.e. is used for pagination.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Entry, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))
	span.SetAttributes(attribute.String("movement_name", params.MovementName))
	span.SetAttributes(attribute.String("owner_id", params.OwnerID))

	if params.Page < 1 {
		return nil, -1, errors.New("page must be greater than 0")
	}
	if params.Size < 1 {
		return nil, -1, errors.New("size must be greater than 0")
	}

	limit := params.Size
	offset := (params.Page - 1) * params.Size
	countAll, err := r.EntriesCount(ctx, params.EntryParams)
	if err != nil {
		return nil, -1, err
	}

	if countAll <= limit {
		limit = countAll
		offset = 0
	}

	if countAll-offset < limit {
		offset = countAll - limit
	}

	span.SetAttributes(attribute.Int("count_all", countAll))
	span.SetAttributes(attribute.Int("limit", limit))
	span.SetAttributes(attribute.Int("offset", offset))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, owner_id, entry_date, movement_name, value, unit, owner_name, gender, notes
			FROM record_entry
				WHERE ($1::text = '' OR movement_name = $1)
				AND ($2::text = '' OR owner_id = $2)
			ORDER BY entry_date DESC
			LIMIT $3
			OFFSET $4;`,
		params.MovementName, params.OwnerID,
		limit, offset,
	)
	if err != nil {
		return nil, -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, -1, err
	}

	entries, err := r.rows2entries(rows)
	if err != nil {
		return nil, -1, err
	}
	return entries, countAll, nil
}

func (r *Repo) EntriesCount(ctx context.Context, params EntryParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT COUNT(*) FROM record_entry
			WHERE ($1::text = '' OR movement_name = $1)
			AND ($2::text = '' OR owner_id = $2)
			AND ($3::date IS NULL OR entry_date >= $3)
			AND ($4::date IS NULL OR entry_date <= $4);
	`,
		params.MovementName, params.OwnerID,
		params.From, params.To,
	)
	if err != nil {
		return -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return -1, err
	}

	if rows.Next() {
		var count int
		if err := rows.Scan(&count); err == nil {
			return count, nil
		}
	}

	return -1, errors.New("unexpected error, failed to get entries count")
}

func (r *Repo) rows2entries(rows pgx.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.OwnerID, &e.Date, &e.MovementName,
			&e.Value, &e.Unit, &e.OwnerName, &e.Gender, &e.Notes,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if entries == nil {
		entries = make([]Entry, 0)
	}

	return entries, nil
}
