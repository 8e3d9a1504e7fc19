package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/avdeev87/fitcoach/internal/errs"
	"github.com/avdeev87/fitcoach/internal/model"
)

// WeightRepo implements WeightRepository using PostgreSQL.
type WeightRepo struct{ db *DB }

// NewWeightRepo constructs a weight repository.
func NewWeightRepo(db *DB) *WeightRepo { return &WeightRepo{db: db} }

// Create inserts a new weight entry.
func (r *WeightRepo) Create(ctx context.Context, e *model.WeightEntry) error {
	const q = `
INSERT INTO weights (id, user_id, raw_value, value, date)
VALUES ($1,$2,$3,$4,$5)`
	_, err := r.db.Pool.Exec(ctx, q, e.ID, string(e.UserID), e.RawValue, e.Value, day(e.Date))
	return err
}

// LatestForDate returns the most recently inserted entry for the date.
func (r *WeightRepo) LatestForDate(ctx context.Context, userID model.UserID, date time.Time) (*model.WeightEntry, error) {
	const q = `
SELECT id, user_id, raw_value, value, date
FROM weights WHERE user_id=$1 AND date=$2 ORDER BY seq DESC LIMIT 1`
	return r.one(ctx, q, string(userID), day(date))
}

// Latest returns the user's most recent entry across all dates.
func (r *WeightRepo) Latest(ctx context.Context, userID model.UserID) (*model.WeightEntry, error) {
	const q = `
SELECT id, user_id, raw_value, value, date
FROM weights WHERE user_id=$1 ORDER BY date DESC, seq DESC LIMIT 1`
	return r.one(ctx, q, string(userID))
}

// GetForRange returns entries with date in [from, to].
func (r *WeightRepo) GetForRange(ctx context.Context, userID model.UserID, from, to time.Time) ([]model.WeightEntry, error) {
	const q = `
SELECT id, user_id, raw_value, value, date
FROM weights WHERE user_id=$1 AND date>=$2 AND date<=$3 ORDER BY date ASC, seq ASC`
	rows, err := r.db.Pool.Query(ctx, q, string(userID), day(from), day(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.WeightEntry
	for rows.Next() {
		e, err := scanWeight(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// UpdateValue replaces the stored value of an entry.
func (r *WeightRepo) UpdateValue(ctx context.Context, userID model.UserID, id uuid.UUID, raw string, value float64) error {
	const q = `UPDATE weights SET raw_value=$3, value=$4 WHERE user_id=$1 AND id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, string(userID), id, raw, value)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes one entry.
func (r *WeightRepo) Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error {
	const q = `DELETE FROM weights WHERE user_id=$1 AND id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, string(userID), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// DaysWithData returns days of the month that have at least one entry.
func (r *WeightRepo) DaysWithData(ctx context.Context, userID model.UserID, year int, month time.Month) ([]int, error) {
	const q = `
SELECT DISTINCT EXTRACT(DAY FROM date)::int AS d
FROM weights WHERE user_id=$1 AND date>=$2 AND date<$3 ORDER BY d ASC`
	first, next := monthBounds(year, month)
	return scanDays(r.db.Pool.Query(ctx, q, string(userID), first, next))
}

func (r *WeightRepo) one(ctx context.Context, q string, args ...any) (*model.WeightEntry, error) {
	row := r.db.Pool.QueryRow(ctx, q, args...)
	e, err := scanWeight(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func scanWeight(row pgx.Row) (*model.WeightEntry, error) {
	var (
		e    model.WeightEntry
		user string
	)
	if err := row.Scan(&e.ID, &user, &e.RawValue, &e.Value, &e.Date); err != nil {
		return nil, err
	}
	e.UserID = model.UserID(user)
	return &e, nil
}
