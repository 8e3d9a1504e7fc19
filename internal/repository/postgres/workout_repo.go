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

// WorkoutRepo implements WorkoutRepository using PostgreSQL.
type WorkoutRepo struct{ db *DB }

// NewWorkoutRepo constructs a workout repository.
func NewWorkoutRepo(db *DB) *WorkoutRepo { return &WorkoutRepo{db: db} }

// Create inserts a new workout entry.
func (r *WorkoutRepo) Create(ctx context.Context, e *model.WorkoutEntry) error {
	const q = `
INSERT INTO workouts (id, user_id, exercise, variant, count, date, calories)
VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.db.Pool.Exec(ctx, q,
		e.ID, string(e.UserID), e.Exercise, string(e.Variant), e.Count, day(e.Date), e.Calories)
	return err
}

// GetByID returns a single entry by id.
func (r *WorkoutRepo) GetByID(ctx context.Context, userID model.UserID, id uuid.UUID) (*model.WorkoutEntry, error) {
	const q = `
SELECT id, user_id, exercise, variant, count, date, calories
FROM workouts WHERE user_id=$1 AND id=$2`
	row := r.db.Pool.QueryRow(ctx, q, string(userID), id)
	e, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// GetForDate returns all entries for the exact day in insertion order.
func (r *WorkoutRepo) GetForDate(ctx context.Context, userID model.UserID, date time.Time) ([]model.WorkoutEntry, error) {
	const q = `
SELECT id, user_id, exercise, variant, count, date, calories
FROM workouts WHERE user_id=$1 AND date=$2 ORDER BY seq ASC`
	return r.list(ctx, q, string(userID), day(date))
}

// GetForRange returns entries with date in [from, to].
func (r *WorkoutRepo) GetForRange(ctx context.Context, userID model.UserID, from, to time.Time) ([]model.WorkoutEntry, error) {
	const q = `
SELECT id, user_id, exercise, variant, count, date, calories
FROM workouts WHERE user_id=$1 AND date>=$2 AND date<=$3 ORDER BY date ASC, seq ASC`
	return r.list(ctx, q, string(userID), day(from), day(to))
}

// UpdateCount replaces count and the precomputed calorie estimate.
func (r *WorkoutRepo) UpdateCount(ctx context.Context, userID model.UserID, id uuid.UUID, count int, calories float64) error {
	const q = `UPDATE workouts SET count=$3, calories=$4 WHERE user_id=$1 AND id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, string(userID), id, count, calories)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes one entry.
func (r *WorkoutRepo) Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error {
	const q = `DELETE FROM workouts WHERE user_id=$1 AND id=$2`
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
func (r *WorkoutRepo) DaysWithData(ctx context.Context, userID model.UserID, year int, month time.Month) ([]int, error) {
	const q = `
SELECT DISTINCT EXTRACT(DAY FROM date)::int AS d
FROM workouts WHERE user_id=$1 AND date>=$2 AND date<$3 ORDER BY d ASC`
	first, next := monthBounds(year, month)
	return scanDays(r.db.Pool.Query(ctx, q, string(userID), first, next))
}

func (r *WorkoutRepo) list(ctx context.Context, q string, args ...any) ([]model.WorkoutEntry, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.WorkoutEntry
	for rows.Next() {
		e, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func scanWorkout(row pgx.Row) (*model.WorkoutEntry, error) {
	var (
		e       model.WorkoutEntry
		user    string
		variant string
	)
	if err := row.Scan(&e.ID, &user, &e.Exercise, &variant, &e.Count, &e.Date, &e.Calories); err != nil {
		return nil, err
	}
	e.UserID = model.UserID(user)
	e.Variant = model.VariantUnit(variant)
	return &e, nil
}
