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

// MeasurementRepo implements MeasurementRepository using PostgreSQL.
type MeasurementRepo struct{ db *DB }

// NewMeasurementRepo constructs a measurement repository.
func NewMeasurementRepo(db *DB) *MeasurementRepo { return &MeasurementRepo{db: db} }

// Create inserts a new measurement entry.
func (r *MeasurementRepo) Create(ctx context.Context, e *model.MeasurementEntry) error {
	const q = `
INSERT INTO measurements (id, user_id, date, chest, waist, hips, biceps, thigh)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.db.Pool.Exec(ctx, q,
		e.ID, string(e.UserID), day(e.Date), e.Chest, e.Waist, e.Hips, e.Biceps, e.Thigh)
	return err
}

// LatestForDate returns the most recently inserted entry for the date.
func (r *MeasurementRepo) LatestForDate(ctx context.Context, userID model.UserID, date time.Time) (*model.MeasurementEntry, error) {
	const q = `
SELECT id, user_id, date, chest, waist, hips, biceps, thigh
FROM measurements WHERE user_id=$1 AND date=$2 ORDER BY seq DESC LIMIT 1`
	row := r.db.Pool.QueryRow(ctx, q, string(userID), day(date))
	e, err := scanMeasurement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// GetForRange returns entries with date in [from, to].
func (r *MeasurementRepo) GetForRange(ctx context.Context, userID model.UserID, from, to time.Time) ([]model.MeasurementEntry, error) {
	const q = `
SELECT id, user_id, date, chest, waist, hips, biceps, thigh
FROM measurements WHERE user_id=$1 AND date>=$2 AND date<=$3 ORDER BY date ASC, seq ASC`
	rows, err := r.db.Pool.Query(ctx, q, string(userID), day(from), day(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MeasurementEntry
	for rows.Next() {
		e, err := scanMeasurement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// Delete removes one entry.
func (r *MeasurementRepo) Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error {
	const q = `DELETE FROM measurements WHERE user_id=$1 AND id=$2`
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
func (r *MeasurementRepo) DaysWithData(ctx context.Context, userID model.UserID, year int, month time.Month) ([]int, error) {
	const q = `
SELECT DISTINCT EXTRACT(DAY FROM date)::int AS d
FROM measurements WHERE user_id=$1 AND date>=$2 AND date<$3 ORDER BY d ASC`
	first, next := monthBounds(year, month)
	return scanDays(r.db.Pool.Query(ctx, q, string(userID), first, next))
}

func scanMeasurement(row pgx.Row) (*model.MeasurementEntry, error) {
	var (
		e    model.MeasurementEntry
		user string
	)
	if err := row.Scan(&e.ID, &user, &e.Date, &e.Chest, &e.Waist, &e.Hips, &e.Biceps, &e.Thigh); err != nil {
		return nil, err
	}
	e.UserID = model.UserID(user)
	return &e, nil
}
