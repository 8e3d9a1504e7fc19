package postgres

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/avdeev87/fitcoach/internal/errs"
	"github.com/avdeev87/fitcoach/internal/model"
)

// WaterRepo implements WaterRepository using PostgreSQL.
type WaterRepo struct{ db *DB }

// NewWaterRepo constructs a water repository.
func NewWaterRepo(db *DB) *WaterRepo { return &WaterRepo{db: db} }

// Create inserts a new water entry.
func (r *WaterRepo) Create(ctx context.Context, e *model.WaterEntry) error {
	const q = `
INSERT INTO water (id, user_id, amount, date, logged_at)
VALUES ($1,$2,$3,$4,$5)`
	_, err := r.db.Pool.Exec(ctx, q, e.ID, string(e.UserID), e.Amount, day(e.Date), e.LoggedAt)
	return err
}

// GetForDate returns all entries for the exact day in insertion order.
func (r *WaterRepo) GetForDate(ctx context.Context, userID model.UserID, date time.Time) ([]model.WaterEntry, error) {
	const q = `
SELECT id, user_id, amount, date, logged_at
FROM water WHERE user_id=$1 AND date=$2 ORDER BY seq ASC`
	rows, err := r.db.Pool.Query(ctx, q, string(userID), day(date))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.WaterEntry
	for rows.Next() {
		e, err := scanWater(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// TotalForDate sums the day's entries live.
func (r *WaterRepo) TotalForDate(ctx context.Context, userID model.UserID, date time.Time) (float64, error) {
	const q = `SELECT COALESCE(SUM(amount),0) FROM water WHERE user_id=$1 AND date=$2`
	var total float64
	if err := r.db.Pool.QueryRow(ctx, q, string(userID), day(date)).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// TotalForRange sums entries with date in [from, to].
func (r *WaterRepo) TotalForRange(ctx context.Context, userID model.UserID, from, to time.Time) (float64, error) {
	const q = `SELECT COALESCE(SUM(amount),0) FROM water WHERE user_id=$1 AND date>=$2 AND date<=$3`
	var total float64
	if err := r.db.Pool.QueryRow(ctx, q, string(userID), day(from), day(to)).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// Delete removes one entry.
func (r *WaterRepo) Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error {
	const q = `DELETE FROM water WHERE user_id=$1 AND id=$2`
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
func (r *WaterRepo) DaysWithData(ctx context.Context, userID model.UserID, year int, month time.Month) ([]int, error) {
	const q = `
SELECT DISTINCT EXTRACT(DAY FROM date)::int AS d
FROM water WHERE user_id=$1 AND date>=$2 AND date<$3 ORDER BY d ASC`
	first, next := monthBounds(year, month)
	return scanDays(r.db.Pool.Query(ctx, q, string(userID), first, next))
}

func scanWater(row pgx.Row) (*model.WaterEntry, error) {
	var (
		e    model.WaterEntry
		user string
	)
	if err := row.Scan(&e.ID, &user, &e.Amount, &e.Date, &e.LoggedAt); err != nil {
		return nil, err
	}
	e.UserID = model.UserID(user)
	return &e, nil
}
