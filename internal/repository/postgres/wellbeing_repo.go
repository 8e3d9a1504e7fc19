package postgres

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/avdeev87/fitcoach/internal/errs"
	"github.com/avdeev87/fitcoach/internal/model"
)

// WellbeingRepo implements WellbeingRepository using PostgreSQL.
type WellbeingRepo struct{ db *DB }

// NewWellbeingRepo constructs a wellbeing repository.
func NewWellbeingRepo(db *DB) *WellbeingRepo { return &WellbeingRepo{db: db} }

// Create inserts a new wellbeing entry.
func (r *WellbeingRepo) Create(ctx context.Context, e *model.WellbeingEntry) error {
	const q = `
INSERT INTO wellbeing (id, user_id, date, kind, mood, influence, difficulty, comment)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.db.Pool.Exec(ctx, q,
		e.ID, string(e.UserID), day(e.Date), string(e.Kind), e.Mood, e.Influence, e.Difficulty, e.Comment)
	return err
}

// GetForDate returns all entries for the exact day in insertion order.
func (r *WellbeingRepo) GetForDate(ctx context.Context, userID model.UserID, date time.Time) ([]model.WellbeingEntry, error) {
	const q = `
SELECT id, user_id, date, kind, mood, influence, difficulty, comment
FROM wellbeing WHERE user_id=$1 AND date=$2 ORDER BY seq ASC`
	return r.list(ctx, q, string(userID), day(date))
}

// GetForRange returns entries with date in [from, to].
func (r *WellbeingRepo) GetForRange(ctx context.Context, userID model.UserID, from, to time.Time) ([]model.WellbeingEntry, error) {
	const q = `
SELECT id, user_id, date, kind, mood, influence, difficulty, comment
FROM wellbeing WHERE user_id=$1 AND date>=$2 AND date<=$3 ORDER BY date ASC, seq ASC`
	return r.list(ctx, q, string(userID), day(from), day(to))
}

// Delete removes one entry.
func (r *WellbeingRepo) Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error {
	const q = `DELETE FROM wellbeing WHERE user_id=$1 AND id=$2`
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
func (r *WellbeingRepo) DaysWithData(ctx context.Context, userID model.UserID, year int, month time.Month) ([]int, error) {
	const q = `
SELECT DISTINCT EXTRACT(DAY FROM date)::int AS d
FROM wellbeing WHERE user_id=$1 AND date>=$2 AND date<$3 ORDER BY d ASC`
	first, next := monthBounds(year, month)
	return scanDays(r.db.Pool.Query(ctx, q, string(userID), first, next))
}

func (r *WellbeingRepo) list(ctx context.Context, q string, args ...any) ([]model.WellbeingEntry, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.WellbeingEntry
	for rows.Next() {
		e, err := scanWellbeing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func scanWellbeing(row pgx.Row) (*model.WellbeingEntry, error) {
	var (
		e    model.WellbeingEntry
		user string
		kind string
	)
	if err := row.Scan(&e.ID, &user, &e.Date, &kind, &e.Mood, &e.Influence, &e.Difficulty, &e.Comment); err != nil {
		return nil, err
	}
	e.UserID = model.UserID(user)
	e.Kind = model.WellbeingKind(kind)
	return &e, nil
}
