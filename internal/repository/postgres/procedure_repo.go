package postgres

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avdeev87/fitcoach/internal/errs"
	"github.com/avdeev87/fitcoach/internal/model"
)

// ProcedureRepo implements ProcedureRepository using PostgreSQL.
type ProcedureRepo struct{ db *DB }

// NewProcedureRepo constructs a procedure repository.
func NewProcedureRepo(db *DB) *ProcedureRepo { return &ProcedureRepo{db: db} }

// Create inserts a new procedure entry.
func (r *ProcedureRepo) Create(ctx context.Context, e *model.ProcedureEntry) error {
	const q = `
INSERT INTO procedures (id, user_id, name, date, notes)
VALUES ($1,$2,$3,$4,$5)`
	_, err := r.db.Pool.Exec(ctx, q, e.ID, string(e.UserID), e.Name, day(e.Date), e.Notes)
	return err
}

// GetForDate returns all entries for the exact day in insertion order.
func (r *ProcedureRepo) GetForDate(ctx context.Context, userID model.UserID, date time.Time) ([]model.ProcedureEntry, error) {
	const q = `
SELECT id, user_id, name, date, notes
FROM procedures WHERE user_id=$1 AND date=$2 ORDER BY seq ASC`
	return r.list(ctx, q, string(userID), day(date))
}

// GetForRange returns entries with date in [from, to].
func (r *ProcedureRepo) GetForRange(ctx context.Context, userID model.UserID, from, to time.Time) ([]model.ProcedureEntry, error) {
	const q = `
SELECT id, user_id, name, date, notes
FROM procedures WHERE user_id=$1 AND date>=$2 AND date<=$3 ORDER BY date ASC, seq ASC`
	return r.list(ctx, q, string(userID), day(from), day(to))
}

// Delete removes one entry.
func (r *ProcedureRepo) Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error {
	const q = `DELETE FROM procedures WHERE user_id=$1 AND id=$2`
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
func (r *ProcedureRepo) DaysWithData(ctx context.Context, userID model.UserID, year int, month time.Month) ([]int, error) {
	const q = `
SELECT DISTINCT EXTRACT(DAY FROM date)::int AS d
FROM procedures WHERE user_id=$1 AND date>=$2 AND date<$3 ORDER BY d ASC`
	first, next := monthBounds(year, month)
	return scanDays(r.db.Pool.Query(ctx, q, string(userID), first, next))
}

func (r *ProcedureRepo) list(ctx context.Context, q string, args ...any) ([]model.ProcedureEntry, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ProcedureEntry
	for rows.Next() {
		var (
			e    model.ProcedureEntry
			user string
		)
		if err := rows.Scan(&e.ID, &user, &e.Name, &e.Date, &e.Notes); err != nil {
			return nil, err
		}
		e.UserID = model.UserID(user)
		out = append(out, e)
	}
	return out, rows.Err()
}
