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

// SupplementRepo implements SupplementRepository using PostgreSQL.
// Times and weekday labels are stored as text arrays; intake history
// lives in its own table owned by the supplement row.
type SupplementRepo struct{ db *DB }

// NewSupplementRepo constructs a supplement repository.
func NewSupplementRepo(db *DB) *SupplementRepo { return &SupplementRepo{db: db} }

// Create inserts a new supplement.
func (r *SupplementRepo) Create(ctx context.Context, s *model.Supplement) error {
	const q = `
INSERT INTO supplements (id, user_id, name, times, days, duration, notify)
VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.db.Pool.Exec(ctx, q,
		s.ID, string(s.UserID), s.Name, s.Times, s.Days, s.Duration, s.Notify)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// GetByID returns a single supplement by id.
func (r *SupplementRepo) GetByID(ctx context.Context, userID model.UserID, id uuid.UUID) (*model.Supplement, error) {
	const q = `
SELECT id, user_id, name, times, days, duration, notify
FROM supplements WHERE user_id=$1 AND id=$2`
	row := r.db.Pool.QueryRow(ctx, q, string(userID), id)
	s, err := scanSupplement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// ListByUser returns all of the user's supplements ordered by name.
func (r *SupplementRepo) ListByUser(ctx context.Context, userID model.UserID) ([]model.Supplement, error) {
	const q = `
SELECT id, user_id, name, times, days, duration, notify
FROM supplements WHERE user_id=$1 ORDER BY name ASC`
	return r.listSupp(ctx, q, string(userID))
}

// Update replaces name, schedule and notification settings.
func (r *SupplementRepo) Update(ctx context.Context, s *model.Supplement) error {
	const q = `
UPDATE supplements SET name=$3, times=$4, days=$5, duration=$6, notify=$7
WHERE user_id=$1 AND id=$2`
	tag, err := r.db.Pool.Exec(ctx, q,
		string(s.UserID), s.ID, s.Name, s.Times, s.Days, s.Duration, s.Notify)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes a supplement and its intake history in one transaction.
func (r *SupplementRepo) Delete(ctx context.Context, userID model.UserID, id uuid.UUID) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	const delEntries = `DELETE FROM supplement_entries WHERE user_id=$1 AND supplement_id=$2`
	if _, err = tx.Exec(ctx, delEntries, string(userID), id); err != nil {
		return err
	}
	const delSupp = `DELETE FROM supplements WHERE user_id=$1 AND id=$2`
	tag, err := tx.Exec(ctx, delSupp, string(userID), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// ListNotifiable returns every supplement with notifications enabled.
func (r *SupplementRepo) ListNotifiable(ctx context.Context) ([]model.Supplement, error) {
	const q = `
SELECT id, user_id, name, times, days, duration, notify
FROM supplements WHERE notify ORDER BY user_id ASC, name ASC`
	return r.listSupp(ctx, q)
}

// CreateEntry appends an intake record.
func (r *SupplementRepo) CreateEntry(ctx context.Context, e *model.SupplementEntry) error {
	const q = `
INSERT INTO supplement_entries (id, user_id, supplement_id, taken_at, amount)
VALUES ($1,$2,$3,$4,$5)`
	_, err := r.db.Pool.Exec(ctx, q, e.ID, string(e.UserID), e.SupplementID, e.TakenAt, e.Amount)
	return err
}

// GetEntry returns a single intake record by id.
func (r *SupplementRepo) GetEntry(ctx context.Context, userID model.UserID, id uuid.UUID) (*model.SupplementEntry, error) {
	const q = `
SELECT id, user_id, supplement_id, taken_at, amount
FROM supplement_entries WHERE user_id=$1 AND id=$2`
	row := r.db.Pool.QueryRow(ctx, q, string(userID), id)
	e, err := scanSupplementEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// EntriesForDate returns intake records for the exact day in insertion order.
func (r *SupplementRepo) EntriesForDate(ctx context.Context, userID model.UserID, date time.Time) ([]model.SupplementEntry, error) {
	const q = `
SELECT id, user_id, supplement_id, taken_at, amount
FROM supplement_entries
WHERE user_id=$1 AND taken_at>=$2 AND taken_at<$3 ORDER BY seq ASC`
	d := day(date)
	rows, err := r.db.Pool.Query(ctx, q, string(userID), d, d.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SupplementEntry
	for rows.Next() {
		e, err := scanSupplementEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// DeleteEntry removes one intake record.
func (r *SupplementRepo) DeleteEntry(ctx context.Context, userID model.UserID, id uuid.UUID) error {
	const q = `DELETE FROM supplement_entries WHERE user_id=$1 AND id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, string(userID), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// EntryDaysWithData returns days of the month that have intake records.
func (r *SupplementRepo) EntryDaysWithData(ctx context.Context, userID model.UserID, year int, month time.Month) ([]int, error) {
	const q = `
SELECT DISTINCT EXTRACT(DAY FROM taken_at)::int AS d
FROM supplement_entries WHERE user_id=$1 AND taken_at>=$2 AND taken_at<$3 ORDER BY d ASC`
	first, next := monthBounds(year, month)
	return scanDays(r.db.Pool.Query(ctx, q, string(userID), first, next))
}

func (r *SupplementRepo) listSupp(ctx context.Context, q string, args ...any) ([]model.Supplement, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Supplement
	for rows.Next() {
		s, err := scanSupplement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func scanSupplement(row pgx.Row) (*model.Supplement, error) {
	var (
		s    model.Supplement
		user string
	)
	if err := row.Scan(&s.ID, &user, &s.Name, &s.Times, &s.Days, &s.Duration, &s.Notify); err != nil {
		return nil, err
	}
	s.UserID = model.UserID(user)
	return &s, nil
}

func scanSupplementEntry(row pgx.Row) (*model.SupplementEntry, error) {
	var (
		e    model.SupplementEntry
		user string
	)
	if err := row.Scan(&e.ID, &user, &e.SupplementID, &e.TakenAt, &e.Amount); err != nil {
		return nil, err
	}
	e.UserID = model.UserID(user)
	return &e, nil
}
