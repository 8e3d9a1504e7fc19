package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/avdeev87/fitcoach/internal/errs"
	"github.com/avdeev87/fitcoach/internal/model"
)

// MealRepo implements MealRepository using PostgreSQL. The product list
// is serialized to a JSONB blob written in the same statement as the
// four totals, so a meal row is never observable half-written.
type MealRepo struct{ db *DB }

// NewMealRepo constructs a meal repository.
func NewMealRepo(db *DB) *MealRepo { return &MealRepo{db: db} }

// Create inserts a new meal entry.
func (r *MealRepo) Create(ctx context.Context, e *model.MealEntry) error {
	blob, err := json.Marshal(e.Products)
	if err != nil {
		return fmt.Errorf("marshal products: %w", err)
	}
	const q = `
INSERT INTO meals (id, user_id, date, raw_text, products, calories, protein, fat, carbs)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err = r.db.Pool.Exec(ctx, q,
		e.ID, string(e.UserID), day(e.Date), e.RawText, blob, e.Calories, e.Protein, e.Fat, e.Carbs)
	return err
}

// GetByID returns a single entry by id.
func (r *MealRepo) GetByID(ctx context.Context, userID model.UserID, id uuid.UUID) (*model.MealEntry, error) {
	const q = `
SELECT id, user_id, date, raw_text, products, calories, protein, fat, carbs
FROM meals WHERE user_id=$1 AND id=$2`
	row := r.db.Pool.QueryRow(ctx, q, string(userID), id)
	e, err := scanMeal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// GetForDate returns all entries for the exact day in insertion order.
func (r *MealRepo) GetForDate(ctx context.Context, userID model.UserID, date time.Time) ([]model.MealEntry, error) {
	const q = `
SELECT id, user_id, date, raw_text, products, calories, protein, fat, carbs
FROM meals WHERE user_id=$1 AND date=$2 ORDER BY seq ASC`
	return r.list(ctx, q, string(userID), day(date))
}

// GetForRange returns entries with date in [from, to].
func (r *MealRepo) GetForRange(ctx context.Context, userID model.UserID, from, to time.Time) ([]model.MealEntry, error) {
	const q = `
SELECT id, user_id, date, raw_text, products, calories, protein, fat, carbs
FROM meals WHERE user_id=$1 AND date>=$2 AND date<=$3 ORDER BY date ASC, seq ASC`
	return r.list(ctx, q, string(userID), day(from), day(to))
}

// Replace overwrites the product list and all four totals at once.
func (r *MealRepo) Replace(ctx context.Context, e *model.MealEntry) error {
	blob, err := json.Marshal(e.Products)
	if err != nil {
		return fmt.Errorf("marshal products: %w", err)
	}
	const q = `
UPDATE meals SET raw_text=$3, products=$4, calories=$5, protein=$6, fat=$7, carbs=$8
WHERE user_id=$1 AND id=$2`
	tag, err := r.db.Pool.Exec(ctx, q,
		string(e.UserID), e.ID, e.RawText, blob, e.Calories, e.Protein, e.Fat, e.Carbs)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes one entry.
func (r *MealRepo) Delete(ctx context.Context, userID model.UserID, id uuid.UUID) error {
	const q = `DELETE FROM meals WHERE user_id=$1 AND id=$2`
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
func (r *MealRepo) DaysWithData(ctx context.Context, userID model.UserID, year int, month time.Month) ([]int, error) {
	const q = `
SELECT DISTINCT EXTRACT(DAY FROM date)::int AS d
FROM meals WHERE user_id=$1 AND date>=$2 AND date<$3 ORDER BY d ASC`
	first, next := monthBounds(year, month)
	return scanDays(r.db.Pool.Query(ctx, q, string(userID), first, next))
}

func (r *MealRepo) list(ctx context.Context, q string, args ...any) ([]model.MealEntry, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MealEntry
	for rows.Next() {
		e, err := scanMeal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func scanMeal(row pgx.Row) (*model.MealEntry, error) {
	var (
		e    model.MealEntry
		user string
		blob []byte
	)
	if err := row.Scan(&e.ID, &user, &e.Date, &e.RawText, &blob, &e.Calories, &e.Protein, &e.Fat, &e.Carbs); err != nil {
		return nil, err
	}
	e.UserID = model.UserID(user)
	if len(blob) > 0 {
		if err := json.Unmarshal(blob, &e.Products); err != nil {
			return nil, fmt.Errorf("unmarshal products: %w", err)
		}
	}
	return &e, nil
}
