package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/avdeev87/fitcoach/internal/model"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// Ensure registers the user if not yet known; idempotent.
func (r *UserRepo) Ensure(ctx context.Context, id model.UserID) error {
	const q = `INSERT INTO users (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`
	_, err := r.db.Pool.Exec(ctx, q, string(id))
	return err
}

// Exists reports whether the user is known.
func (r *UserRepo) Exists(ctx context.Context, id model.UserID) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM users WHERE id=$1)`
	var ok bool
	if err := r.db.Pool.QueryRow(ctx, q, string(id)).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// Count returns the number of known users.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	const q = `SELECT COUNT(*) FROM users`
	var n int64
	if err := r.db.Pool.QueryRow(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Purge removes the user and all of their data in one transaction.
func (r *UserRepo) Purge(ctx context.Context, id model.UserID) (err error) {
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

	tables := []string{
		"supplement_entries", "supplements", "workouts", "weights",
		"measurements", "meals", "water", "procedures", "wellbeing",
		"kbju_goals", "users",
	}
	for _, t := range tables {
		if _, err = tx.Exec(ctx, `DELETE FROM `+t+` WHERE `+userColumn(t)+`=$1`, string(id)); err != nil {
			return err
		}
	}
	return nil
}

// userColumn names the owner column: users keys on id, everything else on user_id.
func userColumn(table string) string {
	if table == "users" {
		return "id"
	}
	return "user_id"
}
