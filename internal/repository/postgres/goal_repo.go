package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/avdeev87/fitcoach/internal/errs"
	"github.com/avdeev87/fitcoach/internal/model"
)

// GoalRepo implements GoalRepository using PostgreSQL.
type GoalRepo struct{ db *DB }

// NewGoalRepo constructs a goal repository.
func NewGoalRepo(db *DB) *GoalRepo { return &GoalRepo{db: db} }

// Upsert creates or replaces the user's goal.
func (r *GoalRepo) Upsert(ctx context.Context, g *model.KbjuGoal) error {
	const q = `
INSERT INTO kbju_goals (user_id, calories, protein, fat, carbs, goal, activity, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,now())
ON CONFLICT (user_id) DO UPDATE
SET calories=EXCLUDED.calories, protein=EXCLUDED.protein, fat=EXCLUDED.fat,
    carbs=EXCLUDED.carbs, goal=EXCLUDED.goal, activity=EXCLUDED.activity, updated_at=now()`
	_, err := r.db.Pool.Exec(ctx, q,
		string(g.UserID), g.Calories, g.Protein, g.Fat, g.Carbs, g.Goal, g.Activity)
	return err
}

// Get loads the user's goal.
func (r *GoalRepo) Get(ctx context.Context, userID model.UserID) (*model.KbjuGoal, error) {
	const q = `
SELECT user_id, calories, protein, fat, carbs, goal, activity, updated_at
FROM kbju_goals WHERE user_id=$1`
	var (
		g    model.KbjuGoal
		user string
	)
	err := r.db.Pool.QueryRow(ctx, q, string(userID)).
		Scan(&user, &g.Calories, &g.Protein, &g.Fat, &g.Carbs, &g.Goal, &g.Activity, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	g.UserID = model.UserID(user)
	return &g, nil
}

// Delete removes the user's goal.
func (r *GoalRepo) Delete(ctx context.Context, userID model.UserID) error {
	const q = `DELETE FROM kbju_goals WHERE user_id=$1`
	_, err := r.db.Pool.Exec(ctx, q, string(userID))
	return err
}
