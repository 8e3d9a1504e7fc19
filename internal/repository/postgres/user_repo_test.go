package postgres

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_Ensure_Idempotent(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)

	mock.ExpectExec(`INSERT INTO users \(id\) VALUES \(\$1\) ON CONFLICT \(id\) DO NOTHING`).
		WithArgs("u1").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	require.NoError(t, r.Ensure(context.Background(), "u1"))
}

func TestUserRepo_Exists(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM users WHERE id=\$1\)`).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := r.Exists(context.Background(), "u1")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestUserRepo_Count(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(42)))

	n, err := r.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(42), n)
}

func TestUserRepo_Purge_DeletesEverythingInOneTx(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)

	mock.ExpectBegin()
	for _, table := range []string{
		"supplement_entries", "supplements", "workouts", "weights",
		"measurements", "meals", "water", "procedures", "wellbeing",
		"kbju_goals",
	} {
		mock.ExpectExec(`DELETE FROM ` + table + ` WHERE user_id=\$1`).
			WithArgs("u1").
			WillReturnResult(pgxmock.NewResult("DELETE", 3))
	}
	mock.ExpectExec(`DELETE FROM users WHERE id=\$1`).
		WithArgs("u1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	require.NoError(t, r.Purge(context.Background(), "u1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Purge_RollsBackOnError(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM supplement_entries WHERE user_id=\$1`).
		WithArgs("u1").
		WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	require.Error(t, r.Purge(context.Background(), "u1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
