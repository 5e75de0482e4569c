package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advocatehub/internal/model"
	"advocatehub/internal/repository"
)

var userCols = []string{"id", "email", "name", "user_type", "password_hash", "created_at"}

func TestUserPostgres_CreateIfAbsent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()
	u := &model.User{ID: "u9", Email: "new@example.com", Name: "New", UserType: "client", PasswordHash: "h", CreatedAt: time.Now()}

	cases := map[string]struct {
		result driver.Result
		want   bool
	}{
		"inserted":    {sqlmock.NewResult(0, 1), true},
		"email taken": {sqlmock.NewResult(0, 0), false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			mock.ExpectExec("INSERT INTO users (.+) ON CONFLICT \\(email\\) DO NOTHING").
				WithArgs(u.ID, u.Email, u.Name, u.UserType, u.PasswordHash, u.CreatedAt).
				WillReturnResult(tc.result)

			created, err := repo.CreateIfAbsent(ctx, u)

			require.NoError(t, err)
			assert.Equal(t, tc.want, created)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("exec error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").WillReturnError(sql.ErrConnDone)

		_, err := repo.CreateIfAbsent(ctx, u)

		assert.ErrorIs(t, err, sql.ErrConnDone)
	})
}

func TestUserPostgres_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ?").
			WithArgs("a@example.com").
			WillReturnRows(sqlmock.NewRows(userCols).AddRow("u1", "a@example.com", "Ada", "advocate", "hash", time.Now()))

		u, err := repo.FindByEmail(ctx, "a@example.com")

		assert.NoError(t, err)
		assert.Equal(t, "u1", u.ID)
		assert.Equal(t, "advocate", u.UserType)
		assert.Equal(t, "hash", u.PasswordHash)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ?").
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		u, err := repo.FindByEmail(ctx, "nobody@example.com")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, u)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = ?").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("u1", "a@example.com", "Ada", "client", "hash", time.Now()))

	u, err := NewUserPostgres(db).FindByID(context.Background(), "u1")

	assert.NoError(t, err)
	assert.Equal(t, "client", u.UserType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionPostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSessionPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("create", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO sessions").
			WithArgs("tok", "u1", now.Add(time.Hour), now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, repository.SessionRecord{Token: "tok", UserID: "u1", ExpiresAt: now.Add(time.Hour), CreatedAt: now})
		assert.NoError(t, err)
	})

	t.Run("find user", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"token", "user_id", "expires_at", "created_at",
			"id", "email", "name", "user_type", "password_hash", "created_at",
		}).AddRow("tok", "u1", now.Add(time.Hour), now, "u1", "a@example.com", "Ada", "advocate", "hash", now)
		mock.ExpectQuery("SELECT (.+) FROM sessions s JOIN users u").
			WithArgs("tok").
			WillReturnRows(rows)

		rec, u, err := repo.FindUser(ctx, "tok")

		require.NoError(t, err)
		assert.Equal(t, "tok", rec.Token)
		assert.Equal(t, "u1", u.ID)
	})

	t.Run("find user missing", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM sessions s JOIN users u").
			WithArgs("gone").
			WillReturnError(sql.ErrNoRows)

		rec, u, err := repo.FindUser(ctx, "gone")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, rec)
		assert.Nil(t, u)
	})

	t.Run("delete", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM sessions WHERE token = ?").
			WithArgs("tok").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, "tok"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
