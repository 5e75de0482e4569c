package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advocatehub/internal/model"
	"advocatehub/internal/repository"
)

var messageCols = []string{"id", "sender_id", "recipient_id", "body", "created_at"}

func TestMessagePostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	msg := &model.Message{ID: "m1", SenderID: "a", RecipientID: "b", Body: "hi", CreatedAt: now}

	mock.ExpectQuery("INSERT INTO messages").
		WithArgs("m1", "a", "b", "hi", now).
		WillReturnRows(sqlmock.NewRows(messageCols).AddRow("m1", "a", "b", "hi", now))

	out, err := NewMessagePostgres(db).Create(context.Background(), msg)

	assert.NoError(t, err)
	assert.Equal(t, "m1", out.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessagePostgres_Conversation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMessagePostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM messages").
			WithArgs("a", "b").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery("SELECT (.+) FROM messages WHERE (.+) ORDER BY").
			WithArgs("a", "b", 20, 0).
			WillReturnRows(sqlmock.NewRows(messageCols).
				AddRow("m2", "b", "a", "yo", time.Now()).
				AddRow("m1", "a", "b", "hi", time.Now()))

		res, err := repo.Conversation(ctx, "a", "b", repository.PageQuery{Limit: 20})

		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		assert.Len(t, res.Items, 2)
	})

	t.Run("count error", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM messages").
			WithArgs("a", "b").
			WillReturnError(errors.New("boom"))

		res, err := repo.Conversation(ctx, "a", "b", repository.PageQuery{Limit: 20})

		assert.Error(t, err)
		assert.Nil(t, res)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessagePostgres_Latest(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM \\(\\s*SELECT DISTINCT ON").
		WithArgs("a", 50).
		WillReturnRows(sqlmock.NewRows(messageCols).AddRow("m9", "c", "a", "latest", time.Now()))

	items, err := NewMessagePostgres(db).Latest(context.Background(), "a", 50)

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "c", items[0].SenderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostPostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()
	cols := []string{"id", "author_id", "content", "created_at"}

	t.Run("create", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO posts").
			WithArgs("p1", "u1", "hello", now).
			WillReturnRows(sqlmock.NewRows(cols).AddRow("p1", "u1", "hello", now))

		out, err := repo.Create(ctx, &model.Post{ID: "p1", AuthorID: "u1", Content: "hello", CreatedAt: now})

		assert.NoError(t, err)
		assert.Equal(t, "p1", out.ID)
	})

	t.Run("list by author", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM posts WHERE author_id = ?").
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT (.+) FROM posts WHERE author_id = (.+) ORDER BY").
			WithArgs("u1", 10, 0).
			WillReturnRows(sqlmock.NewRows(cols).AddRow("p1", "u1", "hello", now))

		res, err := repo.ListByAuthor(ctx, "u1", repository.PageQuery{Limit: 10})

		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Equal(t, "hello", res.Items[0].Content)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
