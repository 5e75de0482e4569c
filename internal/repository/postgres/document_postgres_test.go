package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"advocatehub/internal/model"
	"advocatehub/internal/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var documentCols = []string{"id", "owner_id", "filename", "storage_path", "size", "content_type", "created_at"}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	now := time.Now().UTC()
	doc := &model.Document{
		ID:          "doc-1",
		OwnerID:     "owner-1",
		Filename:    "retainer.pdf",
		StoragePath: "documents/owner-1/doc-1.pdf",
		Size:        2048,
		ContentType: "application/pdf",
		CreatedAt:   now,
	}

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.ID, doc.OwnerID, doc.Filename, doc.StoragePath, doc.Size, doc.ContentType, doc.CreatedAt).
		WillReturnRows(sqlmock.NewRows(documentCols).
			AddRow(doc.ID, doc.OwnerID, doc.Filename, doc.StoragePath, doc.Size, doc.ContentType, doc.CreatedAt))

	got, err := repo.Create(context.Background(), doc)

	require.NoError(t, err)
	assert.Equal(t, doc, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("doc-1").
			WillReturnRows(sqlmock.NewRows(documentCols).
				AddRow("doc-1", "owner-1", "file.txt", "documents/owner-1/file.txt", 100, "text/plain", time.Now()))

		doc, err := repo.FindByID(ctx, "doc-1")

		require.NoError(t, err)
		assert.Equal(t, "doc-1", doc.ID)
		assert.Equal(t, "owner-1", doc.OwnerID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, doc)
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_ListByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM documents WHERE owner_id").
			WithArgs("owner-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE owner_id = \\$1 ORDER BY").
			WithArgs("owner-1", 10, 0).
			WillReturnRows(sqlmock.NewRows(documentCols).
				AddRow("doc-1", "owner-1", "file.txt", "documents/owner-1/file.txt", 100, "text/plain", time.Now()))

		res, err := repo.ListByOwner(ctx, "owner-1", repository.PageQuery{Limit: 10, Offset: 0})

		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Len(t, res.Items, 1)
	})

	t.Run("count error", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM documents WHERE owner_id").
			WithArgs("owner-1").
			WillReturnError(errors.New("conn reset"))

		res, err := repo.ListByOwner(ctx, "owner-1", repository.PageQuery{Limit: 10})

		assert.Error(t, err)
		assert.Nil(t, res)
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)

	mock.ExpectExec("DELETE FROM documents WHERE id = ?").
		WithArgs("doc-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), "doc-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
