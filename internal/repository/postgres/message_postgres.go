package postgres

import (
	"context"
	"database/sql"

	"advocatehub/internal/model"
	"advocatehub/internal/repository"
)

// MessagePostgres is a PostgreSQL implementation of repository.MessageRepository.
type MessagePostgres struct {
	db *sql.DB
}

// NewMessagePostgres creates a new MessagePostgres repository.
func NewMessagePostgres(db *sql.DB) *MessagePostgres {
	return &MessagePostgres{db: db}
}

var _ repository.MessageRepository = (*MessagePostgres)(nil)

// Create inserts a message and returns the stored row.
func (r *MessagePostgres) Create(ctx context.Context, m *model.Message) (*model.Message, error) {
	const q = `
		INSERT INTO messages (id, sender_id, recipient_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, sender_id, recipient_id, body, created_at
	`
	var out model.Message
	if err := r.db.QueryRowContext(ctx, q, m.ID, m.SenderID, m.RecipientID, m.Body, m.CreatedAt).
		Scan(&out.ID, &out.SenderID, &out.RecipientID, &out.Body, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// Conversation pages through the messages exchanged by a and b.
func (r *MessagePostgres) Conversation(ctx context.Context, a, b string, pq repository.PageQuery) (*repository.PageResult[model.Message], error) {
	const qCount = `
		SELECT COUNT(*) FROM messages
		WHERE (sender_id = $1 AND recipient_id = $2) OR (sender_id = $2 AND recipient_id = $1)
	`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, a, b).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, sender_id, recipient_id, body, created_at
		FROM messages
		WHERE (sender_id = $1 AND recipient_id = $2) OR (sender_id = $2 AND recipient_id = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.QueryContext(ctx, qList, a, b, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	items, err := scanMessages(rows)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Message]{Items: items, Total: total}, nil
}

// Latest returns the newest message of each conversation userID takes part in.
func (r *MessagePostgres) Latest(ctx context.Context, userID string, limit int) ([]model.Message, error) {
	const q = `
		SELECT id, sender_id, recipient_id, body, created_at FROM (
			SELECT DISTINCT ON (CASE WHEN sender_id = $1 THEN recipient_id ELSE sender_id END)
			       id, sender_id, recipient_id, body, created_at
			FROM messages
			WHERE sender_id = $1 OR recipient_id = $1
			ORDER BY CASE WHEN sender_id = $1 THEN recipient_id ELSE sender_id END, created_at DESC
		) latest
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	return scanMessages(rows)
}

func scanMessages(rows *sql.Rows) ([]model.Message, error) {
	defer rows.Close()
	items := make([]model.Message, 0)
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// PostPostgres is a PostgreSQL implementation of repository.PostRepository.
type PostPostgres struct {
	db *sql.DB
}

// NewPostPostgres creates a new PostPostgres repository.
func NewPostPostgres(db *sql.DB) *PostPostgres {
	return &PostPostgres{db: db}
}

var _ repository.PostRepository = (*PostPostgres)(nil)

// Create inserts a post and returns the stored row.
func (r *PostPostgres) Create(ctx context.Context, p *model.Post) (*model.Post, error) {
	const q = `
		INSERT INTO posts (id, author_id, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, author_id, content, created_at
	`
	var out model.Post
	if err := r.db.QueryRowContext(ctx, q, p.ID, p.AuthorID, p.Content, p.CreatedAt).
		Scan(&out.ID, &out.AuthorID, &out.Content, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByAuthor pages through an author's posts.
func (r *PostPostgres) ListByAuthor(ctx context.Context, authorID string, pq repository.PageQuery) (*repository.PageResult[model.Post], error) {
	const qCount = `SELECT COUNT(*) FROM posts WHERE author_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, authorID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, author_id, content, created_at
		FROM posts
		WHERE author_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, authorID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Post, 0)
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Content, &p.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Post]{Items: items, Total: total}, nil
}
