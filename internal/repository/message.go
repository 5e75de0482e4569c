package repository

import (
	"context"

	"advocatehub/internal/model"
)

// MessageRepository persists direct messages.
type MessageRepository interface {
	Create(ctx context.Context, m *model.Message) (*model.Message, error)
	// Conversation returns messages exchanged between a and b, newest first.
	Conversation(ctx context.Context, a, b string, pq PageQuery) (*PageResult[model.Message], error)
	// Latest returns the most recent message per counterpart of userID, newest first.
	Latest(ctx context.Context, userID string, limit int) ([]model.Message, error)
}

// PostRepository persists profile posts.
type PostRepository interface {
	Create(ctx context.Context, p *model.Post) (*model.Post, error)
	// ListByAuthor returns posts of authorID, newest first.
	ListByAuthor(ctx context.Context, authorID string, pq PageQuery) (*PageResult[model.Post], error)
}
