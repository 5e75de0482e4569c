package repository

import (
	"context"

	"advocatehub/internal/model"
)

// DocumentRepository persists document metadata. Ownership checks live in the service.
type DocumentRepository interface {
	// Create inserts doc and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)
	// FindByID returns sql.ErrNoRows when id does not exist.
	FindByID(ctx context.Context, id string) (*model.Document, error)
	// ListByOwner returns ownerID's documents, newest first.
	ListByOwner(ctx context.Context, ownerID string, pq PageQuery) (*PageResult[model.Document], error)
	// Delete is a no-op for a missing id.
	Delete(ctx context.Context, id string) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is one page of T plus the total row count.
type PageResult[T any] struct {
	Items []T
	Total int
}
