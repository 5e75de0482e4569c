package repository

import (
	"context"
	"time"

	"advocatehub/internal/model"
)

// UserRepository reads and creates user accounts.
type UserRepository interface {
	// CreateIfAbsent inserts u unless its email is taken and reports whether a row was written.
	CreateIfAbsent(ctx context.Context, u *model.User) (bool, error)
	// FindByEmail returns the user with the given email, or sql.ErrNoRows.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// SessionRecord is a stored login session.
type SessionRecord struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// SessionRepository persists login sessions keyed by opaque token.
type SessionRepository interface {
	Create(ctx context.Context, s SessionRecord) error
	// FindUser returns the session and its owner. Missing tokens yield sql.ErrNoRows.
	FindUser(ctx context.Context, token string) (*SessionRecord, *model.User, error)
	// Delete removes a session. Missing tokens are not an error.
	Delete(ctx context.Context, token string) error
}
