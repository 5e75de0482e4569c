package postgres

import (
	"context"
	"database/sql"

	"advocatehub/internal/model"
	"advocatehub/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, email, name, user_type, password_hash, created_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.UserType, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByEmail fetches a user by email.
func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, email))
}

// FindByID fetches a user by ID.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

// CreateIfAbsent inserts u; an existing email leaves the stored account untouched.
func (r *UserPostgres) CreateIfAbsent(ctx context.Context, u *model.User) (bool, error) {
	const q = `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (email) DO NOTHING`
	res, err := r.db.ExecContext(ctx, q, u.ID, u.Email, u.Name, u.UserType, u.PasswordHash, u.CreatedAt)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SessionPostgres is a PostgreSQL implementation of repository.SessionRepository.
type SessionPostgres struct {
	db *sql.DB
}

// NewSessionPostgres creates a new SessionPostgres repository.
func NewSessionPostgres(db *sql.DB) *SessionPostgres {
	return &SessionPostgres{db: db}
}

var _ repository.SessionRepository = (*SessionPostgres)(nil)

// Create stores a session row.
func (r *SessionPostgres) Create(ctx context.Context, s repository.SessionRecord) error {
	const q = `INSERT INTO sessions (token, user_id, expires_at, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, q, s.Token, s.UserID, s.ExpiresAt, s.CreatedAt)
	return err
}

// FindUser joins the session with its owner.
func (r *SessionPostgres) FindUser(ctx context.Context, token string) (*repository.SessionRecord, *model.User, error) {
	const q = `
		SELECT s.token, s.user_id, s.expires_at, s.created_at,
		       u.id, u.email, u.name, u.user_type, u.password_hash, u.created_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token = $1
	`
	var (
		rec repository.SessionRecord
		u   model.User
	)
	err := r.db.QueryRowContext(ctx, q, token).Scan(
		&rec.Token, &rec.UserID, &rec.ExpiresAt, &rec.CreatedAt,
		&u.ID, &u.Email, &u.Name, &u.UserType, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		return nil, nil, err
	}
	return &rec, &u, nil
}

// Delete removes a session row.
func (r *SessionPostgres) Delete(ctx context.Context, token string) error {
	const q = `DELETE FROM sessions WHERE token = $1`
	_, err := r.db.ExecContext(ctx, q, token)
	return err
}
