package auth

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"advocatehub/internal/model"
	"advocatehub/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when the email or password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionNotFound is returned when a token has no session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidAccount is returned when an account to create is incomplete.
	ErrInvalidAccount = errors.New("invalid account")
)

// Account describes a user to create with a plain-text password.
type Account struct {
	Email    string
	Name     string
	UserType string
	Password string
}

// Resolver turns a session token into a Session.
type Resolver interface {
	Resolve(ctx context.Context, token string) (Session, error)
}

// Service signs users in and resolves their sessions.
type Service struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	ttl      time.Duration
	now      func() time.Time
}

// NewService constructs a Service issuing sessions that live for ttl.
func NewService(users repository.UserRepository, sessions repository.SessionRepository, ttl time.Duration) *Service {
	return &Service{users: users, sessions: sessions, ttl: ttl, now: time.Now}
}

var _ Resolver = (*Service)(nil)

// Login checks the password and opens a new session.
func (s *Service) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := newToken()
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	now := s.now().UTC()
	if err := s.sessions.Create(ctx, repository.SessionRecord{
		Token:     token,
		UserID:    u.ID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}); err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}
	return token, u, nil
}

// Resolve looks up the session for token. An empty, unknown or expired token yields a
// resolved session without a user. A lookup cut short by the context deadline yields a
// loading session so the caller is not redirected before the session is known.
func (s *Service) Resolve(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, nil
	}
	rec, u, err := s.sessions.FindUser(ctx, token)
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return Session{IsLoading: true}, nil
		case errors.Is(err, sql.ErrNoRows):
			return Session{}, nil
		default:
			return Session{}, fmt.Errorf("resolve session: %w", err)
		}
	}
	if !rec.ExpiresAt.After(s.now()) {
		return Session{}, nil
	}
	return Session{User: u}, nil
}

// Logout removes the session for token.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrSessionNotFound
	}
	return s.sessions.Delete(ctx, token)
}

// EnsureAccount creates a unless an account with the same email exists. It reports
// whether a new account was written.
func (s *Service) EnsureAccount(ctx context.Context, a Account) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(a.Email))
	switch {
	case email == "" || a.Password == "":
		return false, fmt.Errorf("%w: email and password are required", ErrInvalidAccount)
	case a.UserType != model.UserTypeAdvocate && a.UserType != model.UserTypeClient:
		return false, fmt.Errorf("%w: unknown user type %q", ErrInvalidAccount, a.UserType)
	}

	hash, err := hashPassword(a.Password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	name := strings.TrimSpace(a.Name)
	if name == "" {
		name = email
	}
	created, err := s.users.CreateIfAbsent(ctx, &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		UserType:     a.UserType,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return false, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func hashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
