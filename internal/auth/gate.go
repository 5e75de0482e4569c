// Package auth resolves sessions and gates pages on them.
package auth

import (
	"context"

	"advocatehub/internal/model"
)

// Session is the resolved authentication state of a caller.
// While IsLoading is true the User field carries no meaning.
type Session struct {
	User      *model.User
	IsLoading bool
}

// Predicate decides whether a resolved user may see a page.
type Predicate func(u *model.User) bool

// Authenticated admits any signed-in user.
func Authenticated(u *model.User) bool {
	return u != nil
}

// RequireUserType admits signed-in users of the given type only.
func RequireUserType(userType string) Predicate {
	return func(u *model.User) bool {
		return u != nil && u.UserType == userType
	}
}

// Decision is the outcome of evaluating a session against a predicate.
type Decision int

const (
	// DecisionPending means the session is still resolving: show a placeholder, do not redirect.
	DecisionPending Decision = iota
	// DecisionRedirect means the caller must be sent to the login route.
	DecisionRedirect
	// DecisionAllow means the page may render.
	DecisionAllow
)

func (d Decision) String() string {
	switch d {
	case DecisionPending:
		return "pending"
	case DecisionRedirect:
		return "redirect"
	case DecisionAllow:
		return "allow"
	default:
		return "unknown"
	}
}

// Decide evaluates s against p. A nil predicate behaves like Authenticated.
func Decide(s Session, p Predicate) Decision {
	if s.IsLoading {
		return DecisionPending
	}
	if p == nil {
		p = Authenticated
	}
	if s.User == nil || !p(s.User) {
		return DecisionRedirect
	}
	return DecisionAllow
}

// Navigator performs a navigation to path.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

// Navigate calls f(path).
func (f NavigatorFunc) Navigate(path string) { f(path) }

// Gate is a reusable page guard parameterized by a predicate.
type Gate struct {
	Predicate Predicate
	LoginPath string
}

// NewGate builds a Gate redirecting to loginPath.
func NewGate(p Predicate, loginPath string) Gate {
	return Gate{Predicate: p, LoginPath: loginPath}
}

// Check evaluates a single session snapshot.
func (g Gate) Check(s Session) Decision {
	return Decide(s, g.Predicate)
}

// Watch re-evaluates the gate on every session update and navigates to the login
// route at most once. It returns DecisionRedirect after navigating, the last
// decision when updates is closed, or ctx.Err() when ctx is done first.
func (g Gate) Watch(ctx context.Context, updates <-chan Session, nav Navigator) (Decision, error) {
	last := DecisionPending
	for {
		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case s, ok := <-updates:
			if !ok {
				return last, nil
			}
			last = g.Check(s)
			if last == DecisionRedirect {
				nav.Navigate(g.LoginPath)
				return last, nil
			}
		}
	}
}
