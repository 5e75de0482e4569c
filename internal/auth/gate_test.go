package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advocatehub/internal/model"
)

type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *recordingNavigator) calls() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

func TestDecide(t *testing.T) {
	advocate := &model.User{ID: "1", UserType: model.UserTypeAdvocate}
	client := &model.User{ID: "2", UserType: model.UserTypeClient}

	tests := []struct {
		name string
		s    Session
		p    Predicate
		want Decision
	}{
		{name: "loading without user", s: Session{IsLoading: true}, p: Authenticated, want: DecisionPending},
		{name: "loading ignores predicate", s: Session{IsLoading: true, User: client}, p: RequireUserType(model.UserTypeAdvocate), want: DecisionPending},
		{name: "no user", s: Session{}, p: Authenticated, want: DecisionRedirect},
		{name: "user", s: Session{User: client}, p: Authenticated, want: DecisionAllow},
		{name: "nil predicate means authenticated", s: Session{User: client}, want: DecisionAllow},
		{name: "wrong user type", s: Session{User: client}, p: RequireUserType(model.UserTypeAdvocate), want: DecisionRedirect},
		{name: "advocate", s: Session{User: advocate}, p: RequireUserType(model.UserTypeAdvocate), want: DecisionAllow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.s, tt.p))
		})
	}
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "pending", DecisionPending.String())
	assert.Equal(t, "redirect", DecisionRedirect.String())
	assert.Equal(t, "allow", DecisionAllow.String())
	assert.Equal(t, "unknown", Decision(42).String())
}

func TestGate_Watch(t *testing.T) {
	t.Run("waits for loading then redirects once", func(t *testing.T) {
		nav := &recordingNavigator{}
		g := NewGate(Authenticated, "/login")
		updates := make(chan Session, 4)
		updates <- Session{IsLoading: true}
		updates <- Session{IsLoading: true}
		updates <- Session{}
		updates <- Session{}
		close(updates)

		d, err := g.Watch(context.Background(), updates, nav)

		require.NoError(t, err)
		assert.Equal(t, DecisionRedirect, d)
		assert.Equal(t, []string{"/login"}, nav.calls())
	})

	t.Run("no redirect while loading", func(t *testing.T) {
		nav := &recordingNavigator{}
		g := NewGate(Authenticated, "/login")
		updates := make(chan Session, 1)
		updates <- Session{IsLoading: true}
		close(updates)

		d, err := g.Watch(context.Background(), updates, nav)

		require.NoError(t, err)
		assert.Equal(t, DecisionPending, d)
		assert.Empty(t, nav.calls())
	})

	t.Run("allowed user then sign out redirects", func(t *testing.T) {
		nav := &recordingNavigator{}
		g := NewGate(RequireUserType(model.UserTypeAdvocate), "/login")
		updates := make(chan Session, 3)
		updates <- Session{IsLoading: true}
		updates <- Session{User: &model.User{UserType: model.UserTypeAdvocate}}
		updates <- Session{User: &model.User{UserType: model.UserTypeClient}}
		close(updates)

		d, err := g.Watch(context.Background(), updates, nav)

		require.NoError(t, err)
		assert.Equal(t, DecisionRedirect, d)
		assert.Equal(t, []string{"/login"}, nav.calls())
	})

	t.Run("allowed user stays", func(t *testing.T) {
		var calls []string
		nav := NavigatorFunc(func(p string) { calls = append(calls, p) })
		g := NewGate(Authenticated, "/login")
		updates := make(chan Session, 2)
		updates <- Session{IsLoading: true}
		updates <- Session{User: &model.User{ID: "1"}}
		close(updates)

		d, err := g.Watch(context.Background(), updates, nav)

		require.NoError(t, err)
		assert.Equal(t, DecisionAllow, d)
		assert.Empty(t, calls)
	})

	t.Run("context cancelled", func(t *testing.T) {
		nav := &recordingNavigator{}
		g := NewGate(Authenticated, "/login")
		updates := make(chan Session)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		d, err := g.Watch(ctx, updates, nav)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, DecisionPending, d)
		assert.Empty(t, nav.calls())
	})
}
