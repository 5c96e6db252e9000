package guard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PhucLe22/lms-client/internal/models"
)

type fakeSession struct {
	hydrated chan struct{}
	user     *models.User
}

func newFakeSession(user *models.User, hydrated bool) *fakeSession {
	s := &fakeSession{hydrated: make(chan struct{}), user: user}
	if hydrated {
		close(s.hydrated)
	}
	return s
}

func (s *fakeSession) AwaitHydration(ctx context.Context) error {
	select {
	case <-s.hydrated:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *fakeSession) User() *models.User { return s.user }

func TestGuardRequireAuthUnauthenticated(t *testing.T) {
	g := New(newFakeSession(nil, true))
	err := g.RequireAuth(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrLoginRequired)
}

func TestGuardRequireAuthRunsAction(t *testing.T) {
	g := New(newFakeSession(&models.User{Role: models.RoleStudent}, true))
	ran := false
	err := g.RequireAuth(context.Background(), func(context.Context) error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestGuardWaitsForHydration(t *testing.T) {
	session := newFakeSession(nil, false)
	g := New(session)

	done := make(chan error, 1)
	go func() {
		done <- g.RequireAuth(context.Background(), func(context.Context) error { return nil })
	}()

	// while hydrating the guard must not decide
	select {
	case err := <-done:
		t.Fatalf("guard decided during hydration: %v", err)
	case <-time.After(30 * time.Millisecond):
	}

	session.user = &models.User{Role: models.RoleAdmin}
	close(session.hydrated)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("guard never resolved")
	}
}

func TestGuardHydrationTimeout(t *testing.T) {
	g := New(newFakeSession(nil, false))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := g.RequireAuth(ctx, func(context.Context) error { return nil })
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestGuardRequireRole(t *testing.T) {
	student := newFakeSession(&models.User{Role: models.RoleStudent}, true)
	g := New(student)

	err := g.RequireRole(context.Background(), models.RoleAdmin, func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrRoleDenied)

	ran := false
	err = g.RequireRole(context.Background(), models.RoleStudent, func(context.Context) error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestGuardRequireRoleUnauthenticated(t *testing.T) {
	g := New(newFakeSession(nil, true))
	err := g.RequireRole(context.Background(), models.RoleAdmin, func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrLoginRequired)
}
