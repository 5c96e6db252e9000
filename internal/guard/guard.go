package guard

import (
	"context"
	"net/http"

	"github.com/PhucLe22/lms-client/internal/models"
	apperrors "github.com/PhucLe22/lms-client/pkg/errors"
)

// Guard decision errors. The front-end maps ErrLoginRequired to the login
// screen and ErrRoleDenied to home; the guard itself never navigates.
var (
	ErrLoginRequired = apperrors.New("LOGIN_REQUIRED", http.StatusUnauthorized, "sign in required")
	ErrRoleDenied    = apperrors.New("ROLE_DENIED", http.StatusForbidden, "insufficient role")
)

type sessionState interface {
	AwaitHydration(ctx context.Context) error
	User() *models.User
}

// Guard gates actions by authentication and role. While the session is
// still hydrating it waits instead of deciding, so an already-authenticated
// user is never bounced to login by a race.
type Guard struct {
	session sessionState
}

// New builds a Guard over the session store.
func New(session sessionState) *Guard {
	return &Guard{session: session}
}

// RequireAuth runs fn when any user is signed in.
func (g *Guard) RequireAuth(ctx context.Context, fn func(context.Context) error) error {
	if err := g.session.AwaitHydration(ctx); err != nil {
		return err
	}
	if g.session.User() == nil {
		return ErrLoginRequired
	}
	return fn(ctx)
}

// RequireRole runs fn when a user with the given role is signed in.
func (g *Guard) RequireRole(ctx context.Context, role models.Role, fn func(context.Context) error) error {
	if err := g.session.AwaitHydration(ctx); err != nil {
		return err
	}
	user := g.session.User()
	if user == nil {
		return ErrLoginRequired
	}
	if user.Role != role {
		return ErrRoleDenied
	}
	return fn(ctx)
}
