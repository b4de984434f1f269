package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-pos-terminal/internal/service"
)

var (
	ErrUnauthenticated = errors.New("not logged in")
	ErrForbidden       = errors.New("access denied")
)

// Handler is one menu action run by the shell
type Handler func(ctx context.Context) error

type sessionKey struct{}

// WithSession stores the logged-in session for downstream handlers
func WithSession(ctx context.Context, s *service.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session set by WithSession
func SessionFrom(ctx context.Context) (*service.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*service.Session)
	return s, ok && s != nil
}

// RequireAuth runs next only inside a logged-in session
func RequireAuth(next Handler) Handler {
	return func(ctx context.Context) error {
		if _, ok := SessionFrom(ctx); !ok {
			return ErrUnauthenticated
		}
		return next(ctx)
	}
}

// RequirePrivilege checks if the session's role grants the required privilege
func RequirePrivilege(requiredPrivilege string, next Handler) Handler {
	return RequireAuth(func(ctx context.Context) error {
		s, _ := SessionFrom(ctx)
		if !s.HasPrivilege(requiredPrivilege) {
			return fmt.Errorf("%w: requires '%s' privilege", ErrForbidden, requiredPrivilege)
		}
		return next(ctx)
	})
}

// RequireAnyPrivilege checks if the session holds at least one of the privileges
func RequireAnyPrivilege(requiredPrivileges []string, next Handler) Handler {
	return RequireAuth(func(ctx context.Context) error {
		s, _ := SessionFrom(ctx)
		for _, p := range requiredPrivileges {
			if s.HasPrivilege(p) {
				return next(ctx)
			}
		}
		return fmt.Errorf("%w: requires one of %s privileges", ErrForbidden, strings.Join(requiredPrivileges, ", "))
	})
}
