package middleware

import (
	"context"
	"testing"

	"go-pos-terminal/internal/model"
	"go-pos-terminal/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestRequirePrivilege(t *testing.T) {
	calls := 0
	next := func(ctx context.Context) error {
		calls++
		return nil
	}
	guarded := RequirePrivilege(model.PrivUserManage, next)

	assert.ErrorIs(t, guarded(context.Background()), ErrUnauthenticated)

	cashier := WithSession(context.Background(), &service.Session{Username: "c", Role: model.RoleCashier})
	assert.ErrorIs(t, guarded(cashier), ErrForbidden)

	admin := WithSession(context.Background(), &service.Session{Username: "a", Role: model.RoleAdmin})
	assert.NoError(t, guarded(admin))
	assert.Equal(t, 1, calls)
}

func TestRequireAnyPrivilege(t *testing.T) {
	next := func(ctx context.Context) error { return nil }
	guarded := RequireAnyPrivilege([]string{model.PrivSystemManage, model.PrivReportView}, next)

	cashier := WithSession(context.Background(), &service.Session{Role: model.RoleCashier})
	assert.NoError(t, guarded(cashier))

	unknown := WithSession(context.Background(), &service.Session{Role: "guest"})
	assert.ErrorIs(t, guarded(unknown), ErrForbidden)
}
