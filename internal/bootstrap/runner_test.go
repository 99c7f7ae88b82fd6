package bootstrap_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/rmorlok/authdbinit/internal/aplog"
	aplogmock "github.com/rmorlok/authdbinit/internal/aplog/mock"
	"github.com/rmorlok/authdbinit/internal/bootstrap"
	"github.com/rmorlok/authdbinit/internal/bootstrap/mock"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*bootstrap.Runner, *mock.MockProvisioner, *aplogmock.TestingHandler) {
	ctrl := gomock.NewController(t)
	p := mock.NewMockProvisioner(ctrl)
	logger, h := aplogmock.NewTestLogger(t)
	return bootstrap.NewRunner(p, logger), p, h
}

func TestRunner_Run(t *testing.T) {
	ctx := context.Background()
	spec := bootstrap.NewAdminUserSpec("mongoadmin", "hunter2", "auth_db")

	t.Run("creates principal on fresh database", func(t *testing.T) {
		r, p, h := setup(t)

		p.EXPECT().CreateUser(gomock.Any(), "auth_db", spec).Return(nil).Times(1)

		result, err := r.Run(ctx, "auth_db", spec)
		require.NoError(t, err)
		require.Equal(t, bootstrap.OutcomeCreated, result.Outcome)
		require.Equal(t, "auth_db", result.Database)
		require.Equal(t, "mongoadmin", result.Username)
		require.NotEqual(t, uuid.Nil, result.RunId)
		require.False(t, result.RoleDrift)
		require.False(t, h.Contains("hunter2"))
	})

	t.Run("run id is propagated in context", func(t *testing.T) {
		r, p, _ := setup(t)

		var seen context.Context
		p.EXPECT().CreateUser(gomock.Any(), "auth_db", spec).DoAndReturn(
			func(ctx context.Context, database string, spec bootstrap.AdminUserSpec) error {
				seen = ctx
				return nil
			})

		result, err := r.Run(ctx, "auth_db", spec)
		require.NoError(t, err)
		runId, ok := aplog.RunIdFromContext(seen)
		require.True(t, ok)
		require.Equal(t, result.RunId, runId)
	})

	t.Run("duplicate principal is already initialized", func(t *testing.T) {
		r, p, _ := setup(t)

		gomock.InOrder(
			p.EXPECT().CreateUser(gomock.Any(), "auth_db", spec).Return(bootstrap.ErrDuplicatePrincipal),
			p.EXPECT().GetUser(gomock.Any(), "auth_db", "mongoadmin").Return(&bootstrap.Principal{
				Username: "mongoadmin",
				Database: "auth_db",
				Roles:    []bootstrap.RoleBinding{{Role: "readWrite", Database: "auth_db"}},
			}, nil),
		)

		result, err := r.Run(ctx, "auth_db", spec)
		require.NoError(t, err)
		require.Equal(t, bootstrap.OutcomeAlreadyInitialized, result.Outcome)
		require.False(t, result.RoleDrift)
		require.NotNil(t, result.Existing)
	})

	t.Run("duplicate principal with different roles is reported but untouched", func(t *testing.T) {
		r, p, h := setup(t)

		p.EXPECT().CreateUser(gomock.Any(), "auth_db", spec).Return(bootstrap.ErrDuplicatePrincipal)
		p.EXPECT().GetUser(gomock.Any(), "auth_db", "mongoadmin").Return(&bootstrap.Principal{
			Username: "mongoadmin",
			Database: "auth_db",
			Roles:    []bootstrap.RoleBinding{{Role: "read", Database: "auth_db"}},
		}, nil)

		result, err := r.Run(ctx, "auth_db", spec)
		require.NoError(t, err)
		require.Equal(t, bootstrap.OutcomeAlreadyInitialized, result.Outcome)
		require.True(t, result.RoleDrift)
		require.True(t, h.Contains("different role bindings"))
	})

	t.Run("duplicate principal that cannot be read back", func(t *testing.T) {
		r, p, _ := setup(t)

		p.EXPECT().CreateUser(gomock.Any(), "auth_db", spec).Return(bootstrap.ErrDuplicatePrincipal)
		p.EXPECT().GetUser(gomock.Any(), "auth_db", "mongoadmin").Return(nil, errors.New("not authorized"))

		result, err := r.Run(ctx, "auth_db", spec)
		require.NoError(t, err)
		require.Equal(t, bootstrap.OutcomeAlreadyInitialized, result.Outcome)
		require.Nil(t, result.Existing)
	})

	t.Run("connection error is fatal", func(t *testing.T) {
		r, p, _ := setup(t)

		p.EXPECT().CreateUser(gomock.Any(), "auth_db", spec).Return(bootstrap.ErrConnection)

		result, err := r.Run(ctx, "auth_db", spec)
		require.Nil(t, result)
		require.ErrorIs(t, err, bootstrap.ErrConnection)
	})

	t.Run("connection lost while reading existing principal", func(t *testing.T) {
		r, p, _ := setup(t)

		p.EXPECT().CreateUser(gomock.Any(), "auth_db", spec).Return(bootstrap.ErrDuplicatePrincipal)
		p.EXPECT().GetUser(gomock.Any(), "auth_db", "mongoadmin").Return(nil, bootstrap.ErrConnection)

		_, err := r.Run(ctx, "auth_db", spec)
		require.ErrorIs(t, err, bootstrap.ErrConnection)
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		r, p, _ := setup(t)

		cause := errors.New("not authorized on auth_db to execute command")
		p.EXPECT().CreateUser(gomock.Any(), "auth_db", spec).Return(cause)

		_, err := r.Run(ctx, "auth_db", spec)
		require.ErrorIs(t, err, cause)
		require.NotErrorIs(t, err, bootstrap.ErrConnection)
	})

	t.Run("empty username or password is rejected before any write", func(t *testing.T) {
		for _, bad := range []bootstrap.AdminUserSpec{
			bootstrap.NewAdminUserSpec("", "hunter2", "auth_db"),
			bootstrap.NewAdminUserSpec("mongoadmin", "", "auth_db"),
		} {
			r, _, _ := setup(t)

			// The mock has no expectations; any provisioner call fails the test.
			result, err := r.Run(ctx, "auth_db", bad)
			require.Nil(t, result)
			require.ErrorIs(t, err, bootstrap.ErrInvalidSpec)
		}
	})

	t.Run("invalid target database is rejected before any write", func(t *testing.T) {
		r, _, _ := setup(t)

		_, err := r.Run(ctx, "auth db", spec)
		require.ErrorIs(t, err, bootstrap.ErrInvalidSpec)
	})
}

func TestRunner_Inspect(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		r, p, _ := setup(t)

		expected := &bootstrap.Principal{Username: "mongoadmin", Database: "auth_db"}
		p.EXPECT().GetUser(gomock.Any(), "auth_db", "mongoadmin").Return(expected, nil)

		got, err := r.Inspect(ctx, "auth_db", "mongoadmin")
		require.NoError(t, err)
		require.Equal(t, expected, got)
	})

	t.Run("not found", func(t *testing.T) {
		r, p, _ := setup(t)

		p.EXPECT().GetUser(gomock.Any(), "auth_db", "mongoadmin").Return(nil, bootstrap.ErrPrincipalNotFound)

		_, err := r.Inspect(ctx, "auth_db", "mongoadmin")
		require.ErrorIs(t, err, bootstrap.ErrPrincipalNotFound)
	})

	t.Run("empty username", func(t *testing.T) {
		r, _, _ := setup(t)

		_, err := r.Inspect(ctx, "auth_db", "")
		require.ErrorIs(t, err, bootstrap.ErrInvalidSpec)
	})
}
