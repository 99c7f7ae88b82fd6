package bootstrap

import (
	"context"

	"github.com/pkg/errors"
	sconfig "github.com/rmorlok/authdbinit/internal/schema/config"
)

// ResolveSpec reads the admin identity from its configured sources. It is called once at start-up; the returned
// spec holds the plaintext password and must not be logged directly.
func ResolveSpec(ctx context.Context, au *sconfig.AdminUser) (string, AdminUserSpec, error) {
	if au == nil {
		return "", AdminUserSpec{}, errors.Wrap(ErrInvalidSpec, "admin user is not configured")
	}

	username, err := au.GetUsername().GetValue(ctx)
	if err != nil {
		return "", AdminUserSpec{}, errors.Wrap(err, "failed to resolve admin username")
	}

	if au.Password == nil {
		return "", AdminUserSpec{}, errors.Wrap(ErrInvalidSpec, "admin password is not configured")
	}

	password, err := au.Password.GetValue(ctx)
	if err != nil {
		return "", AdminUserSpec{}, errors.Wrapf(err, "failed to resolve admin password from %s", au.Password.Source())
	}

	roles := au.GetRoles()
	spec := AdminUserSpec{
		Username: username,
		Password: password,
		Roles:    make([]RoleBinding, 0, len(roles)),
	}
	for _, r := range roles {
		spec.Roles = append(spec.Roles, RoleBinding{Role: r.Role, Database: r.Database})
	}

	return au.GetDatabase(), spec, nil
}
