package bootstrap

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

const (
	// RoleReadWrite is the built-in role granting read and write on a single database.
	RoleReadWrite = "readWrite"

	maxDatabaseNameLength = 64
	invalidDatabaseChars  = "/\\. \"$*<>:|?\x00"
	redacted              = "[REDACTED]"
)

// RoleBinding associates a role with the database it is scoped to.
type RoleBinding struct {
	Role     string
	Database string
}

func (r RoleBinding) String() string {
	return fmt.Sprintf("%s@%s", r.Role, r.Database)
}

// AdminUserSpec is the identity the bootstrap creates. It is built once from configuration and consumed by a single
// provisioning call.
type AdminUserSpec struct {
	Username string
	Password string
	Roles    []RoleBinding
}

// NewAdminUserSpec returns a spec with a single readWrite binding on the given database.
func NewAdminUserSpec(username, password, database string) AdminUserSpec {
	return AdminUserSpec{
		Username: username,
		Password: password,
		Roles:    []RoleBinding{{Role: RoleReadWrite, Database: database}},
	}
}

// Validate checks the username, password and role bindings and reports all violations at once. The returned error wraps
// ErrInvalidSpec.
func (s AdminUserSpec) Validate() error {
	result := &multierror.Error{}

	if strings.TrimSpace(s.Username) == "" {
		result = multierror.Append(result, errors.New("username must not be empty"))
	}

	if s.Password == "" {
		result = multierror.Append(result, errors.New("password must not be empty"))
	}

	if len(s.Roles) == 0 {
		result = multierror.Append(result, errors.New("at least one role binding is required"))
	}

	for i, r := range s.Roles {
		if strings.TrimSpace(r.Role) == "" {
			result = multierror.Append(result, errors.Errorf("roles[%d]: role must not be empty", i))
		}
		if err := ValidateDatabaseName(r.Database); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "roles[%d]", i))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSpec, err)
	}

	return nil
}

func (s AdminUserSpec) String() string {
	roles := make([]string, 0, len(s.Roles))
	for _, r := range s.Roles {
		roles = append(roles, r.String())
	}

	return fmt.Sprintf("AdminUserSpec{Username: %s, Password: %s, Roles: [%s]}", s.Username, redacted, strings.Join(roles, ", "))
}

func (s AdminUserSpec) GoString() string {
	return s.String()
}

// LogValue keeps the password out of structured logs.
func (s AdminUserSpec) LogValue() slog.Value {
	roles := make([]string, 0, len(s.Roles))
	for _, r := range s.Roles {
		roles = append(roles, r.String())
	}

	return slog.GroupValue(
		slog.String("username", s.Username),
		slog.Any("roles", roles),
	)
}

// ValidateDatabaseName applies MongoDB's naming restrictions for database names.
func ValidateDatabaseName(name string) error {
	if name == "" {
		return errors.New("database name must not be empty")
	}

	if len(name) >= maxDatabaseNameLength {
		return errors.Errorf("database name %q must be shorter than %d bytes", name, maxDatabaseNameLength)
	}

	if i := strings.IndexAny(name, invalidDatabaseChars); i >= 0 {
		return errors.Errorf("database name %q contains invalid character %q", name, name[i])
	}

	return nil
}

// Principal is an existing identity as reported by the database.
type Principal struct {
	Username string
	Database string
	Roles    []RoleBinding
}

var _ slog.LogValuer = AdminUserSpec{}
var _ fmt.Stringer = AdminUserSpec{}
