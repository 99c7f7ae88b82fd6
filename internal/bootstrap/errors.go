package bootstrap

import "github.com/pkg/errors"

var (
	// ErrInvalidSpec is returned before any connection or write is attempted when the admin user spec is invalid.
	ErrInvalidSpec = errors.New("invalid admin user spec")

	// ErrDuplicatePrincipal means a principal with the username already exists in the target database. The
	// bootstrap treats this as already initialized.
	ErrDuplicatePrincipal = errors.New("principal already exists")

	// ErrPrincipalNotFound is returned when looking up a principal that does not exist.
	ErrPrincipalNotFound = errors.New("principal not found")

	// ErrConnection means the target database could not be reached. It is fatal for the bootstrap.
	ErrConnection = errors.New("database unreachable")
)
