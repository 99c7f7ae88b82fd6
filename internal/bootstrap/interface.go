package bootstrap

import "context"

//go:generate mockgen -source=./interface.go -destination=./mock/provisioner.go -package=mock

// Provisioner applies an AdminUserSpec to a database's authentication store.
type Provisioner interface {
	// CreateUser creates the principal in the named database. It returns ErrDuplicatePrincipal if the username is
	// already present and ErrConnection if the database cannot be reached.
	CreateUser(ctx context.Context, database string, spec AdminUserSpec) error

	// GetUser returns the principal with the given username in the named database, or ErrPrincipalNotFound.
	GetUser(ctx context.Context, database, username string) (*Principal, error)

	// Close releases the connection to the database.
	Close(ctx context.Context) error
}
