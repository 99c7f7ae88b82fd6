package mongodb

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/rmorlok/authdbinit/internal/bootstrap"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

const (
	// codeUserAlreadyExists is returned by createUser when the user is already present.
	codeUserAlreadyExists = 51003

	// codeUserNotFound is returned by user management commands targeting an unknown user.
	codeUserNotFound = 11
)

// classifyError maps driver errors onto the bootstrap error taxonomy. Errors that do not match a category are
// returned unchanged.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	if isDuplicatePrincipal(err) {
		return fmt.Errorf("%w: %w", bootstrap.ErrDuplicatePrincipal, err)
	}

	if isConnectionError(err) {
		return fmt.Errorf("%w: %w", bootstrap.ErrConnection, err)
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == codeUserNotFound {
		return fmt.Errorf("%w: %w", bootstrap.ErrPrincipalNotFound, err)
	}

	return err
}

func isDuplicatePrincipal(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == codeUserAlreadyExists {
		return true
	}

	// Older servers surface the system.users unique index violation directly.
	return mongo.IsDuplicateKeyError(err)
}

func isConnectionError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, mongo.ErrClientDisconnected) {
		return true
	}

	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return true
	}

	var sse topology.ServerSelectionError
	return errors.As(err, &sse)
}
