package bootstrap

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rmorlok/authdbinit/internal/aplog"
)

type Outcome string

const (
	OutcomeCreated            Outcome = "created"
	OutcomeAlreadyInitialized Outcome = "already_initialized"
)

// Result describes a bootstrap run that did not fail.
type Result struct {
	RunId    uuid.UUID
	Outcome  Outcome
	Database string
	Username string

	// Existing is the principal found when the bootstrap had already been applied. It may be nil if the
	// principal could not be read back.
	Existing *Principal

	// RoleDrift is set when an existing principal's role bindings differ from the requested ones. The existing
	// bindings are never modified.
	RoleDrift bool
}

// Runner applies an AdminUserSpec through a Provisioner exactly once per Run.
type Runner struct {
	provisioner Provisioner
	logger      *slog.Logger
	newRunId    func() uuid.UUID
}

func NewRunner(provisioner Provisioner, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = aplog.NewNoopLogger()
	}

	return &Runner{
		provisioner: provisioner,
		logger:      aplog.NewBuilder(logger).WithComponent("bootstrap").Build(),
		newRunId:    uuid.New,
	}
}

// Run validates the spec and creates the principal in the named database. A principal that already exists is
// reported as OutcomeAlreadyInitialized rather than an error. Connection failures are returned wrapping
// ErrConnection.
func (r *Runner) Run(ctx context.Context, database string, spec AdminUserSpec) (*Result, error) {
	runId := r.newRunId()
	ctx = aplog.ContextWithRunId(ctx, runId)
	logger := aplog.NewBuilder(r.logger).
		WithCtx(ctx).
		WithDatabase(database).
		WithPrincipal(spec.Username).
		Build()

	if err := ValidateDatabaseName(database); err != nil {
		logger.Error("invalid target database", "error", err)
		return nil, errors.Wrapf(ErrInvalidSpec, "target database: %s", err)
	}

	if err := spec.Validate(); err != nil {
		logger.Error("admin user spec rejected before provisioning", "error", err)
		return nil, err
	}

	result := &Result{
		RunId:    runId,
		Database: database,
		Username: spec.Username,
	}

	logger.Info("creating principal", "spec", spec)

	err := r.provisioner.CreateUser(ctx, database, spec)
	switch {
	case err == nil:
		result.Outcome = OutcomeCreated
		logger.Info("principal created")
		return result, nil
	case errors.Is(err, ErrDuplicatePrincipal):
		result.Outcome = OutcomeAlreadyInitialized
		logger.Info("principal already exists; treating database as initialized")
	case errors.Is(err, ErrConnection):
		logger.Error("database unreachable", "error", err)
		return nil, err
	default:
		logger.Error("failed to create principal", "error", err)
		return nil, errors.Wrap(err, "failed to create principal")
	}

	existing, err := r.provisioner.GetUser(ctx, database, spec.Username)
	if err != nil {
		if errors.Is(err, ErrConnection) {
			logger.Error("database unreachable while reading existing principal", "error", err)
			return nil, err
		}

		logger.Warn("unable to read existing principal to verify role bindings", "error", err)
		return result, nil
	}

	result.Existing = existing
	if !RoleBindingsEqual(spec.Roles, existing.Roles) {
		result.RoleDrift = true
		logger.Warn("existing principal has different role bindings; leaving them unchanged",
			"requested", formatRoles(spec.Roles),
			"existing", formatRoles(existing.Roles),
		)
	}

	return result, nil
}

// Inspect reads the principal without modifying anything.
func (r *Runner) Inspect(ctx context.Context, database, username string) (*Principal, error) {
	if err := ValidateDatabaseName(database); err != nil {
		return nil, errors.Wrapf(ErrInvalidSpec, "target database: %s", err)
	}

	if strings.TrimSpace(username) == "" {
		return nil, errors.Wrap(ErrInvalidSpec, "username must not be empty")
	}

	return r.provisioner.GetUser(ctx, database, username)
}

// RoleBindingsEqual compares role bindings ignoring order.
func RoleBindingsEqual(a, b []RoleBinding) bool {
	return cmp.Equal(a, b,
		cmpopts.EquateEmpty(),
		cmpopts.SortSlices(lessRoleBinding),
	)
}

func lessRoleBinding(a, b RoleBinding) bool {
	if a.Database != b.Database {
		return a.Database < b.Database
	}
	return a.Role < b.Role
}

func formatRoles(roles []RoleBinding) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, r.String())
	}
	sort.Strings(out)
	return out
}
