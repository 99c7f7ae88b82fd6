package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/rmorlok/authdbinit/internal/bootstrap"
	"github.com/spf13/cobra"
)

const defaultTimeout = 60 * time.Second

func runContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if timeout <= 0 {
		return ctx, stop
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

func cmdBootstrap(a *app) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the administrative principal if it does not already exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := runContext(timeout)
			defer cancel()

			database, spec, err := a.resolveSpec(ctx)
			if err != nil {
				return err
			}

			// Reject a bad spec before opening a connection.
			if err := bootstrap.ValidateDatabaseName(database); err != nil {
				return errors.Wrapf(bootstrap.ErrInvalidSpec, "target database: %s", err)
			}
			if err := spec.Validate(); err != nil {
				return err
			}

			p, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer p.Close(context.Background())

			result, err := bootstrap.NewRunner(p, a.logger).Run(ctx, database, spec)
			if err != nil {
				return err
			}

			switch result.Outcome {
			case bootstrap.OutcomeCreated:
				color.Green("created %s on %s with roles %s", result.Username, result.Database, formatBindings(spec.Roles))
			case bootstrap.OutcomeAlreadyInitialized:
				color.Yellow("%s already exists on %s; already initialized", result.Username, result.Database)
				if result.RoleDrift && result.Existing != nil {
					color.Yellow("existing roles %s differ from requested %s; left unchanged",
						formatBindings(result.Existing.Roles), formatBindings(spec.Roles))
				}
			}

			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", defaultTimeout, "maximum time for the whole run; 0 disables")

	return cmd
}

func cmdValidate(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and resolve the admin identity without contacting the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := runContext(defaultTimeout)
			defer cancel()

			database, spec, err := a.resolveSpec(ctx)
			if err != nil {
				return err
			}

			if err := bootstrap.ValidateDatabaseName(database); err != nil {
				return errors.Wrapf(bootstrap.ErrInvalidSpec, "target database: %s", err)
			}

			if err := spec.Validate(); err != nil {
				return err
			}

			admin := a.cfg.GetRoot().AdminUser
			fmt.Printf("config:   %s\n", a.cfg.Source())
			fmt.Printf("database: %s\n", database)
			fmt.Printf("username: %s\n", spec.Username)
			fmt.Printf("password: <from %s>\n", admin.Password.Source())
			fmt.Printf("roles:    %s\n", formatBindings(spec.Roles))
			color.Green("configuration is valid")

			return nil
		},
	}
}

func cmdStatus(a *app) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report whether the administrative principal exists and its roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := runContext(timeout)
			defer cancel()

			admin := a.cfg.GetRoot().AdminUser
			username, err := admin.GetUsername().GetValue(ctx)
			if err != nil {
				return &configError{errors.Wrap(err, "failed to resolve admin username")}
			}

			p, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer p.Close(context.Background())

			principal, err := bootstrap.NewRunner(p, a.logger).Inspect(ctx, admin.GetDatabase(), username)
			if errors.Is(err, bootstrap.ErrPrincipalNotFound) {
				color.Yellow("%s does not exist on %s; not initialized", username, admin.GetDatabase())
				return errNotInitialized
			}
			if err != nil {
				return err
			}

			color.Green("%s exists on %s with roles %s", principal.Username, principal.Database, formatBindings(principal.Roles))
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", defaultTimeout, "maximum time for the check; 0 disables")

	return cmd
}

func formatBindings(roles []bootstrap.RoleBinding) string {
	parts := make([]string, 0, len(roles))
	for _, r := range roles {
		parts = append(parts, r.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
