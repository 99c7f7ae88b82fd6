package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/rmorlok/authdbinit/internal/aplog"
	"github.com/rmorlok/authdbinit/internal/bootstrap"
	"github.com/rmorlok/authdbinit/internal/config"
	"github.com/rmorlok/authdbinit/internal/mongodb"
)

type app struct {
	cfgFile string
	cfg     config.C
	logger  *slog.Logger
}

func (a *app) loadConfig() error {
	if a.cfgFile == "" {
		a.cfgFile = os.Getenv(config.EnvConfigFile)
	}

	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.LoadConfig(a.cfgFile)
		if err != nil {
			return &configError{errors.Wrapf(err, "failed to load configuration from '%s'", a.cfgFile)}
		}
	} else {
		a.cfg, err = config.FromEnv()
		if err != nil {
			return &configError{errors.Wrap(err, "failed to load configuration from environment")}
		}
	}

	if err := a.cfg.Validate(); err != nil {
		return &configError{errors.Wrapf(err, "invalid configuration from %s", a.cfg.Source())}
	}

	a.logger = a.cfg.GetRootLogger()
	aplog.SetDefaultLog(a.logger)

	return nil
}

// resolveSpec reads the admin identity from its configured sources. This is the only place secrets are read.
func (a *app) resolveSpec(ctx context.Context) (string, bootstrap.AdminUserSpec, error) {
	database, spec, err := bootstrap.ResolveSpec(ctx, a.cfg.GetRoot().AdminUser)
	if err != nil {
		return "", bootstrap.AdminUserSpec{}, &configError{err}
	}

	return database, spec, nil
}

func (a *app) connect(ctx context.Context) (*mongodb.Provisioner, error) {
	return mongodb.Connect(ctx, a.cfg.GetRoot().MongoDB, a.logger)
}
