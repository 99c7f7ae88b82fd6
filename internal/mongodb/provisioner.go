package mongodb

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-faster/errors"
	"github.com/rmorlok/authdbinit/internal/aplog"
	"github.com/rmorlok/authdbinit/internal/bootstrap"
	sconfig "github.com/rmorlok/authdbinit/internal/schema/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Provisioner creates principals through MongoDB's user management commands.
type Provisioner struct {
	client *mongo.Client
	logger *slog.Logger
}

// Connect opens a client for the configured instance and pings the primary, retrying with exponential backoff
// when the config allows more than one attempt. Any failure to reach the instance wraps bootstrap.ErrConnection.
func Connect(ctx context.Context, cfg *sconfig.MongoDB, logger *slog.Logger) (*Provisioner, error) {
	if logger == nil {
		logger = aplog.NewNoopLogger()
	}
	logger = aplog.NewBuilder(logger).WithComponent("mongodb").WithCtx(ctx).Build()

	opts, err := clientOptions(ctx, cfg)
	if err != nil {
		return nil, err
	}

	retry := cfg.GetConnectRetry()
	attempts := retry.GetMaxAttempts()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retry.GetInitialInterval()
	b.MaxInterval = retry.GetMaxInterval()
	b.MaxElapsedTime = 0

	var client *mongo.Client
	attempt := 0
	op := func() error {
		attempt++

		c, err := mongo.Connect(ctx, opts)
		if err != nil {
			// Connect only fails on invalid options; dialing happens lazily.
			return backoff.Permanent(errors.Wrap(err, "failed to create mongodb client"))
		}

		if err := c.Ping(ctx, readpref.Primary()); err != nil {
			_ = c.Disconnect(context.Background())
			return classifyError(err)
		}

		client = c
		return nil
	}

	notify := func(err error, next time.Duration) {
		logger.Warn("mongodb not reachable; retrying",
			"attempt", attempt,
			"max_attempts", attempts,
			"retry_in", next.String(),
			"error", err,
		)
	}

	err = backoff.RetryNotify(op, backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx), notify)
	if err != nil {
		logger.Error("failed to connect to mongodb", "attempts", attempt, "error", err)
		if errors.Is(err, bootstrap.ErrConnection) {
			return nil, err
		}
		if isConnectionError(err) {
			return nil, classifyError(err)
		}
		return nil, err
	}

	logger.Debug("connected to mongodb", "attempts", attempt)
	return &Provisioner{client: client, logger: logger}, nil
}

func clientOptions(ctx context.Context, cfg *sconfig.MongoDB) (*options.ClientOptions, error) {
	uri, err := cfg.GetUri().GetValue(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve mongodb uri")
	}

	opts := options.Client().
		ApplyURI(uri).
		SetAppName(cfg.GetAppName()).
		SetConnectTimeout(cfg.GetConnectTimeout()).
		SetServerSelectionTimeout(cfg.GetServerSelectionTimeout())

	if cfg.HasCredentials() {
		username, err := cfg.Username.GetValue(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve mongodb username")
		}

		password, err := cfg.Password.GetValue(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve mongodb password")
		}

		opts.SetAuth(options.Credential{
			Username:   username,
			Password:   password,
			AuthSource: cfg.GetAuthSource(),
		})
	}

	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid mongodb client options")
	}

	return opts, nil
}

type roleDoc struct {
	Role string `bson:"role"`
	DB   string `bson:"db"`
}

type userDoc struct {
	User  string    `bson:"user"`
	DB    string    `bson:"db"`
	Roles []roleDoc `bson:"roles"`
}

type usersInfoResult struct {
	Users []userDoc `bson:"users"`
}

// CreateUser runs createUser against the target database, which becomes the principal's authentication database.
func (p *Provisioner) CreateUser(ctx context.Context, database string, spec bootstrap.AdminUserSpec) error {
	roles := make(bson.A, 0, len(spec.Roles))
	for _, r := range spec.Roles {
		roles = append(roles, bson.D{{Key: "role", Value: r.Role}, {Key: "db", Value: r.Database}})
	}

	cmd := bson.D{
		{Key: "createUser", Value: spec.Username},
		{Key: "pwd", Value: spec.Password},
		{Key: "roles", Value: roles},
	}

	if err := p.client.Database(database).RunCommand(ctx, cmd).Err(); err != nil {
		return classifyError(err)
	}

	return nil
}

// GetUser reads a principal with usersInfo.
func (p *Provisioner) GetUser(ctx context.Context, database, username string) (*bootstrap.Principal, error) {
	cmd := bson.D{
		{Key: "usersInfo", Value: bson.D{
			{Key: "user", Value: username},
			{Key: "db", Value: database},
		}},
	}

	var res usersInfoResult
	if err := p.client.Database(database).RunCommand(ctx, cmd).Decode(&res); err != nil {
		return nil, classifyError(err)
	}

	if len(res.Users) == 0 {
		return nil, errors.Wrapf(bootstrap.ErrPrincipalNotFound, "%s@%s", username, database)
	}

	return res.Users[0].toPrincipal(), nil
}

// CountUsers returns how many principals are defined in the database.
func (p *Provisioner) CountUsers(ctx context.Context, database string) (int, error) {
	var res usersInfoResult
	if err := p.client.Database(database).RunCommand(ctx, bson.D{{Key: "usersInfo", Value: 1}}).Decode(&res); err != nil {
		return 0, classifyError(err)
	}

	return len(res.Users), nil
}

func (p *Provisioner) Close(ctx context.Context) error {
	if p == nil || p.client == nil {
		return nil
	}

	if err := p.client.Disconnect(ctx); err != nil {
		return errors.Wrap(err, "failed to disconnect from mongodb")
	}

	return nil
}

func (u userDoc) toPrincipal() *bootstrap.Principal {
	principal := &bootstrap.Principal{
		Username: u.User,
		Database: u.DB,
		Roles:    make([]bootstrap.RoleBinding, 0, len(u.Roles)),
	}

	for _, r := range u.Roles {
		principal.Roles = append(principal.Roles, bootstrap.RoleBinding{Role: r.Role, Database: r.DB})
	}

	return principal
}

var _ bootstrap.Provisioner = (*Provisioner)(nil)
