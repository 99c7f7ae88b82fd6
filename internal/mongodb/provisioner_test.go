package mongodb

import (
	"context"
	"testing"
	"time"

	aplogmock "github.com/rmorlok/authdbinit/internal/aplog/mock"
	"github.com/rmorlok/authdbinit/internal/bootstrap"
	"github.com/rmorlok/authdbinit/internal/schema/common"
	sconfig "github.com/rmorlok/authdbinit/internal/schema/config"
	"github.com/stretchr/testify/require"
)

func TestConnect_Unreachable(t *testing.T) {
	ctx := context.Background()
	logger, h := aplogmock.NewTestLogger(t)

	// Nothing listens on port 1.
	cfg := &sconfig.MongoDB{
		Uri:            common.NewStringValueDirect("mongodb://127.0.0.1:1/?directConnection=true"),
		ConnectTimeout: common.HumanDurationFor("100ms"),
		ConnectRetry: &sconfig.ConnectRetry{
			MaxAttempts:     3,
			InitialInterval: common.HumanDurationFor("10ms"),
			MaxInterval:     common.HumanDurationFor("20ms"),
		},
	}

	start := time.Now()
	p, err := Connect(ctx, cfg, logger)
	require.Nil(t, p)
	require.ErrorIs(t, err, bootstrap.ErrConnection)
	require.Less(t, time.Since(start), 10*time.Second)

	retries := 0
	for _, e := range h.Logs() {
		if e.Message == "mongodb not reachable; retrying" {
			retries++
		}
	}
	require.Equal(t, 2, retries)
}

func TestConnect_InvalidOptions(t *testing.T) {
	ctx := context.Background()

	_, err := Connect(ctx, &sconfig.MongoDB{
		Uri: common.NewStringValueDirect("postgres://not-mongo"),
	}, nil)
	require.Error(t, err)
	require.NotErrorIs(t, err, bootstrap.ErrConnection)

	_, err = Connect(ctx, &sconfig.MongoDB{
		Uri: common.NewStringValueEnvVar("AUTHDBINIT_TEST_UNSET_URI"),
	}, nil)
	require.ErrorContains(t, err, "failed to resolve mongodb uri")
}

func TestClientOptions_Credentials(t *testing.T) {
	ctx := context.Background()

	opts, err := clientOptions(ctx, &sconfig.MongoDB{
		Uri:      common.NewStringValueDirect("mongodb://auth-db:27017"),
		Username: common.NewStringValueDirect("root"),
		Password: common.NewStringValueDirect("rootpass"),
	})
	require.NoError(t, err)
	require.NotNil(t, opts.Auth)
	require.Equal(t, "root", opts.Auth.Username)
	require.Equal(t, "rootpass", opts.Auth.Password)
	require.Equal(t, "admin", opts.Auth.AuthSource)
	require.Equal(t, "authdbinit", *opts.AppName)

	opts, err = clientOptions(ctx, &sconfig.MongoDB{})
	require.NoError(t, err)
	require.Nil(t, opts.Auth)
	require.Equal(t, []string{"auth-db:27017"}, opts.Hosts)
}
