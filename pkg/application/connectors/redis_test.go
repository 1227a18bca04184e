package connectors_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"gift_ledger/pkg/application/connectors"
)

func TestRedis(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	server := miniredis.RunT(t)

	connector := &connectors.Redis{
		Address:        server.Addr(),
		PoolSize:       2,
		StartupTimeout: time.Second,
	}

	client := connector.Client(ctx)
	rq.Same(client, connector.Client(ctx))
	rq.NoError(connector.Ping(ctx))

	rq.NoError(client.Set(ctx, "gifts:post:P", "[]", 0).Err())
	rq.True(server.Exists("gifts:post:P"))

	server.Close()
	rq.Error(connector.Ping(ctx))

	connector.Close(ctx)
}

func TestRedisStartupFails(t *testing.T) {
	server := miniredis.RunT(t)
	address := server.Addr()
	server.Close()

	connector := &connectors.Redis{Address: address}

	require.Panics(t, func() { connector.Client(context.Background()) })
}
