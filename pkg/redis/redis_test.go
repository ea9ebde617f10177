package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient_Success(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), Options{Addr: mr.Addr()})

	require.NoError(t, err)
	defer client.Close()
	assert.Equal(t, defaultPoolSize, client.Options().PoolSize)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	client, err := NewRedisClient(context.Background(), Options{Addr: addr})

	require.Error(t, err)
	assert.Nil(t, client)
	assert.ErrorContains(t, err, "failed to connect to Redis")
}
