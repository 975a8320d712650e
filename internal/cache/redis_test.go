package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClientRejectsBadInput(t *testing.T) {
	ctx := context.Background()

	_, err := NewRedisClient(ctx, "")
	assert.Error(t, err)

	_, err = NewRedisClient(ctx, "http://localhost:6379")
	assert.Error(t, err)
}

func TestNewRedisClientUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisClient(ctx, "redis://127.0.0.1:1/0")
	assert.Error(t, err)
}

func TestNewRedisClientConnects(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	client, err := NewRedisClient(context.Background(), url)
	require.NoError(t, err)
	require.NoError(t, client.Close())
}
