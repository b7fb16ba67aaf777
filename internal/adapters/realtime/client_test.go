package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestClient(t *testing.T) *Client {
	mr := miniredis.NewMiniRedis()
	err := mr.Start()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := NewClient(&redis.Options{Addr: mr.Addr()}, "test-workspace")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client
}

func TestNewClient(t *testing.T) {
	t.Run("creates client successfully", func(t *testing.T) {
		client := setupTestClient(t)
		assert.NotNil(t, client)
		assert.Equal(t, "test-workspace", client.workspace)
	})

	t.Run("rejects empty workspace name", func(t *testing.T) {
		_, err := NewClient(&redis.Options{Addr: "localhost:6379"}, "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "workspace name cannot be empty")
	})
}

func TestPing(t *testing.T) {
	client := setupTestClient(t)
	assert.NoError(t, client.Ping(context.Background()))
}

func TestPublishSubscribe(t *testing.T) {
	client := setupTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub, err := client.Subscribe(ctx)
	require.NoError(t, err)
	defer sub.Cancel()

	require.NoError(t, client.Publish(ctx, "proj-42"))

	select {
	case got := <-sub.Events():
		assert.Equal(t, "proj-42", got)
	case <-ctx.Done():
		t.Fatal("timed out waiting for change event")
	}
}

func TestSubscriptionCancelClosesEvents(t *testing.T) {
	client := setupTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub, err := client.Subscribe(ctx)
	require.NoError(t, err)

	sub.Cancel()

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok, "events channel should close after cancel")
	case <-ctx.Done():
		t.Fatal("timed out waiting for events channel to close")
	}
}

func TestChannelIsWorkspaceNamespaced(t *testing.T) {
	client := setupTestClient(t)
	assert.Equal(t, "growthlab:test-workspace:project_changes", client.channel())
}
