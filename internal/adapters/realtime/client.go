// Package realtime broadcasts project change notifications over Redis
// pub/sub. Notifications carry only the project id: every subscriber is
// expected to refetch the project in full, so a missed message costs one
// stale render at worst and the next message heals it.
package realtime

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Client publishes and subscribes to project change events. All channels are
// namespaced with the workspace name so several deployments can share one
// Redis. The client is safe for concurrent use.
type Client struct {
	rdb       *redis.Client
	workspace string
}

// NewClient creates a realtime client for the named workspace.
func NewClient(redisOpts *redis.Options, workspace string) (*Client, error) {
	if workspace == "" {
		return nil, fmt.Errorf("workspace name cannot be empty")
	}
	return &Client{
		rdb:       redis.NewClient(redisOpts),
		workspace: workspace,
	}, nil
}

// Close closes the Redis connection. Implements io.Closer.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies Redis connectivity. Useful for health checks.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) channel() string {
	return fmt.Sprintf("growthlab:%s:project_changes", c.workspace)
}

// Publish announces that the named project changed. The message is just the
// project id.
func (c *Client) Publish(ctx context.Context, projectID string) error {
	if err := c.rdb.Publish(ctx, c.channel(), projectID).Err(); err != nil {
		return fmt.Errorf("failed to publish change event: %w", err)
	}
	return nil
}

// Subscription delivers project ids whose rows changed. Cancel the
// subscribing context or call Cancel to stop it; Events closes afterwards.
type Subscription struct {
	events <-chan string
	cancel context.CancelFunc
}

// Events returns the channel of changed project ids.
func (s *Subscription) Events() <-chan string { return s.events }

// Cancel stops the subscription.
func (s *Subscription) Cancel() { s.cancel() }

// Subscribe listens for project change events until ctx is cancelled.
func (c *Client) Subscribe(ctx context.Context) (*Subscription, error) {
	pubsub := c.rdb.Subscribe(ctx, c.channel())
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	events := make(chan string, 16)
	subCtx, cancel := context.WithCancel(ctx)

	go func() {
		defer close(events)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case events <- msg.Payload:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription{events: events, cancel: cancel}, nil
}
