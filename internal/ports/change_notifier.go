package ports

import "context"

// ChangeNotifier broadcasts that rows of a project changed server-side.
// Notifications carry no payload: subscribers are expected to refetch the
// named project in full.
type ChangeNotifier interface {
	Publish(ctx context.Context, projectID string) error
}

// NoopNotifier is used when no realtime backend is configured.
type NoopNotifier struct{}

func (NoopNotifier) Publish(context.Context, string) error { return nil }
