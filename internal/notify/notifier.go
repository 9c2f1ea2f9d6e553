package notify

import "context"

// Notifier delivers one pre-rendered message to its configured target.
type Notifier interface {
	// Send dispatches the message. Implementations return ErrNotConfigured
	// when credentials are absent; callers treat that as a skip, not a
	// failure of the run.
	Send(ctx context.Context, message string) error
}
