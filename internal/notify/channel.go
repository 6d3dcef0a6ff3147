// Package notify defines the notification channel contract and the two
// built-in channels: a system notification command and an outbound webhook.
// Channels are fire-and-report sinks; retry policy belongs to the caller,
// which treats every attempt as best-effort.
package notify

import "context"

// Channel delivers one notification to one destination. Implementations
// must honor context cancellation and bound their own I/O so a hung
// destination cannot stall a scan pass beyond its timeout.
type Channel interface {
	// Name identifies the channel in logs and dispatch outcomes.
	Name() string

	// Send delivers a notification with the given title and body.
	Send(ctx context.Context, title, body string) error
}
