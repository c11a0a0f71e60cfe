package notifier

import "context"

// Notifier delivers the run report to a human.
type Notifier interface {
	Send(ctx context.Context, subject, htmlBody string) error
}

// NoopNotifier is used when no mail transport is configured.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier { return &NoopNotifier{} }

func (n *NoopNotifier) Send(_ context.Context, _, _ string) error { return nil }
