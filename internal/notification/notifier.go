// Package notification holds the outbound delivery channels. Each client is
// best-effort: a failed or timed-out provider call surfaces as an error for
// the caller to record, never as something fatal to the dispatch.
package notification

import (
	"context"
	"time"
)

// providerTimeout bounds every outbound provider call. A timeout counts as a
// failed send.
const providerTimeout = 10 * time.Second

// EmailSender delivers one rendered email to a set of recipients.
type EmailSender interface {
	// Configured reports whether the provider credentials are present.
	// Unconfigured senders are skipped, not treated as failing.
	Configured() bool
	Send(ctx context.Context, to []string, subject, html string) error
}

// SMSSender delivers one text message.
type SMSSender interface {
	Configured() bool
	Send(ctx context.Context, to, body string) error
}
