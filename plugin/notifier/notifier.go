// Package notifier pushes identity alerts to an external channel. Delivery
// is best-effort: a failed notification is logged and dropped, never
// allowed to fail a registration.
package notifier

import (
	"context"

	"github.com/patitas/patitas/internal/match"
)

// Notifier delivers a one-shot identity alert.
type Notifier interface {
	NotifyAlert(ctx context.Context, alert *match.Alert, sourceName string) error
}
