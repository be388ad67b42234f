// Package notify delivers best-effort operator notifications. Callers must
// treat every implementation as fallible and never couple user-facing
// operations to its outcome.
package notify

import (
	"context"
	"time"
)

// RegistrationEvent describes a completed sign-up.
type RegistrationEvent struct {
	EventID   string
	UserID    uint
	UserName  string
	UserEmail string
	At        time.Time
}

// Notifier sends an informational message to the administrator.
type Notifier interface {
	RegistrationCompleted(ctx context.Context, ev RegistrationEvent) error
}

// Nop is used when no mail transport is configured.
type Nop struct{}

func (Nop) RegistrationCompleted(context.Context, RegistrationEvent) error { return nil }
