// Package audit defines the side-channel that records who performed a
// mutating operation. Notifications are emitted after a successful commit
// and never fail the main operation.
package audit

import (
	"context"

	"gestistock/internal/core/appctx"
	"gestistock/internal/core/id"
	"gestistock/pkg/logger"
)

// Action represents the type of audited operation.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Notifier records mutating actions. Implementations must be
// fire-and-forget: failures are logged, not propagated.
type Notifier interface {
	Record(ctx context.Context, action Action, entityType string, entityID id.ID, message string)
}

// LogNotifier writes audit records to the structured log only.
// Used when no persistent audit store is configured, and in tests.
type LogNotifier struct{}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Record implements Notifier.
func (n *LogNotifier) Record(ctx context.Context, action Action, entityType string, entityID id.ID, message string) {
	logger.Info(ctx, "audit",
		"actor", appctx.GetUsername(ctx),
		"action", string(action),
		"entity_type", entityType,
		"entity_id", entityID.String(),
		"message", message,
	)
}

// Nop discards all notifications.
type Nop struct{}

// Record implements Notifier.
func (Nop) Record(ctx context.Context, action Action, entityType string, entityID id.ID, message string) {
}
