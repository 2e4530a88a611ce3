// Package entity defines the common base for persisted records.
package entity

import (
	"context"

	"gestistock/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Base contains the fields shared by every persisted entity.
type Base struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`
}

// NewBase creates a Base with a generated ID.
func NewBase() Base {
	return Base{ID: id.New()}
}
