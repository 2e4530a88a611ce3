// Package uom provides the unit-of-measure catalog.
package uom

import (
	"context"

	"gestistock/internal/core/apperror"
	"gestistock/internal/core/entity"
	"gestistock/internal/core/id"
)

// SentinelDesignation names the fallback unit that products are moved
// to when their unit is deleted. The seed tool creates it; deleting it
// is refused.
const SentinelDesignation = "Non spécifiée"

// UnitOfMeasure is a measurement unit (kg, L, pièce...). Designation is
// the unique business key.
type UnitOfMeasure struct {
	entity.Base

	Designation string `db:"designation" json:"designation"`
	Description string `db:"description" json:"description"`
}

// NewUnitOfMeasure creates a new UnitOfMeasure.
func NewUnitOfMeasure(designation, description string) *UnitOfMeasure {
	return &UnitOfMeasure{
		Base:        entity.NewBase(),
		Designation: designation,
		Description: description,
	}
}

// Validate implements entity.Validatable interface.
func (u *UnitOfMeasure) Validate(ctx context.Context) error {
	if u.Designation == "" {
		return apperror.NewValidation("designation is required").
			WithDetail("field", "designation")
	}
	return nil
}

// IsSentinel reports whether this is the fallback unit.
func (u *UnitOfMeasure) IsSentinel() bool {
	return u.Designation == SentinelDesignation
}

// Repository defines the interface for UnitOfMeasure persistence.
type Repository interface {
	Create(ctx context.Context, u *UnitOfMeasure) error
	GetByID(ctx context.Context, unitID id.ID) (*UnitOfMeasure, error)
	GetAll(ctx context.Context) ([]*UnitOfMeasure, error)

	// FindByDesignation retrieves a unit by its business key
	FindByDesignation(ctx context.Context, designation string) (*UnitOfMeasure, error)

	Update(ctx context.Context, u *UnitOfMeasure) error
	Delete(ctx context.Context, unitID id.ID) error
}

// Patch is a partial update with explicitly optional fields.
type Patch struct {
	Designation *string `json:"designation"`
	Description *string `json:"description"`
}

// Apply merges the patch onto u.
func (p Patch) Apply(u *UnitOfMeasure) {
	if p.Designation != nil {
		u.Designation = *p.Designation
	}
	if p.Description != nil {
		u.Description = *p.Description
	}
}
