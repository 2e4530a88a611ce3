// Package category provides the product category catalog.
package category

import (
	"context"

	"gestistock/internal/core/apperror"
	"gestistock/internal/core/entity"
	"gestistock/internal/core/id"
)

// Category classifies products. Designation is the unique business key.
type Category struct {
	entity.Base

	// Designation is the display name, unique across live categories
	Designation string `db:"designation" json:"designation"`

	// Description is a free-form note
	Description string `db:"description" json:"description"`
}

// NewCategory creates a new Category.
func NewCategory(designation, description string) *Category {
	return &Category{
		Base:        entity.NewBase(),
		Designation: designation,
		Description: description,
	}
}

// Validate implements entity.Validatable interface.
func (c *Category) Validate(ctx context.Context) error {
	if c.Designation == "" {
		return apperror.NewValidation("designation is required").
			WithDetail("field", "designation")
	}
	return nil
}

// Repository defines the interface for Category persistence.
type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, categoryID id.ID) (*Category, error)
	GetAll(ctx context.Context) ([]*Category, error)

	// FindByDesignation retrieves a category by its business key
	FindByDesignation(ctx context.Context, designation string) (*Category, error)

	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, categoryID id.ID) error
}

// Patch is a partial update with explicitly optional fields.
type Patch struct {
	Designation *string `json:"designation"`
	Description *string `json:"description"`
}

// Apply merges the patch onto c.
func (p Patch) Apply(c *Category) {
	if p.Designation != nil {
		c.Designation = *p.Designation
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
}
