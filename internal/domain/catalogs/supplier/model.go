// Package supplier provides the supplier catalog.
package supplier

import (
	"context"

	"gestistock/internal/core/apperror"
	"gestistock/internal/core/entity"
	"gestistock/internal/core/id"
)

// Supplier is a party products are purchased from. Name is the unique
// business key.
type Supplier struct {
	entity.Base

	Name    string `db:"name" json:"name"`
	Phone   string `db:"phone" json:"phone"`
	Email   string `db:"email" json:"email"`
	Address string `db:"address" json:"address"`
}

// NewSupplier creates a new Supplier.
func NewSupplier(name string) *Supplier {
	return &Supplier{
		Base: entity.NewBase(),
		Name: name,
	}
}

// Validate implements entity.Validatable interface.
func (s *Supplier) Validate(ctx context.Context) error {
	if s.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

// Repository defines the interface for Supplier persistence.
type Repository interface {
	Create(ctx context.Context, s *Supplier) error
	GetByID(ctx context.Context, supplierID id.ID) (*Supplier, error)
	GetAll(ctx context.Context) ([]*Supplier, error)

	// FindByName retrieves a supplier by its business key
	FindByName(ctx context.Context, name string) (*Supplier, error)

	Update(ctx context.Context, s *Supplier) error
	Delete(ctx context.Context, supplierID id.ID) error
}

// Patch is a partial update with explicitly optional fields.
type Patch struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

// Apply merges the patch onto s.
func (p Patch) Apply(s *Supplier) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Phone != nil {
		s.Phone = *p.Phone
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Address != nil {
		s.Address = *p.Address
	}
}
