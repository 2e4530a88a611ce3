// Package stock provides the stock-location catalog.
package stock

import (
	"context"

	"gestistock/internal/core/apperror"
	"gestistock/internal/core/entity"
	"gestistock/internal/core/id"
)

// Stock is a physical storage location. Location is the unique
// business key.
type Stock struct {
	entity.Base

	Location string `db:"location" json:"location"`
	Phone    string `db:"phone" json:"phone"`
	Fax      string `db:"fax" json:"fax"`
}

// NewStock creates a new Stock.
func NewStock(location string) *Stock {
	return &Stock{
		Base:     entity.NewBase(),
		Location: location,
	}
}

// Validate implements entity.Validatable interface.
func (s *Stock) Validate(ctx context.Context) error {
	if s.Location == "" {
		return apperror.NewValidation("location is required").
			WithDetail("field", "location")
	}
	return nil
}

// Repository defines the interface for Stock persistence.
type Repository interface {
	Create(ctx context.Context, s *Stock) error
	GetByID(ctx context.Context, stockID id.ID) (*Stock, error)
	GetAll(ctx context.Context) ([]*Stock, error)

	// FindByLocation retrieves a stock by its business key
	FindByLocation(ctx context.Context, location string) (*Stock, error)

	Update(ctx context.Context, s *Stock) error
	Delete(ctx context.Context, stockID id.ID) error
}

// Patch is a partial update with explicitly optional fields.
type Patch struct {
	Location *string `json:"location"`
	Phone    *string `json:"phone"`
	Fax      *string `json:"fax"`
}

// Apply merges the patch onto s.
func (p Patch) Apply(s *Stock) {
	if p.Location != nil {
		s.Location = *p.Location
	}
	if p.Phone != nil {
		s.Phone = *p.Phone
	}
	if p.Fax != nil {
		s.Fax = *p.Fax
	}
}
