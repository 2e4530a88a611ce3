package dto

import (
	"gestistock/internal/domain/catalogs/uom"
)

// CreateUnitRequest is the request body for creating a unit of measure.
type CreateUnitRequest struct {
	Designation string `json:"designation" binding:"required"`
	Description string `json:"description"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateUnitRequest) ToEntity() *uom.UnitOfMeasure {
	return uom.NewUnitOfMeasure(r.Designation, r.Description)
}

// UpdateUnitRequest is the request body for a partial update.
type UpdateUnitRequest struct {
	Designation *string `json:"designation"`
	Description *string `json:"description"`
}

// ToPatch converts DTO to a domain patch.
func (r *UpdateUnitRequest) ToPatch() uom.Patch {
	return uom.Patch{
		Designation: r.Designation,
		Description: r.Description,
	}
}

// UnitResponse is the response body for a unit of measure.
type UnitResponse struct {
	ID          string `json:"id"`
	Designation string `json:"designation"`
	Description string `json:"description,omitempty"`
}

// FromUnit creates a response DTO from the domain entity.
func FromUnit(u *uom.UnitOfMeasure) *UnitResponse {
	return &UnitResponse{
		ID:          u.ID.String(),
		Designation: u.Designation,
		Description: u.Description,
	}
}

// FromUnits maps a unit list to response DTOs.
func FromUnits(items []*uom.UnitOfMeasure) []*UnitResponse {
	out := make([]*UnitResponse, 0, len(items))
	for _, u := range items {
		out = append(out, FromUnit(u))
	}
	return out
}
