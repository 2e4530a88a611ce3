package dto

import (
	"gestistock/internal/domain/catalogs/supplier"
)

// CreateSupplierRequest is the request body for creating a supplier.
type CreateSupplierRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateSupplierRequest) ToEntity() *supplier.Supplier {
	s := supplier.NewSupplier(r.Name)
	s.Phone = r.Phone
	s.Email = r.Email
	s.Address = r.Address
	return s
}

// UpdateSupplierRequest is the request body for a partial update.
type UpdateSupplierRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

// ToPatch converts DTO to a domain patch.
func (r *UpdateSupplierRequest) ToPatch() supplier.Patch {
	return supplier.Patch{
		Name:    r.Name,
		Phone:   r.Phone,
		Email:   r.Email,
		Address: r.Address,
	}
}

// SupplierResponse is the response body for a supplier.
type SupplierResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// FromSupplier creates a response DTO from the domain entity.
func FromSupplier(s *supplier.Supplier) *SupplierResponse {
	return &SupplierResponse{
		ID:      s.ID.String(),
		Name:    s.Name,
		Phone:   s.Phone,
		Email:   s.Email,
		Address: s.Address,
	}
}

// FromSuppliers maps a supplier list to response DTOs.
func FromSuppliers(items []*supplier.Supplier) []*SupplierResponse {
	out := make([]*SupplierResponse, 0, len(items))
	for _, s := range items {
		out = append(out, FromSupplier(s))
	}
	return out
}
