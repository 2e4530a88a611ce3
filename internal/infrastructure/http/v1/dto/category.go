package dto

import (
	"gestistock/internal/domain/catalogs/category"
)

// CreateCategoryRequest is the request body for creating a category.
type CreateCategoryRequest struct {
	Designation string `json:"designation" binding:"required"`
	Description string `json:"description"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCategoryRequest) ToEntity() *category.Category {
	return category.NewCategory(r.Designation, r.Description)
}

// UpdateCategoryRequest is the request body for a partial update.
// Absent fields stay untouched.
type UpdateCategoryRequest struct {
	Designation *string `json:"designation"`
	Description *string `json:"description"`
}

// ToPatch converts DTO to a domain patch.
func (r *UpdateCategoryRequest) ToPatch() category.Patch {
	return category.Patch{
		Designation: r.Designation,
		Description: r.Description,
	}
}

// CategoryResponse is the response body for a category.
type CategoryResponse struct {
	ID          string `json:"id"`
	Designation string `json:"designation"`
	Description string `json:"description,omitempty"`
}

// FromCategory creates a response DTO from the domain entity.
func FromCategory(c *category.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID.String(),
		Designation: c.Designation,
		Description: c.Description,
	}
}

// FromCategories maps a category list to response DTOs.
func FromCategories(items []*category.Category) []*CategoryResponse {
	out := make([]*CategoryResponse, 0, len(items))
	for _, c := range items {
		out = append(out, FromCategory(c))
	}
	return out
}
