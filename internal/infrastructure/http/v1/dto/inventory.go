package dto

import (
	"time"

	"gestistock/internal/core/apperror"
	"gestistock/internal/core/id"
	"gestistock/internal/domain/inventories"
)

// CreateInventoryRequest is the request body for recording an
// inventory count.
type CreateInventoryRequest struct {
	StockID string `json:"stockId" binding:"required"`
	Note    string `json:"note"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateInventoryRequest) ToEntity() (*inventories.Inventory, error) {
	stockID, err := id.Parse(r.StockID)
	if err != nil {
		return nil, apperror.NewValidation("invalid id").
			WithDetail("field", "stockId").
			WithDetail("value", r.StockID)
	}
	return inventories.NewInventory(stockID, r.Note), nil
}

// InventoryResponse is the response body for an inventory count.
type InventoryResponse struct {
	ID      string    `json:"id"`
	StockID string    `json:"stockId"`
	TakenAt time.Time `json:"takenAt"`
	Note    string    `json:"note,omitempty"`
}

// FromInventory creates a response DTO from the domain entity.
func FromInventory(inv *inventories.Inventory) *InventoryResponse {
	return &InventoryResponse{
		ID:      inv.ID.String(),
		StockID: inv.StockID.String(),
		TakenAt: inv.TakenAt,
		Note:    inv.Note,
	}
}

// FromInventories maps an inventory list to response DTOs.
func FromInventories(items []*inventories.Inventory) []*InventoryResponse {
	out := make([]*InventoryResponse, 0, len(items))
	for _, inv := range items {
		out = append(out, FromInventory(inv))
	}
	return out
}
