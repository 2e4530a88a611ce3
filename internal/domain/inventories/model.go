// Package inventories provides physical inventory (stock count) records.
package inventories

import (
	"context"
	"time"

	"gestistock/internal/core/apperror"
	"gestistock/internal/core/entity"
	"gestistock/internal/core/id"
)

// Inventory is a physical stock count taken at a location.
type Inventory struct {
	entity.Base

	StockID id.ID     `db:"stock_id" json:"stockId"`
	TakenAt time.Time `db:"taken_at" json:"takenAt"`
	Note    string    `db:"note" json:"note"`
}

// NewInventory creates a new Inventory dated now.
func NewInventory(stockID id.ID, note string) *Inventory {
	return &Inventory{
		Base:    entity.NewBase(),
		StockID: stockID,
		TakenAt: time.Now().UTC(),
		Note:    note,
	}
}

// Validate implements entity.Validatable interface.
func (inv *Inventory) Validate(ctx context.Context) error {
	if id.IsNil(inv.StockID) {
		return apperror.NewValidation("stock id is required").
			WithDetail("field", "stockId")
	}
	if inv.TakenAt.IsZero() {
		return apperror.NewValidation("taken-at date is required").
			WithDetail("field", "takenAt")
	}
	return nil
}

// Repository defines the interface for Inventory persistence.
type Repository interface {
	Create(ctx context.Context, inv *Inventory) error
	GetByID(ctx context.Context, inventoryID id.ID) (*Inventory, error)
	GetAll(ctx context.Context) ([]*Inventory, error)

	// ListByStock retrieves the counts taken at a location, newest first
	ListByStock(ctx context.Context, stockID id.ID) ([]*Inventory, error)

	// DeleteByStock removes all counts of a location.
	// Returns the number of removed records.
	DeleteByStock(ctx context.Context, stockID id.ID) (int64, error)

	Delete(ctx context.Context, inventoryID id.ID) error
}
