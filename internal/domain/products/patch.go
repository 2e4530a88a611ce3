package products

import (
	"github.com/shopspring/decimal"

	"gestistock/internal/core/id"
)

// Patch is a partial update: each field is explicitly present or absent.
// The previous generation of this API treated zero values as "not
// supplied", which made it impossible to reset a numeric field to 0;
// optional pointers remove that ambiguity. Apply is the single place
// where a patch is merged onto a stored record.
type Patch struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	Type           *string          `json:"type"`
	PurchasePrice  *decimal.Decimal `json:"purchasePrice"`
	QuantityOnHand *int64           `json:"quantityOnHand"`
	QuantityMin    *int64           `json:"quantityMin"`
	CategoryID     *id.ID           `json:"categoryId"`
	SupplierID     *id.ID           `json:"supplierId"`
	UnitID         *id.ID           `json:"unitId"`
	StockID        *id.ID           `json:"stockId"`
}

// Apply merges the patch onto p. Only present fields overwrite.
// QuantityTotal is derived and never patched directly.
func (patch Patch) Apply(p *Product) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Type != nil {
		p.Type = *patch.Type
	}
	if patch.PurchasePrice != nil {
		p.PurchasePrice = *patch.PurchasePrice
	}
	if patch.QuantityOnHand != nil {
		p.QuantityOnHand = *patch.QuantityOnHand
	}
	if patch.QuantityMin != nil {
		p.QuantityMin = *patch.QuantityMin
	}
	if patch.CategoryID != nil {
		p.CategoryID = patch.CategoryID
	}
	if patch.SupplierID != nil {
		p.SupplierID = patch.SupplierID
	}
	if patch.UnitID != nil {
		p.UnitID = patch.UnitID
	}
	if patch.StockID != nil {
		p.StockID = patch.StockID
	}
}
