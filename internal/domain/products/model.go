// Package products provides the Product entity and the stock aggregation
// logic that keeps per-name quantity totals consistent across locations.
//
// A product is stored once per stock location; records sharing the same
// name form a name-group. Every member of a name-group carries the same
// QuantityTotal, the sum of QuantityOnHand over the whole group.
package products

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"gestistock/internal/core/apperror"
	"gestistock/internal/core/entity"
	"gestistock/internal/core/id"
)

// Product represents a product held at one stock location.
type Product struct {
	entity.Base

	// Name is the business key; unique per stock location, shared
	// across locations to form a name-group
	Name string `db:"name" json:"name"`

	// Description is a free-form note
	Description string `db:"description" json:"description"`

	// Type is a free-form classification (e.g. "consumable")
	Type string `db:"type" json:"type"`

	// PurchasePrice is the unit purchase price
	PurchasePrice decimal.Decimal `db:"purchase_price" json:"purchasePrice"`

	// QuantityOnHand is the quantity stored at this location
	QuantityOnHand int64 `db:"quantity_on_hand" json:"quantityOnHand"`

	// QuantityTotal is derived: sum of QuantityOnHand over the name-group
	QuantityTotal int64 `db:"quantity_total" json:"quantityTotal"`

	// QuantityMin is the low-stock alert threshold
	QuantityMin int64 `db:"quantity_min" json:"quantityMin"`

	CategoryID *id.ID `db:"category_id" json:"categoryId,omitempty"`
	SupplierID *id.ID `db:"supplier_id" json:"supplierId,omitempty"`
	UnitID     *id.ID `db:"unit_id" json:"unitId,omitempty"`
	StockID    *id.ID `db:"stock_id" json:"stockId,omitempty"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(name string, quantityOnHand int64) *Product {
	return &Product{
		Base:           entity.NewBase(),
		Name:           name,
		QuantityOnHand: quantityOnHand,
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if p.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	if p.PurchasePrice.IsNegative() {
		return apperror.NewValidation("purchase price cannot be negative").
			WithDetail("field", "purchasePrice")
	}

	if p.QuantityOnHand < 0 {
		return apperror.NewValidation("quantity on hand cannot be negative").
			WithDetail("field", "quantityOnHand")
	}

	if p.QuantityMin < 0 {
		return apperror.NewValidation("minimum quantity cannot be negative").
			WithDetail("field", "quantityMin")
	}

	return nil
}

// IsLowStock reports whether the aggregate quantity fell below the threshold.
func (p *Product) IsLowStock() bool {
	return p.QuantityMin > 0 && p.QuantityTotal < p.QuantityMin
}

// DedupeByName keeps one representative per product name, ordered
// lexicographically by name. Used by listings that present a product
// once regardless of how many locations hold it.
func DedupeByName(items []*Product) []*Product {
	sorted := make([]*Product, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	unique := make([]*Product, 0, len(sorted))
	for i, p := range sorted {
		if i > 0 && sorted[i-1].Name == p.Name {
			continue
		}
		unique = append(unique, p)
	}
	return unique
}
