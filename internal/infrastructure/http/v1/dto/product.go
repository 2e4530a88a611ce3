package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"gestistock/internal/core/apperror"
	"gestistock/internal/core/id"
	"gestistock/internal/domain/products"
)

func parseOptionalID(field string, raw *string) (*id.ID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := id.Parse(*raw)
	if err != nil {
		return nil, apperror.NewValidation("invalid id").
			WithDetail("field", field).
			WithDetail("value", *raw)
	}
	return &parsed, nil
}

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Name           string          `json:"name" binding:"required"`
	Description    string          `json:"description"`
	Type           string          `json:"type"`
	PurchasePrice  decimal.Decimal `json:"purchasePrice"`
	QuantityOnHand int64           `json:"quantityOnHand"`
	QuantityMin    int64           `json:"quantityMin"`
	CategoryID     *string         `json:"categoryId"`
	SupplierID     *string         `json:"supplierId"`
	UnitID         *string         `json:"unitId"`
	StockID        *string         `json:"stockId"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() (*products.Product, error) {
	p := products.NewProduct(r.Name, r.QuantityOnHand)
	p.Description = r.Description
	p.Type = r.Type
	p.PurchasePrice = r.PurchasePrice
	p.QuantityMin = r.QuantityMin

	var err error
	if p.CategoryID, err = parseOptionalID("categoryId", r.CategoryID); err != nil {
		return nil, err
	}
	if p.SupplierID, err = parseOptionalID("supplierId", r.SupplierID); err != nil {
		return nil, err
	}
	if p.UnitID, err = parseOptionalID("unitId", r.UnitID); err != nil {
		return nil, err
	}
	if p.StockID, err = parseOptionalID("stockId", r.StockID); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProductRequest is the request body for a partial update.
// Absent fields stay untouched; quantityTotal is derived and cannot be
// set through the API.
type UpdateProductRequest struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	Type           *string          `json:"type"`
	PurchasePrice  *decimal.Decimal `json:"purchasePrice"`
	QuantityOnHand *int64           `json:"quantityOnHand"`
	QuantityMin    *int64           `json:"quantityMin"`
	CategoryID     *string          `json:"categoryId"`
	SupplierID     *string          `json:"supplierId"`
	UnitID         *string          `json:"unitId"`
	StockID        *string          `json:"stockId"`
}

// ToPatch converts DTO to a domain patch.
func (r *UpdateProductRequest) ToPatch() (products.Patch, error) {
	patch := products.Patch{
		Name:           r.Name,
		Description:    r.Description,
		Type:           r.Type,
		PurchasePrice:  r.PurchasePrice,
		QuantityOnHand: r.QuantityOnHand,
		QuantityMin:    r.QuantityMin,
	}

	var err error
	if patch.CategoryID, err = parseOptionalID("categoryId", r.CategoryID); err != nil {
		return products.Patch{}, err
	}
	if patch.SupplierID, err = parseOptionalID("supplierId", r.SupplierID); err != nil {
		return products.Patch{}, err
	}
	if patch.UnitID, err = parseOptionalID("unitId", r.UnitID); err != nil {
		return products.Patch{}, err
	}
	if patch.StockID, err = parseOptionalID("stockId", r.StockID); err != nil {
		return products.Patch{}, err
	}
	return patch, nil
}

// ProductResponse is the response body for a product.
type ProductResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Type           string          `json:"type,omitempty"`
	PurchasePrice  decimal.Decimal `json:"purchasePrice"`
	QuantityOnHand int64           `json:"quantityOnHand"`
	QuantityTotal  int64           `json:"quantityTotal"`
	QuantityMin    int64           `json:"quantityMin"`
	LowStock       bool            `json:"lowStock"`
	CategoryID     *string         `json:"categoryId,omitempty"`
	SupplierID     *string         `json:"supplierId,omitempty"`
	UnitID         *string         `json:"unitId,omitempty"`
	StockID        *string         `json:"stockId,omitempty"`
}

func idString(v *id.ID) *string {
	if v == nil {
		return nil
	}
	s := v.String()
	return &s
}

// FromProduct creates a response DTO from the domain entity.
func FromProduct(p *products.Product) *ProductResponse {
	return &ProductResponse{
		ID:             p.ID.String(),
		Name:           p.Name,
		Description:    p.Description,
		Type:           p.Type,
		PurchasePrice:  p.PurchasePrice,
		QuantityOnHand: p.QuantityOnHand,
		QuantityTotal:  p.QuantityTotal,
		QuantityMin:    p.QuantityMin,
		LowStock:       p.IsLowStock(),
		CategoryID:     idString(p.CategoryID),
		SupplierID:     idString(p.SupplierID),
		UnitID:         idString(p.UnitID),
		StockID:        idString(p.StockID),
	}
}

// FromProducts maps a product list to response DTOs.
func FromProducts(items []*products.Product) []*ProductResponse {
	out := make([]*ProductResponse, 0, len(items))
	for _, p := range items {
		out = append(out, FromProduct(p))
	}
	return out
}

// --- Movements ---

// CreateMovementRequest is the request body for recording a movement.
type CreateMovementRequest struct {
	Kind     products.MovementKind `json:"kind" binding:"required"`
	Quantity int64                 `json:"quantity" binding:"required"`
	StockID  *string               `json:"stockId"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateMovementRequest) ToEntity(productID id.ID) (*products.Movement, error) {
	m := products.NewMovement(productID, r.Kind, r.Quantity)

	var err error
	if m.StockID, err = parseOptionalID("stockId", r.StockID); err != nil {
		return nil, err
	}
	return m, nil
}

// MovementResponse is the response body for a movement.
type MovementResponse struct {
	ID         string                `json:"id"`
	ProductID  string                `json:"productId"`
	StockID    *string               `json:"stockId,omitempty"`
	Kind       products.MovementKind `json:"kind"`
	Quantity   int64                 `json:"quantity"`
	OccurredAt time.Time             `json:"occurredAt"`
}

// FromMovement creates a response DTO from the domain entity.
func FromMovement(m *products.Movement) *MovementResponse {
	return &MovementResponse{
		ID:         m.ID.String(),
		ProductID:  m.ProductID.String(),
		StockID:    idString(m.StockID),
		Kind:       m.Kind,
		Quantity:   m.Quantity,
		OccurredAt: m.OccurredAt,
	}
}

// FromMovements maps a movement list to response DTOs.
func FromMovements(items []*products.Movement) []*MovementResponse {
	out := make([]*MovementResponse, 0, len(items))
	for _, m := range items {
		out = append(out, FromMovement(m))
	}
	return out
}
