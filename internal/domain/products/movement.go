package products

import (
	"context"
	"time"

	"gestistock/internal/core/apperror"
	"gestistock/internal/core/entity"
	"gestistock/internal/core/id"
)

// MovementKind defines the direction of a stock movement.
type MovementKind string

const (
	MovementIn  MovementKind = "in"  // goods received
	MovementOut MovementKind = "out" // goods issued
)

// Movement records a stock change event for a product. Movements are
// owned by their product: deleting the product removes them.
type Movement struct {
	entity.Base

	ProductID id.ID  `db:"product_id" json:"productId"`
	StockID   *id.ID `db:"stock_id" json:"stockId,omitempty"`

	Kind     MovementKind `db:"kind" json:"kind"`
	Quantity int64        `db:"quantity" json:"quantity"`

	OccurredAt time.Time `db:"occurred_at" json:"occurredAt"`
}

// NewMovement creates a movement for a product.
func NewMovement(productID id.ID, kind MovementKind, quantity int64) *Movement {
	return &Movement{
		Base:       entity.NewBase(),
		ProductID:  productID,
		Kind:       kind,
		Quantity:   quantity,
		OccurredAt: time.Now().UTC(),
	}
}

// Validate implements entity.Validatable interface.
func (m *Movement) Validate(ctx context.Context) error {
	if id.IsNil(m.ProductID) {
		return apperror.NewValidation("product id is required").
			WithDetail("field", "productId")
	}

	if m.Kind != MovementIn && m.Kind != MovementOut {
		return apperror.NewValidation("invalid movement kind").
			WithDetail("field", "kind").
			WithDetail("value", string(m.Kind))
	}

	if m.Quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}

	return nil
}
