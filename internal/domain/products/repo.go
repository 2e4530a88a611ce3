package products

import (
	"context"

	"gestistock/internal/core/id"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	// Create inserts a new product
	Create(ctx context.Context, p *Product) error

	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, productID id.ID) (*Product, error)

	// GetAll retrieves every product record (one per location)
	GetAll(ctx context.Context) ([]*Product, error)

	// FindByName retrieves one product carrying the given name.
	// Used for business-key uniqueness checks.
	FindByName(ctx context.Context, name string) (*Product, error)

	// ListByName retrieves the whole name-group, one record per location
	ListByName(ctx context.Context, name string) ([]*Product, error)

	// ListByNameForUpdate retrieves the name-group with row locks,
	// serializing concurrent total recomputations for the same name
	ListByNameForUpdate(ctx context.Context, name string) ([]*Product, error)

	// ListByCategory retrieves products referencing a category
	ListByCategory(ctx context.Context, categoryID id.ID) ([]*Product, error)

	// ListByUnit retrieves products referencing a unit of measure
	ListByUnit(ctx context.Context, unitID id.ID) ([]*Product, error)

	// ListByStock retrieves products located at a stock
	ListByStock(ctx context.Context, stockID id.ID) ([]*Product, error)

	// ListLowStock retrieves products whose aggregate total fell
	// below their minimum threshold
	ListLowStock(ctx context.Context) ([]*Product, error)

	// ExistsByCategory checks whether any product references the category
	ExistsByCategory(ctx context.Context, categoryID id.ID) (bool, error)

	// ExistsBySupplier checks whether any product references the supplier
	ExistsBySupplier(ctx context.Context, supplierID id.ID) (bool, error)

	// Update overwrites an existing product
	Update(ctx context.Context, p *Product) error

	// SetQuantityTotal writes the derived aggregate on one record
	SetQuantityTotal(ctx context.Context, productID id.ID, total int64) error

	// ReassignUnit re-targets every product referencing fromUnit to
	// toUnit. Returns the number of affected records.
	ReassignUnit(ctx context.Context, fromUnit, toUnit id.ID) (int64, error)

	// Delete removes a product record
	Delete(ctx context.Context, productID id.ID) error
}

// MovementRepository defines the interface for Movement persistence.
type MovementRepository interface {
	// Create inserts a movement
	Create(ctx context.Context, m *Movement) error

	// ListByProduct retrieves movements of a product, newest first
	ListByProduct(ctx context.Context, productID id.ID) ([]*Movement, error)

	// ListByStock retrieves movements recorded at a stock location
	ListByStock(ctx context.Context, stockID id.ID) ([]*Movement, error)

	// DeleteByProduct removes all movements of a product.
	// Returns the number of removed records.
	DeleteByProduct(ctx context.Context, productID id.ID) (int64, error)
}
