package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"gestistock/internal/domain/catalogs/supplier"
	"gestistock/internal/infrastructure/storage/postgres"
)

const supplierTable = "suppliers"

// Compile-time check that SupplierRepo implements supplier.Repository.
var _ supplier.Repository = (*SupplierRepo)(nil)

// SupplierRepo implements supplier.Repository.
type SupplierRepo struct {
	*BaseRepo[*supplier.Supplier]
}

// NewSupplierRepo creates a new supplier repository.
func NewSupplierRepo(txm *postgres.TxManager) *SupplierRepo {
	return &SupplierRepo{
		BaseRepo: NewBaseRepo(
			txm,
			supplierTable,
			postgres.ExtractDBColumns[supplier.Supplier](),
			"name ASC",
			func() *supplier.Supplier { return &supplier.Supplier{} },
		),
	}
}

// FindByName retrieves a supplier by its business key.
func (r *SupplierRepo) FindByName(ctx context.Context, name string) (*supplier.Supplier, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"name": name}).
		Limit(1)
	return r.FindOne(ctx, q)
}
