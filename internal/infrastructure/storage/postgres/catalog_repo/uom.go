package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"gestistock/internal/domain/catalogs/uom"
	"gestistock/internal/infrastructure/storage/postgres"
)

const unitTable = "units_of_measure"

// Compile-time check that UnitRepo implements uom.Repository.
var _ uom.Repository = (*UnitRepo)(nil)

// UnitRepo implements uom.Repository.
type UnitRepo struct {
	*BaseRepo[*uom.UnitOfMeasure]
}

// NewUnitRepo creates a new unit-of-measure repository.
func NewUnitRepo(txm *postgres.TxManager) *UnitRepo {
	return &UnitRepo{
		BaseRepo: NewBaseRepo(
			txm,
			unitTable,
			postgres.ExtractDBColumns[uom.UnitOfMeasure](),
			"designation ASC",
			func() *uom.UnitOfMeasure { return &uom.UnitOfMeasure{} },
		),
	}
}

// FindByDesignation retrieves a unit by its business key.
func (r *UnitRepo) FindByDesignation(ctx context.Context, designation string) (*uom.UnitOfMeasure, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"designation": designation}).
		Limit(1)
	return r.FindOne(ctx, q)
}
