package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"gestistock/internal/domain/catalogs/stock"
	"gestistock/internal/infrastructure/storage/postgres"
)

const stockTable = "stocks"

// Compile-time check that StockRepo implements stock.Repository.
var _ stock.Repository = (*StockRepo)(nil)

// StockRepo implements stock.Repository.
type StockRepo struct {
	*BaseRepo[*stock.Stock]
}

// NewStockRepo creates a new stock repository.
func NewStockRepo(txm *postgres.TxManager) *StockRepo {
	return &StockRepo{
		BaseRepo: NewBaseRepo(
			txm,
			stockTable,
			postgres.ExtractDBColumns[stock.Stock](),
			"location ASC",
			func() *stock.Stock { return &stock.Stock{} },
		),
	}
}

// FindByLocation retrieves a stock by its business key.
func (r *StockRepo) FindByLocation(ctx context.Context, location string) (*stock.Stock, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"location": location}).
		Limit(1)
	return r.FindOne(ctx, q)
}
