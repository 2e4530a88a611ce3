package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"gestistock/internal/domain/catalogs/category"
	"gestistock/internal/infrastructure/storage/postgres"
)

const categoryTable = "categories"

// Compile-time check that CategoryRepo implements category.Repository.
var _ category.Repository = (*CategoryRepo)(nil)

// CategoryRepo implements category.Repository.
type CategoryRepo struct {
	*BaseRepo[*category.Category]
}

// NewCategoryRepo creates a new category repository.
func NewCategoryRepo(txm *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{
		BaseRepo: NewBaseRepo(
			txm,
			categoryTable,
			postgres.ExtractDBColumns[category.Category](),
			"designation ASC",
			func() *category.Category { return &category.Category{} },
		),
	}
}

// FindByDesignation retrieves a category by its business key.
func (r *CategoryRepo) FindByDesignation(ctx context.Context, designation string) (*category.Category, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"designation": designation}).
		Limit(1)
	return r.FindOne(ctx, q)
}
