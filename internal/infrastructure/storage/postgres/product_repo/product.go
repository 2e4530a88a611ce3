// Package product_repo provides PostgreSQL implementations for product,
// movement and inventory repositories.
package product_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"gestistock/internal/core/apperror"
	"gestistock/internal/core/id"
	"gestistock/internal/domain/products"
	"gestistock/internal/infrastructure/storage/postgres"
)

const productTable = "products"

// Compile-time check that ProductRepo implements products.Repository.
var _ products.Repository = (*ProductRepo)(nil)

// ProductRepo implements products.Repository.
type ProductRepo struct {
	txm        *postgres.TxManager
	selectCols []string
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		txm:        txm,
		selectCols: postgres.ExtractDBColumns[products.Product](),
	}
}

func (r *ProductRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *ProductRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(r.selectCols...).
		From(productTable)
}

func (r *ProductRepo) querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// Create inserts a new product.
func (r *ProductRepo) Create(ctx context.Context, p *products.Product) error {
	data := postgres.StructToMap(p)

	q := r.builder().
		Insert(productTable).
		SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID retrieves a product by ID.
func (r *ProductRepo) GetByID(ctx context.Context, productID id.ID) (*products.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": productID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p products.Product
	if err := pgxscan.Get(ctx, r.querier(ctx), &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", productID.String())
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetAll retrieves every product record.
func (r *ProductRepo) GetAll(ctx context.Context) ([]*products.Product, error) {
	return r.selectMany(ctx, r.baseSelect().OrderBy("name ASC"))
}

// FindByName retrieves one product carrying the name.
func (r *ProductRepo) FindByName(ctx context.Context, name string) (*products.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"name": name}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p products.Product
	if err := pgxscan.Get(ctx, r.querier(ctx), &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", name)
		}
		return nil, fmt.Errorf("find by name: %w", err)
	}
	return &p, nil
}

// ListByName retrieves the whole name-group.
func (r *ProductRepo) ListByName(ctx context.Context, name string) ([]*products.Product, error) {
	return r.selectMany(ctx, r.baseSelect().Where(squirrel.Eq{"name": name}))
}

// ListByNameForUpdate retrieves the name-group with row locks so
// concurrent total recomputations for the same name serialize.
func (r *ProductRepo) ListByNameForUpdate(ctx context.Context, name string) ([]*products.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"name": name}).
		Suffix("FOR UPDATE")
	return r.selectMany(ctx, q)
}

// ListByCategory retrieves products referencing a category.
func (r *ProductRepo) ListByCategory(ctx context.Context, categoryID id.ID) ([]*products.Product, error) {
	return r.selectMany(ctx, r.baseSelect().Where(squirrel.Eq{"category_id": categoryID}))
}

// ListByUnit retrieves products referencing a unit of measure.
func (r *ProductRepo) ListByUnit(ctx context.Context, unitID id.ID) ([]*products.Product, error) {
	return r.selectMany(ctx, r.baseSelect().Where(squirrel.Eq{"unit_id": unitID}))
}

// ListByStock retrieves products located at a stock.
func (r *ProductRepo) ListByStock(ctx context.Context, stockID id.ID) ([]*products.Product, error) {
	return r.selectMany(ctx, r.baseSelect().Where(squirrel.Eq{"stock_id": stockID}))
}

// ListLowStock retrieves products whose aggregate total fell below
// their minimum threshold.
func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*products.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Expr("quantity_total < quantity_min")).
		OrderBy("name ASC")
	return r.selectMany(ctx, q)
}

// ExistsByCategory checks whether any product references the category.
func (r *ProductRepo) ExistsByCategory(ctx context.Context, categoryID id.ID) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"category_id": categoryID})
}

// ExistsBySupplier checks whether any product references the supplier.
func (r *ProductRepo) ExistsBySupplier(ctx context.Context, supplierID id.ID) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"supplier_id": supplierID})
}

// Update overwrites an existing product.
func (r *ProductRepo) Update(ctx context.Context, p *products.Product) error {
	data := postgres.StructToMap(p)
	delete(data, "id")

	q := r.builder().
		Update(productTable).
		SetMap(data).
		Where(squirrel.Eq{"id": p.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("product", p.ID.String())
	}
	return nil
}

// SetQuantityTotal writes the derived aggregate on one record.
func (r *ProductRepo) SetQuantityTotal(ctx context.Context, productID id.ID, total int64) error {
	q := r.builder().
		Update(productTable).
		Set("quantity_total", total).
		Where(squirrel.Eq{"id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set quantity total: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID.String())
	}
	return nil
}

// ReassignUnit re-targets every product referencing fromUnit to toUnit.
func (r *ProductRepo) ReassignUnit(ctx context.Context, fromUnit, toUnit id.ID) (int64, error) {
	q := r.builder().
		Update(productTable).
		Set("unit_id", toUnit).
		Where(squirrel.Eq{"unit_id": fromUnit})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("reassign unit: %w", err)
	}
	return result.RowsAffected(), nil
}

// Delete removes a product record.
func (r *ProductRepo) Delete(ctx context.Context, productID id.ID) error {
	q := r.builder().
		Delete(productTable).
		Where(squirrel.Eq{"id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID.String())
	}
	return nil
}

func (r *ProductRepo) selectMany(ctx context.Context, q squirrel.SelectBuilder) ([]*products.Product, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*products.Product
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return items, nil
}

func (r *ProductRepo) exists(ctx context.Context, cond squirrel.Eq) (bool, error) {
	q := r.builder().
		Select("1").
		From(productTable).
		Where(cond).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists int
	err = r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&exists)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}
	return true, nil
}
