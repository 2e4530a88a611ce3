package product_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"gestistock/internal/core/apperror"
	"gestistock/internal/core/id"
	"gestistock/internal/domain/inventories"
	"gestistock/internal/infrastructure/storage/postgres"
)

const inventoryTable = "inventories"

// Compile-time check that InventoryRepo implements inventories.Repository.
var _ inventories.Repository = (*InventoryRepo)(nil)

// InventoryRepo implements inventories.Repository.
type InventoryRepo struct {
	txm        *postgres.TxManager
	selectCols []string
}

// NewInventoryRepo creates a new inventory repository.
func NewInventoryRepo(txm *postgres.TxManager) *InventoryRepo {
	return &InventoryRepo{
		txm:        txm,
		selectCols: postgres.ExtractDBColumns[inventories.Inventory](),
	}
}

func (r *InventoryRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *InventoryRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(r.selectCols...).
		From(inventoryTable)
}

// Create inserts an inventory count.
func (r *InventoryRepo) Create(ctx context.Context, inv *inventories.Inventory) error {
	data := postgres.StructToMap(inv)

	q := r.builder().
		Insert(inventoryTable).
		SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// GetByID retrieves an inventory count by ID.
func (r *InventoryRepo) GetByID(ctx context.Context, inventoryID id.ID) (*inventories.Inventory, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": inventoryID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var inv inventories.Inventory
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &inv, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("inventory", inventoryID.String())
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

// GetAll retrieves every inventory count, newest first.
func (r *InventoryRepo) GetAll(ctx context.Context) ([]*inventories.Inventory, error) {
	return r.selectMany(ctx, r.baseSelect().OrderBy("taken_at DESC"))
}

// ListByStock retrieves the counts taken at a location, newest first.
func (r *InventoryRepo) ListByStock(ctx context.Context, stockID id.ID) ([]*inventories.Inventory, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"stock_id": stockID}).
		OrderBy("taken_at DESC")
	return r.selectMany(ctx, q)
}

// DeleteByStock removes all counts of a location.
func (r *InventoryRepo) DeleteByStock(ctx context.Context, stockID id.ID) (int64, error) {
	q := r.builder().
		Delete(inventoryTable).
		Where(squirrel.Eq{"stock_id": stockID})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete inventories: %w", err)
	}
	return result.RowsAffected(), nil
}

// Delete removes one inventory count.
func (r *InventoryRepo) Delete(ctx context.Context, inventoryID id.ID) error {
	q := r.builder().
		Delete(inventoryTable).
		Where(squirrel.Eq{"id": inventoryID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("inventory", inventoryID.String())
	}
	return nil
}

func (r *InventoryRepo) selectMany(ctx context.Context, q squirrel.SelectBuilder) ([]*inventories.Inventory, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*inventories.Inventory
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list inventories: %w", err)
	}
	return items, nil
}
