package product_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"gestistock/internal/core/id"
	"gestistock/internal/domain/products"
	"gestistock/internal/infrastructure/storage/postgres"
)

const movementTable = "movements"

// Compile-time check that MovementRepo implements products.MovementRepository.
var _ products.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implements products.MovementRepository.
type MovementRepo struct {
	txm        *postgres.TxManager
	selectCols []string
}

// NewMovementRepo creates a new movement repository.
func NewMovementRepo(txm *postgres.TxManager) *MovementRepo {
	return &MovementRepo{
		txm:        txm,
		selectCols: postgres.ExtractDBColumns[products.Movement](),
	}
}

func (r *MovementRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *MovementRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(r.selectCols...).
		From(movementTable)
}

// Create inserts a movement.
func (r *MovementRepo) Create(ctx context.Context, m *products.Movement) error {
	data := postgres.StructToMap(m)

	q := r.builder().
		Insert(movementTable).
		SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListByProduct retrieves movements of a product, newest first.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID id.ID) ([]*products.Movement, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("occurred_at DESC")
	return r.selectMany(ctx, q)
}

// ListByStock retrieves movements recorded at a stock location.
func (r *MovementRepo) ListByStock(ctx context.Context, stockID id.ID) ([]*products.Movement, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"stock_id": stockID}).
		OrderBy("occurred_at DESC")
	return r.selectMany(ctx, q)
}

// DeleteByProduct removes all movements of a product.
func (r *MovementRepo) DeleteByProduct(ctx context.Context, productID id.ID) (int64, error) {
	q := r.builder().
		Delete(movementTable).
		Where(squirrel.Eq{"product_id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete movements: %w", err)
	}
	return result.RowsAffected(), nil
}

func (r *MovementRepo) selectMany(ctx context.Context, q squirrel.SelectBuilder) ([]*products.Movement, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*products.Movement
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return items, nil
}
