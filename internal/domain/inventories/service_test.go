package inventories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"gestistock/internal/core/apperror"
	"gestistock/internal/core/id"
	"gestistock/internal/domain/inventories"
	"gestistock/internal/domain/products/productstest"
)

type memRepo struct {
	items map[id.ID]*inventories.Inventory
}

func newMemRepo() *memRepo {
	return &memRepo{items: map[id.ID]*inventories.Inventory{}}
}

func (r *memRepo) Create(ctx context.Context, inv *inventories.Inventory) error {
	cp := *inv
	r.items[inv.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, inventoryID id.ID) (*inventories.Inventory, error) {
	inv, ok := r.items[inventoryID]
	if !ok {
		return nil, apperror.NewNotFound("inventory", inventoryID.String())
	}
	cp := *inv
	return &cp, nil
}

func (r *memRepo) GetAll(ctx context.Context) ([]*inventories.Inventory, error) {
	out := make([]*inventories.Inventory, 0, len(r.items))
	for _, inv := range r.items {
		cp := *inv
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memRepo) ListByStock(ctx context.Context, stockID id.ID) ([]*inventories.Inventory, error) {
	var out []*inventories.Inventory
	for _, inv := range r.items {
		if inv.StockID == stockID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memRepo) DeleteByStock(ctx context.Context, stockID id.ID) (int64, error) {
	var removed int64
	for key, inv := range r.items {
		if inv.StockID == stockID {
			delete(r.items, key)
			removed++
		}
	}
	return removed, nil
}

func (r *memRepo) Delete(ctx context.Context, inventoryID id.ID) error {
	if _, ok := r.items[inventoryID]; !ok {
		return apperror.NewNotFound("inventory", inventoryID.String())
	}
	delete(r.items, inventoryID)
	return nil
}

func TestCreate_RequiresStockID(t *testing.T) {
	ctx := context.Background()
	svc := inventories.NewService(newMemRepo(), productstest.NopTx{}, nil)

	inv := inventories.NewInventory(id.Nil(), "annual count")
	err := svc.Create(ctx, inv)
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestCreate_ThenGet(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := inventories.NewService(repo, productstest.NopTx{}, nil)

	inv := inventories.NewInventory(id.New(), "annual count")
	assert.NoError(t, svc.Create(ctx, inv))

	items, err := svc.List(ctx, &inv.ID)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "annual count", items[0].Note)
	assert.False(t, items[0].TakenAt.IsZero())
}

func TestList_EmptyIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := inventories.NewService(newMemRepo(), productstest.NopTx{}, nil)

	_, err := svc.List(ctx, nil)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDelete_UnknownIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := inventories.NewService(newMemRepo(), productstest.NopTx{}, nil)

	err := svc.Delete(ctx, id.New())
	assert.True(t, apperror.IsNotFound(err))
}
