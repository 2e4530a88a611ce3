package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"gestistock/internal/core/apperror"
	"gestistock/internal/core/id"
	"gestistock/internal/domain/catalogs/stock"
	"gestistock/internal/domain/inventories"
	"gestistock/internal/domain/products"
	"gestistock/internal/domain/products/productstest"
)

type memStockRepo struct {
	items map[id.ID]*stock.Stock
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{items: map[id.ID]*stock.Stock{}}
}

func (r *memStockRepo) Create(ctx context.Context, s *stock.Stock) error {
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *memStockRepo) GetByID(ctx context.Context, stockID id.ID) (*stock.Stock, error) {
	s, ok := r.items[stockID]
	if !ok {
		return nil, apperror.NewNotFound("stock", stockID.String())
	}
	cp := *s
	return &cp, nil
}

func (r *memStockRepo) GetAll(ctx context.Context) ([]*stock.Stock, error) {
	out := make([]*stock.Stock, 0, len(r.items))
	for _, s := range r.items {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memStockRepo) FindByLocation(ctx context.Context, location string) (*stock.Stock, error) {
	for _, s := range r.items {
		if s.Location == location {
			cp := *s
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("stock", location)
}

func (r *memStockRepo) Update(ctx context.Context, s *stock.Stock) error {
	if _, ok := r.items[s.ID]; !ok {
		return apperror.NewNotFound("stock", s.ID.String())
	}
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *memStockRepo) Delete(ctx context.Context, stockID id.ID) error {
	if _, ok := r.items[stockID]; !ok {
		return apperror.NewNotFound("stock", stockID.String())
	}
	delete(r.items, stockID)
	return nil
}

type memInventoryRepo struct {
	items map[id.ID]*inventories.Inventory
}

func newMemInventoryRepo() *memInventoryRepo {
	return &memInventoryRepo{items: map[id.ID]*inventories.Inventory{}}
}

func (r *memInventoryRepo) Create(ctx context.Context, inv *inventories.Inventory) error {
	cp := *inv
	r.items[inv.ID] = &cp
	return nil
}

func (r *memInventoryRepo) GetByID(ctx context.Context, inventoryID id.ID) (*inventories.Inventory, error) {
	inv, ok := r.items[inventoryID]
	if !ok {
		return nil, apperror.NewNotFound("inventory", inventoryID.String())
	}
	cp := *inv
	return &cp, nil
}

func (r *memInventoryRepo) GetAll(ctx context.Context) ([]*inventories.Inventory, error) {
	out := make([]*inventories.Inventory, 0, len(r.items))
	for _, inv := range r.items {
		cp := *inv
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memInventoryRepo) ListByStock(ctx context.Context, stockID id.ID) ([]*inventories.Inventory, error) {
	var out []*inventories.Inventory
	for _, inv := range r.items {
		if inv.StockID == stockID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memInventoryRepo) DeleteByStock(ctx context.Context, stockID id.ID) (int64, error) {
	var removed int64
	for key, inv := range r.items {
		if inv.StockID == stockID {
			delete(r.items, key)
			removed++
		}
	}
	return removed, nil
}

func (r *memInventoryRepo) Delete(ctx context.Context, inventoryID id.ID) error {
	if _, ok := r.items[inventoryID]; !ok {
		return apperror.NewNotFound("inventory", inventoryID.String())
	}
	delete(r.items, inventoryID)
	return nil
}

type fixture struct {
	stocks    *memStockRepo
	prods     *productstest.Repo
	movements *productstest.MovementRepo
	invs      *memInventoryRepo
	svc       *stock.Service
}

func newFixture() *fixture {
	stocks := newMemStockRepo()
	prods := productstest.NewRepo()
	movements := productstest.NewMovementRepo()
	invs := newMemInventoryRepo()
	productSvc := products.NewService(prods, movements, productstest.NopTx{}, nil)
	svc := stock.NewService(stocks, prods, productSvc, movements, invs, productstest.NopTx{}, nil)
	return &fixture{stocks: stocks, prods: prods, movements: movements, invs: invs, svc: svc}
}

func seedProduct(f *fixture, name string, qty int64, stockID id.ID, supplierID *id.ID, price decimal.Decimal) *products.Product {
	p := products.NewProduct(name, qty)
	p.StockID = &stockID
	p.SupplierID = supplierID
	p.PurchasePrice = price
	f.prods.Seed(p)
	return p
}

func TestCreate_DuplicateLocation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	assert.NoError(t, f.svc.Create(ctx, stock.NewStock("Entrepôt principal")))

	err := f.svc.Create(ctx, stock.NewStock("Entrepôt principal"))
	if !apperror.IsConflict(err) {
		t.Fatalf("expected duplicate conflict, got %v", err)
	}
}

func TestDelete_CascadesProductsMovementsAndInventories(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	warehouse := stock.NewStock("Entrepôt principal")
	other := stock.NewStock("Annexe")
	assert.NoError(t, f.stocks.Create(ctx, warehouse))
	assert.NoError(t, f.stocks.Create(ctx, other))

	held := seedProduct(f, "Sucre", 10, warehouse.ID, nil, decimal.Zero)
	sibling := seedProduct(f, "Sucre", 5, other.ID, nil, decimal.Zero)
	assert.NoError(t, f.movements.Create(ctx, products.NewMovement(held.ID, products.MovementIn, 10)))
	assert.NoError(t, f.invs.Create(ctx, inventories.NewInventory(warehouse.ID, "annual count")))

	assert.NoError(t, f.svc.Delete(ctx, warehouse.ID))

	_, err := f.stocks.GetByID(ctx, warehouse.ID)
	assert.True(t, apperror.IsNotFound(err))

	_, err = f.prods.GetByID(ctx, held.ID)
	assert.True(t, apperror.IsNotFound(err))

	orphans, _ := f.movements.ListByProduct(ctx, held.ID)
	assert.Empty(t, orphans)

	counts, _ := f.invs.ListByStock(ctx, warehouse.ID)
	assert.Empty(t, counts)

	// the sibling at the other location survives with a refreshed total
	remaining, err := f.prods.GetByID(ctx, sibling.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), remaining.QuantityTotal)
}

func TestDelete_UnknownStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	err := f.svc.Delete(ctx, id.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestFindProduct_MatchesOnTriple(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	warehouse := stock.NewStock("Entrepôt principal")
	assert.NoError(t, f.stocks.Create(ctx, warehouse))

	supplierA := id.New()
	supplierB := id.New()
	want := seedProduct(f, "Sucre", 10, warehouse.ID, &supplierA, decimal.NewFromFloat(1.25))
	seedProduct(f, "Sucre", 4, warehouse.ID, &supplierB, decimal.NewFromFloat(1.25))
	seedProduct(f, "Farine", 2, warehouse.ID, &supplierA, decimal.NewFromFloat(0.80))

	got, err := f.svc.FindProduct(ctx, warehouse.ID, "Sucre", supplierA, decimal.NewFromFloat(1.25))
	assert.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
}

func TestFindProduct_PriceMismatchIsNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	warehouse := stock.NewStock("Entrepôt principal")
	assert.NoError(t, f.stocks.Create(ctx, warehouse))

	supplierA := id.New()
	seedProduct(f, "Sucre", 10, warehouse.ID, &supplierA, decimal.NewFromFloat(1.25))

	_, err := f.svc.FindProduct(ctx, warehouse.ID, "Sucre", supplierA, decimal.NewFromFloat(2.00))
	assert.True(t, apperror.IsNotFound(err))
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, warehouse.ID.String(), appErr.Details["stockId"])
}

func TestProducts_EmptyLocationIsAllowed(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	warehouse := stock.NewStock("Entrepôt principal")
	assert.NoError(t, f.stocks.Create(ctx, warehouse))

	items, err := f.svc.Products(ctx, warehouse.ID)
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdate_PatchMergesPhone(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	warehouse := stock.NewStock("Entrepôt principal")
	warehouse.Phone = "01 02 03 04 05"
	assert.NoError(t, f.stocks.Create(ctx, warehouse))

	fax := "01 02 03 04 06"
	updated, err := f.svc.Update(ctx, warehouse.ID, stock.Patch{Fax: &fax})
	assert.NoError(t, err)
	assert.Equal(t, "Entrepôt principal", updated.Location)
	assert.Equal(t, "01 02 03 04 05", updated.Phone)
	assert.Equal(t, fax, updated.Fax)
}
