// Package productstest provides in-memory fakes for product
// repositories, shared by service tests across the domain packages.
package productstest

import (
	"context"
	"sort"
	"sync"

	"gestistock/internal/core/apperror"
	"gestistock/internal/core/id"
	"gestistock/internal/domain/products"
)

// NopTx is a tx.Manager that runs the function directly.
type NopTx struct{}

// RunInTransaction runs fn without any transaction semantics.
func (NopTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Repo is an in-memory products.Repository.
type Repo struct {
	mu    sync.Mutex
	items map[id.ID]*products.Product
}

// NewRepo creates an empty in-memory product repository.
func NewRepo() *Repo {
	return &Repo{items: map[id.ID]*products.Product{}}
}

func clone(p *products.Product) *products.Product {
	cp := *p
	return &cp
}

// Seed inserts records directly, bypassing service invariants.
func (r *Repo) Seed(items ...*products.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range items {
		r.items[p.ID] = clone(p)
	}
}

func (r *Repo) Create(ctx context.Context, p *products.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[p.ID] = clone(p)
	return nil
}

func (r *Repo) GetByID(ctx context.Context, productID id.ID) (*products.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	return clone(p), nil
}

func (r *Repo) GetAll(ctx context.Context) ([]*products.Product, error) {
	return r.list(func(p *products.Product) bool { return true }), nil
}

func (r *Repo) FindByName(ctx context.Context, name string) (*products.Product, error) {
	matches := r.list(func(p *products.Product) bool { return p.Name == name })
	if len(matches) == 0 {
		return nil, apperror.NewNotFound("product", name)
	}
	return matches[0], nil
}

func (r *Repo) ListByName(ctx context.Context, name string) ([]*products.Product, error) {
	return r.list(func(p *products.Product) bool { return p.Name == name }), nil
}

func (r *Repo) ListByNameForUpdate(ctx context.Context, name string) ([]*products.Product, error) {
	return r.ListByName(ctx, name)
}

func (r *Repo) ListByCategory(ctx context.Context, categoryID id.ID) ([]*products.Product, error) {
	return r.list(func(p *products.Product) bool {
		return p.CategoryID != nil && *p.CategoryID == categoryID
	}), nil
}

func (r *Repo) ListByUnit(ctx context.Context, unitID id.ID) ([]*products.Product, error) {
	return r.list(func(p *products.Product) bool {
		return p.UnitID != nil && *p.UnitID == unitID
	}), nil
}

func (r *Repo) ListByStock(ctx context.Context, stockID id.ID) ([]*products.Product, error) {
	return r.list(func(p *products.Product) bool {
		return p.StockID != nil && *p.StockID == stockID
	}), nil
}

func (r *Repo) ListLowStock(ctx context.Context) ([]*products.Product, error) {
	return r.list(func(p *products.Product) bool { return p.IsLowStock() }), nil
}

func (r *Repo) ExistsByCategory(ctx context.Context, categoryID id.ID) (bool, error) {
	items, _ := r.ListByCategory(ctx, categoryID)
	return len(items) > 0, nil
}

func (r *Repo) ExistsBySupplier(ctx context.Context, supplierID id.ID) (bool, error) {
	matches := r.list(func(p *products.Product) bool {
		return p.SupplierID != nil && *p.SupplierID == supplierID
	})
	return len(matches) > 0, nil
}

func (r *Repo) Update(ctx context.Context, p *products.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return apperror.NewNotFound("product", p.ID.String())
	}
	r.items[p.ID] = clone(p)
	return nil
}

func (r *Repo) SetQuantityTotal(ctx context.Context, productID id.ID, total int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[productID]
	if !ok {
		return apperror.NewNotFound("product", productID.String())
	}
	p.QuantityTotal = total
	return nil
}

func (r *Repo) ReassignUnit(ctx context.Context, fromUnit, toUnit id.ID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var moved int64
	for _, p := range r.items {
		if p.UnitID != nil && *p.UnitID == fromUnit {
			target := toUnit
			p.UnitID = &target
			moved++
		}
	}
	return moved, nil
}

func (r *Repo) Delete(ctx context.Context, productID id.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[productID]; !ok {
		return apperror.NewNotFound("product", productID.String())
	}
	delete(r.items, productID)
	return nil
}

func (r *Repo) list(keep func(*products.Product) bool) []*products.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*products.Product
	for _, p := range r.items {
		if keep(p) {
			out = append(out, clone(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// MovementRepo is an in-memory products.MovementRepository.
type MovementRepo struct {
	mu    sync.Mutex
	items []*products.Movement
}

// NewMovementRepo creates an empty in-memory movement repository.
func NewMovementRepo() *MovementRepo {
	return &MovementRepo{}
}

func (r *MovementRepo) Create(ctx context.Context, m *products.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.items = append(r.items, &cp)
	return nil
}

func (r *MovementRepo) ListByProduct(ctx context.Context, productID id.ID) ([]*products.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*products.Movement
	for _, m := range r.items {
		if m.ProductID == productID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MovementRepo) ListByStock(ctx context.Context, stockID id.ID) ([]*products.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*products.Movement
	for _, m := range r.items {
		if m.StockID != nil && *m.StockID == stockID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MovementRepo) DeleteByProduct(ctx context.Context, productID id.ID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*products.Movement
	var removed int64
	for _, m := range r.items {
		if m.ProductID == productID {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	r.items = kept
	return removed, nil
}
