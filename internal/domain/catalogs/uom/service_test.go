package uom_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"gestistock/internal/core/apperror"
	"gestistock/internal/core/id"
	"gestistock/internal/domain/catalogs/uom"
	"gestistock/internal/domain/products"
	"gestistock/internal/domain/products/productstest"
)

type memUnitRepo struct {
	items map[id.ID]*uom.UnitOfMeasure
}

func newMemUnitRepo() *memUnitRepo {
	return &memUnitRepo{items: map[id.ID]*uom.UnitOfMeasure{}}
}

func (r *memUnitRepo) Create(ctx context.Context, u *uom.UnitOfMeasure) error {
	cp := *u
	r.items[u.ID] = &cp
	return nil
}

func (r *memUnitRepo) GetByID(ctx context.Context, unitID id.ID) (*uom.UnitOfMeasure, error) {
	u, ok := r.items[unitID]
	if !ok {
		return nil, apperror.NewNotFound("unit_of_measure", unitID.String())
	}
	cp := *u
	return &cp, nil
}

func (r *memUnitRepo) GetAll(ctx context.Context) ([]*uom.UnitOfMeasure, error) {
	out := make([]*uom.UnitOfMeasure, 0, len(r.items))
	for _, u := range r.items {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memUnitRepo) FindByDesignation(ctx context.Context, designation string) (*uom.UnitOfMeasure, error) {
	for _, u := range r.items {
		if u.Designation == designation {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("unit_of_measure", designation)
}

func (r *memUnitRepo) Update(ctx context.Context, u *uom.UnitOfMeasure) error {
	if _, ok := r.items[u.ID]; !ok {
		return apperror.NewNotFound("unit_of_measure", u.ID.String())
	}
	cp := *u
	r.items[u.ID] = &cp
	return nil
}

func (r *memUnitRepo) Delete(ctx context.Context, unitID id.ID) error {
	if _, ok := r.items[unitID]; !ok {
		return apperror.NewNotFound("unit_of_measure", unitID.String())
	}
	delete(r.items, unitID)
	return nil
}

func newService(units *memUnitRepo, prods *productstest.Repo) *uom.Service {
	return uom.NewService(units, prods, productstest.NopTx{}, nil)
}

func TestCreate_DuplicateDesignation(t *testing.T) {
	ctx := context.Background()
	repo := newMemUnitRepo()
	svc := newService(repo, productstest.NewRepo())

	assert.NoError(t, svc.Create(ctx, uom.NewUnitOfMeasure("Kilogramme", "mass")))

	err := svc.Create(ctx, uom.NewUnitOfMeasure("Kilogramme", "again"))
	if !apperror.IsConflict(err) {
		t.Fatalf("expected duplicate conflict, got %v", err)
	}
}

func TestList_EmptyIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newService(newMemUnitRepo(), productstest.NewRepo())

	_, err := svc.List(ctx, nil)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDelete_ReassignsProductsToFallback(t *testing.T) {
	ctx := context.Background()
	units := newMemUnitRepo()
	prods := productstest.NewRepo()
	svc := newService(units, prods)

	sentinel := uom.NewUnitOfMeasure(uom.SentinelDesignation, "fallback")
	kg := uom.NewUnitOfMeasure("Kilogramme", "mass")
	assert.NoError(t, units.Create(ctx, sentinel))
	assert.NoError(t, units.Create(ctx, kg))

	p := products.NewProduct("Sucre", 10)
	p.UnitID = &kg.ID
	prods.Seed(p)

	assert.NoError(t, svc.Delete(ctx, kg.ID))

	_, err := units.GetByID(ctx, kg.ID)
	assert.True(t, apperror.IsNotFound(err))

	got, err := prods.GetByID(ctx, p.ID)
	assert.NoError(t, err)
	if assert.NotNil(t, got.UnitID) {
		assert.Equal(t, sentinel.ID, *got.UnitID)
	}
}

func TestDelete_MissingFallbackAborts(t *testing.T) {
	ctx := context.Background()
	units := newMemUnitRepo()
	prods := productstest.NewRepo()
	svc := newService(units, prods)

	kg := uom.NewUnitOfMeasure("Kilogramme", "mass")
	assert.NoError(t, units.Create(ctx, kg))

	p := products.NewProduct("Sucre", 10)
	p.UnitID = &kg.ID
	prods.Seed(p)

	err := svc.Delete(ctx, kg.ID)
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	assert.Equal(t, apperror.CodeInternal, appErr.Code)

	// nothing was deleted or moved
	_, err = units.GetByID(ctx, kg.ID)
	assert.NoError(t, err)
	got, _ := prods.GetByID(ctx, p.ID)
	assert.Equal(t, kg.ID, *got.UnitID)
}

func TestDelete_SentinelIsRefused(t *testing.T) {
	ctx := context.Background()
	units := newMemUnitRepo()
	svc := newService(units, productstest.NewRepo())

	sentinel := uom.NewUnitOfMeasure(uom.SentinelDesignation, "fallback")
	assert.NoError(t, units.Create(ctx, sentinel))

	err := svc.Delete(ctx, sentinel.ID)
	assert.True(t, apperror.IsConflict(err))
}

func TestUpdate_SentinelRenameIsRefused(t *testing.T) {
	ctx := context.Background()
	units := newMemUnitRepo()
	svc := newService(units, productstest.NewRepo())

	sentinel := uom.NewUnitOfMeasure(uom.SentinelDesignation, "fallback")
	assert.NoError(t, units.Create(ctx, sentinel))

	name := "Autre"
	_, err := svc.Update(ctx, sentinel.ID, uom.Patch{Designation: &name})
	assert.True(t, apperror.IsConflict(err))
}

func TestUpdate_PatchMergesDescription(t *testing.T) {
	ctx := context.Background()
	units := newMemUnitRepo()
	svc := newService(units, productstest.NewRepo())

	kg := uom.NewUnitOfMeasure("Kilogramme", "mass")
	assert.NoError(t, units.Create(ctx, kg))

	desc := "metric mass"
	updated, err := svc.Update(ctx, kg.ID, uom.Patch{Description: &desc})
	assert.NoError(t, err)
	assert.Equal(t, "Kilogramme", updated.Designation)
	assert.Equal(t, "metric mass", updated.Description)
}

func TestProducts_DedupedByName(t *testing.T) {
	ctx := context.Background()
	units := newMemUnitRepo()
	prods := productstest.NewRepo()
	svc := newService(units, prods)

	kg := uom.NewUnitOfMeasure("Kilogramme", "mass")
	assert.NoError(t, units.Create(ctx, kg))

	a := products.NewProduct("Sucre", 10)
	a.UnitID = &kg.ID
	b := products.NewProduct("Sucre", 5)
	b.UnitID = &kg.ID
	prods.Seed(a, b)

	items, err := svc.Products(ctx, kg.ID)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "Sucre", items[0].Name)
}
