package category_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"gestistock/internal/core/apperror"
	"gestistock/internal/core/id"
	"gestistock/internal/domain/catalogs/category"
	"gestistock/internal/domain/products"
	"gestistock/internal/domain/products/productstest"
)

type memCategoryRepo struct {
	items map[id.ID]*category.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{items: map[id.ID]*category.Category{}}
}

func (r *memCategoryRepo) Create(ctx context.Context, c *category.Category) error {
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) GetByID(ctx context.Context, categoryID id.ID) (*category.Category, error) {
	c, ok := r.items[categoryID]
	if !ok {
		return nil, apperror.NewNotFound("category", categoryID.String())
	}
	cp := *c
	return &cp, nil
}

func (r *memCategoryRepo) GetAll(ctx context.Context) ([]*category.Category, error) {
	out := make([]*category.Category, 0, len(r.items))
	for _, c := range r.items {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memCategoryRepo) FindByDesignation(ctx context.Context, designation string) (*category.Category, error) {
	for _, c := range r.items {
		if c.Designation == designation {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("category", designation)
}

func (r *memCategoryRepo) Update(ctx context.Context, c *category.Category) error {
	if _, ok := r.items[c.ID]; !ok {
		return apperror.NewNotFound("category", c.ID.String())
	}
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) Delete(ctx context.Context, categoryID id.ID) error {
	if _, ok := r.items[categoryID]; !ok {
		return apperror.NewNotFound("category", categoryID.String())
	}
	delete(r.items, categoryID)
	return nil
}

func newService(repo *memCategoryRepo, prods *productstest.Repo) *category.Service {
	return category.NewService(repo, prods, productstest.NopTx{}, nil)
}

func TestCreate_DuplicateDesignation(t *testing.T) {
	ctx := context.Background()
	repo := newMemCategoryRepo()
	svc := newService(repo, productstest.NewRepo())

	assert.NoError(t, svc.Create(ctx, category.NewCategory("Épicerie", "dry goods")))

	err := svc.Create(ctx, category.NewCategory("Épicerie", "again"))
	if !apperror.IsConflict(err) {
		t.Fatalf("expected duplicate conflict, got %v", err)
	}
}

func TestCreate_MissingDesignation(t *testing.T) {
	ctx := context.Background()
	svc := newService(newMemCategoryRepo(), productstest.NewRepo())

	err := svc.Create(ctx, category.NewCategory("", ""))
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestList_EmptyIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newService(newMemCategoryRepo(), productstest.NewRepo())

	_, err := svc.List(ctx, nil)
	assert.True(t, apperror.IsNotFound(err))
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, "empty_collection", appErr.Details["reason"])
}

func TestList_SingleByID(t *testing.T) {
	ctx := context.Background()
	repo := newMemCategoryRepo()
	svc := newService(repo, productstest.NewRepo())

	c := category.NewCategory("Épicerie", "")
	assert.NoError(t, repo.Create(ctx, c))

	items, err := svc.List(ctx, &c.ID)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "Épicerie", items[0].Designation)
}

func TestDelete_BlockedWhileProductsRemain(t *testing.T) {
	ctx := context.Background()
	repo := newMemCategoryRepo()
	prods := productstest.NewRepo()
	svc := newService(repo, prods)

	c := category.NewCategory("Épicerie", "")
	assert.NoError(t, repo.Create(ctx, c))

	p := products.NewProduct("Sucre", 10)
	p.CategoryID = &c.ID
	prods.Seed(p)

	err := svc.Delete(ctx, c.ID)
	if !apperror.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	_, err = repo.GetByID(ctx, c.ID)
	assert.NoError(t, err)
}

func TestDelete_AllowedWhenUnreferenced(t *testing.T) {
	ctx := context.Background()
	repo := newMemCategoryRepo()
	svc := newService(repo, productstest.NewRepo())

	c := category.NewCategory("Épicerie", "")
	assert.NoError(t, repo.Create(ctx, c))

	assert.NoError(t, svc.Delete(ctx, c.ID))

	_, err := repo.GetByID(ctx, c.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestProducts_EmptyIsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newMemCategoryRepo()
	svc := newService(repo, productstest.NewRepo())

	c := category.NewCategory("Épicerie", "")
	assert.NoError(t, repo.Create(ctx, c))

	_, err := svc.Products(ctx, c.ID)
	assert.True(t, apperror.IsNotFound(err))
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, c.ID.String(), appErr.Details["categoryId"])
}

func TestUpdate_RenameToExistingDesignation(t *testing.T) {
	ctx := context.Background()
	repo := newMemCategoryRepo()
	svc := newService(repo, productstest.NewRepo())

	first := category.NewCategory("Épicerie", "")
	second := category.NewCategory("Boissons", "")
	assert.NoError(t, repo.Create(ctx, first))
	assert.NoError(t, repo.Create(ctx, second))

	name := "Épicerie"
	_, err := svc.Update(ctx, second.ID, category.Patch{Designation: &name})
	assert.True(t, apperror.IsConflict(err))
}
