package products_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"gestistock/internal/core/apperror"
	"gestistock/internal/core/id"
	"gestistock/internal/domain/products"
	"gestistock/internal/domain/products/productstest"
)

func newService(repo *productstest.Repo, movements *productstest.MovementRepo) *products.Service {
	return products.NewService(repo, movements, productstest.NopTx{}, nil)
}

func stocked(name string, qty int64, stockID id.ID) *products.Product {
	p := products.NewProduct(name, qty)
	p.StockID = &stockID
	return p
}

func TestCreate_ComputesTotal(t *testing.T) {
	ctx := context.Background()
	repo := productstest.NewRepo()
	svc := newService(repo, productstest.NewMovementRepo())

	p := products.NewProduct("Sucre", 10)
	err := svc.Create(ctx, p)
	assert.NoError(t, err)

	got, err := repo.GetByID(ctx, p.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), got.QuantityTotal)
}

func TestCreate_SumsAcrossLocations(t *testing.T) {
	ctx := context.Background()
	repo := productstest.NewRepo()
	svc := newService(repo, productstest.NewMovementRepo())

	warehouseA := id.New()
	warehouseB := id.New()

	first := stocked("Sucre", 10, warehouseA)
	repo.Seed(first)

	second := stocked("Sucre", 5, warehouseB)
	repo.Seed(second)

	err := svc.RecomputeTotal(ctx, "Sucre")
	assert.NoError(t, err)

	for _, pid := range []id.ID{first.ID, second.ID} {
		got, err := repo.GetByID(ctx, pid)
		assert.NoError(t, err)
		assert.Equal(t, int64(15), got.QuantityTotal)
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	ctx := context.Background()
	repo := productstest.NewRepo()
	svc := newService(repo, productstest.NewMovementRepo())

	warehouseA := id.New()
	repo.Seed(stocked("Sucre", 10, warehouseA))

	err := svc.Create(ctx, stocked("Sucre", 3, warehouseA))
	if !apperror.IsConflict(err) {
		t.Fatalf("expected duplicate conflict, got %v", err)
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	ctx := context.Background()
	svc := newService(productstest.NewRepo(), productstest.NewMovementRepo())

	err := svc.Create(ctx, products.NewProduct("", 1))
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestList_EmptyIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newService(productstest.NewRepo(), productstest.NewMovementRepo())

	_, err := svc.List(ctx, nil)
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected not-found on empty table, got %v", err)
	}
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, "empty_collection", appErr.Details["reason"])
}

func TestList_DedupesByName(t *testing.T) {
	ctx := context.Background()
	repo := productstest.NewRepo()
	svc := newService(repo, productstest.NewMovementRepo())

	warehouseA := id.New()
	warehouseB := id.New()
	repo.Seed(
		stocked("Sucre", 10, warehouseA),
		stocked("Sucre", 5, warehouseB),
		stocked("Farine", 2, warehouseA),
	)

	items, err := svc.List(ctx, nil)
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "Farine", items[0].Name)
	assert.Equal(t, "Sucre", items[1].Name)
}

func TestUpdate_PatchMergesOnlyPresentFields(t *testing.T) {
	ctx := context.Background()
	repo := productstest.NewRepo()
	svc := newService(repo, productstest.NewMovementRepo())

	p := stocked("Sucre", 10, id.New())
	p.Description = "white sugar"
	p.QuantityMin = 5
	repo.Seed(p)

	zero := int64(0)
	updated, err := svc.Update(ctx, p.ID, products.Patch{QuantityMin: &zero})
	assert.NoError(t, err)

	assert.Equal(t, int64(0), updated.QuantityMin)
	assert.Equal(t, "white sugar", updated.Description)
	assert.Equal(t, "Sucre", updated.Name)
	assert.Equal(t, int64(10), updated.QuantityTotal)
}

func TestUpdate_RenameRefreshesBothGroups(t *testing.T) {
	ctx := context.Background()
	repo := productstest.NewRepo()
	svc := newService(repo, productstest.NewMovementRepo())

	warehouseA := id.New()
	warehouseB := id.New()
	sibling := stocked("Sucre", 10, warehouseA)
	moved := stocked("Sucre", 5, warehouseB)
	repo.Seed(sibling, moved)
	assert.NoError(t, svc.RecomputeTotal(ctx, "Sucre"))

	name := "Sucre roux"
	updated, err := svc.Update(ctx, moved.ID, products.Patch{Name: &name})
	assert.NoError(t, err)
	assert.Equal(t, int64(5), updated.QuantityTotal)

	remaining, err := repo.GetByID(ctx, sibling.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), remaining.QuantityTotal)
}

func TestUpdate_RenameToExistingName(t *testing.T) {
	ctx := context.Background()
	repo := productstest.NewRepo()
	svc := newService(repo, productstest.NewMovementRepo())

	warehouse := id.New()
	sugar := stocked("Sucre", 10, warehouse)
	flour := stocked("Farine", 2, warehouse)
	repo.Seed(sugar, flour)

	name := "Sucre"
	_, err := svc.Update(ctx, flour.ID, products.Patch{Name: &name})
	if !apperror.IsConflict(err) {
		t.Fatalf("expected duplicate conflict, got %v", err)
	}
}

func TestDelete_RemovesMovementsAndRefreshesSiblings(t *testing.T) {
	ctx := context.Background()
	repo := productstest.NewRepo()
	movements := productstest.NewMovementRepo()
	svc := newService(repo, movements)

	warehouseA := id.New()
	warehouseB := id.New()
	victim := stocked("Sucre", 10, warehouseA)
	sibling := stocked("Sucre", 5, warehouseB)
	repo.Seed(victim, sibling)
	assert.NoError(t, svc.RecomputeTotal(ctx, "Sucre"))

	assert.NoError(t, movements.Create(ctx, products.NewMovement(victim.ID, products.MovementIn, 10)))

	err := svc.Delete(ctx, victim.ID)
	assert.NoError(t, err)

	_, err = repo.GetByID(ctx, victim.ID)
	assert.True(t, apperror.IsNotFound(err))

	orphans, err := movements.ListByProduct(ctx, victim.ID)
	assert.NoError(t, err)
	assert.Empty(t, orphans)

	remaining, err := repo.GetByID(ctx, sibling.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), remaining.QuantityTotal)
}

func TestDelete_LastOfNameGroup(t *testing.T) {
	ctx := context.Background()
	repo := productstest.NewRepo()
	svc := newService(repo, productstest.NewMovementRepo())

	p := stocked("Sucre", 10, id.New())
	repo.Seed(p)

	assert.NoError(t, svc.Delete(ctx, p.ID))

	_, err := svc.List(ctx, nil)
	assert.True(t, apperror.IsNotFound(err))
}

func TestAddMovement_InIncreasesOnHand(t *testing.T) {
	ctx := context.Background()
	repo := productstest.NewRepo()
	movements := productstest.NewMovementRepo()
	svc := newService(repo, movements)

	warehouse := id.New()
	p := stocked("Sucre", 10, warehouse)
	repo.Seed(p)

	m := products.NewMovement(p.ID, products.MovementIn, 4)
	assert.NoError(t, svc.AddMovement(ctx, m))

	got, err := repo.GetByID(ctx, p.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(14), got.QuantityOnHand)
	assert.Equal(t, int64(14), got.QuantityTotal)

	history, err := movements.ListByProduct(ctx, p.ID)
	assert.NoError(t, err)
	assert.Len(t, history, 1)
	if assert.NotNil(t, history[0].StockID) {
		assert.Equal(t, warehouse, *history[0].StockID)
	}
}

func TestAddMovement_OutInsufficientStock(t *testing.T) {
	ctx := context.Background()
	repo := productstest.NewRepo()
	movements := productstest.NewMovementRepo()
	svc := newService(repo, movements)

	p := stocked("Sucre", 3, id.New())
	repo.Seed(p)

	err := svc.AddMovement(ctx, products.NewMovement(p.ID, products.MovementOut, 5))
	if !apperror.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	got, _ := repo.GetByID(ctx, p.ID)
	assert.Equal(t, int64(3), got.QuantityOnHand)

	history, _ := movements.ListByProduct(ctx, p.ID)
	assert.Empty(t, history)
}

func TestAddMovement_InvalidKind(t *testing.T) {
	ctx := context.Background()
	svc := newService(productstest.NewRepo(), productstest.NewMovementRepo())

	m := products.NewMovement(id.New(), "transfer", 1)
	err := svc.AddMovement(ctx, m)
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestDedupeByName_KeepsFirstPerName(t *testing.T) {
	a := products.NewProduct("Sucre", 1)
	b := products.NewProduct("Sucre", 2)
	c := products.NewProduct("Farine", 3)

	out := products.DedupeByName([]*products.Product{a, b, c})
	assert.Len(t, out, 2)
	assert.Equal(t, "Farine", out[0].Name)
	assert.Equal(t, "Sucre", out[1].Name)
}
