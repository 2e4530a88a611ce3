// Package main seeds the database: it ensures the fallback unit of
// measure exists and, with -demo, loads a small demo dataset.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"gestistock/internal/config"
	"gestistock/internal/core/apperror"
	"gestistock/internal/domain/catalogs/category"
	"gestistock/internal/domain/catalogs/stock"
	"gestistock/internal/domain/catalogs/supplier"
	"gestistock/internal/domain/catalogs/uom"
	"gestistock/internal/domain/products"
	"gestistock/internal/infrastructure/storage/postgres"
	"gestistock/internal/infrastructure/storage/postgres/catalog_repo"
	"gestistock/internal/infrastructure/storage/postgres/product_repo"
	"gestistock/pkg/logger"
)

func main() {
	demo := flag.Bool("demo", false, "also load demo data")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Development: true})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)

	productRepo := product_repo.NewProductRepo(txm)
	movementRepo := product_repo.NewMovementRepo(txm)
	unitRepo := catalog_repo.NewUnitRepo(txm)
	categoryRepo := catalog_repo.NewCategoryRepo(txm)
	supplierRepo := catalog_repo.NewSupplierRepo(txm)
	stockRepo := catalog_repo.NewStockRepo(txm)

	unitSvc := uom.NewService(unitRepo, productRepo, txm, nil)
	categorySvc := category.NewService(categoryRepo, productRepo, txm, nil)
	supplierSvc := supplier.NewService(supplierRepo, productRepo, txm, nil)
	productSvc := products.NewService(productRepo, movementRepo, txm, nil)

	if err := ensureSentinelUnit(ctx, unitRepo, unitSvc); err != nil {
		log.Fatalw("failed to seed fallback unit", "error", err)
	}
	log.Infow("fallback unit in place", "designation", uom.SentinelDesignation)

	if !*demo {
		return
	}

	if err := seedDemo(ctx, seedServices{
		units:      unitSvc,
		unitRepo:   unitRepo,
		categories: categorySvc,
		catRepo:    categoryRepo,
		suppliers:  supplierSvc,
		supRepo:    supplierRepo,
		products:   productSvc,
		stockRepo:  stockRepo,
	}); err != nil {
		log.Fatalw("failed to seed demo data", "error", err)
	}
	log.Info("demo data loaded")
}

func ensureSentinelUnit(ctx context.Context, repo uom.Repository, svc *uom.Service) error {
	_, err := repo.FindByDesignation(ctx, uom.SentinelDesignation)
	if err == nil {
		return nil
	}
	if !apperror.IsNotFound(err) {
		return err
	}
	return svc.Create(ctx, uom.NewUnitOfMeasure(uom.SentinelDesignation, "fallback unit for orphaned products"))
}

type seedServices struct {
	units      *uom.Service
	unitRepo   uom.Repository
	categories *category.Service
	catRepo    category.Repository
	suppliers  *supplier.Service
	supRepo    supplier.Repository
	products   *products.Service
	stockRepo  stock.Repository
}

// seedDemo is idempotent: every record is fetched first and only
// created on a miss, so repeated runs leave the data untouched.
func seedDemo(ctx context.Context, s seedServices) error {
	kg, err := s.unitRepo.FindByDesignation(ctx, "Kilogramme")
	if apperror.IsNotFound(err) {
		kg = uom.NewUnitOfMeasure("Kilogramme", "mass")
		err = s.units.Create(ctx, kg)
	}
	if err != nil {
		return err
	}

	grocery, err := s.catRepo.FindByDesignation(ctx, "Épicerie")
	if apperror.IsNotFound(err) {
		grocery = category.NewCategory("Épicerie", "dry goods")
		err = s.categories.Create(ctx, grocery)
	}
	if err != nil {
		return err
	}

	acme, err := s.supRepo.FindByName(ctx, "Fournisseur Central")
	if apperror.IsNotFound(err) {
		acme = supplier.NewSupplier("Fournisseur Central")
		acme.Email = "contact@fournisseur-central.example"
		err = s.suppliers.Create(ctx, acme)
	}
	if err != nil {
		return err
	}

	warehouse, err := s.stockRepo.FindByLocation(ctx, "Entrepôt principal")
	if apperror.IsNotFound(err) {
		warehouse = stock.NewStock("Entrepôt principal")
		err = s.stockRepo.Create(ctx, warehouse)
	}
	if err != nil {
		return err
	}

	sugar := products.NewProduct("Sucre", 10)
	sugar.Type = "consommable"
	sugar.PurchasePrice = decimal.NewFromFloat(1.25)
	sugar.QuantityMin = 5
	sugar.CategoryID = &grocery.ID
	sugar.SupplierID = &acme.ID
	sugar.UnitID = &kg.ID
	sugar.StockID = &warehouse.ID

	err = s.products.Create(ctx, sugar)
	if err != nil && !apperror.IsConflict(err) {
		return err
	}
	return nil
}
