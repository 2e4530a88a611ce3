// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"gestistock/internal/domain/audit"
	"gestistock/internal/domain/catalogs/category"
	"gestistock/internal/domain/catalogs/stock"
	"gestistock/internal/domain/catalogs/supplier"
	"gestistock/internal/domain/catalogs/uom"
	"gestistock/internal/domain/inventories"
	"gestistock/internal/domain/products"
	"gestistock/internal/infrastructure/http/v1/handlers"
	"gestistock/internal/infrastructure/http/v1/middleware"
	"gestistock/internal/infrastructure/storage/postgres"
	"gestistock/internal/infrastructure/storage/postgres/catalog_repo"
	"gestistock/internal/infrastructure/storage/postgres/product_repo"
	"gestistock/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Pool      *postgres.Pool
	TxManager *postgres.TxManager
	Logger    *logger.Logger
	Audit     audit.Notifier

	// Validator authenticates bearer tokens; nil leaves writes
	// unauthenticated (development mode)
	Validator middleware.TokenValidator
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// Repositories
	productRepo := product_repo.NewProductRepo(cfg.TxManager)
	movementRepo := product_repo.NewMovementRepo(cfg.TxManager)
	inventoryRepo := product_repo.NewInventoryRepo(cfg.TxManager)
	categoryRepo := catalog_repo.NewCategoryRepo(cfg.TxManager)
	unitRepo := catalog_repo.NewUnitRepo(cfg.TxManager)
	supplierRepo := catalog_repo.NewSupplierRepo(cfg.TxManager)
	stockRepo := catalog_repo.NewStockRepo(cfg.TxManager)

	// Services
	productSvc := products.NewService(productRepo, movementRepo, cfg.TxManager, cfg.Audit)
	categorySvc := category.NewService(categoryRepo, productRepo, cfg.TxManager, cfg.Audit)
	unitSvc := uom.NewService(unitRepo, productRepo, cfg.TxManager, cfg.Audit)
	supplierSvc := supplier.NewService(supplierRepo, productRepo, cfg.TxManager, cfg.Audit)
	inventorySvc := inventories.NewService(inventoryRepo, cfg.TxManager, cfg.Audit)
	stockSvc := stock.NewService(stockRepo, productRepo, productSvc, movementRepo, inventoryRepo, cfg.TxManager, cfg.Audit)

	base := handlers.NewBaseHandler()

	apiV1 := router.Group("/api/v1")
	if cfg.Validator != nil {
		apiV1.Use(middleware.OptionalAuth(cfg.Validator))
	}
	{
		handlers.NewProductHandler(base, productSvc).RegisterRoutes(apiV1.Group("/products"))
		handlers.NewCategoryHandler(base, categorySvc).RegisterRoutes(apiV1.Group("/categories"))
		handlers.NewUnitHandler(base, unitSvc).RegisterRoutes(apiV1.Group("/units"))
		handlers.NewSupplierHandler(base, supplierSvc).RegisterRoutes(apiV1.Group("/suppliers"))
		handlers.NewStockHandler(base, stockSvc).RegisterRoutes(apiV1.Group("/stocks"))
		handlers.NewInventoryHandler(base, inventorySvc).RegisterRoutes(apiV1.Group("/inventories"))
	}

	return router
}
