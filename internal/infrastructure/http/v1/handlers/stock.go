package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"gestistock/internal/core/apperror"
	"gestistock/internal/core/id"
	"gestistock/internal/domain/catalogs/stock"
	"gestistock/internal/infrastructure/http/v1/dto"
)

// StockHandler serves the stock-location catalog.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, service *stock.Service) *StockHandler {
	return &StockHandler{BaseHandler: base, service: service}
}

// RegisterRoutes mounts the stock routes on a group.
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/products", h.Products)
	rg.GET("/:id/products/find", h.FindProduct)
	rg.GET("/:id/movements", h.Movements)
	rg.GET("/:id/inventories", h.Inventories)
	rg.POST("", h.Create)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// List handles GET /stocks.
func (h *StockHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), nil)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromStocks(items))
}

// Get handles GET /stocks/:id.
func (h *StockHandler) Get(c *gin.Context) {
	stockID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	items, err := h.service.List(c.Request.Context(), &stockID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromStock(items[0]))
}

// Products handles GET /stocks/:id/products.
func (h *StockHandler) Products(c *gin.Context) {
	stockID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	items, err := h.service.Products(c.Request.Context(), stockID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromProducts(items))
}

// FindProduct handles GET /stocks/:id/products/find.
// Locates one product at the location by name, supplier and price.
func (h *StockHandler) FindProduct(c *gin.Context) {
	stockID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	name := c.Query("name")
	if name == "" {
		h.Error(c, apperror.NewValidation("name query parameter is required"))
		return
	}

	supplierID, err := id.Parse(c.Query("supplierId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id").
			WithDetail("param", "supplierId").
			WithDetail("value", c.Query("supplierId")))
		return
	}

	price, err := decimal.NewFromString(c.Query("price"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid price").
			WithDetail("value", c.Query("price")))
		return
	}

	p, err := h.service.FindProduct(c.Request.Context(), stockID, name, supplierID, price)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromProduct(p))
}

// Movements handles GET /stocks/:id/movements.
func (h *StockHandler) Movements(c *gin.Context) {
	stockID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	items, err := h.service.Movements(c.Request.Context(), stockID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromMovements(items))
}

// Inventories handles GET /stocks/:id/inventories.
func (h *StockHandler) Inventories(c *gin.Context) {
	stockID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	items, err := h.service.Inventories(c.Request.Context(), stockID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromInventories(items))
}

// Create handles POST /stocks.
func (h *StockHandler) Create(c *gin.Context) {
	var req dto.CreateStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entity := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), entity); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, entity.ID)
}

// Update handles PATCH /stocks/:id.
func (h *StockHandler) Update(c *gin.Context) {
	stockID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), stockID, req.ToPatch())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromStock(updated))
}

// Delete handles DELETE /stocks/:id. Cascades to the products held at
// the location.
func (h *StockHandler) Delete(c *gin.Context) {
	stockID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), stockID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
