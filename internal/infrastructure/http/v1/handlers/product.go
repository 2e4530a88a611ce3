package handlers

import (
	"github.com/gin-gonic/gin"

	"gestistock/internal/domain/products"
	"gestistock/internal/infrastructure/http/v1/dto"
)

// ProductHandler serves products and their movements.
type ProductHandler struct {
	*BaseHandler
	service *products.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *products.Service) *ProductHandler {
	return &ProductHandler{BaseHandler: base, service: service}
}

// RegisterRoutes mounts the product routes on a group.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/low-stock", h.LowStock)
	rg.GET("/by-name/:name", h.ListByName)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/movements", h.Movements)
	rg.POST("", h.Create)
	rg.POST("/:id/movements", h.AddMovement)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// List handles GET /products. Returns one representative per name.
func (h *ProductHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), nil)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromProducts(items))
}

// LowStock handles GET /products/low-stock.
func (h *ProductHandler) LowStock(c *gin.Context) {
	items, err := h.service.ListLowStock(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromProducts(items))
}

// ListByName handles GET /products/by-name/:name. Returns every
// location-variant of the named product.
func (h *ProductHandler) ListByName(c *gin.Context) {
	items, err := h.service.ListByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromProducts(items))
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	items, err := h.service.List(c.Request.Context(), &productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromProduct(items[0]))
}

// Movements handles GET /products/:id/movements.
func (h *ProductHandler) Movements(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	items, err := h.service.Movements(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromMovements(items))
}

// Create handles POST /products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entity, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := h.service.Create(c.Request.Context(), entity); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, entity.ID)
}

// AddMovement handles POST /products/:id/movements.
func (h *ProductHandler) AddMovement(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateMovementRequest
	if !h.BindJSON(c, &req) {
		return
	}

	m, err := req.ToEntity(productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := h.service.AddMovement(c.Request.Context(), m); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, m.ID)
}

// Update handles PATCH /products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		h.Error(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), productID, patch)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromProduct(updated))
}

// Delete handles DELETE /products/:id. Removes the record, its
// movements, and refreshes name-group totals.
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), productID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
