package handlers

import (
	"github.com/gin-gonic/gin"

	"gestistock/internal/domain/catalogs/uom"
	"gestistock/internal/infrastructure/http/v1/dto"
)

// UnitHandler serves the unit-of-measure catalog.
type UnitHandler struct {
	*BaseHandler
	service *uom.Service
}

// NewUnitHandler creates a new unit-of-measure handler.
func NewUnitHandler(base *BaseHandler, service *uom.Service) *UnitHandler {
	return &UnitHandler{BaseHandler: base, service: service}
}

// RegisterRoutes mounts the unit routes on a group.
func (h *UnitHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/products", h.Products)
	rg.POST("", h.Create)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// List handles GET /units.
func (h *UnitHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), nil)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromUnits(items))
}

// Get handles GET /units/:id.
func (h *UnitHandler) Get(c *gin.Context) {
	unitID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	items, err := h.service.List(c.Request.Context(), &unitID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromUnit(items[0]))
}

// Products handles GET /units/:id/products.
func (h *UnitHandler) Products(c *gin.Context) {
	unitID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	items, err := h.service.Products(c.Request.Context(), unitID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromProducts(items))
}

// Create handles POST /units.
func (h *UnitHandler) Create(c *gin.Context) {
	var req dto.CreateUnitRequest
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

// Update handles PATCH /units/:id.
func (h *UnitHandler) Update(c *gin.Context) {
	unitID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUnitRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), unitID, req.ToPatch())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromUnit(updated))
}

// Delete handles DELETE /units/:id.
func (h *UnitHandler) Delete(c *gin.Context) {
	unitID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), unitID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
