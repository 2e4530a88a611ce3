package handlers

import (
	"github.com/gin-gonic/gin"

	"gestistock/internal/domain/inventories"
	"gestistock/internal/infrastructure/http/v1/dto"
)

// InventoryHandler serves inventory count records.
type InventoryHandler struct {
	*BaseHandler
	service *inventories.Service
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(base *BaseHandler, service *inventories.Service) *InventoryHandler {
	return &InventoryHandler{BaseHandler: base, service: service}
}

// RegisterRoutes mounts the inventory routes on a group.
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("", h.Create)
	rg.DELETE("/:id", h.Delete)
}

// List handles GET /inventories.
func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), nil)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromInventories(items))
}

// Get handles GET /inventories/:id.
func (h *InventoryHandler) Get(c *gin.Context) {
	inventoryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	items, err := h.service.List(c.Request.Context(), &inventoryID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromInventory(items[0]))
}

// Create handles POST /inventories.
func (h *InventoryHandler) Create(c *gin.Context) {
	var req dto.CreateInventoryRequest
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

// Delete handles DELETE /inventories/:id.
func (h *InventoryHandler) Delete(c *gin.Context) {
	inventoryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), inventoryID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
