package handlers

import (
	"github.com/gin-gonic/gin"

	"gestistock/internal/domain/catalogs/category"
	"gestistock/internal/infrastructure/http/v1/dto"
)

// CategoryHandler serves the category catalog.
type CategoryHandler struct {
	*BaseHandler
	service *category.Service
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(base *BaseHandler, service *category.Service) *CategoryHandler {
	return &CategoryHandler{BaseHandler: base, service: service}
}

// RegisterRoutes mounts the category routes on a group.
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/products", h.Products)
	rg.POST("", h.Create)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// List handles GET /categories.
func (h *CategoryHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), nil)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromCategories(items))
}

// Get handles GET /categories/:id.
func (h *CategoryHandler) Get(c *gin.Context) {
	categoryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	items, err := h.service.List(c.Request.Context(), &categoryID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromCategory(items[0]))
}

// Products handles GET /categories/:id/products.
func (h *CategoryHandler) Products(c *gin.Context) {
	categoryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	items, err := h.service.Products(c.Request.Context(), categoryID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromProducts(items))
}

// Create handles POST /categories.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
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

// Update handles PATCH /categories/:id.
func (h *CategoryHandler) Update(c *gin.Context) {
	categoryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), categoryID, req.ToPatch())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromCategory(updated))
}

// Delete handles DELETE /categories/:id.
func (h *CategoryHandler) Delete(c *gin.Context) {
	categoryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), categoryID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
