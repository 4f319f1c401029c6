package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qutha/yamdb-final/internal/dto"
	"github.com/qutha/yamdb-final/internal/middleware"
	"github.com/qutha/yamdb-final/internal/permissions"
	"github.com/qutha/yamdb-final/internal/service"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// RegisterRoutes registers category routes: reads are open, writes need
// the admin predicate
func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.List)
		categories.POST("", h.Create)
		categories.DELETE("/:slug", h.Delete)
	}
}

// List returns categories with optional name substring search
// GET /api/v1/categories?search=...&page=1
func (h *CategoryHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)

	categories, total, err := h.categoryService.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, *dto.FromModelToCategoryResponse(&categories[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(responses, page, pageSize, total))
}

// Create adds a category
// POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	if !requireCatalogAdmin(c) {
		return
	}

	var req dto.CreateCategoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToCategoryResponse(category))
}

// Delete removes a category by slug
// DELETE /api/v1/categories/:slug
func (h *CategoryHandler) Delete(c *gin.Context) {
	if !requireCatalogAdmin(c) {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// requireCatalogAdmin gates mutating catalog operations. Shared by the
// category, genre and title handlers.
func requireCatalogAdmin(c *gin.Context) bool {
	user := middleware.CurrentUser(c)
	if user == nil {
		unauthorized(c)
		return false
	}
	if !permissions.CanManageCatalog(user) {
		forbidden(c)
		return false
	}
	return true
}
