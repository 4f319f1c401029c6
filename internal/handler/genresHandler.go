package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qutha/yamdb-final/internal/dto"
	"github.com/qutha/yamdb-final/internal/service"
)

type GenreHandler struct {
	genreService service.GenreService
}

func NewGenreHandler(genreService service.GenreService) *GenreHandler {
	return &GenreHandler{genreService: genreService}
}

// RegisterRoutes registers genre routes: reads are open, writes need the
// admin predicate
func (h *GenreHandler) RegisterRoutes(router *gin.RouterGroup) {
	genres := router.Group("/genres")
	{
		genres.GET("", h.List)
		genres.POST("", h.Create)
		genres.DELETE("/:slug", h.Delete)
	}
}

// List returns genres with optional name substring search
// GET /api/v1/genres?search=...&page=1
func (h *GenreHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)

	genres, total, err := h.genreService.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	responses := make([]dto.GenreResponse, 0, len(genres))
	for i := range genres {
		responses = append(responses, *dto.FromModelToGenreResponse(&genres[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(responses, page, pageSize, total))
}

// Create adds a genre
// POST /api/v1/genres
func (h *GenreHandler) Create(c *gin.Context) {
	if !requireCatalogAdmin(c) {
		return
	}

	var req dto.CreateGenreDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	genre, err := h.genreService.Create(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToGenreResponse(genre))
}

// Delete removes a genre by slug
// DELETE /api/v1/genres/:slug
func (h *GenreHandler) Delete(c *gin.Context) {
	if !requireCatalogAdmin(c) {
		return
	}

	if err := h.genreService.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
