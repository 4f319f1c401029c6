package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qutha/yamdb-final/internal/dto"
	"github.com/qutha/yamdb-final/internal/middleware"
	"github.com/qutha/yamdb-final/internal/permissions"
	"github.com/qutha/yamdb-final/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers the users collection and the self-profile
// endpoint. The static "me" segment takes priority over the username
// parameter. Every route here needs an authenticated caller, so the
// whole group sits behind RequireAuth.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users", middleware.RequireAuth())
	{
		users.GET("", h.List)
		users.POST("", h.Create)
		users.GET("/me", h.Me)
		users.PATCH("/me", h.UpdateMe)
		users.GET("/:username", h.Get)
		users.PATCH("/:username", h.Update)
		users.DELETE("/:username", h.Delete)
	}
}

// requireAdmin gates the collection endpoints: admin role or superuser.
// Anonymous callers were already rejected by the group's RequireAuth.
func (h *UserHandler) requireAdmin(c *gin.Context) bool {
	if !permissions.CanManageUsers(middleware.CurrentUser(c)) {
		forbidden(c)
		return false
	}
	return true
}

// List returns users with optional username search
// GET /api/v1/users?search=...&page=1
func (h *UserHandler) List(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	page, pageSize := pagination(c)

	users, total, err := h.userService.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *dto.FromModelToUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(responses, page, pageSize, total))
}

// Create adds a user with an explicit role
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	var req dto.CreateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToUserResponse(user))
}

// Get returns a user by username
// GET /api/v1/users/:username
func (h *UserHandler) Get(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	user, err := h.userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// Update applies a partial update, role included
// PATCH /api/v1/users/:username
func (h *UserHandler) Update(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	var req dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), c.Param("username"), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// Delete removes a user; reviews and comments cascade
// DELETE /api/v1/users/:username
func (h *UserHandler) Delete(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), c.Param("username")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me returns the caller's own profile
// GET /api/v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// UpdateMe applies a partial update to the caller's own profile. A role
// field in the payload is ignored: the stored role always wins.
// PATCH /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	updated, err := h.userService.UpdateSelf(c.Request.Context(), user, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(updated))
}
