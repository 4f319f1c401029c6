package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qutha/yamdb-final/internal/dto"
	"github.com/qutha/yamdb-final/internal/middleware"
	"github.com/qutha/yamdb-final/internal/models"
	"github.com/qutha/yamdb-final/internal/service"
)

// handleServiceError translates service-layer errors into the response
// taxonomy: 400 with field-scoped messages for validation failures, 404
// for missing resources, 500 otherwise. Domain errors never surface as
// server faults.
func handleServiceError(c *gin.Context, err error) {
	if verr := service.AsValidationError(err); verr != nil {
		c.JSON(http.StatusBadRequest, verr.Fields)
		return
	}
	if errors.Is(err, service.ErrNotFound) {
		notFound(c)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
}

func bindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.FieldErrorsFromBinding(err))
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

func forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
}

// requireUser returns the authenticated caller or writes a 401.
func requireUser(c *gin.Context) (*models.User, bool) {
	user := middleware.CurrentUser(c)
	if user == nil {
		unauthorized(c)
		return nil, false
	}
	return user, true
}

// pathID parses a numeric path parameter. A malformed id resolves to
// not-found, matching lookup-by-missing-id semantics.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		notFound(c)
		return 0, false
	}
	return id, true
}

// pagination reads the page-number query params with sane bounds.
func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
