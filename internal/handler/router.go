package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers bundles every resource handler for route registration.
type Handlers struct {
	Auth       *AuthHandler
	Users      *UserHandler
	Categories *CategoryHandler
	Genres     *GenreHandler
	Titles     *TitleHandler
	Reviews    *ReviewHandler
	Comments   *CommentHandler
}

// NewRouter assembles the versioned API. authenticate runs on every
// route so read endpoints stay open to anonymous callers while write
// endpoints can check the resolved user; rateLimit guards the auth flow.
func NewRouter(authenticate, rateLimit gin.HandlerFunc, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	v1.Use(authenticate)

	auth := v1.Group("/auth")
	auth.Use(rateLimit)
	h.Auth.RegisterRoutes(auth)

	h.Users.RegisterRoutes(v1)
	h.Categories.RegisterRoutes(v1)
	h.Genres.RegisterRoutes(v1)
	h.Titles.RegisterRoutes(v1)
	h.Reviews.RegisterRoutes(v1)
	h.Comments.RegisterRoutes(v1)

	return r
}
