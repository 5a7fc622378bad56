package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/artlore/artlore-backend/internal/handlers"
	"github.com/artlore/artlore-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware      *middleware.AuthMiddleware
	ArtworkHandler      *handlers.ArtworkHandler
	ExpansionHandler    *handlers.ExpansionHandler
	UserArtworksHandler *handlers.UserArtworksHandler
	AllowedOrigins      []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/health", handlers.HealthCheck)

	// All /api routes run with optional auth: a valid token attaches the
	// caller identity, anonymous requests pass through.
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.OptionalAuth())
	{
		// Explanation
		api.POST("/ai/artwork/explain-from-image", cfg.ArtworkHandler.ExplainFromImage)
		api.POST("/ai/artwork/explain", cfg.ArtworkHandler.Explain)
		api.POST("/ai/artwork/expand", cfg.ExpansionHandler.ExpandSubject)
		// Retrieval
		api.GET("/artwork/:id", cfg.ArtworkHandler.GetArtwork)
		api.GET("/artwork/:id/image", cfg.ArtworkHandler.GetArtworkImage)
		api.GET("/artwork/:id/expansions", cfg.ExpansionHandler.GetExpansionTree)
		api.GET("/expansion/:id", cfg.ExpansionHandler.GetExpansion)
		api.GET("/popular-artworks", handlers.GetPopularArtworks)
	}

	// Collection access needs an authenticated caller.
	user := router.Group("/api/user")
	user.Use(cfg.AuthMiddleware.RequireAuth())
	user.GET("/:id/artworks", cfg.UserArtworksHandler.GetUserArtworks)

	return router
}
