package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/artlore/artlore-backend/internal/db"
	"github.com/artlore/artlore-backend/internal/handlers"
	"github.com/artlore/artlore-backend/internal/logger"
	"github.com/artlore/artlore-backend/internal/middleware"
	"github.com/artlore/artlore-backend/internal/repos"
	"github.com/artlore/artlore-backend/internal/server"
	"github.com/artlore/artlore-backend/internal/services"
	"github.com/artlore/artlore-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET", "defaultsecret", log)
	port := utils.GetEnv("PORT", "8000", log)
	allowedOrigins := utils.GetEnv("CORS_ALLOWED_ORIGINS", "", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	defer postgresService.Close()
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	artworkRepo := repos.NewArtworkRepo(thePG, log)
	expansionRepo := repos.NewExpansionRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	bucketService, err := services.NewBucketService(log)
	if err != nil {
		log.Warn("Could not init BucketService, image storage disabled", "error", err)
	}
	var imageService services.ArtworkImageService
	if bucketService != nil {
		imageService = services.NewArtworkImageService(log, bucketService)
	}
	aiClient, err := services.NewAIClientFromEnv(log)
	if err != nil {
		log.Error("Could not init AI client", "error", err)
		os.Exit(1)
	}
	authService := services.NewAuthService(log, jwtSecretKey)
	artworkService := services.NewArtworkService(thePG, log, artworkRepo, aiClient, imageService)
	expansionService := services.NewExpansionService(thePG, log, artworkRepo, expansionRepo, aiClient)

	// Handlers
	log.Info("Setting up handlers from main...")
	artworkHandler := handlers.NewArtworkHandler(artworkService)
	expansionHandler := handlers.NewExpansionHandler(expansionService)
	userArtworksHandler := handlers.NewUserArtworksHandler(artworkService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	}
	router := server.NewRouter(server.RouterConfig{
		AuthMiddleware:      authMiddleware,
		ArtworkHandler:      artworkHandler,
		ExpansionHandler:    expansionHandler,
		UserArtworksHandler: userArtworksHandler,
		AllowedOrigins:      origins,
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server exited", "error", err)
		os.Exit(1)
	}
}
