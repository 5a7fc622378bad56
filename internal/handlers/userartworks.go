package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/artlore/artlore-backend/internal/requestdata"
	"github.com/artlore/artlore-backend/internal/services"
)

type UserArtworksHandler struct {
	artworkService services.ArtworkService
}

func NewUserArtworksHandler(artworkService services.ArtworkService) *UserArtworksHandler {
	return &UserArtworksHandler{artworkService: artworkService}
}

// GetUserArtworks lists the saved collection of the user named in the path.
// Callers may only read their own collection.
func (uh *UserArtworksHandler) GetUserArtworks(c *gin.Context) {
	pathUserID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if requestdata.UserID(c.Request.Context()) != pathUserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	artworks, err := uh.artworkService.GetUserSavedArtworks(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"artworks": artworks})
}
