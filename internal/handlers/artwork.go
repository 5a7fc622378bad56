package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artlore/artlore-backend/internal/apierr"
	"github.com/artlore/artlore-backend/internal/services"
)

// maxImageUploadBytes bounds the multipart image read.
const maxImageUploadBytes = 20 << 20

type ArtworkHandler struct {
	artworkService services.ArtworkService
}

func NewArtworkHandler(artworkService services.ArtworkService) *ArtworkHandler {
	return &ArtworkHandler{artworkService: artworkService}
}

type explainArtworkRequest struct {
	ArtworkName string `json:"artwork_name"`
}

// ExplainFromImage accepts a multipart upload under the "image" field,
// produces the explanation, and redirects to the created artwork resource.
func (ah *ArtworkHandler) ExplainFromImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		RespondError(c, apierr.Validation("missing image upload"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, apierr.Validation("unreadable image upload"))
		return
	}
	defer file.Close()
	imageData, err := io.ReadAll(io.LimitReader(file, maxImageUploadBytes))
	if err != nil {
		RespondError(c, apierr.Validation("unreadable image upload"))
		return
	}

	artwork, err := ah.artworkService.ExplainArtworkFromImage(c.Request.Context(), imageData)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/api/artwork/%s", artwork.ID))
}

// Explain produces an explanation from the artwork's name alone and
// redirects to the created artwork resource.
func (ah *ArtworkHandler) Explain(c *gin.Context) {
	var req explainArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("invalid request body"))
		return
	}
	artwork, err := ah.artworkService.ExplainArtworkByName(c.Request.Context(), req.ArtworkName)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/api/artwork/%s", artwork.ID))
}

func (ah *ArtworkHandler) GetArtwork(c *gin.Context) {
	artwork, err := ah.artworkService.GetArtwork(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"artwork": artwork})
}

// GetArtworkImage redirects to the public serving URL of the stored image.
// "?size=sm" selects a thumbnail rendition.
func (ah *ArtworkHandler) GetArtworkImage(c *gin.Context) {
	url, err := ah.artworkService.GetArtworkImageURL(c.Request.Context(), c.Param("id"), c.Query("size"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}
