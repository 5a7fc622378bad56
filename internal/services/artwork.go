package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artlore/artlore-backend/internal/apierr"
	"github.com/artlore/artlore-backend/internal/logger"
	"github.com/artlore/artlore-backend/internal/repos"
	"github.com/artlore/artlore-backend/internal/requestdata"
	"github.com/artlore/artlore-backend/internal/types"
	"github.com/artlore/artlore-backend/internal/utils"
)

const (
	thumbnailWidth  = 200
	thumbnailHeight = 200
)

// ArtworkService produces and serves artwork explanations. Explanation calls
// invoke the vision model; retrieval calls only touch storage.
type ArtworkService interface {
	// ExplainArtworkFromImage validates and normalizes the uploaded image,
	// stores it, and persists the model's structured explanation.
	ExplainArtworkFromImage(ctx context.Context, imageData []byte) (*types.Artwork, error)
	// ExplainArtworkByName persists an explanation generated from the
	// artwork's title alone.
	ExplainArtworkByName(ctx context.Context, artworkName string) (*types.Artwork, error)
	GetArtwork(ctx context.Context, artworkID string) (*types.Artwork, error)
	// GetArtworkImageURL resolves the stored image to a serving URL. A
	// size of "sm" requests a thumbnail rendition.
	GetArtworkImageURL(ctx context.Context, artworkID, size string) (string, error)
	GetUserSavedArtworks(ctx context.Context) ([]*types.Artwork, error)
}

type artworkService struct {
	db           *gorm.DB
	log          *logger.Logger
	artworkRepo  repos.ArtworkRepo
	aiClient     AIClient
	imageService ArtworkImageService
}

func NewArtworkService(db *gorm.DB, log *logger.Logger, artworkRepo repos.ArtworkRepo, aiClient AIClient, imageService ArtworkImageService) ArtworkService {
	return &artworkService{
		db:           db,
		log:          log.With("service", "ArtworkService"),
		artworkRepo:  artworkRepo,
		aiClient:     aiClient,
		imageService: imageService,
	}
}

func (as *artworkService) ExplainArtworkFromImage(ctx context.Context, imageData []byte) (*types.Artwork, error) {
	if len(imageData) == 0 {
		return nil, apierr.Validation("image data cannot be empty")
	}
	processed, err := utils.ValidateAndProcessImage(imageData, as.log)
	if err != nil {
		return nil, err
	}

	artworkID := uuid.New()
	var imagePath *string
	if as.imageService != nil {
		path, err := as.imageService.UploadArtworkImage(ctx, artworkID, processed, utils.ProcessedImageContentType)
		if err != nil {
			// Explanation still proceeds without a stored image.
			as.log.Warn("Artwork image upload failed", "artwork_id", artworkID, "error", err)
		} else {
			imagePath = &path
		}
	}

	explanationXML, err := as.aiClient.ExplainArtwork(ctx, processed)
	if err != nil {
		return nil, err
	}

	return as.saveExplanation(ctx, artworkID, explanationXML, imagePath, nil)
}

func (as *artworkService) ExplainArtworkByName(ctx context.Context, artworkName string) (*types.Artwork, error) {
	name := strings.TrimSpace(artworkName)
	if name == "" {
		return nil, apierr.Validation("artwork name cannot be empty")
	}

	explanationXML, err := as.aiClient.ExplainArtworkByName(ctx, name)
	if err != nil {
		return nil, err
	}

	return as.saveExplanation(ctx, uuid.New(), explanationXML, nil, &name)
}

// saveExplanation persists the artwork row and, when the request carries an
// authenticated user, saves the artwork into that user's collection.
func (as *artworkService) saveExplanation(ctx context.Context, artworkID uuid.UUID, explanationXML string, imagePath, artworkName *string) (*types.Artwork, error) {
	var creatorUserID *uuid.UUID
	if id := requestdata.UserID(ctx); id != uuid.Nil {
		creatorUserID = &id
	}

	artwork, err := as.artworkRepo.SaveArtworkExplanation(ctx, nil, artworkID, explanationXML, imagePath, artworkName, creatorUserID)
	if err != nil {
		return nil, err
	}
	if creatorUserID != nil {
		if err := as.artworkRepo.SaveUserArtwork(ctx, nil, *creatorUserID, artworkID); err != nil {
			as.log.Warn("Failed to save artwork to user collection", "artwork_id", artworkID, "error", err)
		}
	}
	as.resolveImageURL(artwork)
	as.log.Info("Saved artwork explanation", "artwork_id", artwork.ID)
	return artwork, nil
}

func (as *artworkService) GetArtwork(ctx context.Context, artworkID string) (*types.Artwork, error) {
	id, err := uuid.Parse(strings.TrimSpace(artworkID))
	if err != nil {
		return nil, apierr.NotFound("artwork not found: %s", artworkID)
	}
	artwork, err := as.artworkRepo.GetArtworkExplanation(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if artwork == nil {
		return nil, apierr.NotFound("artwork not found: %s", artworkID)
	}
	as.resolveImageURL(artwork)
	return artwork, nil
}

func (as *artworkService) GetArtworkImageURL(ctx context.Context, artworkID, size string) (string, error) {
	artwork, err := as.GetArtwork(ctx, artworkID)
	if err != nil {
		return "", err
	}
	if artwork.ImagePath == nil || as.imageService == nil {
		return "", apierr.NotFound("artwork has no stored image: %s", artworkID)
	}
	if size == "sm" {
		return as.imageService.GetImageURL(*artwork.ImagePath, thumbnailWidth, thumbnailHeight), nil
	}
	return as.imageService.GetImageURL(*artwork.ImagePath, 0, 0), nil
}

func (as *artworkService) GetUserSavedArtworks(ctx context.Context) ([]*types.Artwork, error) {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return nil, apierr.Unauthorized("authentication required")
	}
	artworks, err := as.artworkRepo.GetUserSavedArtworks(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	for _, a := range artworks {
		as.resolveImageURL(a)
	}
	return artworks, nil
}

func (as *artworkService) resolveImageURL(artwork *types.Artwork) {
	if artwork == nil || artwork.ImagePath == nil || as.imageService == nil {
		return
	}
	artwork.ImageURL = as.imageService.GetImageURL(*artwork.ImagePath, 0, 0)
}
