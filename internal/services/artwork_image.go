package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/artlore/artlore-backend/internal/logger"
)

// ArtworkImageService maps artwork ids onto bucket keys and resolves public
// URLs for stored artwork images.
type ArtworkImageService interface {
	UploadArtworkImage(ctx context.Context, artworkID uuid.UUID, imageData []byte, contentType string) (string, error)
	GetImageURL(imagePath string, width, height int) string
}

type artworkImageService struct {
	log    *logger.Logger
	bucket BucketService
}

func NewArtworkImageService(log *logger.Logger, bucket BucketService) ArtworkImageService {
	return &artworkImageService{
		log:    log.With("service", "ArtworkImageService"),
		bucket: bucket,
	}
}

func (s *artworkImageService) UploadArtworkImage(ctx context.Context, artworkID uuid.UUID, imageData []byte, contentType string) (string, error) {
	key := fmt.Sprintf("artwork/%s", artworkID)
	if err := s.bucket.UploadFile(ctx, key, bytes.NewReader(imageData), contentType); err != nil {
		return "", err
	}
	s.log.Info("Uploaded artwork image", "key", key, "bytes", len(imageData))
	return key, nil
}

func (s *artworkImageService) GetImageURL(imagePath string, width, height int) string {
	return s.bucket.GetPublicURL(imagePath, width, height)
}
