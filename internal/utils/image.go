package utils

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/artlore/artlore-backend/internal/apierr"
	"github.com/artlore/artlore-backend/internal/logger"
)

const (
	// ProcessedImageContentType is the mime type every upload is normalized to.
	ProcessedImageContentType = "image/jpeg"

	maxImageDimension = 2000
	jpegQuality       = 85
)

// ValidateAndProcessImage decodes an uploaded image, scales it down so the
// longest side is at most maxImageDimension, and re-encodes as JPEG. Invalid
// image data is a validation failure, not a server error.
func ValidateAndProcessImage(imageData []byte, log *logger.Logger) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, apierr.Validation("invalid image format: %v", err)
	}
	if log != nil {
		log.Info("Image decoded", "format", format, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, apierr.Validation("image has empty dimensions")
	}

	if w > maxImageDimension || h > maxImageDimension {
		ratio := float64(maxImageDimension) / float64(max(w, h))
		newW := int(float64(w) * ratio)
		newH := int(float64(h) * ratio)
		scaled := image.NewRGBA(image.Rect(0, 0, newW, newH))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, xdraw.Over, nil)
		if log != nil {
			log.Info("Image resized", "from_width", w, "from_height", h, "to_width", newW, "to_height", newH)
		}
		img = scaled
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode processed image: %w", err)
	}
	return out.Bytes(), nil
}
