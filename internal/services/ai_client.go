package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/artlore/artlore-backend/internal/logger"
	"github.com/artlore/artlore-backend/internal/utils"
)

// AIClient is the interpretation collaborator. Exactly one implementation is
// active per process, selected at startup; there is no failover between
// providers.
type AIClient interface {
	// ExplainArtwork interprets an uploaded image and returns the explanation
	// article as cleaned XML.
	ExplainArtwork(ctx context.Context, imageData []byte) (string, error)
	// ExplainArtworkByName interprets a named artwork without an image.
	ExplainArtworkByName(ctx context.Context, artworkName string) (string, error)
	// ExpandSubject produces a deeper article on one term from an earlier
	// explanation.
	ExpandSubject(ctx context.Context, originalExplanationXML, subject string) (string, error)
}

// NewAIClientFromEnv constructs the provider named by AI_PROVIDER
// ("gemini", the default, or "openai").
func NewAIClientFromEnv(log *logger.Logger) (AIClient, error) {
	provider := strings.ToLower(strings.TrimSpace(utils.GetEnv("AI_PROVIDER", "gemini", log)))
	switch provider {
	case "gemini":
		return NewGeminiClient(log)
	case "openai":
		return NewOpenAIClient(log)
	default:
		return nil, fmt.Errorf("unsupported AI_PROVIDER %q", provider)
	}
}
