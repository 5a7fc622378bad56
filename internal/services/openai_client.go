package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/artlore/artlore-backend/internal/apierr"
	"github.com/artlore/artlore-backend/internal/logger"
	"github.com/artlore/artlore-backend/internal/utils"
)

// openAIClient is the alternate interpretation provider, selected with
// AI_PROVIDER=openai. Images travel inline as data URLs on the vision-capable
// chat completions API.
type openAIClient struct {
	log   *logger.Logger
	http  *modelHTTPClient
	model string
}

func NewOpenAIClient(log *logger.Logger) (AIClient, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}

	baseURL := utils.GetEnv("OPENAI_BASE_URL", "https://api.openai.com", log)
	model := utils.GetEnv("OPENAI_MODEL", "gpt-4o", log)

	timeoutSec := 120
	if v := os.Getenv("OPENAI_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}
	maxRetries := utils.GetEnvAsInt("OPENAI_MAX_RETRIES", 4, log)

	clientLog := log.With("service", "OpenAIClient")
	return &openAIClient{
		log:   clientLog,
		model: model,
		http: &modelHTTPClient{
			log:        clientLog,
			baseURL:    baseURL,
			headers:    map[string]string{"Authorization": "Bearer " + apiKey},
			httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
			maxRetries: maxRetries,
		},
	}, nil
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type openAIContentPart struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *openAIImageURL `json:"image_url,omitempty"`
}

type openAIImageURL struct {
	URL string `json:"url"`
}

type openAIChatRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Refusal string `json:"refusal,omitempty"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *openAIClient) chat(ctx context.Context, systemPrompt string, userContent any) (string, error) {
	req := openAIChatRequest{
		Model: c.model,
		Messages: []openAIMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userContent},
		},
		Temperature: 0.7,
		MaxTokens:   8192,
	}

	var resp openAIChatResponse
	if err := c.http.do(ctx, http.MethodPost, "/v1/chat/completions", req, &resp); err != nil {
		return "", apierr.ExternalService(err)
	}
	if len(resp.Choices) == 0 {
		return "", apierr.ExternalService(fmt.Errorf("openai returned no choices"))
	}
	if refusal := resp.Choices[0].Message.Refusal; refusal != "" {
		return "", apierr.ExternalService(fmt.Errorf("model refused: %s", refusal))
	}
	return utils.CleanXMLResponse(resp.Choices[0].Message.Content), nil
}

func (c *openAIClient) ExplainArtwork(ctx context.Context, imageData []byte) (string, error) {
	c.log.Info("Requesting artwork explanation from OpenAI", "image_bytes", len(imageData))
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(imageData)
	return c.chat(ctx, artExplanationPrompt, []openAIContentPart{
		{Type: "text", Text: "Analyze this artwork."},
		{Type: "image_url", ImageURL: &openAIImageURL{URL: dataURL}},
	})
}

func (c *openAIClient) ExplainArtworkByName(ctx context.Context, artworkName string) (string, error) {
	c.log.Info("Requesting artwork explanation by name from OpenAI", "artwork_name", artworkName)
	return c.chat(ctx, artExplanationByNamePrompt, fmt.Sprintf("Analyze the artwork %q.", artworkName))
}

func (c *openAIClient) ExpandSubject(ctx context.Context, originalExplanationXML, subject string) (string, error) {
	c.log.Info("Requesting subject expansion from OpenAI", "subject", subject)
	return c.chat(ctx, subjectExpansionPrompt, fmt.Sprintf(subjectExpansionUserMessage, subject, originalExplanationXML))
}
