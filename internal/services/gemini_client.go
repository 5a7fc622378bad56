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

// geminiClient talks to the Gemini generateContent REST API. It is the
// default interpretation provider.
type geminiClient struct {
	log   *logger.Logger
	http  *modelHTTPClient
	model string
}

func NewGeminiClient(log *logger.Logger) (AIClient, error) {
	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("missing GOOGLE_API_KEY")
	}

	baseURL := utils.GetEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com", log)
	model := utils.GetEnv("GEMINI_MODEL", "gemini-2.0-flash-001", log)

	timeoutSec := 120
	if v := os.Getenv("GEMINI_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}
	maxRetries := utils.GetEnvAsInt("GEMINI_MAX_RETRIES", 4, log)

	clientLog := log.With("service", "GeminiClient")
	return &geminiClient{
		log:   clientLog,
		model: model,
		http: &modelHTTPClient{
			log:        clientLog,
			baseURL:    baseURL,
			headers:    map[string]string{"x-goog-api-key": apiKey},
			httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
			maxRetries: maxRetries,
		},
	}, nil
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiSafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type geminiGenerateRequest struct {
	SystemInstruction *geminiContent         `json:"system_instruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
	SafetySettings    []geminiSafetySetting  `json:"safetySettings,omitempty"`
}

type geminiGenerateResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason,omitempty"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason,omitempty"`
	} `json:"promptFeedback,omitempty"`
}

func geminiDefaultConfig() geminiGenerationConfig {
	return geminiGenerationConfig{
		Temperature:     0.7,
		TopP:            0.95,
		TopK:            40,
		MaxOutputTokens: 8192,
	}
}

// Art interpretation covers violence, nudity, and death as a matter of
// course; the category blocks would reject legitimate artworks.
func geminiSafetyOff() []geminiSafetySetting {
	categories := []string{
		"HARM_CATEGORY_HATE_SPEECH",
		"HARM_CATEGORY_HARASSMENT",
		"HARM_CATEGORY_SEXUALLY_EXPLICIT",
		"HARM_CATEGORY_DANGEROUS_CONTENT",
	}
	out := make([]geminiSafetySetting, 0, len(categories))
	for _, c := range categories {
		out = append(out, geminiSafetySetting{Category: c, Threshold: "BLOCK_NONE"})
	}
	return out
}

func (c *geminiClient) generate(ctx context.Context, systemPrompt string, userParts []geminiPart) (string, error) {
	req := geminiGenerateRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}},
		Contents:          []geminiContent{{Role: "user", Parts: userParts}},
		GenerationConfig:  geminiDefaultConfig(),
		SafetySettings:    geminiSafetyOff(),
	}

	var resp geminiGenerateResponse
	path := fmt.Sprintf("/v1beta/models/%s:generateContent", c.model)
	if err := c.http.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return "", apierr.ExternalService(err)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", apierr.ExternalService(fmt.Errorf("gemini blocked the prompt: %s", resp.PromptFeedback.BlockReason))
	}

	var text strings.Builder
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			text.WriteString(part.Text)
		}
		break
	}
	if text.Len() == 0 {
		return "", apierr.ExternalService(fmt.Errorf("gemini returned no candidates"))
	}
	return utils.CleanXMLResponse(text.String()), nil
}

func (c *geminiClient) ExplainArtwork(ctx context.Context, imageData []byte) (string, error) {
	c.log.Info("Requesting artwork explanation from Gemini", "image_bytes", len(imageData))
	return c.generate(ctx, artExplanationPrompt, []geminiPart{
		{InlineData: &geminiInlineData{
			MimeType: "image/jpeg",
			Data:     base64.StdEncoding.EncodeToString(imageData),
		}},
		{Text: "Analyze this artwork."},
	})
}

func (c *geminiClient) ExplainArtworkByName(ctx context.Context, artworkName string) (string, error) {
	c.log.Info("Requesting artwork explanation by name from Gemini", "artwork_name", artworkName)
	return c.generate(ctx, artExplanationByNamePrompt, []geminiPart{
		{Text: fmt.Sprintf("Analyze the artwork %q.", artworkName)},
	})
}

func (c *geminiClient) ExpandSubject(ctx context.Context, originalExplanationXML, subject string) (string, error) {
	c.log.Info("Requesting subject expansion from Gemini", "subject", subject)
	return c.generate(ctx, subjectExpansionPrompt, []geminiPart{
		{Text: fmt.Sprintf(subjectExpansionUserMessage, subject, originalExplanationXML)},
	})
}
