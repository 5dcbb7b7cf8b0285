package provider

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/genai"

	"github.com/gomcpgo/logo_image_ai/pkg/types"
)

// DefaultGeminiModel is the Imagen model used when none is configured
const DefaultGeminiModel = "imagen-3.0-generate-002"

// ImageModels is the part of *genai.Models the Gemini adapter calls
type ImageModels interface {
	GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// GeminiAdapter generates images with Google Imagen through the genai SDK
type GeminiAdapter struct {
	models ImageModels
	model  string
}

// NewGeminiClient creates a genai client for the Gemini API backend
func NewGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return c, nil
}

// NewGeminiAdapter creates the adapter. Pass client.Models for production use.
func NewGeminiAdapter(models ImageModels, model string) *GeminiAdapter {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiAdapter{models: models, model: model}
}

func (a *GeminiAdapter) Name() string { return "gemini" }

func (a *GeminiAdapter) Generate(ctx context.Context, req types.GenerationRequest) (*types.ProviderResult, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	req = req.WithDefaults()

	resp, err := a.models.GenerateImages(ctx, a.model, req.Prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    req.AspectRatio,
		NegativePrompt: req.NegativePrompt,
	})
	if err != nil {
		return nil, types.NewUpstreamFailure(err.Error(), err)
	}
	if resp == nil || len(resp.GeneratedImages) == 0 {
		return nil, types.NewUpstreamFailure("No image returned by model", nil)
	}

	generated := resp.GeneratedImages[0]
	if generated == nil || generated.Image == nil {
		reason := "No image returned by model"
		if generated != nil && generated.RAIFilteredReason != "" {
			reason = generated.RAIFilteredReason
		}
		return nil, types.NewUpstreamFailure(reason, nil)
	}

	return &types.ProviderResult{ImageURL: imageURL(generated.Image), Success: true}, nil
}

// imageURL prefers a GCS location and otherwise inlines the bytes as a data URL
func imageURL(img *genai.Image) string {
	if img.GCSURI != "" {
		return img.GCSURI
	}
	if len(img.ImageBytes) == 0 {
		return ""
	}
	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(img.ImageBytes))
}
