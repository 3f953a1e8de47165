package vision

import (
	"context"
	"fmt"
	"strings"

	"item-finder-be/internal/entity"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const extractionPrompt = `Analyze this product image and extract product information.
Return ONLY valid JSON array in this exact format:
[
  { "category": "product category", "name": "product name without numbers or weights" }
]`

type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing Gemini API key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

func (p *GeminiProvider) ExtractProducts(ctx context.Context, image []byte, mimeType string) ([]entity.ProductCandidate, error) {
	model := p.client.GenerativeModel(p.model)

	resp, err := model.GenerateContent(ctx,
		genai.ImageData(imageFormat(mimeType), image),
		genai.Text(extractionPrompt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates returned from Gemini")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, fmt.Errorf("empty content returned from Gemini")
	}

	txt, ok := candidate.Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response format from Gemini")
	}

	return ParseCandidates(string(txt)), nil
}

func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

// imageFormat maps a MIME type to the bare format genai.ImageData expects
// ("image/jpeg" -> "jpeg").
func imageFormat(mimeType string) string {
	format := strings.TrimPrefix(strings.ToLower(mimeType), "image/")
	if format == "" {
		return "jpeg"
	}
	return format
}
