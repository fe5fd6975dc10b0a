package drafts

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiProvider drafts through the Gemini API with a typed response
// schema and JSON output mode.
type GeminiProvider struct {
	apiKey string
	model  string
}

// NewGeminiProvider creates a Gemini-backed draft provider. The client
// is constructed per call; the SDK keeps no connection state worth
// pooling.
func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	return &GeminiProvider{apiKey: apiKey, model: model}
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("%w: gemini client: %v", ErrGenerationFailed, err)
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   geminiSchema(req.IncludeAnswer),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemInstruction}},
		},
	}

	var contents []*genai.Content
	if len(req.ImageData) > 0 {
		parts := []*genai.Part{
			genai.NewPartFromText(req.Text),
			genai.NewPartFromBytes(req.ImageData, req.ImageMIME),
		}
		contents = []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	} else {
		contents = genai.Text(req.Text)
	}

	result, err := client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", ErrGenerationFailed, err)
	}

	return result.Text(), nil
}

func geminiSchema(includeAnswer bool) *genai.Schema {
	properties := make(map[string]*genai.Schema, len(attributeFields)+2)
	required := make([]string, 0, len(attributeFields)+2)

	for _, field := range attributeFields {
		properties[field] = &genai.Schema{Type: genai.TypeString}
		required = append(required, field)
	}

	properties["finalPrompt"] = &genai.Schema{Type: genai.TypeString}
	required = append(required, "finalPrompt")

	if includeAnswer {
		properties["answer"] = &genai.Schema{Type: genai.TypeString}
		required = append(required, "answer")
	}

	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: properties,
		Required:   required,
	}
}
