package textgen

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cocreate/internal/common"
	"google.golang.org/genai"
)

// contentGenerator is the part of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini is a Provider backed by the Gemini API.
type Gemini struct {
	models  contentGenerator
	model   string
	timeout time.Duration
}

// NewGemini creates a Gemini API client. A zero timeout means calls are
// bounded only by the caller's context.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	return &Gemini{models: client.Models, model: model, timeout: timeout}, nil
}

var (
	newsletterSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"subject": {Type: genai.TypeString},
			"title":   {Type: genai.TypeString},
			"content": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
		Required: []string{"subject", "title", "content"},
	}
	stringListSchema = &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}
)

func configFor(shape Shape) *genai.GenerateContentConfig {
	switch shape {
	case ShapeNewsletter:
		return &genai.GenerateContentConfig{ResponseMIMEType: "application/json", ResponseSchema: newsletterSchema}
	case ShapeStringList:
		return &genai.GenerateContentConfig{ResponseMIMEType: "application/json", ResponseSchema: stringListSchema}
	default:
		return nil
	}
}

// Generate sends one prompt. The raw answer is returned unchanged once it
// matches the requested shape.
func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), configFor(req.Shape))
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrUpstreamGeneration, err)
	}

	text := resp.Text()
	if err := Validate(req.Shape, text); err != nil {
		return "", err
	}
	return text, nil
}
