// Package textgen builds generation prompts and sends them to a text
// generation provider.
package textgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cocreate/internal/common"
)

// Shape is the structure the provider is asked to answer with.
type Shape int

const (
	// ShapeText is free-form text.
	ShapeText Shape = iota
	// ShapeNewsletter is a JSON object {subject, title, content[]}.
	ShapeNewsletter
	// ShapeStringList is a JSON array of strings.
	ShapeStringList
)

// Request is one call to a provider.
type Request struct {
	Prompt string
	Shape  Shape
}

// Provider turns a prompt into text. Implementations report failures
// wrapped in common.ErrUpstreamGeneration.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Newsletter is the parsed form of a ShapeNewsletter answer.
type Newsletter struct {
	Subject string   `json:"subject"`
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

// ParseNewsletter decodes a ShapeNewsletter answer.
func ParseNewsletter(raw string) (*Newsletter, error) {
	var n Newsletter
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return nil, fmt.Errorf("%w: decode newsletter: %w", common.ErrUpstreamGeneration, err)
	}
	if n.Content == nil {
		n.Content = []string{}
	}
	return &n, nil
}

// ParseThread decodes a ShapeStringList answer into tweets.
func ParseThread(raw string) ([]string, error) {
	var tweets []string
	if err := json.Unmarshal([]byte(raw), &tweets); err != nil {
		return nil, fmt.Errorf("%w: decode thread: %w", common.ErrUpstreamGeneration, err)
	}
	if tweets == nil {
		tweets = []string{}
	}
	return tweets, nil
}

// Validate checks a provider answer against the requested shape.
func Validate(shape Shape, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%w: empty response", common.ErrUpstreamGeneration)
	}
	switch shape {
	case ShapeNewsletter:
		_, err := ParseNewsletter(raw)
		return err
	case ShapeStringList:
		_, err := ParseThread(raw)
		return err
	}
	return nil
}
