// Package gemini backs the Completer port with the Google GenAI SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

type Client struct {
	gc    *genai.Client
	model string
}

func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = defaultModel
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	return &Client{gc: gc, model: model}, nil
}

// GenerateRecord issues one JSON-mode completion constrained to the record
// schema and returns the raw JSON text. An empty completion is an error: a
// silently empty draft would wipe the operator's expectations downstream.
func (c *Client) GenerateRecord(ctx context.Context, system, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    recordSchema(),
	}
	resp, err := c.gc.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("gemini: empty completion")
	}
	return text, nil
}

// recordSchema enumerates every generated field of the draft record.
// Pipeline-only fields (place id, raw review buffer) are attached by the
// reconciler, never generated.
func recordSchema() *genai.Schema {
	str := &genai.Schema{Type: genai.TypeString}
	strList := &genai.Schema{Type: genai.TypeArray, Items: str}

	service := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":     str,
			"selected": {Type: genai.TypeBoolean},
		},
	}
	category := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":      str,
			"isPrimary": {Type: genai.TypeBoolean},
			"services":  {Type: genai.TypeArray, Items: service},
		},
	}
	project := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":               str,
			"title":            str,
			"location":         str,
			"feature":          str,
			"imagePlaceholder": str,
		},
	}
	testimonial := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":       str,
			"quote":    str,
			"author":   str,
			"location": str,
		},
	}
	socials := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"instagram": str,
			"facebook":  str,
			"linkedin":  str,
			"yelp":      str,
			"houzz":     str,
			"bbb":       str,
		},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"businessName":            str,
			"tagline":                 str,
			"primaryPhone":            str,
			"primaryEmail":            str,
			"address":                 str,
			"operatingHours":          str,
			"websiteUrl":              str,
			"brandColor":              str,
			"aboutUs":                 str,
			"primaryCity":             str,
			"neighborhoods":           strList,
			"environmentalChallenges": strList,
			"categories":              {Type: genai.TypeArray, Items: category},
			"projects":                {Type: genai.TypeArray, Items: project},
			"testimonials":            {Type: genai.TypeArray, Items: testimonial},
			"socials":                 socials,
		},
	}
}
