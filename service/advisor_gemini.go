package service

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// GeminiCompleter uses the Google GenAI SDK.
type GeminiCompleter struct {
	client *genai.Client
	model  string
}

func NewGeminiCompleter(ctx context.Context, apiKey, model string) (*GeminiCompleter, error) {
	if apiKey == "" {
		return nil, errors.New("GenAI API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiCompleter{client: client, model: model}, nil
}

func (c *GeminiCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
			MaxOutputTokens:   300,
		},
	)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("no response from advisor")
	}
	return text, nil
}
