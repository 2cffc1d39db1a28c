package chat

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiCompleter streams replies from the Gemini API.
type GeminiCompleter struct {
	client    *genai.Client
	model     string
	maxTokens int32
}

// NewGeminiCompleter builds a Gemini-backed completer. baseURL may be
// empty to use the public endpoint.
func NewGeminiCompleter(ctx context.Context, apiKey, model string, maxTokens int64, baseURL string) (*GeminiCompleter, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiCompleter{client: client, model: model, maxTokens: int32(maxTokens)}, nil
}

func (g *GeminiCompleter) Stream(ctx context.Context, system string, messages []Message, onDelta func(string) error) error {
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		role := genai.Role(genai.RoleUser)
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		MaxOutputTokens:   g.maxTokens,
	}

	for resp, err := range g.client.Models.GenerateContentStream(ctx, g.model, contents, config) {
		if err != nil {
			return fmt.Errorf("gemini stream: %w", err)
		}
		text := resp.Text()
		if text == "" {
			continue
		}
		if err := onDelta(text); err != nil {
			return err
		}
	}
	return nil
}
