package adapter

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"
)

type Gemini interface {
	GenerateContent(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiClient struct {
	client          *genai.Client
	generativeModel string
}

type GeminiOption func(*GeminiClient)

func WithGenerativeModel(model string) GeminiOption {
	return func(g *GeminiClient) {
		g.generativeModel = model
	}
}

// NewGemini creates a client for the Gemini API authenticated by API key
func NewGemini(ctx context.Context, apiKey string, opts ...GeminiOption) (*GeminiClient, error) {
	return newGemini(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}, opts...)
}

// NewVertexGemini creates a client for Gemini on Vertex AI
func NewVertexGemini(ctx context.Context, projectID, location string, opts ...GeminiOption) (*GeminiClient, error) {
	return newGemini(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	}, opts...)
}

func newGemini(ctx context.Context, cfg *genai.ClientConfig, opts ...GeminiOption) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create genai client")
	}

	g := &GeminiClient{
		client:          client,
		generativeModel: "gemini-1.5-pro",
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

func (g *GeminiClient) GenerateContent(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.generativeModel, contents, config)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate content", goerr.V("model", g.generativeModel))
	}
	return resp, nil
}
