package adapter

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"
)

// TextGenerator turns a single prompt into a single text answer
type TextGenerator struct {
	gemini Gemini
	config *genai.GenerateContentConfig
}

// NewTextGenerator wraps a Gemini client. config may be nil.
func NewTextGenerator(gemini Gemini, config *genai.GenerateContentConfig) *TextGenerator {
	return &TextGenerator{
		gemini: gemini,
		config: config,
	}
}

func (g *TextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := g.gemini.GenerateContent(ctx, contents, g.config)
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate text")
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", goerr.New("no candidate generated")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			text.WriteString(part.Text)
		}
	}

	if text.Len() == 0 {
		return "", goerr.New("empty text generated")
	}

	return text.String(), nil
}
