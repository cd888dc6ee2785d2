package adapter_test

import (
	"context"
	"os"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/matside/pkg/adapter"
	"google.golang.org/genai"
)

func TestGenerateContent(t *testing.T) {
	apiKey := os.Getenv("TEST_GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("TEST_GEMINI_API_KEY is not set")
	}

	ctx := context.Background()
	client, err := adapter.NewGemini(ctx, apiKey, adapter.WithGenerativeModel("gemini-2.5-flash"))
	gt.NoError(t, err)

	contents := []*genai.Content{
		genai.NewContentFromText("Hello, what is the capital of France?", genai.RoleUser),
	}

	resp, err := client.GenerateContent(ctx, contents, nil)
	gt.NoError(t, err)

	if resp == nil ||
		len(resp.Candidates) == 0 ||
		resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 ||
		resp.Candidates[0].Content.Parts[0].Text == "" {
		t.Fatal("unexpected response")
	}

	t.Log("response:", resp.Candidates[0].Content.Parts[0].Text)
}

func TestTextGeneratorWithVertex(t *testing.T) {
	projectID := os.Getenv("TEST_GEMINI_PROJECT")
	if projectID == "" {
		t.Skip("TEST_GEMINI_PROJECT is not set")
	}

	ctx := context.Background()
	client, err := adapter.NewVertexGemini(ctx, projectID, "us-central1", adapter.WithGenerativeModel("gemini-2.5-flash"))
	gt.NoError(t, err)

	text, err := adapter.NewTextGenerator(client, nil).Generate(ctx, "Reply with the single word: ready")
	gt.NoError(t, err)
	gt.S(t, text).Contains("ready")
}
