package adapter_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/matside/pkg/adapter"
	"google.golang.org/genai"
)

type mockGemini struct {
	resp     *genai.GenerateContentResponse
	err      error
	contents []*genai.Content
}

func (m *mockGemini) GenerateContent(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.contents = contents
	return m.resp, m.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: genai.RoleModel}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content}},
	}
}

func TestTextGeneratorJoinsParts(t *testing.T) {
	mock := &mockGemini{resp: textResponse("Keep ", "", "lifting.")}
	text, err := adapter.NewTextGenerator(mock, nil).Generate(context.Background(), "analyze")
	gt.NoError(t, err)
	gt.Equal(t, text, "Keep lifting.")

	gt.A(t, mock.contents).Length(1)
	gt.V(t, mock.contents[0].Role).Equal(genai.RoleUser)
	gt.Equal(t, mock.contents[0].Parts[0].Text, "analyze")
}

func TestTextGeneratorErrors(t *testing.T) {
	testCases := []struct {
		name string
		mock *mockGemini
	}{
		{"api error", &mockGemini{err: errors.New("boom")}},
		{"nil response", &mockGemini{}},
		{"no candidates", &mockGemini{resp: &genai.GenerateContentResponse{}}},
		{"empty text", &mockGemini{resp: textResponse("")}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := adapter.NewTextGenerator(tc.mock, nil).Generate(context.Background(), "p")
			gt.Error(t, err)
		})
	}
}

func TestIsRateLimited(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"sentinel", adapter.ErrRateLimited, true},
		{"wrapped sentinel", goerr.Wrap(adapter.ErrRateLimited, "queued call failed"), true},
		{"api 429", goerr.Wrap(genai.APIError{Code: 429, Message: "quota"}, "failed to generate content"), true},
		{"resource exhausted", genai.APIError{Code: 400, Status: "RESOURCE_EXHAUSTED"}, true},
		{"api 500", genai.APIError{Code: 500, Status: "INTERNAL"}, false},
		{"status text", fmt.Errorf("googleapi: Error 429: Too Many Requests"), true},
		{"other", errors.New("connection reset"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Equal(t, adapter.IsRateLimited(tc.err), tc.expected)
		})
	}
}
