package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/sethvargo/go-retry"
	"google.golang.org/api/option"
)

// GeminiProvider calls Google Gemini to analyze a trip context.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider constructs a provider for the given API key and model
// name (e.g. "gemini-2.0-flash").
func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("analysis.NewGeminiProvider: %w", err)
	}
	return &GeminiProvider{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// Close releases the underlying API client.
func (g *GeminiProvider) Close() error {
	return g.client.Close()
}

// Analyze sends the trip context to the model and parses the structured
// response. Transient failures are retried twice with exponential backoff;
// the analyzer's fallback handling deals with anything that survives the
// retries.
func (g *GeminiProvider) Analyze(ctx context.Context, tc TripContext) (RawAnalysis, error) {
	payload, err := json.Marshal(tc)
	if err != nil {
		return RawAnalysis{}, fmt.Errorf("analysis.GeminiProvider.Analyze: marshal trip context: %w", err)
	}
	prompt := fmt.Sprintf(analysisPromptTemplate, payload)

	var raw RawAnalysis
	backoff := retry.WithMaxRetries(2, retry.NewExponential(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return retry.RetryableError(fmt.Errorf("generate content: %w", err))
		}
		parsed, err := parseResponse(resp)
		if err != nil {
			// A malformed response is worth one more attempt: the model is
			// not deterministic and often produces valid JSON on retry.
			return retry.RetryableError(err)
		}
		raw = parsed
		return nil
	})
	if err != nil {
		return RawAnalysis{}, fmt.Errorf("analysis.GeminiProvider.Analyze: %w", err)
	}
	return raw, nil
}

// parseResponse extracts the first text part and unmarshals it, stripping
// the markdown JSON fence the model sometimes wraps around its output.
func parseResponse(resp *genai.GenerateContentResponse) (RawAnalysis, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return RawAnalysis{}, errors.New("no content returned from model")
	}
	textPart, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return RawAnalysis{}, fmt.Errorf("response part is not text, received %T", resp.Candidates[0].Content.Parts[0])
	}

	text := string(textPart)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json\n")
		text = strings.TrimSuffix(text, "\n```")
	}
	text = strings.TrimSpace(text)

	var raw RawAnalysis
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return RawAnalysis{}, fmt.Errorf("unmarshal model response: %w", err)
	}
	return raw, nil
}
