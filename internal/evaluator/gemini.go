package evaluator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pushp314/derive-duel-backend/pkg/logger"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-1.5-flash-latest"

// Gemini calls the Gemini API directly and serves the Remote contract
type Gemini struct {
	model string
}

func NewGemini(model string) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{model: model}
}

func (g *Gemini) Invoke(ctx context.Context, req Request) (json.RawMessage, error) {
	if req.APIKey == "" {
		return nil, fmt.Errorf("gemini: no api key")
	}
	model := req.Model
	if model == "" {
		model = g.model
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  req.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	start := time.Now()
	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(buildPrompt(req)), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.2),
		TopK:            genai.Ptr[float32](40),
		TopP:            genai.Ptr[float32](0.95),
		MaxOutputTokens: 1024,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	logger.Debug().
		Str("model", model).
		Str("action", string(req.Action)).
		Dur("latency", time.Since(start)).
		Msg("Gemini call complete")

	return json.Marshal(map[string]string{"response": resp.Text()})
}
