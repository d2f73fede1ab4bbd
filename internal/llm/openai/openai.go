package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"

	"news-trader/internal/api"
	"news-trader/internal/llm"
	"news-trader/internal/store"
	"news-trader/internal/trace"
	"news-trader/internal/types"
)

// Predictor implements the Predictor interface against the OpenAI chat API,
// with the same session-memory contract as the Gemini provider.
type Predictor struct {
	cfg     *store.Config
	client  *api.Client
	retry   *api.RetryConfig
	history *llm.History
}

func NewPredictor(cfg *store.Config) *Predictor {
	return &Predictor{
		cfg: cfg,
		client: api.NewClient(
			api.WithBaseURL("https://api.openai.com"),
			api.WithLogging(os.Getenv("HTTP_DEBUG") == "true"),
		),
		retry:   api.DefaultRetryConfig(),
		history: llm.NewHistory(cfg.LLM.MaxHistory),
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (p *Predictor) Predict(ctx context.Context, article *types.Article) (types.Prediction, error) {
	ctx, span := trace.StartSpan(ctx, "openai-api-call")
	defer span.End()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return types.Prediction{}, errors.New("OPENAI_API_KEY missing")
	}

	input := article.PromptText()

	messages := []message{{Role: "system", Content: llm.SystemPrompt(p.cfg.LLM.System)}}
	for _, ex := range p.history.Exchanges() {
		messages = append(messages,
			message{Role: "user", Content: ex.Input},
			message{Role: "assistant", Content: ex.Output},
		)
	}
	messages = append(messages, message{Role: "user", Content: input})

	body := map[string]any{
		"model":       p.cfg.LLM.Model,
		"messages":    messages,
		"temperature": p.cfg.LLM.Temperature,
		"max_tokens":  p.cfg.LLM.MaxTokens,
	}

	httpReq := api.NewRequest(http.MethodPost, "/v1/chat/completions").
		WithContext(ctx).
		WithBody(body).
		WithHeader("Authorization", "Bearer "+apiKey)
	resp, err := p.client.DoWithRetry(httpReq, p.retry)
	if err != nil {
		return types.Prediction{}, err
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := resp.ParseJSON(&r); err != nil {
		return types.Prediction{}, err
	}
	if len(r.Choices) == 0 {
		return types.Prediction{}, errors.New("no choices in openai response")
	}

	out := strings.TrimSpace(r.Choices[0].Message.Content)
	pred, err := llm.ParsePrediction(out)
	if err != nil {
		return types.Prediction{}, err
	}

	encoded, _ := json.Marshal(pred)
	p.history.Add(input, string(encoded))

	return pred, nil
}
