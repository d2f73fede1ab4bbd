package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"news-trader/internal/api"
	"news-trader/internal/llm"
	"news-trader/internal/store"
	"news-trader/internal/trace"
	"news-trader/internal/types"
)

// Predictor implements the Predictor interface against the Gemini API. Every
// call replays the session history so the model can refuse to re-act on
// previously analyzed content.
type Predictor struct {
	cfg     *store.Config
	client  *api.Client
	retry   *api.RetryConfig
	history *llm.History
}

// NewPredictor creates a new Gemini-based predictor
func NewPredictor(cfg *store.Config) *Predictor {
	// Endpoint override for proxies via GEMINI_API_ENDPOINT
	endpoint := "https://generativelanguage.googleapis.com"
	if ep := os.Getenv("GEMINI_API_ENDPOINT"); ep != "" {
		endpoint = ep
	}
	return &Predictor{
		cfg: cfg,
		client: api.NewClient(
			api.WithBaseURL(endpoint),
			api.WithLogging(os.Getenv("HTTP_DEBUG") == "true"),
		),
		retry:   api.DefaultRetryConfig(),
		history: llm.NewHistory(cfg.LLM.MaxHistory),
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *content  `json:"system_instruction,omitempty"`
	Contents          []content `json:"contents"`
	GenerationConfig  struct {
		Temperature      float32 `json:"temperature"`
		MaxOutputTokens  int     `json:"maxOutputTokens"`
		ResponseMimeType string  `json:"responseMimeType"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Predict asks Gemini whether the article signals a tradeable move.
func (p *Predictor) Predict(ctx context.Context, article *types.Article) (types.Prediction, error) {
	ctx, span := trace.StartSpan(ctx, "gemini-api-call")
	defer span.End()

	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		return types.Prediction{}, errors.New("GOOGLE_API_KEY missing")
	}

	input := article.PromptText()

	var req generateRequest
	req.SystemInstruction = &content{Parts: []part{{Text: llm.SystemPrompt(p.cfg.LLM.System)}}}
	for _, ex := range p.history.Exchanges() {
		req.Contents = append(req.Contents,
			content{Role: "user", Parts: []part{{Text: ex.Input}}},
			content{Role: "model", Parts: []part{{Text: ex.Output}}},
		)
	}
	req.Contents = append(req.Contents, content{Role: "user", Parts: []part{{Text: input}}})
	req.GenerationConfig.Temperature = p.cfg.LLM.Temperature
	req.GenerationConfig.MaxOutputTokens = p.cfg.LLM.MaxTokens
	req.GenerationConfig.ResponseMimeType = "application/json"

	url := fmt.Sprintf("/v1beta/models/%s:generateContent", p.cfg.LLM.Model)
	httpReq := api.NewRequest(http.MethodPost, url).
		WithContext(ctx).
		WithBody(req).
		WithHeader("x-goog-api-key", apiKey)
	resp, err := p.client.DoWithRetry(httpReq, p.retry)
	if err != nil {
		return types.Prediction{}, err
	}

	var r generateResponse
	if err := resp.ParseJSON(&r); err != nil {
		return types.Prediction{}, err
	}
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return types.Prediction{}, errors.New("no candidates in gemini response")
	}

	out := r.Candidates[0].Content.Parts[0].Text
	pred, err := llm.ParsePrediction(out)
	if err != nil {
		return types.Prediction{}, err
	}

	// Only successful exchanges enter the session memory.
	encoded, _ := json.Marshal(pred)
	p.history.Add(input, string(encoded))

	return pred, nil
}
