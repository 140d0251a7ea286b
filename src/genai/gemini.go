package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"finpal-server/src/apperr"
	"finpal-server/src/logger"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

type Gemini struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewGemini(apiKey, model, baseURL string, client *http.Client) *Gemini {
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Gemini{
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

func (g *Gemini) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	if g.apiKey == "" {
		return "", apperr.Generation(errNotConfigured, nil)
	}
	o := applyOptions(g.model, opts)

	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", apperr.Generation(errRequestFailed, err)
	}

	// The key must stay out of the URL: transport errors quote it.
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, url.PathEscape(o.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", apperr.Generation(errRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		logger.Get().Error("gemini request failed", zap.String("model", o.model), zap.Error(err))
		return "", apperr.Generation(errRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.Generation(errRequestFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := gjson.GetBytes(body, "error.message").String()
		logger.Get().Error("gemini returned an error",
			zap.Int("status", resp.StatusCode),
			zap.String("model", o.model),
			zap.String("detail", detail),
		)
		return "", apperr.Generation(errRequestFailed, fmt.Errorf("gemini status %d: %s", resp.StatusCode, detail))
	}

	text := gjson.GetBytes(body, "candidates.0.content.parts.0.text").String()
	if strings.TrimSpace(text) == "" {
		return "", apperr.Generation(errEmptyResponse, nil)
	}
	return text, nil
}
