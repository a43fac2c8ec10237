package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"codeexplainer/internal/models"

	"github.com/sirupsen/logrus"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	defaultGeminiModel   = "gemini-1.5-flash"
	geminiEndpoint       = "/v1beta/models/{model}:generateContent"
)

// GeminiOptions configures the Gemini REST client.
type GeminiOptions struct {
	BaseURL    string
	APIKey     string
	Model      string
	Generation Generation
	Timeout    time.Duration
	HTTPClient *http.Client
}

// GeminiClient talks to the Google Generative Language API.
type GeminiClient struct {
	hc     *http.Client
	url    string
	apiKey string
	gen    Generation
}

// NewGeminiClient creates a new client for the Gemini API.
func NewGeminiClient(opts GeminiOptions) (*GeminiClient, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("gemini: missing api key")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultGeminiBaseURL
	}
	if opts.Model == "" {
		opts.Model = defaultGeminiModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}

	endpoint := strings.ReplaceAll(geminiEndpoint, "{model}", url.PathEscape(opts.Model))
	logrus.Infof("Using Gemini model: %s", opts.Model)

	return &GeminiClient{
		hc:     hc,
		url:    strings.TrimRight(opts.BaseURL, "/") + endpoint,
		apiKey: opts.APIKey,
		gen:    opts.Generation,
	}, nil
}

type gmPart struct {
	Text string `json:"text"`
}

type gmContent struct {
	Role  string   `json:"role,omitempty"`
	Parts []gmPart `json:"parts"`
}

type gmGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type gmRequest struct {
	SystemInstruction *gmContent          `json:"systemInstruction,omitempty"`
	Contents          []gmContent         `json:"contents"`
	GenerationConfig  *gmGenerationConfig `json:"generationConfig,omitempty"`
}

type gmResponse struct {
	Candidates []struct {
		Content struct {
			Parts []gmPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Request sends one generateContent call.
func (c *GeminiClient) Request(ctx context.Context, doc models.PromptDocument) (string, error) {
	body := gmRequest{
		Contents: []gmContent{{Role: "user", Parts: []gmPart{{Text: doc.UserPrompt}}}},
		GenerationConfig: &gmGenerationConfig{
			Temperature:     c.gen.Temperature,
			MaxOutputTokens: c.gen.MaxTokens,
		},
	}
	if doc.SystemInstruction != "" {
		body.SystemInstruction = &gmContent{Parts: []gmPart{{Text: doc.SystemInstruction}}}
	}
	payload, err := json.Marshal(&body)
	if err != nil {
		return "", fmt.Errorf("gemini: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("gemini: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	// The key stays out of the URL so transport errors never carry it.
	req.Header.Set("x-goog-api-key", c.apiKey)

	logrus.Debugf("Sending prompt of %d characters to Gemini", len(doc.UserPrompt))
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("gemini: %w", ctxErr)
		}
		return "", fmt.Errorf("gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ErrRateLimited
	}
	if resp.StatusCode/100 != 2 {
		slurp, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("gemini upstream %d: %s", resp.StatusCode, strings.TrimSpace(string(slurp)))
	}

	var gr gmResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", fmt.Errorf("gemini: decode: %w", ErrResponseInvalid)
	}
	if len(gr.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	var text strings.Builder
	for _, part := range gr.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", ErrEmptyResponse
	}
	logrus.Debug("Response received from Gemini.")
	return text.String(), nil
}
