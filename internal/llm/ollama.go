package llm

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"codeexplainer/internal/models"

	"github.com/JexSrs/go-ollama"
	"github.com/sirupsen/logrus"
)

// OllamaClient is a client for a local Ollama server.
type OllamaClient struct {
	client *ollama.Ollama
	model  string
}

// NewOllamaClient creates a new client for Ollama.
func NewOllamaClient(host, model string) (*OllamaClient, error) {
	ollamaURL, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}
	if ollamaURL.Scheme == "" || ollamaURL.Host == "" {
		return nil, fmt.Errorf("invalid Ollama URL %q: scheme and host are required", host)
	}

	client := ollama.New(*ollamaURL)

	logrus.Infof("Using Ollama client for host: %s", host)
	logrus.Infof("Using Ollama model: %s", model)

	return &OllamaClient{
		client: client,
		model:  model,
	}, nil
}

type ollamaResult struct {
	text string
	err  error
}

// Request sends a single Generate call. The library call takes no context, so it runs
// in its own goroutine and the caller stops waiting once ctx is done.
func (oc *OllamaClient) Request(ctx context.Context, doc models.PromptDocument) (string, error) {
	logrus.Debugf("Sending prompt of %d characters to Ollama", len(doc.UserPrompt))

	done := make(chan ollamaResult, 1)
	go func() {
		text, err := oc.generate(doc)
		done <- ollamaResult{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("ollama: %w", ctx.Err())
	case res := <-done:
		return res.text, res.err
	}
}

func (oc *OllamaClient) generate(doc models.PromptDocument) (string, error) {
	res, err := oc.client.Generate(
		oc.client.Generate.WithModel(oc.model),
		oc.client.Generate.WithSystem(doc.SystemInstruction),
		oc.client.Generate.WithPrompt(doc.UserPrompt),
	)
	if err != nil {
		return "", fmt.Errorf("error calling the Ollama Generate API: %w", err)
	}

	if !res.Done {
		return "", fmt.Errorf("ollama request did not complete (unexpected streaming behaviour)")
	}
	if strings.TrimSpace(res.Response) == "" {
		return "", ErrEmptyResponse
	}
	logrus.Debug("Response received from Ollama.")
	return strings.TrimSpace(res.Response), nil
}
