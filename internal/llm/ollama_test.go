package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"codeexplainer/internal/models"
)

type generateBody struct {
	Model  string `json:"model"`
	System string `json:"system"`
	Prompt string `json:"prompt"`
	Stream *bool  `json:"stream"`
}

func newTestOllama(t *testing.T, handler http.HandlerFunc) *OllamaClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewOllamaClient(srv.URL, "llama-test")
	if err != nil {
		t.Fatalf("NewOllamaClient() error: %v", err)
	}
	return client
}

func TestOllamaClient_Request(t *testing.T) {
	var got generateBody
	client := newTestOllama(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"model":"llama-test","response":"  It prints hello.\n","done":true}`))
	})

	text, err := client.Request(context.Background(), models.PromptDocument{
		SystemInstruction: "be brief",
		UserPrompt:        "explain",
	})
	if err != nil {
		t.Fatalf("Request() error: %v", err)
	}
	if text != "It prints hello." {
		t.Errorf("expected trimmed response, got %q", text)
	}
	if got.Model != "llama-test" || got.System != "be brief" || got.Prompt != "explain" {
		t.Errorf("unexpected request body %+v", got)
	}
	if got.Stream == nil || *got.Stream {
		t.Errorf("expected a non-streaming request, got %v", got.Stream)
	}
}

func TestOllamaClient_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{name: "blank response", status: http.StatusOK, body: `{"response":"   ","done":true}`, wantErr: ErrEmptyResponse},
		{name: "not done", status: http.StatusOK, body: `{"response":"partial","done":false}`, wantMsg: "did not complete"},
		{name: "server error", status: http.StatusInternalServerError, body: `model not loaded`, wantMsg: "500"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestOllama(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})
			_, err := client.Request(context.Background(), models.PromptDocument{UserPrompt: "x"})
			if err == nil {
				t.Fatal("expected an error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
			if tc.wantMsg != "" && !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("expected %q in the error, got %v", tc.wantMsg, err)
			}
		})
	}
}

func TestOllamaClient_ContextDeadline(t *testing.T) {
	release := make(chan struct{})
	client := newTestOllama(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.Request(ctx, models.PromptDocument{UserPrompt: "x"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected a deadline error, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("expected Request to return once the deadline passed")
	}
}
