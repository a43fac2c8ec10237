package mcpserver

import (
	"context"
	"errors"
	"strings"
	"testing"

	"codeexplainer/internal/explain"
	"codeexplainer/internal/models"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type fixedClient struct {
	reply string
	err   error
	last  models.PromptDocument
}

func (c *fixedClient) Request(ctx context.Context, doc models.PromptDocument) (string, error) {
	c.last = doc
	return c.reply, c.err
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("expected one content item, got %d", len(res.Content))
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return text.Text
}

func TestExplainCode(t *testing.T) {
	tests := []struct {
		name      string
		client    *fixedClient
		args      explainCodeArgs
		wantError bool
		wantText  string
	}{
		{
			name:     "ai answer",
			client:   &fixedClient{reply: "It returns zero."},
			args:     explainCodeArgs{Code: "int main(){return 0;}", Language: "c"},
			wantText: "It returns zero.",
		},
		{
			name:     "fallback carries note",
			client:   &fixedClient{err: errors.New("boom")},
			args:     explainCodeArgs{Code: "int main(){return 0;}", Language: "c"},
			wantText: "_" + explain.NoteFallback + "_",
		},
		{
			name:      "missing code",
			client:    &fixedClient{reply: "unused"},
			args:      explainCodeArgs{Language: "c"},
			wantError: true,
			wantText:  "Missing code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(explain.NewEngine(tt.client))
			res, out, err := s.explainCode(context.Background(), nil, tt.args)
			if err != nil || out != nil {
				t.Fatalf("handler must report failures in the result, got out=%v err=%v", out, err)
			}
			if res.IsError != tt.wantError {
				t.Errorf("IsError = %v, want %v", res.IsError, tt.wantError)
			}
			if text := resultText(t, res); !strings.Contains(text, tt.wantText) {
				t.Errorf("expected %q in %q", tt.wantText, text)
			}
		})
	}
}

func TestExplainCode_Question(t *testing.T) {
	client := &fixedClient{reply: "Because."}
	s := New(explain.NewEngine(client))

	if _, _, err := s.explainCode(context.Background(), nil, explainCodeArgs{Code: "x = 1", Question: "Why?"}); err != nil {
		t.Fatalf("explainCode: %v", err)
	}
	if !strings.Contains(client.last.UserPrompt, "**Question:** Why?") {
		t.Errorf("expected the question to reach the prompt, got:\n%s", client.last.UserPrompt)
	}
}

func TestReviewCode(t *testing.T) {
	client := &fixedClient{reply: "## Analysis\n- fine"}
	s := New(explain.NewEngine(client))

	res, _, err := s.reviewCode(context.Background(), nil, reviewCodeArgs{Code: "def f():\n  pass", Path: "f.py"})
	if err != nil {
		t.Fatalf("reviewCode: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %q", resultText(t, res))
	}
	if resultText(t, res) != client.reply {
		t.Errorf("expected the review verbatim, got %q", resultText(t, res))
	}
	if !strings.Contains(client.last.UserPrompt, "## Recommendations") {
		t.Error("expected the review prompt")
	}
}

func TestReviewCode_HeuristicOnly(t *testing.T) {
	s := New(explain.NewEngine(nil))

	res, _, err := s.reviewCode(context.Background(), nil, reviewCodeArgs{Code: "public class A {}"})
	if err != nil {
		t.Fatalf("reviewCode: %v", err)
	}
	text := resultText(t, res)
	if !strings.HasPrefix(text, "_"+explain.NoteHeuristicMode+"_") {
		t.Errorf("expected the heuristic note first, got %q", text)
	}
	if !strings.Contains(text, "Java Application") {
		t.Errorf("expected the java summary, got %q", text)
	}
}
