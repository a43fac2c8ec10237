package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeexplainer/internal/explain"
	"codeexplainer/internal/models"

	"gopkg.in/yaml.v3"
)

func TestFormatResult(t *testing.T) {
	result := models.ExplanationResult{Body: "## Overview", SourceMode: models.SourceHeuristic, Note: "offline"}

	tests := []struct {
		name   string
		format OutputFormat
		check  func(t *testing.T, out string)
	}{
		{"text", FormatText, func(t *testing.T, out string) {
			if out != "[offline]\n\n## Overview" {
				t.Errorf("unexpected text output %q", out)
			}
		}},
		{"json", FormatJSON, func(t *testing.T, out string) {
			var got models.ExplanationResult
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if got != result {
				t.Errorf("got %+v, want %+v", got, result)
			}
		}},
		{"yaml", FormatYAML, func(t *testing.T, out string) {
			var got models.ExplanationResult
			if err := yaml.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("invalid YAML: %v", err)
			}
			if got != result {
				t.Errorf("got %+v, want %+v", got, result)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := FormatResult(result, tt.format)
			if err != nil {
				t.Fatalf("FormatResult: %v", err)
			}
			tt.check(t, out)
		})
	}

	if _, err := FormatResult(result, "xml"); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}

func TestFormatTree_Text(t *testing.T) {
	nodes := []models.TreeNode{
		{Name: "src", Path: "src", Type: models.NodeDir, Children: []models.TreeNode{
			{Name: "main.c", Path: "src/main.c", Type: models.NodeFile},
		}},
		{Name: "README.md", Path: "README.md", Type: models.NodeFile},
	}
	out, err := FormatTree(nodes, FormatText)
	if err != nil {
		t.Fatalf("FormatTree: %v", err)
	}
	if want := "src/\n  main.c\nREADME.md"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}

	repoOut, err := FormatRepoTree(models.RepoTree{Owner: "octo", Repo: "hello", Branch: "main", Tree: nodes}, FormatText)
	if err != nil {
		t.Fatalf("FormatRepoTree: %v", err)
	}
	if repoOut != out {
		t.Errorf("text repo tree = %q, want %q", repoOut, out)
	}
}

func TestFormatRepoTree_Structured(t *testing.T) {
	tree := models.RepoTree{Owner: "octo", Repo: "hello", Branch: "dev", Tree: []models.TreeNode{
		{Name: "a.go", Path: "a.go", Type: models.NodeFile},
	}}

	out, err := FormatRepoTree(tree, FormatJSON)
	if err != nil {
		t.Fatalf("FormatRepoTree: %v", err)
	}
	var decoded models.RepoTree
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if decoded.Branch != "dev" || len(decoded.Tree) != 1 {
		t.Errorf("unexpected decoded tree %+v", decoded)
	}

	out, err = FormatTree(tree.Tree, FormatYAML)
	if err != nil {
		t.Fatalf("FormatTree: %v", err)
	}
	if !strings.HasPrefix(out, "- name: a.go") {
		t.Errorf("expected a YAML node list, got %q", out)
	}
}

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("GOOGLE_GENERATIVE_AI_API_KEY", "")
	t.Setenv("CODEEXPLAINER_BACKEND_API_KEY", "")
	t.Setenv("CODEEXPLAINER_BACKEND_PROVIDER", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, args...))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("codeexplain %v: %v", args, err)
	}
	return out.String()
}

func TestExplainCommand_Heuristic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.py")
	if err := os.WriteFile(path, []byte("def greet(name):\n    print(name)\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := runCLI(t, "explain", "--format", "json", path)

	var got models.ExplanationResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON output %q: %v", out, err)
	}
	if got.SourceMode != models.SourceHeuristic || got.Note != explain.NoteHeuristicMode {
		t.Errorf("expected heuristic mode without a key, got %+v", got)
	}
	if !strings.Contains(got.Body, "Python Script") {
		t.Errorf("expected the python summary, got:\n%s", got.Body)
	}
}

func TestTreeCommand_Local(t *testing.T) {
	dir := t.TempDir()
	for _, p := range []string{"src/main.c", "README.md", "node_modules/dep/index.js"} {
		full := filepath.Join(dir, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	out := runCLI(t, "tree", dir)

	if want := "src/\n  main.c\nREADME.md\n"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}
