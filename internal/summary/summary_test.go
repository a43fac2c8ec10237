package summary

import (
	"fmt"
	"strings"
	"testing"

	"codeexplainer/internal/codestats"
	"codeexplainer/internal/language"
	"codeexplainer/internal/models"
)

var sections = []string{
	"## 🎯 **Code Overview**",
	"## 📊 **Quick Stats**",
	"## 🔍 **What It Likely Does**",
	"## 🚀 **How to Run**",
	"## 💡 **Next Steps**",
}

func TestResolveLanguage(t *testing.T) {
	testCases := []struct {
		name     string
		sample   models.CodeSample
		expected language.Language
	}{
		{
			name:     "declared language overrides content",
			sample:   models.CodeSample{Text: "public class Foo {}", DeclaredLanguage: "python"},
			expected: language.Python,
		},
		{
			name:     "declared language is kept as given",
			sample:   models.CodeSample{Text: "", DeclaredLanguage: "Rust"},
			expected: language.Language("Rust"),
		},
		{
			name:     "path extension",
			sample:   models.CodeSample{Text: "x", Path: "main.c"},
			expected: language.C,
		},
		{
			name:     "detector hints",
			sample:   models.CodeSample{Text: "#include <iostream>\nstd::cout << 1;"},
			expected: language.CPP,
		},
		{
			name:     "nothing fires",
			sample:   models.CodeSample{Text: "lorem ipsum"},
			expected: language.Text,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveLanguage(tc.sample); got != tc.expected {
				t.Errorf("ResolveLanguage() = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestSummarize_EmptyInput(t *testing.T) {
	result := Summarize(models.CodeSample{})

	if result.SourceMode != models.SourceHeuristic {
		t.Errorf("expected heuristic mode, got %q", result.SourceMode)
	}
	if result.Body == "" {
		t.Fatal("expected a non-empty body")
	}
	for _, section := range sections {
		if !strings.Contains(result.Body, section) {
			t.Errorf("missing section %q", section)
		}
	}
	if !strings.Contains(result.Body, "contains **1 lines**") {
		t.Error("expected a line count of 1 for empty input")
	}
	if !strings.Contains(result.Body, "- **Functions/Methods:** 0") {
		t.Error("expected zero functions for empty input")
	}
	if !strings.Contains(result.Body, "# Refer to project documentation") {
		t.Error("expected the generic run instructions")
	}
	if !strings.Contains(result.Body, "This TEXT snippet") {
		t.Error("expected the text fallback in the overview")
	}
}

func TestSummarize_LanguageBranches(t *testing.T) {
	testCases := []struct {
		name    string
		sample  models.CodeSample
		purpose string
		run     string
	}{
		{
			name:    "c with path",
			sample:  models.CodeSample{Text: "int main(){}", Path: "src/hello.c"},
			purpose: "- **C Program:**",
			run:     "gcc src/hello.c -o app\n./app",
		},
		{
			name:    "c without path",
			sample:  models.CodeSample{Text: "int main(){}", DeclaredLanguage: "c"},
			purpose: "- **C Program:**",
			run:     "gcc file.c -o app",
		},
		{
			name:    "java strips extension for the run step",
			sample:  models.CodeSample{Text: "public class Hello {}", Path: "Hello.java"},
			purpose: "- **Java Application:**",
			run:     "javac Hello.java\njava Hello",
		},
		{
			name:    "java placeholder",
			sample:  models.CodeSample{Text: "public class Hello {}"},
			purpose: "- **Java Application:**",
			run:     "javac File.java\njava File",
		},
		{
			name:    "python",
			sample:  models.CodeSample{Text: "def main():\n    pass"},
			purpose: "- **Python Script:**",
			run:     "python script.py",
		},
		{
			name:    "cpp uses the generic branch",
			sample:  models.CodeSample{Text: "std::vector<int> v;", Path: "v.cpp"},
			purpose: "- **General Code:**",
			run:     "# Refer to project documentation",
		},
		{
			name:    "declared language matches case-insensitively",
			sample:  models.CodeSample{Text: "x", DeclaredLanguage: "Python"},
			purpose: "- **Python Script:**",
			run:     "python script.py",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			body := Summarize(tc.sample).Body
			if !strings.Contains(body, tc.purpose) {
				t.Errorf("expected purpose %q in:\n%s", tc.purpose, body)
			}
			if !strings.Contains(body, "```bash\n"+tc.run) {
				t.Errorf("expected run command %q in:\n%s", tc.run, body)
			}
		})
	}
}

func TestSummarize_QuotesStatistics(t *testing.T) {
	code := "class A {}\nclass B {}\n// note\nfoo(); bar();"
	stats := codestats.Compute(code)
	body := Summarize(models.CodeSample{Text: code, Path: "a/b.java"}).Body

	for _, want := range []string{
		fmt.Sprintf("- **Functions/Methods:** %d", stats.FunctionLikeCount),
		fmt.Sprintf("- **Classes:** %d", stats.ClassCount),
		fmt.Sprintf("- **Comment Lines:** %d", stats.CommentLineCount),
		fmt.Sprintf("contains **%d lines**", stats.LineCount),
		"This JAVA file (`a/b.java`)",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in body:\n%s", want, body)
		}
	}
}
