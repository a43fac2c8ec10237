// Package summary renders an explanation of source code from static counts alone.
// It backs the explainer whenever no generative backend is available, so it must
// produce a usable document for any input.
package summary

import (
	"fmt"
	"strings"

	"codeexplainer/internal/codestats"
	"codeexplainer/internal/language"
	"codeexplainer/internal/models"
)

// ResolveLanguage picks the language the document is written for: the declared one if
// any, then the detector, then the content-only classifier.
func ResolveLanguage(sample models.CodeSample) language.Language {
	if declared := strings.TrimSpace(sample.DeclaredLanguage); declared != "" {
		return language.Language(declared)
	}
	if lang := language.Detect(sample.Text, sample.Path); lang.IsKnown() {
		return lang
	}
	return language.Classify(sample.Text)
}

// Summarize builds the heuristic explanation for sample.
func Summarize(sample models.CodeSample) models.ExplanationResult {
	lang := ResolveLanguage(sample)
	stats := codestats.Compute(sample.Text)
	return models.ExplanationResult{
		Body:       Render(lang, sample.Path, stats),
		SourceMode: models.SourceHeuristic,
	}
}

// Render lays out the fixed sections of the document. No section is ever dropped;
// unknown languages get the generic wording.
func Render(lang language.Language, path string, stats codestats.Statistics) string {
	kind := strings.ToLower(string(lang))

	subject := "snippet"
	if path != "" {
		subject = fmt.Sprintf("file (`%s`)", path)
	}

	lines := []string{
		"## 🎯 **Code Overview**",
		fmt.Sprintf("This %s %s contains **%d lines** of code.", strings.ToUpper(string(lang)), subject, stats.LineCount),
		"",
		"## 📊 **Quick Stats**",
		fmt.Sprintf("- **Functions/Methods:** %d", stats.FunctionLikeCount),
		fmt.Sprintf("- **Classes:** %d", stats.ClassCount),
		fmt.Sprintf("- **Imports/Includes:** %d", stats.ImportCount),
		fmt.Sprintf("- **Comment Lines:** %d", stats.CommentLineCount),
		"",
		"## 🔍 **What It Likely Does**",
		likelyPurpose(kind),
		"",
		"## 🚀 **How to Run**",
		"```bash",
		runCommand(kind, path),
		"```",
		"",
		"## 💡 **Next Steps**",
		"- **Analyze Functions:** Understand what each function does",
		"- **Trace Execution:** Follow the program flow step by step",
		"- **Test with Data:** Try different inputs to see outputs",
		"- **Check Edge Cases:** Consider boundary conditions",
	}
	return strings.Join(lines, "\n")
}

func likelyPurpose(kind string) string {
	switch kind {
	case "c":
		return strings.Join([]string{
			"- **C Program:** Look for `main()` function as entry point",
			"- **Memory Management:** Check for `malloc/free` calls",
			"- **I/O Operations:** Uses `printf/scanf` for input/output",
		}, "\n")
	case "java":
		return strings.Join([]string{
			"- **Java Application:** Contains classes and methods",
			"- **Entry Point:** Look for `public static void main`",
			"- **Object-Oriented:** Uses classes and objects",
		}, "\n")
	case "python":
		return strings.Join([]string{
			"- **Python Script:** Contains function definitions",
			"- **Entry Point:** Look for `if __name__ == \"__main__\":`",
			"- **Dynamic:** Uses Python's flexible syntax",
		}, "\n")
	default:
		return strings.Join([]string{
			"- **General Code:** Analyze function names and structure",
			"- **Data Flow:** Trace inputs to outputs",
			"- **Logic:** Identify loops and conditionals",
		}, "\n")
	}
}

func runCommand(kind, path string) string {
	switch kind {
	case "c":
		return fmt.Sprintf("gcc %s -o app\n./app", orDefault(path, "file.c"))
	case "java":
		class := "File"
		if path != "" {
			class = strings.TrimSuffix(path, ".java")
		}
		return fmt.Sprintf("javac %s\njava %s", orDefault(path, "File.java"), class)
	case "python":
		return fmt.Sprintf("python %s", orDefault(path, "script.py"))
	default:
		return "# Refer to project documentation"
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
