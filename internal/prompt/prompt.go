// Package prompt renders the deterministic prompts sent to the generative backend.
package prompt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"codeexplainer/internal/language"
	"codeexplainer/internal/models"
)

const (
	initialSystem  = "You are an expert code tutor. Explain code in an engaging, educational way with examples, test cases, and practical insights. Use markdown formatting, bullet points, and code examples. Make it beginner-friendly but comprehensive."
	followUpSystem = "You are an expert code tutor. Answer the specific question about the provided code with clear explanations, examples, and practical insights. Use markdown formatting for better readability."
)

const truncationMarker = "\n[... content truncated (file too large) ...]\n"

// Builder renders prompts. MaxCodeLength caps the number of code bytes embedded in a
// prompt; zero means no cap.
type Builder struct {
	MaxCodeLength int
}

// Build renders the initial-explanation prompt, or the follow-up prompt when question
// is non-empty.
func (b Builder) Build(sample models.CodeSample, question string) models.PromptDocument {
	if strings.TrimSpace(question) != "" {
		return models.PromptDocument{
			SystemInstruction: followUpSystem,
			UserPrompt:        b.followUp(sample, question),
		}
	}
	return models.PromptDocument{
		SystemInstruction: initialSystem,
		UserPrompt:        b.initial(sample),
	}
}

// Build renders a prompt with no length cap.
func Build(sample models.CodeSample, question string) models.PromptDocument {
	return Builder{}.Build(sample, question)
}

func (b Builder) initial(sample models.CodeSample) string {
	tag := fenceTag(sample)
	lines := withFileLine(
		fmt.Sprintf("Analyze and explain the following %s code in an engaging, educational way.", describe(tag)),
		sample.Path,
	)
	lines = append(lines,
		"",
		"Please provide a comprehensive explanation that includes:",
		"",
		"## 🎯 **What This Code Does**",
		"- High-level purpose and functionality",
		"- Main objectives and use cases",
		"",
		"## 🔧 **Key Components**",
		"- Important functions, classes, and variables",
		"- How different parts work together",
		"",
		"## 📝 **Step-by-Step Breakdown**",
		"- Logical flow and execution order",
		"- Important algorithms or patterns used",
		"",
		"## 💡 **Example Usage & Test Cases**",
		"- Provide realistic input/output examples",
		"- Show what happens with different inputs",
		"- Include edge cases if relevant",
		"",
		"## ⚠️ **Important Notes**",
		"- Potential issues or gotchas",
		"- Best practices and improvements",
		"",
		"## 🚀 **How to Run**",
		runHint(tag),
		"",
		"**Code:**",
		b.fence(tag, sample.Text),
		"",
		"Make the explanation beginner-friendly but comprehensive, with practical examples and clear formatting.",
	)
	return strings.Join(lines, "\n")
}

func (b Builder) followUp(sample models.CodeSample, question string) string {
	tag := fenceTag(sample)
	lines := withFileLine(fmt.Sprintf("Here's the %s code for reference:", describe(tag)), sample.Path)
	lines = append(lines,
		"",
		b.fence(tag, sample.Text),
		"",
		fmt.Sprintf("**Question:** %s", question),
		"",
		"Please provide a detailed answer that includes:",
		"- Direct answer to the question",
		"- Relevant code examples or snippets",
		"- Practical implications or use cases",
		"- Any related concepts that would be helpful",
		"",
		"Use clear formatting with markdown, code blocks, and examples where helpful.",
		"Reference specific line numbers or code sections when relevant.",
	)
	return strings.Join(lines, "\n")
}

// fenceTag is the language written after the opening fence. It is empty when the
// language cannot be determined.
func fenceTag(sample models.CodeSample) string {
	if declared := strings.TrimSpace(sample.DeclaredLanguage); declared != "" {
		return declared
	}
	if lang := language.Detect(sample.Text, sample.Path); lang.IsKnown() {
		return lang.String()
	}
	return ""
}

func describe(tag string) string {
	if tag == "" {
		return "source"
	}
	return tag
}

func runHint(tag string) string {
	switch strings.ToLower(tag) {
	case "java":
		return "- Compilation and execution steps"
	case "python":
		return "- How to execute the script"
	case "c", "cpp":
		return "- Compilation commands and execution"
	default:
		return "- Execution instructions"
	}
}

// withFileLine starts a prompt with its heading, followed by a file reference only when
// a path is known.
func withFileLine(heading, path string) []string {
	lines := []string{heading}
	if path != "" {
		lines = append(lines, fmt.Sprintf("File: `%s`", path))
	}
	return lines
}

func (b Builder) fence(tag, code string) string {
	return "```" + tag + "\n" + b.clip(code) + "\n```"
}

func (b Builder) clip(code string) string {
	if b.MaxCodeLength <= 0 || len(code) <= b.MaxCodeLength {
		return code
	}
	head := b.MaxCodeLength / 2
	for head > 0 && !utf8.RuneStart(code[head]) {
		head--
	}
	tail := len(code) - b.MaxCodeLength/2
	for tail < len(code) && !utf8.RuneStart(code[tail]) {
		tail++
	}
	return code[:head] + truncationMarker + code[tail:]
}
