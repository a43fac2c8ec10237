package prompt

import (
	"fmt"
	"strings"

	"codeexplainer/internal/models"
)

const reviewSystem = "You are a senior software engineer performing a code review. Follow the requested output format exactly and do not add anything outside it."

// BuildReview renders the single-shot review prompt. The model is told to answer with
// exactly two sections, Analysis and Recommendations; nothing checks that it did.
func (b Builder) BuildReview(sample models.CodeSample) models.PromptDocument {
	tag := fenceTag(sample)
	lines := withFileLine(fmt.Sprintf("Review the following %s code.", describe(tag)), sample.Path)
	lines = append(lines,
		"",
		"Respond with a single fenced markdown block containing exactly these two sections:",
		"",
		"```markdown",
		"## Analysis",
		"- <what the code does, how it is structured, and any defects you find>",
		"",
		"## Recommendations",
		"- <concrete, actionable changes, most important first>",
		"```",
		"",
		"Formatting rules (follow them verbatim):",
		"- Do not use bold, italics, or any other emphasis markup.",
		"- Use only hyphen-prefixed lists; no numbered lists and no other bullet characters.",
		"- Wrap every identifier, keyword, file name, and other technical term in backticks.",
		"- Do not add headings other than Analysis and Recommendations.",
		"",
		"Code:",
		b.fence(tag, sample.Text),
	)
	return models.PromptDocument{
		SystemInstruction: reviewSystem,
		UserPrompt:        strings.Join(lines, "\n"),
	}
}

// BuildReview renders a review prompt with no length cap.
func BuildReview(sample models.CodeSample) models.PromptDocument {
	return Builder{}.BuildReview(sample)
}
