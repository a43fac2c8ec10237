// Package codestats computes rough structural counts over source text.
//
// The counts are regex heuristics, not a parse: functionLike also counts calls and
// control-flow keywords such as if( and while(, and block comments are only seen through
// their opening or continuation markers.
package codestats

import "regexp"

// Statistics are the counts quoted in a heuristic explanation.
type Statistics struct {
	LineCount         int `json:"line_count"`
	CommentLineCount  int `json:"comment_line_count"`
	FunctionLikeCount int `json:"function_like_count"`
	ClassCount        int `json:"class_count"`
	ImportCount       int `json:"import_count"`
}

var (
	lineBreakRe    = regexp.MustCompile(`\r?\n`)
	commentLineRe  = regexp.MustCompile(`^\s*(//|#|/\*|\*)`)
	functionLikeRe = regexp.MustCompile(`\b[A-Za-z_]\w*\(`)
	classRe        = regexp.MustCompile(`\bclass\s+[A-Za-z_]\w*`)
	importRe       = regexp.MustCompile(`#include\b|\b(?:import|using)\b`)
)

// Lines splits text on \n or \r\n. The result always has at least one element.
func Lines(text string) []string {
	return lineBreakRe.Split(text, -1)
}

// Compute derives Statistics from text. It is total: every input, including the empty
// string, yields a result with LineCount >= 1.
func Compute(text string) Statistics {
	lines := Lines(text)
	comments := 0
	for _, line := range lines {
		if commentLineRe.MatchString(line) {
			comments++
		}
	}
	return Statistics{
		LineCount:         len(lines),
		CommentLineCount:  comments,
		FunctionLikeCount: len(functionLikeRe.FindAllStringIndex(text, -1)),
		ClassCount:        len(classRe.FindAllStringIndex(text, -1)),
		ImportCount:       len(importRe.FindAllStringIndex(text, -1)),
	}
}
