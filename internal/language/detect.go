// Package language guesses the source language of a snippet from its path and content.
package language

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Language is one of the closed set of languages the explainer knows about.
type Language string

const (
	C          Language = "c"
	CPP        Language = "cpp"
	Java       Language = "java"
	Python     Language = "python"
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
	JSX        Language = "jsx"
	JSON       Language = "json"
	Markdown   Language = "markdown"
	Bash       Language = "bash"
	YAML       Language = "yaml"
	Text       Language = "text"
	Unknown    Language = "unknown"
)

// String returns the wire name of the language.
func (l Language) String() string { return string(l) }

// IsKnown reports whether l names an actual language rather than one of the fallbacks.
func (l Language) IsKnown() bool {
	return l != "" && l != Unknown && l != Text
}

var extensions = map[string]Language{
	".java": Java,
	".py":   Python,
	".c":    C,
	".h":    C,
	".cpp":  CPP,
	".cc":   CPP,
	".cxx":  CPP,
	".hpp":  CPP,
	".hh":   CPP,
	".hxx":  CPP,
	".js":   JavaScript,
	".ts":   TypeScript,
	".tsx":  TSX,
	".jsx":  JSX,
	".json": JSON,
	".md":   Markdown,
	".sh":   Bash,
	".yml":  YAML,
	".yaml": YAML,
}

// FromPath maps a file extension to a language. The second result is false when the
// extension is not in the table.
func FromPath(path string) (Language, bool) {
	if path == "" {
		return Unknown, false
	}
	lang, ok := extensions[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return Unknown, false
	}
	return lang, true
}

type hintSet struct {
	lang  Language
	hints []string
}

// Listed in tie-break order: the first set that reaches the top score wins.
var hintSets = []hintSet{
	{CPP, []string{"#include <iostream", "std::", "using namespace std", "cout <<", "cin >>", "template<", "vector<", "map<"}},
	{C, []string{"#include", "printf", "scanf", "malloc", "int main", "char *", "->"}},
	{Java, []string{"public class", "system.out.println", "import java.", "public static void main", "@override"}},
	{Python, []string{"def ", "import ", "print(", "self", "class ", "async def", "from "}},
}

// Scores returns one point per hint present in text, per candidate language.
func Scores(text string) map[Language]int {
	lower := strings.ToLower(text)
	scores := make(map[Language]int, len(hintSets))
	for _, set := range hintSets {
		score := 0
		for _, hint := range set.hints {
			if strings.Contains(lower, hint) {
				score++
			}
		}
		scores[set.lang] = score
	}
	return scores
}

// Detect guesses the language of text. A recognised path extension wins outright;
// otherwise the hint scores decide, with cpp > c > java > python on ties.
func Detect(text, path string) Language {
	if lang, ok := FromPath(path); ok {
		return lang
	}

	scores := Scores(text)
	best := 0
	for _, score := range scores {
		if score > best {
			best = score
		}
	}
	if best == 0 {
		return Unknown
	}
	for _, set := range hintSets {
		if scores[set.lang] == best {
			return set.lang
		}
	}
	return Unknown
}

var (
	javaClassRe     = regexp.MustCompile(`\bpublic\s+class\b`)
	includeLineRe   = regexp.MustCompile(`(?m)^\s*#include`)
	pythonDefRe     = regexp.MustCompile(`\bdef\s+\w+\(`)
	javaImportRe    = regexp.MustCompile(`(?m)^\s*import java\.`)
	pythonLineDefRe = regexp.MustCompile(`(?m)^\s*def\s+\w+\(`)
	pythonClassRe   = regexp.MustCompile(`(?m)^\s*class\s+\w+:`)
	cppMarkerRes    = []*regexp.Regexp{
		regexp.MustCompile(`\bstd::`),
		regexp.MustCompile(`#include\s*<iostream>`),
		regexp.MustCompile(`cout\s*<<`),
		regexp.MustCompile(`cin\s*>>`),
		regexp.MustCompile(`template\s*<`),
	}
)

// Classify is the content-only fallback used when nothing better is known.
// It never returns Unknown: plain text is the floor.
func Classify(text string) Language {
	switch {
	case javaClassRe.MatchString(text):
		return Java
	case includeLineRe.MatchString(text):
		return C
	case pythonDefRe.MatchString(text):
		return Python
	default:
		return Text
	}
}

// Sniff picks the language of a fetched file, trying the extension table first and
// then a few distinctive content markers.
func Sniff(path, content string) Language {
	if lang, ok := FromPath(path); ok {
		return lang
	}
	lower := strings.ToLower(content)
	for _, re := range cppMarkerRes {
		if re.MatchString(lower) {
			return CPP
		}
	}
	switch {
	case includeLineRe.MatchString(content):
		return C
	case javaImportRe.MatchString(content), strings.Contains(content, "public class "):
		return Java
	case pythonLineDefRe.MatchString(content), pythonClassRe.MatchString(content):
		return Python
	}
	return Text
}
