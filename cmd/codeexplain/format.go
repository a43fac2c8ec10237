package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"codeexplainer/internal/models"

	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// FormatResult renders an explanation for the terminal.
func FormatResult(result models.ExplanationResult, format OutputFormat) (string, error) {
	switch format {
	case FormatText, "":
		if result.Note != "" {
			return fmt.Sprintf("[%s]\n\n%s", result.Note, result.Body), nil
		}
		return result.Body, nil
	default:
		return formatStructured(result, format)
	}
}

// FormatTree renders a bare listing, indented two spaces per level in text mode.
func FormatTree(nodes []models.TreeNode, format OutputFormat) (string, error) {
	switch format {
	case FormatText, "":
		var b strings.Builder
		writeNodes(&b, nodes, 0)
		return strings.TrimRight(b.String(), "\n"), nil
	default:
		return formatStructured(nodes, format)
	}
}

// FormatRepoTree renders a remote listing. Structured formats keep the owner,
// repo and branch; text mode prints only the listing.
func FormatRepoTree(tree models.RepoTree, format OutputFormat) (string, error) {
	switch format {
	case FormatText, "":
		return FormatTree(tree.Tree, format)
	default:
		return formatStructured(tree, format)
	}
}

func writeNodes(b *strings.Builder, nodes []models.TreeNode, depth int) {
	for _, n := range nodes {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(n.Name)
		if n.Type == models.NodeDir {
			b.WriteString("/")
		}
		b.WriteString("\n")
		writeNodes(b, n.Children, depth+1)
	}
}

func formatStructured(v any, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil
	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}
