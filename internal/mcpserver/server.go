// Package mcpserver exposes the explainer to agents as MCP tools over stdio.
package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"codeexplainer/internal/explain"
	"codeexplainer/internal/models"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
)

const (
	serverName    = "codeexplainer"
	serverVersion = "0.1.0"
)

// Server wraps the MCP server and connects it to the explanation engine.
type Server struct {
	mcp    *mcp.Server
	engine *explain.Engine
}

// New creates a new MCP server wired to the given engine.
func New(engine *explain.Engine) *Server {
	s := &Server{
		engine: engine,
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    serverName,
			Version: serverVersion,
		}, nil),
	}
	s.registerTools()
	return s
}

// Run serves on the stdio transport until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	logrus.Info("Starting MCP server on stdio transport")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

type explainCodeArgs struct {
	Code     string `json:"code" jsonschema:"Source code to explain"`
	Language string `json:"language,omitempty" jsonschema:"Language of the code, e.g. c, java or python. Detected when omitted."`
	Path     string `json:"path,omitempty" jsonschema:"File path of the code, used for language detection and run commands"`
	Question string `json:"question,omitempty" jsonschema:"Follow-up question about the code. Omit for a full explanation."`
}

type reviewCodeArgs struct {
	Code     string `json:"code" jsonschema:"Source code to review"`
	Language string `json:"language,omitempty" jsonschema:"Language of the code. Detected when omitted."`
	Path     string `json:"path,omitempty" jsonschema:"File path of the code"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "explain_code",
		Description: "Explain a piece of source code in structured markdown, or answer a follow-up question about it. Falls back to a static summary when no model is available.",
	}, s.explainCode)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "review_code",
		Description: "Review a piece of source code and return an Analysis section and a Recommendations section.",
	}, s.reviewCode)
}

func (s *Server) explainCode(ctx context.Context, req *mcp.CallToolRequest, args explainCodeArgs) (*mcp.CallToolResult, any, error) {
	sample := models.CodeSample{Text: args.Code, DeclaredLanguage: args.Language, Path: args.Path}
	result, err := s.engine.Explain(ctx, sample, args.Question)
	return toolResult(result, err), nil, nil
}

func (s *Server) reviewCode(ctx context.Context, req *mcp.CallToolRequest, args reviewCodeArgs) (*mcp.CallToolResult, any, error) {
	sample := models.CodeSample{Text: args.Code, DeclaredLanguage: args.Language, Path: args.Path}
	result, err := s.engine.Review(ctx, sample)
	return toolResult(result, err), nil, nil
}

func toolResult(result models.ExplanationResult, err error) *mcp.CallToolResult {
	if errors.Is(err, explain.ErrMissingCode) {
		return errorResult("Missing code: pass the source text in the code argument.")
	}
	if err != nil {
		return errorResult(fmt.Sprintf("explanation failed: %v", err))
	}

	text := result.Body
	if result.Note != "" {
		text = fmt.Sprintf("_%s_\n\n%s", result.Note, result.Body)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}
