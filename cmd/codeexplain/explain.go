package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"codeexplainer/config"
	"codeexplainer/internal/explain"
	"codeexplainer/internal/files"
	"codeexplainer/internal/models"

	"github.com/spf13/cobra"
)

var (
	explainLanguage string
	explainQuestion string
	explainFormat   string
	reviewLanguage  string
	reviewFormat    string
)

var explainCmd = &cobra.Command{
	Use:   "explain <file>",
	Short: "Explain a local source file",
	Long: `Explain a local source file.

Examples:
  codeexplain explain main.c
  codeexplain explain --question "Why is the buffer 256 bytes?" main.c
  codeexplain explain --format json app.py`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

var reviewCmd = &cobra.Command{
	Use:   "review <file>",
	Short: "Review a local source file",
	Long: `Review a local source file and print an Analysis and a Recommendations section.

Examples:
  codeexplain review Main.java`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func init() {
	explainCmd.Flags().StringVarP(&explainLanguage, "language", "l", "", "Language of the file (detected when omitted)")
	explainCmd.Flags().StringVarP(&explainQuestion, "question", "q", "", "Ask a follow-up question instead of a full explanation")
	explainCmd.Flags().StringVar(&explainFormat, "format", string(FormatText), "Output format (text, json, yaml)")
	reviewCmd.Flags().StringVarP(&reviewLanguage, "language", "l", "", "Language of the file (detected when omitted)")
	reviewCmd.Flags().StringVar(&reviewFormat, "format", string(FormatText), "Output format (text, json, yaml)")
	rootCmd.AddCommand(explainCmd, reviewCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	return runEngine(cmd, args[0], explainLanguage, OutputFormat(explainFormat),
		func(ctx context.Context, engine *explain.Engine, sample models.CodeSample) (models.ExplanationResult, error) {
			return engine.Explain(ctx, sample, explainQuestion)
		})
}

func runReview(cmd *cobra.Command, args []string) error {
	return runEngine(cmd, args[0], reviewLanguage, OutputFormat(reviewFormat),
		func(ctx context.Context, engine *explain.Engine, sample models.CodeSample) (models.ExplanationResult, error) {
			return engine.Review(ctx, sample)
		})
}

type engineCall func(ctx context.Context, engine *explain.Engine, sample models.CodeSample) (models.ExplanationResult, error)

func runEngine(cmd *cobra.Command, path, lang string, format OutputFormat, call engineCall) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}
	text, err := files.ReadFileContent(absPath, config.AppConfig.Analysis.MaxFileReadSize)
	if err != nil {
		return err
	}

	engine, err := explain.NewEngineFromConfig(config.AppConfig)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	sample := models.CodeSample{Text: text, DeclaredLanguage: lang, Path: filepath.ToSlash(path)}
	result, err := call(ctx, engine, sample)
	if err != nil {
		return err
	}

	output, err := FormatResult(result, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
