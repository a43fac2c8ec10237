package main

import (
	"fmt"
	"os"

	"codeexplainer/config"
	"codeexplainer/internal/files"
	"codeexplainer/internal/github"
	"codeexplainer/internal/repotree"

	"github.com/spf13/cobra"
)

var (
	treeFormat string
	treeToken  string
	treeAll    bool
)

var treeCmd = &cobra.Command{
	Use:   "tree <dir|github-url>",
	Short: "Print the file tree of a local directory or a GitHub repository",
	Long: `Print the file tree of a local directory or a GitHub repository.

A GitHub URL may name a branch with /tree/<branch>; otherwise the default branch
is used. owner/repo shorthand is accepted when no local directory has that name.

Examples:
  codeexplain tree .
  codeexplain tree https://github.com/golang/example/tree/master
  codeexplain tree --format json golang/example`,
	Args: cobra.ExactArgs(1),
	RunE: runTree,
}

func init() {
	treeCmd.Flags().StringVar(&treeFormat, "format", string(FormatText), "Output format (text, json, yaml)")
	treeCmd.Flags().StringVar(&treeToken, "token", "", "GitHub token (defaults to GITHUB_TOKEN)")
	treeCmd.Flags().BoolVar(&treeAll, "all", false, "Do not hide ignored directories and files")
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	target := args[0]
	filter := repotree.FilterFromConfig()
	if treeAll {
		filter = nil
	}

	var output string
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		nodes, err := files.LocalTree(target, filter)
		if err != nil {
			return err
		}
		if output, err = FormatTree(nodes, OutputFormat(treeFormat)); err != nil {
			return err
		}
	} else {
		client := github.NewClient(config.AppConfig.GitHub, filter)
		tree, err := client.FetchTree(cmd.Context(), target, treeToken)
		if err != nil {
			return err
		}
		if output, err = FormatRepoTree(tree, OutputFormat(treeFormat)); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
