package main

import (
	"os"
	"os/signal"
	"syscall"

	"codeexplainer/config"
	"codeexplainer/internal/explain"
	"codeexplainer/internal/mcpserver"

	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Serve explain_code and review_code as MCP tools over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := explain.NewEngineFromConfig(config.AppConfig)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return mcpserver.New(engine).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
