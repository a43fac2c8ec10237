package main

import (
	"codeexplainer/config"
	"codeexplainer/logging"

	"github.com/spf13/cobra"
)

var (
	// configPath is the CLI --config flag value
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "codeexplain",
	Short: "Explain source code with an LLM, or heuristically without one",
	Long: `codeexplain explains local files and GitHub repositories.

With a Gemini API key (GOOGLE_GENERATIVE_AI_API_KEY) or an Ollama host configured,
explanations come from the model. Without one, or when the model call fails, a
static summary of the code is produced instead.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath, "Path to the YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// loadConfig runs before every command. Logs never go to stdout from the CLI so
// command output stays machine-readable.
func loadConfig(cmd *cobra.Command, args []string) error {
	if err := config.LoadConfig(configPath); err != nil {
		return err
	}
	logging.InitLogger(logging.StdoutReserved(), logging.Verbose(verbose))
	return nil
}
