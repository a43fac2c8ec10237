package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// ServerConfig defines the server configuration.
type ServerConfig struct {
	Port int `mapstructure:"port" yaml:"port"`
}

// BackendConfig defines the generative backend used for AI explanations.
type BackendConfig struct {
	Provider       string  `mapstructure:"provider" yaml:"provider"`
	APIKey         string  `mapstructure:"api_key" yaml:"api_key"`
	Model          string  `mapstructure:"model" yaml:"model"`
	Host           string  `mapstructure:"host" yaml:"host"`
	Temperature    float64 `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens      int     `mapstructure:"max_tokens" yaml:"max_tokens"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// HasCredential reports whether the configured provider has what it needs to be called.
// A missing credential selects heuristic mode; it is never an error.
func (b BackendConfig) HasCredential() bool {
	switch strings.ToLower(b.Provider) {
	case ProviderOllama:
		return strings.TrimSpace(b.Host) != ""
	default:
		return strings.TrimSpace(b.APIKey) != ""
	}
}

// GitHubConfig defines how repository trees and files are fetched.
type GitHubConfig struct {
	APIBase        string `mapstructure:"api_base" yaml:"api_base"`
	RawBase        string `mapstructure:"raw_base" yaml:"raw_base"`
	Token          string `mapstructure:"token" yaml:"token"`
	UserAgent      string `mapstructure:"user_agent" yaml:"user_agent"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// AnalysisConfig defines the analysis parameters.
type AnalysisConfig struct {
	MaxFileReadSize int64 `mapstructure:"max_file_read_size" yaml:"max_file_read_size"`
	MaxPromptLength int   `mapstructure:"max_prompt_length" yaml:"max_prompt_length"`
}

// ExplorerConfig defines which tree entries are hidden from listings.
type ExplorerConfig struct {
	IgnoreDirs       []string `mapstructure:"ignore_dirs" yaml:"ignore_dirs"`
	IgnorePrefixes   []string `mapstructure:"ignore_prefixes" yaml:"ignore_prefixes"`
	IgnoreExtensions []string `mapstructure:"ignore_extensions" yaml:"ignore_extensions"`
}

// LoggingConfig defines the logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// Config is the top-level configuration struct.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Backend  BackendConfig  `mapstructure:"backend" yaml:"backend"`
	GitHub   GitHubConfig   `mapstructure:"github" yaml:"github"`
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	Explorer ExplorerConfig `mapstructure:"explorer" yaml:"explorer"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// AppConfig holds the loaded configuration.
var AppConfig *Config

// DefaultConfigPath is used when no explicit path is given.
const DefaultConfigPath = "config.yaml"

// envPrefix namespaces environment overrides, e.g. CODEEXPLAINER_SERVER_PORT.
const envPrefix = "CODEEXPLAINER"

const (
	defaultOllamaHost  = "http://127.0.0.1:11434"
	defaultOllamaModel = "gemma3:latest"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)

	v.SetDefault("backend.provider", ProviderGemini)
	v.SetDefault("backend.model", "gemini-1.5-flash")
	v.SetDefault("backend.temperature", 0.3)
	v.SetDefault("backend.max_tokens", 1000)
	v.SetDefault("backend.timeout_seconds", 60)

	v.SetDefault("github.api_base", "https://api.github.com")
	v.SetDefault("github.raw_base", "https://raw.githubusercontent.com")
	v.SetDefault("github.user_agent", "codeexplainer")
	v.SetDefault("github.timeout_seconds", 30)

	v.SetDefault("analysis.max_file_read_size", 150000) // 150 KB
	v.SetDefault("analysis.max_prompt_length", 60000)

	v.SetDefault("explorer.ignore_dirs", []string{
		".git", ".vscode", ".idea", "node_modules", "__pycache__", "venv", ".venv",
		"target", "build", "dist", "vendor",
	})
	v.SetDefault("explorer.ignore_prefixes", []string{})
	v.SetDefault("explorer.ignore_extensions", []string{
		".pyc", ".pyo", ".class", ".o", ".so", ".dll", ".exe", ".jar", ".zip", ".gz", ".tar",
		".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".pdf", ".mp3", ".mp4",
	})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stdout")
}

// Load reads the configuration at path. A missing file is not an error: defaults and
// environment overrides are used instead.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The first variable that is set wins.
	_ = v.BindEnv("backend.api_key", envPrefix+"_BACKEND_API_KEY", "GOOGLE_GENERATIVE_AI_API_KEY")
	_ = v.BindEnv("github.token", envPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN")

	if path == "" {
		path = DefaultConfigPath
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}

	// The gemini model default means nothing to a local ollama server.
	if strings.EqualFold(cfg.Backend.Provider, ProviderOllama) {
		if !v.IsSet("backend.host") {
			cfg.Backend.Host = defaultOllamaHost
		}
		if !v.InConfig("backend.model") && os.Getenv(envPrefix+"_BACKEND_MODEL") == "" {
			cfg.Backend.Model = defaultOllamaModel
		}
	}
	return &cfg, nil
}

// LoadConfig loads the configuration into AppConfig.
func LoadConfig(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}
