// Package main provides the codesphere CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/SoCkEt7/codesphere/cmd/codesphere/config"
	"github.com/SoCkEt7/codesphere/internal/assistant"
	"github.com/SoCkEt7/codesphere/internal/generation"
	"github.com/SoCkEt7/codesphere/internal/logging"
	"github.com/SoCkEt7/codesphere/internal/memory"
)

const version = "1.0.0"

var (
	// Global flags
	verbose bool
	apiKey  string

	// run flags
	runLanguage string
	runOutput   string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "codesphere",
	Short: "codesphere - terminal code-generation assistant",
	Long: `codesphere is a terminal chat assistant for generating code.

Prompts are answered by a hosted completion API when a key is configured,
with static per-language templates as the offline fallback. Recent prompts,
responses and generated files are kept in a bounded session memory and
spliced into follow-up prompts as context.

Run without arguments to start the interactive chat interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip logger init for interactive mode (it has its own UI)
		if cmd.Use == "codesphere" && cmd.CalledAs() == "codesphere" {
			return nil
		}

		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch interactive chat
		return runInteractiveChat()
	},
}

// runCmd executes a single generation request and exits
var runCmd = &cobra.Command{
	Use:   "run [prompt]",
	Short: "Generate code for a single prompt without entering the chat",
	Long: `Runs one generation turn: the prompt goes through language detection,
context enrichment (empty on a fresh process) and the generation backend,
and the resulting code is printed or written to --out.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOnce,
}

// versionCmd prints the version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the codesphere version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("codesphere %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "completion API key (overrides config and environment)")

	runCmd.Flags().StringVar(&runLanguage, "lang", "", "target language (default: detected from the prompt)")
	runCmd.Flags().StringVarP(&runOutput, "out", "o", "", "write the generated code to this file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveAPIKey returns the key to use, flag first, then environment, then config.
func resolveAPIKey(cfg config.Config) string {
	if apiKey != "" {
		return apiKey
	}
	if key := os.Getenv("CODESPHERE_API_KEY"); key != "" {
		return key
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return cfg.APIKey
}

// buildAssistant wires the generation pipeline for one process.
func buildAssistant(cfg config.Config) (*assistant.Assistant, error) {
	templates, err := generation.NewTemplateEngine()
	if err != nil {
		return nil, err
	}

	var client generation.Client
	if key := resolveAPIKey(cfg); key != "" {
		apiCfg := generation.DefaultAPIConfig(key)
		if cfg.Endpoint != "" {
			apiCfg.BaseURL = cfg.Endpoint
		}
		if cfg.Model != "" {
			apiCfg.Model = cfg.Model
		}
		client = generation.NewAPIClientWithConfig(apiCfg)
	}

	return assistant.New(memory.New(), generation.NewGenerator(client, templates)), nil
}

func runOnce(cmd *cobra.Command, args []string) error {
	prompt := args[0]
	for _, arg := range args[1:] {
		prompt += " " + arg
	}

	cfg, _ := config.Load()
	asst, err := buildAssistant(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	language := runLanguage
	if language == "" {
		language = generation.DetectLanguage(prompt)
	}
	logger.Info("generating",
		zap.String("language", language),
		zap.Int("prompt_chars", len(prompt)))

	res := asst.GenerateWithLanguage(ctx, prompt, language)

	if runOutput != "" {
		if err := asst.SaveLast(runOutput); err != nil {
			return err
		}
		logger.Info("wrote output", zap.String("path", runOutput), zap.String("source", string(res.Source)))
		fmt.Printf("Wrote %s (%s, via %s)\n", runOutput, res.Language, res.Source)
		return nil
	}

	fmt.Println(res.Code)
	if res.Source == generation.SourceTemplate {
		fmt.Fprintln(os.Stderr, "note: no API key configured or backend unavailable; used template fallback")
	}
	return nil
}

func main() {
	if ws, err := os.Getwd(); err == nil {
		_ = logging.Initialize(ws)
	}
	defer logging.CloseAll()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
