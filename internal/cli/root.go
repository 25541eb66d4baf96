// Package cli provides the command-line interface for sopmigrate.
package cli

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/raphaelgruber/sopmigrate-go/internal/config"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose      bool
	modelFlag    string
	providerFlag string
	apiKeyFlag   string
	outputFlag   string

	// Global config and logger, initialized in PersistentPreRunE.
	cfg        config.Config
	logger     *slog.Logger
	logCleanup func() error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sopmigrate",
	Short: "Migrate legacy SOP documents into standardized Word files",
	Long: `Sopmigrate converts messy legacy Standard Operating Procedure documents
(plain text or PDF) into standardized, branded Word documents.

An AI extraction capability pulls title, document ID, department, safety
warnings, equipment and procedure steps out of the raw text; the result
is validated against a strict schema and rendered as a .docx artifact,
together with the capability's self-reported confidence score.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		// .env is optional, same as the environment it mirrors.
		_ = godotenv.Load()

		cfg = config.Load()
		if modelFlag != "" {
			cfg.Model = modelFlag
		}
		if providerFlag != "" {
			cfg.Provider = providerFlag
		}
		if outputFlag != "" {
			cfg.OutputDir = outputFlag
		}
		if apiKeyFlag != "" {
			switch cfg.Provider {
			case config.ProviderAnthropic:
				cfg.AnthropicAPIKey = apiKeyFlag
			default:
				cfg.OpenAIAPIKey = apiKeyFlag
			}
		}
		if verbose {
			cfg.LogLevel = slog.LevelDebug
		}

		logger, logCleanup = config.SetupLogger(cfg.LogFile, cfg.LogLevel)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			_ = logCleanup()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "",
		"extraction model (gpt-4o-mini is fast and cost-effective, gpt-4o is most accurate)")
	rootCmd.PersistentFlags().StringVar(&providerFlag, "provider", "",
		"extraction provider (openai, anthropic, ollama, bedrock)")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "",
		"API key override for the extraction provider")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "",
		"output directory for generated documents")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(samplesCmd)
}
