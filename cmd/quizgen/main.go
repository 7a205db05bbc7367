package main

import (
	"fmt"
	"os"

	"utmequiz/internal/app"
	"utmequiz/internal/catalog"
	"utmequiz/internal/question"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose     bool
	catalogFile string
	expected    int

	logger *zap.Logger
	cat    *catalog.Catalog
)

var rootCmd = &cobra.Command{
	Use:   "quizgen",
	Short: "Parse, validate and publish plain-text question banks",
	Long: `quizgen turns plain-text question banks (four options A-D and one answer
letter per question) into static quiz pages.

Typical run:
  quizgen validate ./questt validation-report.json
  quizgen generate --questt-dir ./questt --output-dir ./site --period 3 --day-range 5-6`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := app.LoadConfig()
		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		var err error
		logger, err = app.NewLogger(cfg.AppEnv, level)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		path := catalogFile
		if path == "" {
			path = cfg.CatalogFile
		}
		cat, err = catalog.Load(path)
		if err != nil {
			return err
		}
		if expected <= 0 {
			expected = cfg.ExpectedQuestions
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "YAML subject/cluster catalog (default: built-in, or CATALOG_FILE)")
	rootCmd.PersistentFlags().IntVar(&expected, "expected", 0, "questions expected per file (default: EXPECTED_QUESTIONS or 35)")

	rootCmd.AddCommand(parseCmd, validateCmd, generateCmd, collectPrevCmd, metadataCmd)
}

func newParser() *question.Parser {
	return question.NewParser(cat, expected)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
