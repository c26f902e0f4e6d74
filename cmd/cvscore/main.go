// Package main implements cvscore, an offline resume scoring tool.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/cv-analyzer/internal/config"
	"alfredoptarigan/cv-analyzer/internal/logger"
	"alfredoptarigan/cv-analyzer/internal/services"
)

var rootCmd = &cobra.Command{
	Use:           "cvscore",
	Short:         "Score resumes without running the API",
	Long:          "cvscore parses PDF, DOCX and TXT resumes, scores each section and matches them against job keyword lists.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	catalogPath string
	threshold   float64
	verbose     bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Path to a job catalog YAML file (default: embedded catalog)")
	rootCmd.PersistentFlags().Float64Var(&threshold, "threshold", -1, "Minimum word overlap for fuzzy job title matching (default: JOB_MATCH_THRESHOLD)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// newAnalyzer applies the flag overrides on top of the environment config.
func newAnalyzer() (services.Analyzer, *zap.Logger, error) {
	cfg := config.Load().Analysis
	if catalogPath != "" {
		cfg.CatalogPath = catalogPath
	}
	if threshold >= 0 {
		cfg.JobMatchThreshold = threshold
	}

	log := zap.NewNop()
	if verbose {
		var err error
		if log, err = logger.New(false, true); err != nil {
			return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	analyzer, err := services.NewAnalyzerFromConfig(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return analyzer, log, nil
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
