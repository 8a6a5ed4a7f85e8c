package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/cognicore/hanzimine/internal/source"
	"github.com/cognicore/hanzimine/pkg/hanzimine/config"
	"github.com/cognicore/hanzimine/pkg/hanzimine/progress"
)

var (
	// Run configuration, loaded before any subcommand runs
	cfg *config.Config
	obs progress.Observer

	configPath  string
	inputFormat string
	inputQuery  string
	quiet       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hanzimine",
		Short: "Unsupervised token extraction for unsegmented classical Chinese",
		Long: `Extracts candidate words from a corpus without a dictionary using cohesion
and branch entropy scores, segments text with the results, and measures how
strongly the segmented tokens co-occur.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML run configuration")
	flags.StringVar(&inputFormat, "format", "", "Input format: text, html, jsonl or sqlite (default: by extension)")
	flags.StringVar(&inputQuery, "query", source.DefaultQuery, "Query selecting one document per row from a SQLite input")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Do not log progress")

	rootCmd.AddCommand(createCleanCmd())
	rootCmd.AddCommand(createExtractCmd())
	rootCmd.AddCommand(createSegmentCmd())
	rootCmd.AddCommand(createCooccurCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func setup() error {
	if configPath == "" {
		cfg = config.DefaultConfig()
	} else {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if quiet {
		obs = progress.Nop
	} else {
		lo := progress.NewLogObserver()
		log.Printf("[%s] hanzimine run started", lo.RunID)
		obs = lo
	}
	return nil
}

// readInput loads a corpus from path in the format chosen on the command line
func readInput(path string) string {
	format, err := source.ParseFormat(inputFormat, path)
	if err != nil {
		log.Fatalf("input %s: %v", path, err)
	}
	text, err := source.Load(context.Background(), path, format, inputQuery)
	if err != nil {
		log.Fatalf("load input: %v", err)
	}
	return text
}

func writeOutput(path, text string) {
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		log.Fatalf("write output: %v", err)
	}
}
