package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cognicore/hanzimine/pkg/hanzimine/config"
	"github.com/cognicore/hanzimine/pkg/hanzimine/cooccur"
	"github.com/cognicore/hanzimine/pkg/hanzimine/corpus"
	"github.com/cognicore/hanzimine/pkg/hanzimine/report"
	"github.com/cognicore/hanzimine/pkg/hanzimine/score"
)

// createCleanCmd creates the clean subcommand
func createCleanCmd() *cobra.Command {
	var (
		comments    string
		punctuation bool
		remove      []string
		mergeDicts  []string
		nfc         bool
	)

	cmd := &cobra.Command{
		Use:   "clean [input] [output]",
		Short: "Clean a raw corpus",
		Long:  `Removes comments, punctuation and unwanted scripts, merges character variants and whitespace`,
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			f := cmd.Flags()
			if f.Changed("comments") {
				cfg.Clean.Comments = comments
			}
			if f.Changed("punctuation") {
				cfg.Clean.Punctuation = punctuation
			}
			if f.Changed("remove") {
				cfg.Clean.Remove = remove
			}
			if f.Changed("merge-dict") {
				cfg.Clean.MergeDicts = mergeDicts
			}
			if f.Changed("nfc") {
				cfg.Clean.NFC = nfc
			}
			if err := cfg.Validate(); err != nil {
				log.Fatalf("%v", err)
			}

			comp, err := cfg.Loader().Load()
			if err != nil {
				log.Fatalf("%v", err)
			}

			cleaned, err := cleanText(readInput(args[0]), cfg.Clean, comp.Merge, obs)
			if err != nil {
				log.Fatalf("clean: %v", err)
			}
			writeOutput(args[1], cleaned)
		},
	}

	cmd.Flags().StringVar(&comments, "comments", "#", "Comment header; the rest of the line is dropped")
	cmd.Flags().BoolVar(&punctuation, "punctuation", true, "Remove punctuation")
	cmd.Flags().StringSliceVar(&remove, "remove", nil, "Character classes to remove: Korean, Alphabet, Numbers")
	cmd.Flags().StringSliceVar(&mergeDicts, "merge-dict", nil, "Character merge dictionary files, applied in order")
	cmd.Flags().BoolVar(&nfc, "nfc", false, "Normalize to Unicode NFC")
	return cmd
}

// createExtractCmd creates the extract subcommand
func createExtractCmd() *cobra.Command {
	var (
		minFreq   int64
		minWindow int
		maxWindow int
		order     string
		yamlPath  string
	)

	cmd := &cobra.Command{
		Use:   "extract [input] [report]",
		Short: "Extract candidate tokens with cohesion and branch entropy scores",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			f := cmd.Flags()
			if f.Changed("min-freq") {
				cfg.Extract.MinFreq = minFreq
			}
			if f.Changed("min-window") {
				cfg.Extract.MinWindow = minWindow
			}
			if f.Changed("max-window") {
				cfg.Extract.MaxWindow = maxWindow
			}
			if f.Changed("order") {
				cfg.Extract.Order = order
			}
			if err := cfg.Validate(); err != nil {
				log.Fatalf("%v", err)
			}

			c := corpus.New(readInput(args[0]))
			if yamlPath != "" {
				err := report.ToFile(yamlPath, func(w io.Writer) error {
					return c.Export(w, corpus.FormatYAML)
				})
				if err != nil {
					log.Fatalf("export corpus: %v", err)
				}
			}

			scores, err := extractScores(c, cfg.Extract, obs)
			if err != nil {
				log.Fatalf("extract: %v", err)
			}
			kind, err := score.ParseKind(cfg.Extract.Order)
			if err != nil {
				log.Fatalf("%v", err)
			}
			rows, err := scores.Report(args[1], kind)
			if err != nil {
				log.Fatalf("write report: %v", err)
			}
			log.Printf("%d tokens written to %s", rows, args[1])
		},
	}

	cmd.Flags().Int64Var(&minFreq, "min-freq", 5, "Minimum token frequency")
	cmd.Flags().IntVar(&minWindow, "min-window", 2, "Minimum token length in characters")
	cmd.Flags().IntVar(&maxWindow, "max-window", 8, "Maximum token length in characters")
	cmd.Flags().StringVar(&order, "order", score.KindCohesion.String(), "Score field the report is sorted by")
	cmd.Flags().StringVar(&yamlPath, "corpus-yaml", "", "Also write the document/phrase list as YAML")
	return cmd
}

// createSegmentCmd creates the segment subcommand
func createSegmentCmd() *cobra.Command {
	var (
		method      string
		cutoff      float64
		dict        string
		gramSize    int
		verbose     bool
		keywordOnly bool
		trainPath   string
	)

	cmd := &cobra.Command{
		Use:   "segment [input] [output]",
		Short: "Segment text by extracted scores, a dictionary or fixed-size grams",
		Long: `Segments text line by line. Bracketed output (the default) marks tokens
in place; use --keyword-only to get space-separated tokens for cooccur.`,
		Args: cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			f := cmd.Flags()
			if f.Changed("method") {
				cfg.Segment.Method = method
			}
			if f.Changed("cutoff") {
				cfg.Segment.Cutoff = cutoff
			}
			if f.Changed("dict") {
				cfg.Segment.Dict = dict
				if !f.Changed("method") {
					cfg.Segment.Method = config.MethodDict
				}
			}
			if f.Changed("gram-size") {
				cfg.Segment.GramSize = gramSize
			}
			if f.Changed("verbose") {
				cfg.Segment.Verbose = verbose
			}
			if f.Changed("keyword-only") {
				cfg.Segment.KeywordOnly = keywordOnly
			}
			if err := cfg.Validate(); err != nil {
				log.Fatalf("%v", err)
			}
			if !tokenized(cfg.Segment) {
				log.Printf("Warning: %s output is bracketed and cannot be read by cooccur; use --keyword-only for that", cfg.Segment.Method)
			}

			text := readInput(args[0])
			seg := segmenter{cfg: cfg.Segment, obs: obs}
			switch cfg.Segment.Method {
			case config.MethodDict:
				comp, err := cfg.Loader().Load()
				if err != nil {
					log.Fatalf("%v", err)
				}
				seg.tokens = comp.Tokens
			case config.MethodGram:
			default:
				training := text
				if trainPath != "" {
					training = readInput(trainPath)
				}
				scores, err := extractScores(corpus.New(training), cfg.Extract, obs)
				if err != nil {
					log.Fatalf("extract: %v", err)
				}
				seg.scores = scores
			}

			out, err := seg.run(text)
			if err != nil {
				log.Fatalf("segment: %v", err)
			}
			writeOutput(args[1], out)
		},
	}

	cmd.Flags().StringVar(&method, "method", score.KindCohesion.String(), "Score field, dict or gram")
	cmd.Flags().Float64Var(&cutoff, "cutoff", 0, "Minimum score of a usable token")
	cmd.Flags().StringVar(&dict, "dict", "", "Token dictionary file; implies --method dict")
	cmd.Flags().IntVar(&gramSize, "gram-size", 2, "Gram size for --method gram")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Append scores to recognized tokens")
	cmd.Flags().BoolVar(&keywordOnly, "keyword-only", false, "Only output recognized tokens, space separated")
	cmd.Flags().StringVar(&trainPath, "train", "", "Corpus to extract scores from (default: the input)")
	return cmd
}

// createCooccurCmd creates the cooccur subcommand
func createCooccurCmd() *cobra.Command {
	var (
		freqCutoff  int64
		method      string
		scoreCutoff float64
		pairing     string
		outDir      string
	)

	cmd := &cobra.Command{
		Use:   "cooccur [segmented input] [target...]",
		Short: "Report tokens co-occurring with each target",
		Long:  `Reads space-separated tokens, as written by segment --keyword-only or --method gram`,
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			f := cmd.Flags()
			if f.Changed("cutoff") {
				cfg.Cooccur.Cutoff = freqCutoff
			}
			if f.Changed("method") {
				cfg.Cooccur.Method = method
			}
			if f.Changed("score-cutoff") {
				cfg.Cooccur.ScoreCutoff = scoreCutoff
			}
			if f.Changed("pairing") {
				cfg.Cooccur.Pairing = pairing
			}
			if err := cfg.Validate(); err != nil {
				log.Fatalf("%v", err)
			}

			q, err := quantify(readInput(args[0]), cfg.Cooccur, obs)
			if err != nil {
				log.Fatalf("cooccur: %v", err)
			}

			m, err := cooccur.ParseMethod(cfg.Cooccur.Method)
			if err != nil {
				log.Fatalf("%v", err)
			}
			for _, target := range args[1:] {
				if outDir == "" {
					if _, err := q.WriteExport(os.Stdout, target, m, cfg.Cooccur.ScoreCutoff); err != nil {
						log.Fatalf("report %s: %v", target, err)
					}
					continue
				}
				path := filepath.Join(outDir, fmt.Sprintf("%s.tsv", target))
				rows, err := q.Export(path, target, m, cfg.Cooccur.ScoreCutoff)
				if err != nil {
					log.Fatalf("report %s: %v", target, err)
				}
				log.Printf("%s: %d partners written to %s", target, rows, path)
			}
		},
	}

	cmd.Flags().Int64Var(&freqCutoff, "cutoff", cooccur.DefaultFreqCutoff, "Minimum token frequency")
	cmd.Flags().StringVar(&method, "method", cooccur.MethodTScore.String(), "Score used to filter and rank partners")
	cmd.Flags().Float64Var(&scoreCutoff, "score-cutoff", cooccur.DefaultScoreCutoff, "Minimum score of a reported partner")
	cmd.Flags().StringVar(&pairing, "pairing", cooccur.PairingFirstSeen.String(), "Pair accumulation: first-seen or symmetric")
	cmd.Flags().StringVar(&outDir, "output-dir", "", "Write one <target>.tsv per target instead of stdout")
	return cmd
}
