package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bk-kiran/NYTimesConnectionsSolver/embed"
	"github.com/bk-kiran/NYTimesConnectionsSolver/generate"
	"github.com/bk-kiran/NYTimesConnectionsSolver/internal/app"
	"github.com/bk-kiran/NYTimesConnectionsSolver/puzzle"
	"github.com/bk-kiran/NYTimesConnectionsSolver/solver"
)

type cliOptions struct {
	configPath string
	date       string
	puzzlePath string
	words      string
	outputPath string
	noLLM      bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		log.Fatalf("connections-solver: %v", err)
	}
	if err := run(opts); err != nil {
		log.Fatalf("connections-solver: %v", err)
	}
}

func parseFlags() (cliOptions, error) {
	var opts cliOptions
	flag.StringVar(&opts.configPath, "config", "", "Path to config.json (default: ./config.json)")
	flag.StringVar(&opts.date, "date", "", "Puzzle date YYYY-MM-DD to fetch from the NYT API (default: today)")
	flag.StringVar(&opts.puzzlePath, "puzzle", "", "Local puzzle JSON file instead of fetching")
	flag.StringVar(&opts.words, "words", "", "Comma-separated list of the 16 words instead of fetching")
	flag.StringVar(&opts.outputPath, "output", "", "JSON file to write the solution (default: stdout only)")
	flag.BoolVar(&opts.noLLM, "no-llm", false, "Skip the language model source")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [--date YYYY-MM-DD | --puzzle FILE | --words W1,...,W16] [options]\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	opts.configPath = strings.TrimSpace(opts.configPath)
	opts.date = strings.TrimSpace(opts.date)
	opts.puzzlePath = strings.TrimSpace(opts.puzzlePath)
	opts.outputPath = strings.TrimSpace(opts.outputPath)

	sources := 0
	if opts.puzzlePath != "" {
		sources++
	}
	if strings.TrimSpace(opts.words) != "" {
		sources++
	}
	if sources > 1 {
		flag.Usage()
		return opts, errors.New("--puzzle and --words are mutually exclusive")
	}
	return opts, nil
}

func run(opts cliOptions) error {
	cfg, err := app.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := log.New(os.Stderr, "", log.LstdFlags)

	words, err := loadWords(opts, cfg, logger)
	if err != nil {
		return err
	}

	embedder, err := embed.NewOrtEmbedder(cfg.Embedder)
	if err != nil {
		return fmt.Errorf("init embedder: %w", err)
	}
	defer embedder.Close()

	var llm app.LLMSource
	if cfg.LLM.Enabled && !opts.noLLM {
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			logger.Printf("OPENAI_API_KEY not set, skipping llm source")
		} else {
			gen, err := generate.NewLLMGenerator(generate.LLMConfig{
				APIKey:      apiKey,
				BaseURL:     cfg.LLM.BaseURL,
				Model:       cfg.LLM.Model,
				Temperature: cfg.LLM.Temperature,
				MaxTokens:   cfg.LLM.MaxTokens,
				Timeout:     cfg.LLM.Timeout(),
				MaxRetries:  cfg.LLM.MaxRetries,
			}, logger)
			if err != nil {
				return fmt.Errorf("init llm generator: %w", err)
			}
			llm = gen
		}
	}

	pipeline := app.NewPipeline(cfg, embedder, llm, logger)
	result, err := pipeline.Solve(context.Background(), words)
	if err != nil {
		return fmt.Errorf("solve puzzle: %w", err)
	}

	printResult(words, result)

	if opts.outputPath != "" {
		if err := writeResult(opts.outputPath, result); err != nil {
			return err
		}
		fmt.Printf("solution written to %s\n", opts.outputPath)
	}
	return nil
}

func loadWords(opts cliOptions, cfg app.Config, logger *log.Logger) ([]string, error) {
	switch {
	case opts.words != "":
		parts := strings.Split(opts.words, ",")
		words := make([]string, 0, len(parts))
		for _, p := range parts {
			if w := strings.TrimSpace(p); w != "" {
				words = append(words, w)
			}
		}
		return words, nil
	case opts.puzzlePath != "":
		p, err := puzzle.LoadFile(opts.puzzlePath)
		if err != nil {
			return nil, fmt.Errorf("load puzzle file: %w", err)
		}
		return p.Words, nil
	default:
		fetcher := puzzle.NewFetcher(puzzle.FetcherConfig{
			BaseURL:    cfg.Fetcher.BaseURL,
			Timeout:    cfg.Fetcher.Timeout(),
			MaxRetries: cfg.Fetcher.MaxRetries,
		}, logger)
		p, err := fetcher.Fetch(context.Background(), opts.date)
		if err != nil {
			return nil, fmt.Errorf("fetch puzzle: %w", err)
		}
		fmt.Printf("puzzle #%d (%s)\n", p.PuzzleID, p.Date)
		return p.Words, nil
	}
}

func printResult(words []string, result *solver.Result) {
	fmt.Printf("\nboard: %s\n\n", strings.Join(words, ", "))
	for i, g := range result.Groups {
		label := g.CategoryLabel
		if label == "" {
			label = "(no label)"
		}
		fmt.Printf("%d. %s [%s] score=%.3f\n   %s\n", i+1, label, g.Difficulty, g.Score, strings.Join(g.Items, ", "))
		if g.Explanation != "" {
			fmt.Printf("   %s\n", g.Explanation)
		}
	}
	fmt.Printf("\nstate=%s covers=%v resolved=%v\n", result.State, result.CoversUniverse, result.FullyResolved)
	if len(result.Unassigned) > 0 {
		fmt.Printf("unassigned: %s\n", strings.Join(result.Unassigned, ", "))
	}
}

func writeResult(path string, result *solver.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode solution: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write solution: %w", err)
	}
	return nil
}
