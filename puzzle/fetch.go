// Package puzzle fetches Connections puzzles from the NYT API or loads them
// from local JSON files.
package puzzle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/bk-kiran/NYTimesConnectionsSolver/solver"
)

// Puzzle is one day's board: the 16 tokens plus identifying metadata.
type Puzzle struct {
	Words    []string `json:"words"`
	PuzzleID int      `json:"puzzleId"`
	Date     string   `json:"date"`
}

// ErrPuzzleNotFound tags a 404 from the API, usually a date with no puzzle.
var ErrPuzzleNotFound = errors.New("puzzle: not found")

const defaultBaseURL = "https://www.nytimes.com/svc/connections/v2"

// FetcherConfig configures the API client.
type FetcherConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// Fetcher retrieves puzzles over HTTP with bounded retries.
type Fetcher struct {
	cfg    FetcherConfig
	client *http.Client
	logger *log.Logger
}

// NewFetcher builds the client. The logger may be nil.
func NewFetcher(cfg FetcherConfig, logger *log.Logger) *Fetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	return &Fetcher{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// apiResponse mirrors the fields of the v2 endpoint the engine needs.
type apiResponse struct {
	Status     string `json:"status"`
	ID         int    `json:"id"`
	PrintDate  string `json:"print_date"`
	Categories []struct {
		Cards []struct {
			Content string `json:"content"`
		} `json:"cards"`
	} `json:"categories"`
}

// Fetch loads the puzzle for the given date (YYYY-MM-DD). An empty date
// means today.
func (f *Fetcher) Fetch(ctx context.Context, date string) (*Puzzle, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", date, err)
	}
	url := fmt.Sprintf("%s/%s.json", f.cfg.BaseURL, date)

	var lastErr error
	for attempt := 0; attempt < f.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(2<<uint(attempt-1)) * time.Second
			f.logf("retrying puzzle fetch in %s (attempt %d)", delay, attempt+1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
		p, retryable, err := f.get(ctx, url, date)
		if err == nil {
			return p, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}
	return nil, fmt.Errorf("fetch puzzle after %d attempts: %w", f.cfg.MaxRetries, lastErr)
}

func (f *Fetcher) get(ctx context.Context, url, date string) (p *Puzzle, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Referer", "https://www.nytimes.com/games/connections")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("get puzzle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, fmt.Errorf("%w: no puzzle for %s", ErrPuzzleNotFound, date)
	}
	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return nil, true, fmt.Errorf("puzzle fetch status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("puzzle fetch status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, true, fmt.Errorf("read puzzle response: %w", err)
	}
	var parsed apiResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, false, fmt.Errorf("decode puzzle response: %w", err)
	}
	if parsed.Status != "OK" {
		return nil, false, fmt.Errorf("api returned status %q", parsed.Status)
	}

	words := make([]string, 0, solver.UniverseSize)
	for _, cat := range parsed.Categories {
		for _, card := range cat.Cards {
			if card.Content != "" {
				words = append(words, card.Content)
			}
		}
	}
	if len(words) != solver.UniverseSize {
		return nil, false, fmt.Errorf("expected %d words, got %d", solver.UniverseSize, len(words))
	}

	printDate := parsed.PrintDate
	if printDate == "" {
		printDate = date
	}
	return &Puzzle{Words: words, PuzzleID: parsed.ID, Date: printDate}, false, nil
}

// LoadFile reads a puzzle from a local JSON file, either this package's
// Puzzle shape or a bare {"words": [...]} object.
func LoadFile(path string) (*Puzzle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read puzzle file: %w", err)
	}
	var p Puzzle
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode puzzle file: %w", err)
	}
	if len(p.Words) != solver.UniverseSize {
		return nil, fmt.Errorf("expected %d words, got %d", solver.UniverseSize, len(p.Words))
	}
	return &p, nil
}

func (f *Fetcher) logf(format string, args ...any) {
	if f.logger != nil {
		f.logger.Printf(format, args...)
	}
}
