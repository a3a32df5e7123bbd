package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/oddsfeed/veribet-scraper/internal/pkg/models"
)

// JSONFile rewrites a file with the cycle's lines as an indented JSON array.
type JSONFile struct {
	path string
}

var _ Sink = (*JSONFile)(nil)

func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

func (s *JSONFile) Write(ctx context.Context, lines []models.BettingLine) error {
	data, err := marshalLines(lines)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	slog.Info("Betting lines saved", "path", s.path, "count", len(lines))
	return nil
}

func (s *JSONFile) Close() error { return nil }

// Stdout prints the cycle's lines as an indented JSON array, one array per
// cycle.
type Stdout struct{}

var _ Sink = (*Stdout)(nil)

func NewStdout() *Stdout {
	return &Stdout{}
}

func (s *Stdout) Write(ctx context.Context, lines []models.BettingLine) error {
	data, err := marshalLines(lines)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(os.Stdout, "%s\n", data)
	return err
}

func (s *Stdout) Close() error { return nil }

// An empty cycle serializes as [], not null.
func marshalLines(lines []models.BettingLine) ([]byte, error) {
	if lines == nil {
		lines = []models.BettingLine{}
	}
	data, err := json.MarshalIndent(lines, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal betting lines: %w", err)
	}
	return data, nil
}
