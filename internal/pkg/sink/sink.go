// Package sink delivers each cycle's betting lines to the configured
// outputs. Sinks receive the flat record list once per cycle and keep no
// derived state.
package sink

import (
	"context"
	"errors"
	"log/slog"

	"github.com/oddsfeed/veribet-scraper/internal/pkg/models"
)

// Sink accepts one cycle's ordered betting lines.
type Sink interface {
	Write(ctx context.Context, lines []models.BettingLine) error
	Close() error
}

// Multi fans a cycle's lines out to several sinks. One sink failing is
// logged and does not stop delivery to the others.
type Multi struct {
	sinks []Sink
}

func NewMulti(sinks ...Sink) *Multi {
	return &Multi{sinks: sinks}
}

func (m *Multi) Write(ctx context.Context, lines []models.BettingLine) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Write(ctx, lines); err != nil {
			slog.Warn("Sink write failed", "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Multi) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
