package sink

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/oddsfeed/veribet-scraper/internal/pkg/config"
	"github.com/oddsfeed/veribet-scraper/internal/pkg/models"
)

// Postgres appends each cycle's flat betting lines to a betting_lines table.
type Postgres struct {
	db *sql.DB
}

var _ Sink = (*Postgres)(nil)

// NewPostgres opens the connection, verifies it and creates the schema.
func NewPostgres(cfg *config.PostgresConfig) (*Postgres, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	s := &Postgres{db: db}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("PostgreSQL sink initialized")
	return s, nil
}

func (s *Postgres) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS betting_lines (
		id SERIAL PRIMARY KEY,
		sport_league VARCHAR(100) NOT NULL,
		event_date_utc VARCHAR(40) NOT NULL,
		team1 VARCHAR(200) NOT NULL,
		team2 VARCHAR(200) NOT NULL,
		period VARCHAR(100) NOT NULL,
		line_type VARCHAR(20) NOT NULL,
		price VARCHAR(50) NOT NULL,
		side VARCHAR(200) NOT NULL,
		team VARCHAR(200) NOT NULL,
		spread DOUBLE PRECISION NOT NULL DEFAULT 0,
		pitcher VARCHAR(200) NOT NULL DEFAULT '',
		scraped_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_betting_lines_event_date ON betting_lines(event_date_utc);
	CREATE INDEX IF NOT EXISTS idx_betting_lines_line_type ON betting_lines(line_type);
	`

	_, err := s.db.ExecContext(ctx, query)
	return err
}

func (s *Postgres) Write(ctx context.Context, lines []models.BettingLine) error {
	if len(lines) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO betting_lines
			(sport_league, event_date_utc, team1, team2, period, line_type, price, side, team, spread, pitcher)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range lines {
		if _, err := stmt.ExecContext(ctx,
			l.SportLeague, l.EventDateUTC, l.Team1, l.Team2, l.Period,
			string(l.LineType), l.Price, l.Side, l.Team, l.Spread, l.Pitcher,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert betting line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit betting lines: %w", err)
	}
	slog.Info("Betting lines stored in postgres", "count", len(lines))
	return nil
}

func (s *Postgres) Close() error {
	return s.db.Close()
}
