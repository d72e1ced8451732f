package recordsource

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/rentalops/booking-agent/agent/contract"
)

type PostgresConfig struct {
	DSN string `envconfig:"DSN" split_words:"true" required:"true"`
}

// bookingHistoryRow mirrors the booking_history table: one raw payload per
// historical booking, stored as JSONB by the ingestion collaborator.
type bookingHistoryRow struct {
	bun.BaseModel `bun:"table:booking_history"`

	ID      int64           `bun:"id,pk,autoincrement"`
	Payload json.RawMessage `bun:"payload,notnull"`
}

// PostgresSource reads raw booking payloads from Postgres.
type PostgresSource struct {
	db *bun.DB
}

var _ contractx.RecordSource = (*PostgresSource)(nil)

func NewPostgresSource(cfg PostgresConfig) (*PostgresSource, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	return &PostgresSource{db: db}, nil
}

func (s *PostgresSource) FetchRecords(ctx context.Context, limit int) ([]map[string]any, error) {
	var rows []bookingHistoryRow

	query := s.db.NewSelect().Model(&rows).Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("select booking history: %w", err)
	}

	payloads := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if err := json.Unmarshal(row.Payload, &payload); err != nil {
			return nil, fmt.Errorf("decode booking history row id=%d: %w", row.ID, err)
		}
		payloads = append(payloads, payload)
	}
	return payloads, nil
}

func (s *PostgresSource) Close() error {
	return s.db.Close()
}
