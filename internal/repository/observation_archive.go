package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"MacroPull/internal/domain/models"
	drepo "MacroPull/internal/domain/repository"
)

// ClickHouseArchive implements Archive for ClickHouse. Only raw fetched
// observations are stored; derived analyses are not persisted.
type ClickHouseArchive struct {
	db    *sql.DB
	table string
}

// NewClickHouseArchive creates a ClickHouse observation archive.
func NewClickHouseArchive(db *sql.DB, table string) drepo.Archive {
	return &ClickHouseArchive{db: db, table: table}
}

func (a *ClickHouseArchive) Init(ctx context.Context) error {
	q := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		series     LowCardinality(String),
		date       Date,
		value      Float64,
		fetched_at DateTime DEFAULT now()
	) ENGINE = ReplacingMergeTree(fetched_at)
	ORDER BY (series, date)`, a.table)
	_, err := a.db.ExecContext(ctx, q)
	return err
}

// StoreObservations inserts one fetch window in a single multi-row statement.
// ReplacingMergeTree dedupes re-fetched points by (series, date).
func (a *ClickHouseArchive) StoreObservations(ctx context.Context, seriesID string, obs []models.Observation) error {
	if len(obs) == 0 {
		return nil
	}
	now := time.Now()
	values := make([]string, 0, len(obs))
	args := make([]interface{}, 0, len(obs)*4)
	for _, o := range obs {
		values = append(values, "(?, ?, ?, ?)")
		args = append(args, seriesID, o.Date, o.Value, now)
	}
	q := fmt.Sprintf("INSERT INTO %s (series, date, value, fetched_at) VALUES %s",
		a.table, strings.Join(values, ","))
	_, err := a.db.ExecContext(ctx, q, args...)
	return err
}

func (a *ClickHouseArchive) Health(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

func (a *ClickHouseArchive) Close() error {
	return nil // connection owned by pkg/clickhouse client
}
