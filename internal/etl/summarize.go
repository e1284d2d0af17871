package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/camberhealth/refpipe/internal/sql"
)

// AggregateResult holds metrics from a silver→gold aggregation stage.
type AggregateResult struct {
	RowsDeleted  int64
	RowsInserted int64
	Duration     time.Duration
}

// Summarize rebuilds the scope's monthly summary rows: one row per calendar
// month between the scope's first and last qualifying period, with trailing
// three-month average, variance, and year-to-date counts.
func Summarize(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, clientID, practiceID int64) (*AggregateResult, error) {
	return aggregate(ctx, pool, log, clientID, practiceID,
		embedsql.DeleteMonthlySummary, embedsql.InsertMonthlySummary, "summary")
}

// Breakdown rebuilds the scope's monthly breakdown rows: per-period
// referral-category and referral-name distributions with percent-of-total.
func Breakdown(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, clientID, practiceID int64) (*AggregateResult, error) {
	return aggregate(ctx, pool, log, clientID, practiceID,
		embedsql.DeleteMonthlyBreakdown, embedsql.InsertMonthlyBreakdown, "breakdown")
}

func aggregate(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, clientID, practiceID int64, deleteSQL, insertSQL, name string) (*AggregateResult, error) {
	start := time.Now()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s begin: %w", name, err)
	}
	defer tx.Rollback(ctx)

	delTag, err := tx.Exec(ctx, deleteSQL, clientID, practiceID)
	if err != nil {
		return nil, fmt.Errorf("%s clear scope: %w", name, err)
	}

	insTag, err := tx.Exec(ctx, insertSQL, clientID, practiceID)
	if err != nil {
		return nil, fmt.Errorf("%s insert: %w", name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s commit: %w", name, err)
	}

	dur := time.Since(start)
	log.Info().
		Str("stage", name).
		Int64("rows_deleted", delTag.RowsAffected()).
		Int64("rows_inserted", insTag.RowsAffected()).
		Str("duration", dur.String()).
		Msg("aggregation complete")

	return &AggregateResult{
		RowsDeleted:  delTag.RowsAffected(),
		RowsInserted: insTag.RowsAffected(),
		Duration:     dur,
	}, nil
}
