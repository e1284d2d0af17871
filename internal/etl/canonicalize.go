package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/camberhealth/refpipe/internal/sql"
)

// CanonicalizeResult holds metrics from the bronze→silver transform.
type CanonicalizeResult struct {
	RowsDeleted  int64
	RowsInserted int64
	Duration     time.Duration
}

// Canonicalize rebuilds the scope's silver facts from bronze appointments:
// delete-then-insert in one transaction, one fact per patient with their
// earliest encounter at or after minDate. Zero inserted rows is a valid
// outcome the caller must surface, not an error.
func Canonicalize(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, clientID, practiceID int64, minDate time.Time) (*CanonicalizeResult, error) {
	start := time.Now()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("canonicalize begin: %w", err)
	}
	defer tx.Rollback(ctx)

	delTag, err := tx.Exec(ctx, embedsql.DeleteIntakeFacts, clientID, practiceID)
	if err != nil {
		return nil, fmt.Errorf("canonicalize clear scope: %w", err)
	}

	insTag, err := tx.Exec(ctx, embedsql.InsertIntakeFacts, clientID, practiceID, minDate)
	if err != nil {
		return nil, fmt.Errorf("canonicalize insert facts: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("canonicalize commit: %w", err)
	}

	dur := time.Since(start)
	log.Info().
		Int64("rows_deleted", delTag.RowsAffected()).
		Int64("rows_inserted", insTag.RowsAffected()).
		Str("min_appointment_date", minDate.Format("2006-01-02")).
		Str("duration", dur.String()).
		Msg("canonicalize complete")

	return &CanonicalizeResult{
		RowsDeleted:  delTag.RowsAffected(),
		RowsInserted: insTag.RowsAffected(),
		Duration:     dur,
	}, nil
}
