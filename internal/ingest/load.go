// Package ingest loads practice-management Parquet exports into the bronze
// layer. Loads are full-replace per (client, practice) scope: the delete and
// COPY run in one transaction, so readers never see a half-loaded scope.
package ingest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/camberhealth/refpipe/internal/db"
	"github.com/camberhealth/refpipe/internal/model"
	"github.com/camberhealth/refpipe/internal/normalize"
	"github.com/camberhealth/refpipe/internal/parquetread"
	embedsql "github.com/camberhealth/refpipe/internal/sql"
)

const readBatchSize = 1024

// LoadAppointments streams an appointment export into bronze.appointments,
// replacing the scope's prior rows. Rows without a patient GUID or a
// parseable date are rejected with a warning and counted.
func LoadAppointments(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, clientID, practiceID int64, path string) (*model.LoadSummary, error) {
	reader, err := parquetread.Open[model.AppointmentExportRow](path)
	if err != nil {
		return nil, fmt.Errorf("load appointments open: %w", err)
	}
	defer reader.Close()

	if err := parquetread.ValidateAppointmentSchema(reader.Schema()); err != nil {
		return nil, fmt.Errorf("load appointments validate: %w", err)
	}

	batchID := uuid.New()
	convert := func(row *model.AppointmentExportRow, rowNum int64) (*model.BronzeAppointmentRow, error) {
		return normalize.ToBronzeAppointmentRow(row, clientID, practiceID, batchID, rowNum)
	}

	return copyLoad(ctx, pool, log, batchID, loadTarget[model.AppointmentExportRow, *model.BronzeAppointmentRow]{
		table:     pgx.Identifier{"bronze", "appointments"},
		columns:   model.AppointmentColumns(),
		deleteSQL: embedsql.DeleteBronzeAppointments,
		scope:     [2]int64{clientID, practiceID},
		reader:    reader,
		convert:   convert,
	})
}

// LoadReferrals streams a referral export into bronze.referrals, replacing
// the scope's prior rows. Blank source types are kept; they resolve to the
// missing category during canonicalization.
func LoadReferrals(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, clientID, practiceID int64, path string) (*model.LoadSummary, error) {
	reader, err := parquetread.Open[model.ReferralExportRow](path)
	if err != nil {
		return nil, fmt.Errorf("load referrals open: %w", err)
	}
	defer reader.Close()

	if err := parquetread.ValidateReferralSchema(reader.Schema()); err != nil {
		return nil, fmt.Errorf("load referrals validate: %w", err)
	}

	batchID := uuid.New()
	convert := func(row *model.ReferralExportRow, rowNum int64) (*model.BronzeReferralRow, error) {
		return normalize.ToBronzeReferralRow(row, clientID, practiceID, batchID, rowNum)
	}

	return copyLoad(ctx, pool, log, batchID, loadTarget[model.ReferralExportRow, *model.BronzeReferralRow]{
		table:     pgx.Identifier{"bronze", "referrals"},
		columns:   model.ReferralColumns(),
		deleteSQL: embedsql.DeleteBronzeReferrals,
		scope:     [2]int64{clientID, practiceID},
		reader:    reader,
		convert:   convert,
	})
}

// loadTarget bundles everything copyLoad needs for one bronze table.
type loadTarget[E any, B db.CopyRow] struct {
	table     pgx.Identifier
	columns   []string
	deleteSQL string
	scope     [2]int64
	reader    *parquetread.Reader[E]
	convert   func(*E, int64) (B, error)
}

// copyLoad runs the delete-then-COPY load inside one transaction, with a
// producer goroutine feeding normalized rows through a channel-backed
// CopyFromSource.
func copyLoad[E any, B db.CopyRow](ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, batchID uuid.UUID, t loadTarget[E, B]) (*model.LoadSummary, error) {
	start := time.Now()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("load begin: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, t.deleteSQL, t.scope[0], t.scope[1])
	if err != nil {
		return nil, fmt.Errorf("load clear scope: %w", err)
	}
	rowsReplaced := tag.RowsAffected()

	ch := make(chan B, readBatchSize)
	errCh := make(chan error, 1)

	var rowsRead, rowsRejected int64

	// Producer: read Parquet → normalize → push to channel.
	go func() {
		defer close(ch)
		buf := make([]E, readBatchSize)
		var rowNum int64

		for {
			n, readErr := t.reader.Read(buf)
			for i := 0; i < n; i++ {
				rowNum++
				rowsRead++

				row, convErr := t.convert(&buf[i], rowNum)
				if convErr != nil {
					rowsRejected++
					log.Warn().Err(convErr).Int64("row", rowNum).Msg("row rejected")
					continue
				}

				select {
				case ch <- row:
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				}
			}
			if readErr == io.EOF {
				break
			}
			if readErr != nil {
				errCh <- fmt.Errorf("read parquet at row %d: %w", rowNum, readErr)
				return
			}
		}
		errCh <- nil
	}()

	source := db.NewChannelSource(ch)
	rowsLoaded, copyErr := tx.CopyFrom(ctx, t.table, t.columns, source)

	// Wait for the producer before inspecting its counters.
	prodErr := <-errCh
	if prodErr != nil {
		return nil, fmt.Errorf("load producer: %w", prodErr)
	}
	if copyErr != nil {
		return nil, fmt.Errorf("load copy: %w", copyErr)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("load commit: %w", err)
	}

	dur := time.Since(start)
	log.Info().
		Str("table", t.table.Sanitize()).
		Int64("rows_read", rowsRead).
		Int64("rows_loaded", rowsLoaded).
		Int64("rows_rejected", rowsRejected).
		Int64("rows_replaced", rowsReplaced).
		Str("duration", dur.String()).
		Msg("bronze load complete")

	return &model.LoadSummary{
		LoadBatchID:  batchID.String(),
		RowsRead:     rowsRead,
		RowsLoaded:   rowsLoaded,
		RowsRejected: rowsRejected,
		RowsReplaced: rowsReplaced,
		Duration:     dur,
	}, nil
}
