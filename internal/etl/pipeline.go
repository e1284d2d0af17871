// Package etl sequences the bronze→silver→gold pipeline for one
// (client, practice) scope. Stages run synchronously, each inside its own
// transaction: a later stage's failure never rolls back an earlier stage's
// committed writes, and the caller always receives the row counts completed
// so far.
package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/camberhealth/refpipe/internal/config"
	"github.com/camberhealth/refpipe/internal/model"
)

// Pipeline phases, in execution order.
const (
	PhaseBootstrap    = "bootstrap"
	PhaseCanonicalize = "canonicalize"
	PhaseSummarize    = "summarize"
	PhaseBreakdown    = "breakdown"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the full pipeline: bootstrap → canonicalize → summarize →
// breakdown → report. A stage failure aborts the remaining stages; the
// returned summary carries the counts of every stage that completed.
// Zero canonical facts short-circuits the gold stages and reports a
// non-successful run with a message rather than an error.
func Run(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cfg *config.Config) (*model.RunSummary, error) {
	totalStart := time.Now()

	summary := &model.RunSummary{
		ClientName:   cfg.ClientName,
		PracticeName: cfg.EffectivePracticeName(),
	}

	// Phase 1: Bootstrap reference data.
	log.Info().Str("client", cfg.ClientName).Str("practice", summary.PracticeName).Msg("starting bootstrap")
	bs, err := Bootstrap(ctx, pool, log, cfg)
	if err != nil {
		return summary, &PipelineError{Phase: PhaseBootstrap, Err: err}
	}
	summary.ClientID = bs.ClientID
	summary.PracticeID = bs.PracticeID
	summary.DurationBootstrap = bs.Duration

	// Phase 2: Canonicalize bronze → silver.
	minDate := cfg.MinAppointmentDate(cfg.ClientName)
	log.Info().Str("min_appointment_date", minDate.Format("2006-01-02")).Msg("starting canonicalize")
	cz, err := Canonicalize(ctx, pool, log, bs.ClientID, bs.PracticeID, minDate)
	if err != nil {
		return summary, &PipelineError{Phase: PhaseCanonicalize, Err: err}
	}
	summary.SilverRows = cz.RowsInserted
	summary.DurationCanonicalize = cz.Duration

	if cz.RowsInserted == 0 {
		summary.Success = false
		summary.Message = "no qualifying appointment data found in bronze layer"
		summary.DurationTotal = time.Since(totalStart)
		log.Warn().
			Int64("client_id", bs.ClientID).
			Int64("practice_id", bs.PracticeID).
			Msg("no silver facts created, skipping gold aggregation")
		return summary, nil
	}

	// Phase 3: Monthly summary silver → gold.
	log.Info().Msg("starting summary aggregation")
	sm, err := Summarize(ctx, pool, log, bs.ClientID, bs.PracticeID)
	if err != nil {
		return summary, &PipelineError{Phase: PhaseSummarize, Err: err}
	}
	summary.SummaryRows = sm.RowsInserted
	summary.DurationSummary = sm.Duration

	// Phase 4: Monthly breakdown silver → gold.
	log.Info().Msg("starting breakdown aggregation")
	bd, err := Breakdown(ctx, pool, log, bs.ClientID, bs.PracticeID)
	if err != nil {
		return summary, &PipelineError{Phase: PhaseBreakdown, Err: err}
	}
	summary.BreakdownRows = bd.RowsInserted
	summary.DurationBreakdown = bd.Duration

	summary.Success = true
	summary.DurationTotal = time.Since(totalStart)

	log.Info().
		Int64("silver_rows", summary.SilverRows).
		Int64("summary_rows", summary.SummaryRows).
		Int64("breakdown_rows", summary.BreakdownRows).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("pipeline complete")

	return summary, nil
}
