package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/camberhealth/refpipe/internal/config"
	"github.com/camberhealth/refpipe/internal/refdata"
)

// BootstrapResult holds the identities and counts resolved during bootstrap.
type BootstrapResult struct {
	ClientID      int64
	PracticeID    int64
	PeriodsSeeded int64
	ReferralSeeds int64
	ApptTypeSeeds int64
	Duration      time.Duration
}

// Bootstrap guarantees the reference data a run depends on: client and
// practice identity, the monthly calendar, and advisory default mappings.
// Everything runs in one transaction; a failure leaves the store untouched
// and aborts the run.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cfg *config.Config) (*BootstrapResult, error) {
	start := time.Now()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrap begin: %w", err)
	}
	defer tx.Rollback(ctx)

	clientID, err := refdata.EnsureClient(ctx, tx, cfg.ClientName)
	if err != nil {
		return nil, fmt.Errorf("bootstrap client: %w", err)
	}

	practiceID, err := refdata.EnsurePractice(ctx, tx, clientID, cfg.EffectivePracticeName())
	if err != nil {
		return nil, fmt.Errorf("bootstrap practice: %w", err)
	}

	startYear, endYear := cfg.CalendarSpan()
	periods, err := refdata.EnsureTimePeriods(ctx, tx, startYear, endYear)
	if err != nil {
		return nil, fmt.Errorf("bootstrap calendar: %w", err)
	}

	refSeeds, err := refdata.SeedReferralCategoryMappings(ctx, tx, clientID)
	if err != nil {
		return nil, fmt.Errorf("bootstrap referral mappings: %w", err)
	}

	apptSeeds, err := refdata.SeedAppointmentTypeMappings(ctx, tx, clientID, cfg.MappingSeeds(cfg.ClientName))
	if err != nil {
		return nil, fmt.Errorf("bootstrap appointment mappings: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("bootstrap commit: %w", err)
	}

	dur := time.Since(start)
	log.Info().
		Int64("client_id", clientID).
		Int64("practice_id", practiceID).
		Int64("periods_seeded", periods).
		Int64("referral_mapping_seeds", refSeeds).
		Int64("appointment_mapping_seeds", apptSeeds).
		Str("duration", dur.String()).
		Msg("bootstrap complete")

	return &BootstrapResult{
		ClientID:      clientID,
		PracticeID:    practiceID,
		PeriodsSeeded: periods,
		ReferralSeeds: refSeeds,
		ApptTypeSeeds: apptSeeds,
		Duration:      dur,
	}, nil
}
