// Package refdata holds the idempotent "ensure exists" operations the
// pipeline depends on. Seeding is advisory: curator-entered reference data
// is never modified, only missing rows are filled in.
package refdata

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/camberhealth/refpipe/internal/db"
	"github.com/camberhealth/refpipe/internal/model"
	"github.com/camberhealth/refpipe/internal/normalize"
)

// EnsureClient returns the id of the client with the given name, matching
// case-insensitively, creating it with defaults when absent.
func EnsureClient(ctx context.Context, q db.Querier, name string) (int64, error) {
	var id int64
	err := q.QueryRow(ctx,
		`SELECT client_id FROM master.clients WHERE name ILIKE $1 LIMIT 1`,
		name,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("lookup client %q: %w", name, err)
	}

	err = q.QueryRow(ctx,
		`INSERT INTO master.clients (name, slug, status)
		 VALUES ($1, $2, 'active')
		 RETURNING client_id`,
		name, normalize.Slugify(name),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create client %q: %w", name, err)
	}
	return id, nil
}

// EnsurePractice returns the id of the named practice under the client,
// matching case-insensitively, creating it when absent.
func EnsurePractice(ctx context.Context, q db.Querier, clientID int64, name string) (int64, error) {
	var id int64
	err := q.QueryRow(ctx,
		`SELECT practice_id FROM master.practices
		 WHERE client_id = $1 AND name ILIKE $2 LIMIT 1`,
		clientID, name,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("lookup practice %q: %w", name, err)
	}

	err = q.QueryRow(ctx,
		`INSERT INTO master.practices (client_id, name, is_active)
		 VALUES ($1, $2, TRUE)
		 RETURNING practice_id`,
		clientID, name,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create practice %q: %w", name, err)
	}
	return id, nil
}

// SeedReferralCategoryMappings installs the default raw → canonical referral
// mappings for a client, insert-if-absent. Returns the number inserted.
func SeedReferralCategoryMappings(ctx context.Context, q db.Querier, clientID int64) (int64, error) {
	var inserted int64
	for _, seed := range model.DefaultReferralCategorySeeds {
		tag, err := q.Exec(ctx,
			`INSERT INTO master.referral_category_mappings
			     (client_id, source_system, raw_category, canonical_category, notes)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (client_id, source_system, raw_category) DO NOTHING`,
			clientID, model.SourceSystem, seed.Raw, seed.Canonical, seed.Notes,
		)
		if err != nil {
			return inserted, fmt.Errorf("seed referral mapping %q: %w", seed.Raw, err)
		}
		inserted += tag.RowsAffected()
	}
	return inserted, nil
}

// SeedAppointmentTypeMappings installs a client's configured default
// appointment-type mappings, insert-if-absent. Seeds are client-wide
// (NULL practice scope). Returns the number inserted.
func SeedAppointmentTypeMappings(ctx context.Context, q db.Querier, clientID int64, seeds []model.AppointmentTypeMapping) (int64, error) {
	var inserted int64
	for _, seed := range seeds {
		tag, err := q.Exec(ctx,
			`INSERT INTO master.appointment_type_mappings
			     (client_id, practice_id, source_appointment_type,
			      standardized_category, start_date, end_date, notes)
			 VALUES ($1, NULL, $2, $3, $4, $5, $6)
			 ON CONFLICT DO NOTHING`,
			clientID, seed.SourceType, seed.Category, seed.StartDate, seed.EndDate, seed.Notes,
		)
		if err != nil {
			return inserted, fmt.Errorf("seed appointment mapping %q: %w", seed.SourceType, err)
		}
		inserted += tag.RowsAffected()
	}
	return inserted, nil
}
