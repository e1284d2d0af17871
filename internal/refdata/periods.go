package refdata

import (
	"context"
	"fmt"
	"time"

	"github.com/camberhealth/refpipe/internal/db"
)

// MonthPeriodType is the period_type of the monthly calendar the pipeline
// assigns facts into.
const MonthPeriodType = "month"

// EnsureTimePeriods guarantees monthly time periods exist for every month of
// [startYear, endYear], insert-if-absent. Generated periods never overlap
// and tile each year exactly: each period runs from the first to the last
// day of its month. Returns the number of periods inserted.
func EnsureTimePeriods(ctx context.Context, q db.Querier, startYear, endYear int) (int64, error) {
	var inserted int64
	for year := startYear; year <= endYear; year++ {
		for month := time.January; month <= time.December; month++ {
			start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
			end := start.AddDate(0, 1, -1)
			label := fmt.Sprintf("%04d-%02d", year, int(month))

			tag, err := q.Exec(ctx,
				`INSERT INTO master.time_periods
				     (period_type, start_date, end_date, label, year, month)
				 VALUES ($1, $2, $3, $4, $5, $6)
				 ON CONFLICT (period_type, start_date, end_date) DO NOTHING`,
				MonthPeriodType, start, end, label, year, int(month),
			)
			if err != nil {
				return inserted, fmt.Errorf("ensure period %s: %w", label, err)
			}
			inserted += tag.RowsAffected()
		}
	}
	return inserted, nil
}
