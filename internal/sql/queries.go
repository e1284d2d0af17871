// Package sql holds the embedded schema migrations and the set-based
// transform statements the pipeline stages execute.
package sql

import "embed"

// Migrations contains the schema DDL, applied in filename order.
//
//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/insert_intake_facts.sql
var InsertIntakeFacts string

//go:embed queries/insert_monthly_summary.sql
var InsertMonthlySummary string

//go:embed queries/insert_monthly_breakdown.sql
var InsertMonthlyBreakdown string

// Scope deletes for the full-replace pattern. Every delete and insert is
// filtered on both scope keys; that filter is what isolates one client's
// run from another's data.
const (
	DeleteIntakeFacts = `DELETE FROM silver.intake_facts
 WHERE client_id = $1 AND practice_id = $2`

	DeleteMonthlySummary = `DELETE FROM gold.intake_monthly_summary
 WHERE client_id = $1 AND practice_id = $2`

	DeleteMonthlyBreakdown = `DELETE FROM gold.intake_monthly_breakdown
 WHERE client_id = $1 AND practice_id = $2`

	DeleteBronzeAppointments = `DELETE FROM bronze.appointments
 WHERE client_id = $1 AND practice_id = $2`

	DeleteBronzeReferrals = `DELETE FROM bronze.referrals
 WHERE client_id = $1 AND practice_id = $2`
)
