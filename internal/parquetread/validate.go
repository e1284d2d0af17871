package parquetread

import (
	"fmt"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// ValidateAppointmentSchema checks that an appointment export contains the
// columns canonicalization depends on.
func ValidateAppointmentSchema(schema *parquet.Schema) error {
	return requireColumns(schema, "patient_id_guid", "appointment_date")
}

// ValidateReferralSchema checks that a referral export can be joined to
// appointments by patient.
func ValidateReferralSchema(schema *parquet.Schema) error {
	return requireColumns(schema, "patient_id_guid")
}

func requireColumns(schema *parquet.Schema, required ...string) error {
	columns := make(map[string]bool)
	for _, field := range schema.Fields() {
		columns[strings.ToLower(field.Name())] = true
	}
	for _, col := range required {
		if !columns[col] {
			return fmt.Errorf("missing required column: %s", col)
		}
	}
	return nil
}
