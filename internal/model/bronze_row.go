package model

import (
	"time"

	"github.com/google/uuid"
)

// BronzeAppointmentRow is the normalized, DB-ready representation of one raw
// appointment record, scoped to a (client, practice) pair and tagged with the
// load batch that produced it.
type BronzeAppointmentRow struct {
	ClientID        int64
	PracticeID      int64
	LoadBatchID     uuid.UUID
	SourceRowNumber int64

	PatientIDGUID     string
	PatientID         *string
	AppointmentDate   time.Time
	AppointmentType   *string
	AppointmentStatus *string
}

// AppointmentColumns returns the ordered column names for COPY into
// bronze.appointments.
func AppointmentColumns() []string {
	return []string{
		"client_id",
		"practice_id",
		"load_batch_id",
		"source_row_number",
		"patient_id_guid",
		"patient_id",
		"appointment_date",
		"appointment_type",
		"appointment_status",
	}
}

// CopyValues returns the row values in AppointmentColumns() order.
func (r *BronzeAppointmentRow) CopyValues() []any {
	return []any{
		r.ClientID,
		r.PracticeID,
		r.LoadBatchID,
		r.SourceRowNumber,
		r.PatientIDGUID,
		r.PatientID,
		r.AppointmentDate,
		r.AppointmentType,
		r.AppointmentStatus,
	}
}

// BronzeReferralRow is the normalized representation of one raw referral record.
type BronzeReferralRow struct {
	ClientID        int64
	PracticeID      int64
	LoadBatchID     uuid.UUID
	SourceRowNumber int64

	PatientIDGUID      string
	ReferralSourceType *string
	ReferralFirstName  *string
	ReferralLastName   *string
}

// ReferralColumns returns the ordered column names for COPY into bronze.referrals.
func ReferralColumns() []string {
	return []string{
		"client_id",
		"practice_id",
		"load_batch_id",
		"source_row_number",
		"patient_id_guid",
		"referral_source_type",
		"referral_first_name",
		"referral_last_name",
	}
}

// CopyValues returns the row values in ReferralColumns() order.
func (r *BronzeReferralRow) CopyValues() []any {
	return []any{
		r.ClientID,
		r.PracticeID,
		r.LoadBatchID,
		r.SourceRowNumber,
		r.PatientIDGUID,
		r.ReferralSourceType,
		r.ReferralFirstName,
		r.ReferralLastName,
	}
}
