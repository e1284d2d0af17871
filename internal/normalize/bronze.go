package normalize

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/camberhealth/refpipe/internal/model"
)

// ToBronzeAppointmentRow converts a Parquet-read appointment export row into
// a DB-ready bronze row. Rows without a patient GUID or a parseable
// appointment date are rejected; the loader counts and logs them.
func ToBronzeAppointmentRow(row *model.AppointmentExportRow, clientID, practiceID int64, batchID uuid.UUID, rowNum int64) (*model.BronzeAppointmentRow, error) {
	guid := CleanPatientGUID(row.PatientIDGUID)
	if guid == "" {
		return nil, fmt.Errorf("missing patient_id_guid")
	}

	date := ParseDate(row.AppointmentDate)
	if date == nil {
		return nil, fmt.Errorf("unparseable appointment_date %q", row.AppointmentDate)
	}

	return &model.BronzeAppointmentRow{
		ClientID:          clientID,
		PracticeID:        practiceID,
		LoadBatchID:       batchID,
		SourceRowNumber:   rowNum,
		PatientIDGUID:     guid,
		PatientID:         optStr(row.PatientID),
		AppointmentDate:   *date,
		AppointmentType:   optStr(row.AppointmentType),
		AppointmentStatus: optStr(row.AppointmentStatus),
	}, nil
}

// ToBronzeReferralRow converts a Parquet-read referral export row into a
// DB-ready bronze row. Only a missing patient GUID rejects the row; blank
// source types are kept and resolve to the missing category downstream.
func ToBronzeReferralRow(row *model.ReferralExportRow, clientID, practiceID int64, batchID uuid.UUID, rowNum int64) (*model.BronzeReferralRow, error) {
	guid := CleanPatientGUID(row.PatientIDGUID)
	if guid == "" {
		return nil, fmt.Errorf("missing patient_id_guid")
	}

	return &model.BronzeReferralRow{
		ClientID:           clientID,
		PracticeID:         practiceID,
		LoadBatchID:        batchID,
		SourceRowNumber:    rowNum,
		PatientIDGUID:      guid,
		ReferralSourceType: optStr(row.SourceType),
		ReferralFirstName:  optStr(row.FirstName),
		ReferralLastName:   optStr(row.LastName),
	}, nil
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
