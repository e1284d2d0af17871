package model

// AppointmentExportRow mirrors the Parquet schema of a practice-management
// appointment export. Dates arrive as strings in assorted formats and are
// parsed during normalization.
type AppointmentExportRow struct {
	PatientIDGUID     string `parquet:"patient_id_guid"`
	PatientID         string `parquet:"patient_id,optional"`
	AppointmentDate   string `parquet:"appointment_date"`
	AppointmentType   string `parquet:"appointment_type_description,optional"`
	AppointmentStatus string `parquet:"appointment_status_description,optional"`
}

// ReferralExportRow mirrors the Parquet schema of a practice-management
// referral export. At most one referral per patient survives
// canonicalization; extras are ignored deterministically.
type ReferralExportRow struct {
	PatientIDGUID string `parquet:"patient_id_guid"`
	SourceType    string `parquet:"referred_in_by_type_description,optional"`
	FirstName     string `parquet:"referred_in_by_first_name,optional"`
	LastName      string `parquet:"referred_in_by_last_name,optional"`
}
