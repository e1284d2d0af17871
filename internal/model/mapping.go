package model

import "time"

// AppointmentTypeMapping is a parsed default mapping from a raw appointment
// type label to a standardized category, valid within [StartDate, EndDate].
// A nil EndDate means the window is open-ended. Seeds are always client-wide;
// practice-scoped overrides are entered by curators, not seeded.
type AppointmentTypeMapping struct {
	SourceType string
	Category   string
	StartDate  time.Time
	EndDate    *time.Time
	Notes      string
}
