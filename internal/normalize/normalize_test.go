package normalize

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/camberhealth/refpipe/internal/model"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2025-03-15", "2025-03-15"},
		{"03/15/2025", "2025-03-15"},
		{"3/5/2025", "2025-03-05"},
		{"2025/03/15", "2025-03-15"},
		{"March 15, 2025", "2025-03-15"},
		{"2025-03-15T09:30:00", "2025-03-15"},
		{"2025-03-15 09:30:00", "2025-03-15"},
		{"  2025-03-15  ", "2025-03-15"},
	}
	for _, c := range cases {
		got := ParseDate(c.in)
		if got == nil {
			t.Errorf("ParseDate(%q) = nil", c.in)
			continue
		}
		if got.Format("2006-01-02") != c.want {
			t.Errorf("ParseDate(%q) = %v, want %s", c.in, got, c.want)
		}
	}

	for _, in := range []string{"", "  ", "not a date", "2025-13-45"} {
		if got := ParseDate(in); got != nil {
			t.Errorf("ParseDate(%q) = %v, want nil", in, got)
		}
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Wall Street Orthodontics", "wall_street_orthodontics"},
		{"  Lakeside Dental  ", "lakeside_dental"},
		{"Smith & Jones, DDS", "smith_jones_dds"},
		{"---", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestJoinName(t *testing.T) {
	cases := []struct{ first, last, want string }{
		{"Mary", "Smith", "Mary Smith"},
		{"", "Smith", "Smith"},
		{"Mary", "", "Mary"},
		{"", "", ""},
		{"  Mary  ", "  Smith  ", "Mary Smith"},
	}
	for _, c := range cases {
		if got := JoinName(c.first, c.last); got != c.want {
			t.Errorf("JoinName(%q, %q) = %q, want %q", c.first, c.last, got, c.want)
		}
	}
}

func TestCleanPatientGUID(t *testing.T) {
	cases := []struct{ in, want string }{
		{"{ABC-123}", "ABC-123"},
		{"ABC-123", "ABC-123"},
		{"  {ABC-123}  ", "ABC-123"},
		{"{ ABC-123 }", "ABC-123"},
		{"", ""},
		{"{}", ""},
	}
	for _, c := range cases {
		if got := CleanPatientGUID(c.in); got != c.want {
			t.Errorf("CleanPatientGUID(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestToBronzeAppointmentRow(t *testing.T) {
	batch := uuid.New()
	row := &model.AppointmentExportRow{
		PatientIDGUID:     "{P-001}",
		PatientID:         "1001",
		AppointmentDate:   "03/15/2025",
		AppointmentType:   "New Patient Exam",
		AppointmentStatus: "Completed",
	}
	got, err := ToBronzeAppointmentRow(row, 1, 2, batch, 7)
	if err != nil {
		t.Fatalf("ToBronzeAppointmentRow: %v", err)
	}
	if got.PatientIDGUID != "P-001" {
		t.Errorf("guid = %q, want P-001", got.PatientIDGUID)
	}
	want := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.AppointmentDate.Equal(want) {
		t.Errorf("date = %v, want %v", got.AppointmentDate, want)
	}
	if got.ClientID != 1 || got.PracticeID != 2 || got.SourceRowNumber != 7 {
		t.Errorf("scope = (%d,%d,%d)", got.ClientID, got.PracticeID, got.SourceRowNumber)
	}
	if got.AppointmentType == nil || *got.AppointmentType != "New Patient Exam" {
		t.Errorf("appointment type = %v", got.AppointmentType)
	}

	_, err = ToBronzeAppointmentRow(&model.AppointmentExportRow{
		PatientIDGUID:   "",
		AppointmentDate: "2025-03-15",
	}, 1, 2, batch, 1)
	if err == nil {
		t.Error("expected reject for missing guid")
	}

	_, err = ToBronzeAppointmentRow(&model.AppointmentExportRow{
		PatientIDGUID:   "P-002",
		AppointmentDate: "soon",
	}, 1, 2, batch, 1)
	if err == nil {
		t.Error("expected reject for unparseable date")
	}
}

func TestToBronzeReferralRow(t *testing.T) {
	batch := uuid.New()
	got, err := ToBronzeReferralRow(&model.ReferralExportRow{
		PatientIDGUID: "P-001",
		SourceType:    "Doctor",
		FirstName:     "Mary",
		LastName:      "Smith",
	}, 1, 2, batch, 3)
	if err != nil {
		t.Fatalf("ToBronzeReferralRow: %v", err)
	}
	if got.ReferralSourceType == nil || *got.ReferralSourceType != "Doctor" {
		t.Errorf("source type = %v", got.ReferralSourceType)
	}

	// Blank source type survives; it resolves to the missing category later.
	got, err = ToBronzeReferralRow(&model.ReferralExportRow{PatientIDGUID: "P-002"}, 1, 2, batch, 4)
	if err != nil {
		t.Fatalf("ToBronzeReferralRow blank source: %v", err)
	}
	if got.ReferralSourceType != nil {
		t.Errorf("blank source type should be nil, got %v", got.ReferralSourceType)
	}

	if _, err := ToBronzeReferralRow(&model.ReferralExportRow{}, 1, 2, batch, 5); err == nil {
		t.Error("expected reject for missing guid")
	}
}
