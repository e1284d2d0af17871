package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFromFile_Valid(t *testing.T) {
	path := writeConfig(t, `
calendar:
  start_year: 2023
  end_year: 2026
clients:
  Lakeside Dental:
    min_appointment_date: "2023-06-01"
    appointment_type_mappings:
      - source_type: "New Patient Exam"
        category: "New Patient"
        start_date: "2023-01-01"
      - source_type: "NP Consult"
        category: "New Patient"
        start_date: "2023-01-01"
        end_date: "2024-12-31"
        notes: "retired label"
`)

	var c Config
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	start, end := c.CalendarSpan()
	if start != 2023 || end != 2026 {
		t.Errorf("calendar span = %d..%d, want 2023..2026", start, end)
	}
	got := c.MinAppointmentDate("Lakeside Dental")
	want := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("MinAppointmentDate = %v, want %v", got, want)
	}
	seeds := c.MappingSeeds("Lakeside Dental")
	if len(seeds) != 2 {
		t.Fatalf("expected 2 mapping seeds, got %d", len(seeds))
	}
	if seeds[0].EndDate != nil {
		t.Errorf("first seed should be open-ended")
	}
	if seeds[1].EndDate == nil || seeds[1].EndDate.Year() != 2024 {
		t.Errorf("second seed end date = %v, want 2024-12-31", seeds[1].EndDate)
	}
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, "clients: {}\n")

	var c Config
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	start, end := c.CalendarSpan()
	if start != DefaultCalendarStartYear || end != DefaultCalendarEndYear {
		t.Errorf("calendar span = %d..%d, want defaults", start, end)
	}
	got := c.MinAppointmentDate("Unknown Client")
	if got.Format("2006-01-02") != DefaultMinAppointmentDate {
		t.Errorf("MinAppointmentDate = %v, want %s", got, DefaultMinAppointmentDate)
	}
	if seeds := c.MappingSeeds("Unknown Client"); seeds != nil {
		t.Errorf("expected nil seeds for unconfigured client, got %v", seeds)
	}
}

func TestLoadFromFile_InvalidCutoffDate(t *testing.T) {
	path := writeConfig(t, `
clients:
  Bad Client:
    min_appointment_date: "06/01/2023"
`)

	var c Config
	if err := c.LoadFromFile(path); err == nil {
		t.Fatal("expected error for invalid min_appointment_date")
	}
}

func TestLoadFromFile_MappingMissingCategory(t *testing.T) {
	path := writeConfig(t, `
clients:
  Bad Client:
    appointment_type_mappings:
      - source_type: "New Patient Exam"
        start_date: "2023-01-01"
`)

	var c Config
	if err := c.LoadFromFile(path); err == nil {
		t.Fatal("expected error for mapping without category")
	}
}

func TestLoadFromFile_MappingBadStartDate(t *testing.T) {
	path := writeConfig(t, `
clients:
  Bad Client:
    appointment_type_mappings:
      - source_type: "New Patient Exam"
        category: "New Patient"
        start_date: "January 1 2023"
`)

	var c Config
	if err := c.LoadFromFile(path); err == nil {
		t.Fatal("expected error for unparseable start_date")
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	var c Config
	if err := c.LoadFromFile("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestEffectivePracticeName(t *testing.T) {
	c := Config{ClientName: "Lakeside Dental"}
	if got := c.EffectivePracticeName(); got != "Lakeside Dental Main" {
		t.Errorf("EffectivePracticeName = %q", got)
	}
	c.PracticeName = "Lakeside North"
	if got := c.EffectivePracticeName(); got != "Lakeside North" {
		t.Errorf("EffectivePracticeName = %q", got)
	}
}

func TestValidate(t *testing.T) {
	c := Config{}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for missing client")
	}
	c.ClientName = "Lakeside Dental"
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := c.ValidateWithDSN(); err == nil {
		t.Fatal("expected error for missing DSN")
	}
	c.Calendar = CalendarConfig{StartYear: 2026, EndYear: 2020}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for inverted calendar span")
	}
}
