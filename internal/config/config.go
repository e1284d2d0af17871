package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/camberhealth/refpipe/internal/model"
)

// DefaultMinAppointmentDate is the historical floor applied to clients with
// no configured cutoff override.
const DefaultMinAppointmentDate = "2020-01-01"

// Default calendar span seeded by the bootstrap stage when the config file
// does not specify one.
const (
	DefaultCalendarStartYear = 2020
	DefaultCalendarEndYear   = 2030
)

const dateLayout = "2006-01-02"

// Config holds all runtime configuration for a refpipe run.
type Config struct {
	DSN          string
	ClientName   string
	PracticeName string
	LogFormat    string // "text" or "json"

	// Bronze load inputs.
	AppointmentsPath string
	ReferralsPath    string

	Calendar CalendarConfig          `yaml:"calendar"`
	Clients  map[string]ClientConfig `yaml:"clients"`
}

// CalendarConfig is the year span the monthly time-period calendar must tile.
type CalendarConfig struct {
	StartYear int `yaml:"start_year"`
	EndYear   int `yaml:"end_year"`
}

// ClientConfig is the per-client section of the config file.
type ClientConfig struct {
	MinAppointmentDate      string                       `yaml:"min_appointment_date"`
	AppointmentTypeMappings []AppointmentTypeMappingYAML `yaml:"appointment_type_mappings"`
}

// AppointmentTypeMappingYAML is one default appointment-type mapping as
// written in the config file.
type AppointmentTypeMappingYAML struct {
	SourceType string `yaml:"source_type"`
	Category   string `yaml:"category"`
	StartDate  string `yaml:"start_date"`
	EndDate    string `yaml:"end_date"`
	Notes      string `yaml:"notes"`
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	Calendar CalendarConfig          `yaml:"calendar"`
	Clients  map[string]ClientConfig `yaml:"clients"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	c.Calendar = yc.Calendar
	c.Clients = yc.Clients
	return c.validateClients()
}

// validateClients checks that every per-client override parses: dates must be
// YYYY-MM-DD and mapped categories non-empty.
func (c *Config) validateClients() error {
	for name, cc := range c.Clients {
		if cc.MinAppointmentDate != "" {
			if _, err := time.Parse(dateLayout, cc.MinAppointmentDate); err != nil {
				return fmt.Errorf("client %q: invalid min_appointment_date %q", name, cc.MinAppointmentDate)
			}
		}
		for i, m := range cc.AppointmentTypeMappings {
			if m.SourceType == "" {
				return fmt.Errorf("client %q: mapping %d: source_type is required", name, i)
			}
			if m.Category == "" {
				return fmt.Errorf("client %q: mapping %d: category is required", name, i)
			}
			if _, err := time.Parse(dateLayout, m.StartDate); err != nil {
				return fmt.Errorf("client %q: mapping %d: invalid start_date %q", name, i, m.StartDate)
			}
			if m.EndDate != "" {
				if _, err := time.Parse(dateLayout, m.EndDate); err != nil {
					return fmt.Errorf("client %q: mapping %d: invalid end_date %q", name, i, m.EndDate)
				}
			}
		}
	}
	return nil
}

// MinAppointmentDate returns the encounter-date cutoff for the named client,
// falling back to the documented default when no override exists.
func (c *Config) MinAppointmentDate(clientName string) time.Time {
	if cc, ok := c.Clients[clientName]; ok && cc.MinAppointmentDate != "" {
		if t, err := time.Parse(dateLayout, cc.MinAppointmentDate); err == nil {
			return t
		}
	}
	t, _ := time.Parse(dateLayout, DefaultMinAppointmentDate)
	return t
}

// CalendarSpan returns the configured calendar year range, or the defaults.
func (c *Config) CalendarSpan() (int, int) {
	start, end := c.Calendar.StartYear, c.Calendar.EndYear
	if start == 0 {
		start = DefaultCalendarStartYear
	}
	if end == 0 {
		end = DefaultCalendarEndYear
	}
	return start, end
}

// MappingSeeds returns the parsed default appointment-type mappings for the
// named client. Config validation guarantees the dates parse.
func (c *Config) MappingSeeds(clientName string) []model.AppointmentTypeMapping {
	cc, ok := c.Clients[clientName]
	if !ok {
		return nil
	}
	seeds := make([]model.AppointmentTypeMapping, 0, len(cc.AppointmentTypeMappings))
	for _, m := range cc.AppointmentTypeMappings {
		start, _ := time.Parse(dateLayout, m.StartDate)
		seed := model.AppointmentTypeMapping{
			SourceType: m.SourceType,
			Category:   m.Category,
			StartDate:  start,
			Notes:      m.Notes,
		}
		if m.EndDate != "" {
			end, _ := time.Parse(dateLayout, m.EndDate)
			seed.EndDate = &end
		}
		seeds = append(seeds, seed)
	}
	return seeds
}

// EffectivePracticeName returns the practice the run operates against. When
// no practice is given the client's main practice is assumed, mirroring how
// single-practice clients are onboarded.
func (c *Config) EffectivePracticeName() string {
	if c.PracticeName != "" {
		return c.PracticeName
	}
	return c.ClientName + " Main"
}

// Validate checks required fields for a pipeline run.
func (c *Config) Validate() error {
	if c.ClientName == "" {
		return fmt.Errorf("--client is required")
	}
	start, end := c.CalendarSpan()
	if start > end {
		return fmt.Errorf("calendar start_year %d is after end_year %d", start, end)
	}
	return nil
}

// ValidateWithDSN checks run fields plus the connection string.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or DATABASE_URL is required")
	}
	return nil
}
