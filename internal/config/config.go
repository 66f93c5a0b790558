package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full service configuration loaded from TOML
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Identity IdentityConfig `toml:"identity"`
	Venue    VenueConfig    `toml:"venue"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig configures the PostgreSQL connection pool
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN builds a lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig configures the logger sink and level
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig configures the Prometheus endpoint
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// IdentityConfig configures the identity service client
type IdentityConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// VenueConfig describes the single venue this service schedules
type VenueConfig struct {
	// Timezone is the IANA zone the venue's wall clock lives in.
	Timezone string `toml:"timezone"`

	SlotGranularityMinutes int     `toml:"slot_granularity_minutes"`
	HourlyRate             float64 `toml:"hourly_rate"`
	TaxRate                float64 `toml:"tax_rate"`

	Hours WeekSchedule `toml:"hours"`
}

// WeekSchedule holds the venue operating hours per weekday
type WeekSchedule struct {
	Monday    DayHours `toml:"monday"`
	Tuesday   DayHours `toml:"tuesday"`
	Wednesday DayHours `toml:"wednesday"`
	Thursday  DayHours `toml:"thursday"`
	Friday    DayHours `toml:"friday"`
	Saturday  DayHours `toml:"saturday"`
	Sunday    DayHours `toml:"sunday"`
}

// ForWeekday returns the hours for the given weekday
func (w WeekSchedule) ForWeekday(d time.Weekday) DayHours {
	switch d {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DayHours{IsOpen: false}
	}
}

// DayHours is one weekday's operating window in venue-local wall time
type DayHours struct {
	IsOpen bool   `toml:"is_open"`
	Open   string `toml:"open"`  // "HH:MM"
	Close  string `toml:"close"` // "HH:MM"
}

// OpenClock parses the opening time into hour and minute
func (d DayHours) OpenClock() (hour, minute int, err error) {
	return parseClock(d.Open)
}

// CloseClock parses the closing time into hour and minute
func (d DayHours) CloseClock() (hour, minute int, err error) {
	return parseClock(d.Close)
}

func parseClock(s string) (int, int, error) {
	// "24:00" means closing at midnight
	if s == "24:00" {
		return 24, 0, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("config: invalid clock time %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}

// Load reads and validates the configuration file
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if cfg.Venue.Timezone == "" {
		return nil, fmt.Errorf("config: venue.timezone is required")
	}
	if cfg.Venue.SlotGranularityMinutes <= 0 {
		return nil, fmt.Errorf("config: venue.slot_granularity_minutes must be positive")
	}
	if cfg.Venue.TaxRate < 0 {
		return nil, fmt.Errorf("config: venue.tax_rate must not be negative")
	}

	return &cfg, nil
}
