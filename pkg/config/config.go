package config

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jdziat/cloud-schedule/pkg/core"
	"github.com/jdziat/cloud-schedule/pkg/monitor"
	"github.com/jdziat/cloud-schedule/pkg/schedule"
	"github.com/jdziat/cloud-schedule/pkg/security"
)

// Config is the root of a schedule file.
type Config struct {
	Monitor   MonitorConfig    `yaml:"monitor"`
	Storage   StorageConfig    `yaml:"storage"`
	Schedules []ScheduleConfig `yaml:"schedules"`
}

// MonitorConfig configures the monitor loop.
type MonitorConfig struct {
	// Tick is a cron spec. Default: "@every 1s"
	Tick string `yaml:"tick"`

	// Policy is one of most-recent, cloud or device. Default: most-recent
	Policy string `yaml:"policy"`

	// MaxAttempts overrides the push attempts per tick when positive.
	MaxAttempts int `yaml:"max_attempts"`
}

// StorageConfig configures persistence.
type StorageConfig struct {
	// Path of the SQLite database. Empty disables persistence.
	Path string `yaml:"path"`
}

// ScheduleConfig describes one schedule.
type ScheduleConfig struct {
	Name string `yaml:"name"`

	// From is the window start and first occurrence.
	From time.Time `yaml:"from"`

	// To is the window end. Zero leaves the window unbounded.
	To time.Time `yaml:"to"`

	// Length is how long each occurrence stays active, in whole seconds.
	Length time.Duration `yaml:"length"`

	// Mask is a raw recurrence mask. Mutually exclusive with Recurrence.
	Mask *uint32 `yaml:"mask,omitempty"`

	Recurrence *RecurrenceConfig `yaml:"recurrence,omitempty"`
}

// RecurrenceConfig is the readable form of a recurrence mask.
type RecurrenceConfig struct {
	// Type is once, every, weekly, monthly or yearly.
	Type string `yaml:"type"`

	// Unit and Count apply to "every".
	Unit  string `yaml:"unit"`
	Count uint32 `yaml:"count"`

	// Days applies to "weekly", e.g. [mon, thu].
	Days []string `yaml:"days"`

	// Day applies to "monthly" and "yearly".
	Day uint8 `yaml:"day"`

	// Month applies to "yearly", 1 for January.
	Month int `yaml:"month"`
}

// Default returns a config with monitor defaults and no schedules.
func Default() *Config {
	return &Config{
		Monitor: MonitorConfig{
			Tick:   monitor.DefaultSpec,
			Policy: monitor.MostRecentWins.String(),
		},
	}
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a YAML config. ${VAR} references in the
// storage path are expanded from the environment.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cloudschedule: parse config: %w", err)
	}
	cfg.Storage.Path = os.ExpandEnv(cfg.Storage.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks monitor settings, schedule names and every descriptor.
func (c *Config) Validate() error {
	if _, err := c.Monitor.Options(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Schedules))
	for i := range c.Schedules {
		s := &c.Schedules[i]
		if err := security.ValidatePropertyName(s.Name); err != nil {
			return fmt.Errorf("schedule %d: %w", i, err)
		}
		if seen[s.Name] {
			return fmt.Errorf("schedule %q: %w", s.Name, core.ErrDuplicateProperty)
		}
		seen[s.Name] = true

		if _, err := s.Descriptor(); err != nil {
			return fmt.Errorf("schedule %q: %w", s.Name, err)
		}
	}
	return nil
}

// Options converts the settings to monitor options.
func (m MonitorConfig) Options() ([]monitor.MonitorOption, error) {
	var opts []monitor.MonitorOption

	if m.Tick != "" {
		if err := monitor.ValidateSpec(m.Tick); err != nil {
			return nil, fmt.Errorf("cloudschedule: monitor tick %q: %w", m.Tick, err)
		}
		opts = append(opts, monitor.WithSpec(m.Tick))
	}

	policy, err := monitor.ParsePolicy(m.Policy)
	if err != nil {
		return nil, err
	}
	opts = append(opts, monitor.WithPolicy(policy))

	if m.MaxAttempts > 0 {
		retry := monitor.DefaultRetryConfig()
		retry.MaxAttempts = m.MaxAttempts
		opts = append(opts, monitor.WithRetry(retry))
	}
	return opts, nil
}

// Descriptor builds the schedule descriptor.
func (s ScheduleConfig) Descriptor() (core.Descriptor, error) {
	from, err := epoch(s.From)
	if err != nil {
		return core.Descriptor{}, fmt.Errorf("from: %w", err)
	}
	to, err := epoch(s.To)
	if err != nil {
		return core.Descriptor{}, fmt.Errorf("to: %w", err)
	}
	if s.Length < 0 || s.Length.Seconds() > math.MaxUint32 {
		return core.Descriptor{}, fmt.Errorf("cloudschedule: length %s out of range", s.Length)
	}
	if s.Length%time.Second != 0 {
		return core.Descriptor{}, fmt.Errorf("cloudschedule: length %s is not a whole number of seconds", s.Length)
	}
	length := uint32(s.Length / time.Second)

	switch {
	case s.Mask != nil && s.Recurrence != nil:
		return core.Descriptor{}, fmt.Errorf("cloudschedule: mask and recurrence are mutually exclusive")
	case s.Mask != nil:
		if to != 0 && from > to {
			return core.Descriptor{}, core.ErrInvalidWindow
		}
		return core.Descriptor{From: from, To: to, Length: length, Mask: *s.Mask}, nil
	case s.Recurrence == nil:
		return schedule.New(from, to, length, schedule.OneShot{})
	}

	r, err := s.Recurrence.recurrence()
	if err != nil {
		return core.Descriptor{}, err
	}
	return schedule.New(from, to, length, r)
}

func (r RecurrenceConfig) recurrence() (schedule.Recurrence, error) {
	switch strings.ToLower(r.Type) {
	case "", "once", "one-shot":
		return schedule.OneShot{}, nil
	case "every", "fixed-delta":
		unit, err := ParseUnit(r.Unit)
		if err != nil {
			return nil, err
		}
		return schedule.FixedDelta{Unit: unit, Count: r.Count}, nil
	case "weekly":
		days := make([]time.Weekday, 0, len(r.Days))
		for _, name := range r.Days {
			day, err := ParseWeekday(name)
			if err != nil {
				return nil, err
			}
			days = append(days, day)
		}
		return schedule.Weekly{Days: schedule.WeekdaySet(days...)}, nil
	case "monthly":
		return schedule.Monthly{Day: r.Day}, nil
	case "yearly":
		if r.Month < 1 || r.Month > 12 {
			return nil, core.ErrInvalidMonth
		}
		return schedule.Yearly{Day: r.Day, Month: uint8(r.Month - 1)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownRecurrence, r.Type)
	}
}

// ParseUnit parses seconds, minutes, hours or days, singular or abbreviated.
func ParseUnit(s string) (core.Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s", "sec", "second", "seconds":
		return core.Seconds, nil
	case "m", "min", "minute", "minutes":
		return core.Minutes, nil
	case "h", "hour", "hours":
		return core.Hours, nil
	case "d", "day", "days":
		return core.Days, nil
	default:
		return 0, fmt.Errorf("%w: %q", core.ErrInvalidUnit, s)
	}
}

var weekdays = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// ParseWeekday accepts English weekday names, full or three-letter.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if len(name) >= 3 {
		if day, ok := weekdays[name[:3]]; ok && strings.HasPrefix(strings.ToLower(day.String()), name) {
			return day, nil
		}
	}
	return 0, fmt.Errorf("cloudschedule: unknown weekday %q", s)
}

func epoch(t time.Time) (uint32, error) {
	if t.IsZero() {
		return 0, nil
	}
	sec := t.Unix()
	if sec < 0 || sec > math.MaxUint32 {
		return 0, fmt.Errorf("cloudschedule: %s outside the 32-bit epoch range", t.Format(time.RFC3339))
	}
	return uint32(sec), nil
}
