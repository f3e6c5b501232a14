package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/production-scheduler/pkg/core/allocator/criteria"
	"github.com/jakechorley/production-scheduler/pkg/core/calendar"
)

const (
	configFileBase = "scheduler_config"

	defaultCapacityCacheTTL    = 5 * time.Minute
	defaultCacheRefreshSpec    = "@every 5m"
	defaultPlanningHorizonDays = 30
	defaultBufferRatio         = 0.20
	defaultMinGapMinutes       = 15
	defaultServerAddr          = ":8080"
)

// EngineConfig tunes the scheduling engine
type EngineConfig struct {
	BufferRatio            *float64 `yaml:"bufferRatio,omitempty" validate:"omitempty,gt=0"`
	MinOperationGapMinutes *int     `yaml:"minOperationGapMinutes,omitempty" validate:"omitempty,gt=0"`
	EnforceRequiredSkills  bool     `yaml:"enforceRequiredSkills,omitempty"`
	// Timezone due dates are interpreted in, e.g. "Europe/London" (local time when empty)
	Timezone string `yaml:"timezone,omitempty"`
}

// WorkCenterCalendar overrides the opening rule stored for a work center
type WorkCenterCalendar struct {
	WorkCenterID string  `yaml:"workCenterID" validate:"required"`
	RRule        string  `yaml:"rrule" validate:"required"`
	ShiftHours   float64 `yaml:"shiftHours" validate:"gt=0"`
}

// Blackout is a maintenance window. An empty WorkCenterID blocks every work center.
type Blackout struct {
	WorkCenterID string    `yaml:"workCenterID,omitempty"`
	Start        time.Time `yaml:"start" validate:"required"`
	End          time.Time `yaml:"end" validate:"required,gtfield=Start"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// PublishConfig configures where schedules are published
type PublishConfig struct {
	SpreadsheetID string `yaml:"spreadsheetID,omitempty"`
	NotifyEmail   string `yaml:"notifyEmail,omitempty" validate:"omitempty,email"`
	GmailUserID   string `yaml:"gmailUserID,omitempty"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL         string               `yaml:"databaseURL" validate:"required"`
	RedisURL            string               `yaml:"redisURL,omitempty"`
	CapacityCacheTTL    time.Duration        `yaml:"capacityCacheTTL,omitempty" validate:"gte=0"`
	CacheRefreshSpec    string               `yaml:"cacheRefreshSpec,omitempty"`
	PlanningHorizonDays int                  `yaml:"planningHorizonDays,omitempty" validate:"gte=0"`
	Engine              EngineConfig         `yaml:"engine,omitempty"`
	WorkCenterCalendars []WorkCenterCalendar `yaml:"workCenterCalendars,omitempty" validate:"dive"`
	Blackouts           []Blackout           `yaml:"blackouts,omitempty" validate:"dive"`
	Server              ServerConfig         `yaml:"server,omitempty"`
	Publish             PublishConfig        `yaml:"publish,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from scheduler_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration for an environment.
// For example, env="test" will look for "scheduler_config.test.yaml".
// Variables from a .env file in the working directory are loaded first.
func LoadWithEnv(env string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := cfg.Location(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(cfg.WorkCenterCalendars))
	for i, wc := range cfg.WorkCenterCalendars {
		if seen[wc.WorkCenterID] {
			return fmt.Errorf("duplicate work center %q in workCenterCalendars[%d]", wc.WorkCenterID, i)
		}
		seen[wc.WorkCenterID] = true

		if err := wc.Rule().Validate(); err != nil {
			return fmt.Errorf("invalid calendar in workCenterCalendars[%d]: %w", i, err)
		}
	}

	return nil
}

// Rule converts the calendar override into a calendar rule
func (c WorkCenterCalendar) Rule() calendar.Rule {
	return calendar.Rule{RRule: c.RRule, ShiftHours: c.ShiftHours}
}

// CalendarOverrides indexes the calendar overrides by work center
func (c *Config) CalendarOverrides() map[string]calendar.Rule {
	rules := make(map[string]calendar.Rule, len(c.WorkCenterCalendars))
	for _, wc := range c.WorkCenterCalendars {
		rules[wc.WorkCenterID] = wc.Rule()
	}
	return rules
}

// BlackoutWindows converts the configured blackouts for the blackout criterion
func (c *Config) BlackoutWindows() []criteria.Blackout {
	windows := make([]criteria.Blackout, 0, len(c.Blackouts))
	for _, b := range c.Blackouts {
		windows = append(windows, criteria.Blackout{
			WorkCenterID: b.WorkCenterID,
			Start:        b.Start,
			End:          b.End,
		})
	}
	return windows
}

// Location resolves the engine timezone
func (c *Config) Location() (*time.Location, error) {
	if c.Engine.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Engine.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid engine timezone %q: %w", c.Engine.Timezone, err)
	}
	return loc, nil
}

// PlanningHorizon is how far ahead work-center calendars are expanded
func (c *Config) PlanningHorizon() time.Duration {
	return time.Duration(c.PlanningHorizonDays) * 24 * time.Hour
}

// MinOperationGap is the gap below which consecutive operations are flagged
func (c *Config) MinOperationGap() time.Duration {
	minutes := defaultMinGapMinutes
	if c.Engine.MinOperationGapMinutes != nil {
		minutes = *c.Engine.MinOperationGapMinutes
	}
	return time.Duration(minutes) * time.Minute
}

// BufferRatio is the share of work time added as slack before the due date
func (c *Config) BufferRatio() float64 {
	if c.Engine.BufferRatio == nil {
		return defaultBufferRatio
	}
	return *c.Engine.BufferRatio
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("SCHEDULER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.CapacityCacheTTL == 0 {
		cfg.CapacityCacheTTL = defaultCapacityCacheTTL
	}
	if cfg.CacheRefreshSpec == "" {
		cfg.CacheRefreshSpec = defaultCacheRefreshSpec
	}
	if cfg.PlanningHorizonDays == 0 {
		cfg.PlanningHorizonDays = defaultPlanningHorizonDays
	}
	if cfg.Engine.BufferRatio == nil {
		ratio := defaultBufferRatio
		cfg.Engine.BufferRatio = &ratio
	}
	if cfg.Engine.MinOperationGapMinutes == nil {
		gap := defaultMinGapMinutes
		cfg.Engine.MinOperationGapMinutes = &gap
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultServerAddr
	}
}

// findConfigFile searches for the config file in current directory and home directory
// If env is provided, it adds it as an extension (e.g., "scheduler_config.test.yaml")
func findConfigFile(env string) (string, error) {
	configFileName := configFileBase + ".yaml"
	if env != "" {
		configFileName = configFileBase + "." + env + ".yaml"
	}

	return findFile(configFileName)
}
