package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scheduler_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidate_ValidConfig(t *testing.T) {
	ratio := 0.3
	cfg := &Config{
		DatabaseURL: "postgres://localhost/scheduler",
		Engine:      EngineConfig{BufferRatio: &ratio, Timezone: "UTC"},
		WorkCenterCalendars: []WorkCenterCalendar{
			{WorkCenterID: "cnc-1", RRule: "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR;BYHOUR=6", ShiftHours: 8},
		},
		Blackouts: []Blackout{
			{
				WorkCenterID: "cnc-1",
				Start:        time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
				End:          time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
			},
		},
		Publish: PublishConfig{NotifyEmail: "planner@example.com"},
	}

	assert.NoError(t, Validate(cfg))
}

func TestValidate_MinimalConfig(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://localhost/scheduler"}
	assert.NoError(t, Validate(cfg))
}

func TestValidate_MissingDatabaseURL(t *testing.T) {
	err := Validate(&Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_InvalidRRule(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost/scheduler",
		WorkCenterCalendars: []WorkCenterCalendar{
			{WorkCenterID: "cnc-1", RRule: "INVALID_RRULE_SYNTAX", ShiftHours: 8},
		},
	}

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workCenterCalendars[0]")
}

func TestValidate_DuplicateCalendar(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost/scheduler",
		WorkCenterCalendars: []WorkCenterCalendar{
			{WorkCenterID: "cnc-1", RRule: "FREQ=DAILY;BYHOUR=6", ShiftHours: 8},
			{WorkCenterID: "cnc-1", RRule: "FREQ=DAILY;BYHOUR=14", ShiftHours: 8},
		},
	}

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate work center")
}

func TestValidate_InvalidShiftHours(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost/scheduler",
		WorkCenterCalendars: []WorkCenterCalendar{
			{WorkCenterID: "cnc-1", RRule: "FREQ=DAILY", ShiftHours: 0},
		},
	}

	assert.Error(t, Validate(cfg))
}

func TestValidate_BlackoutEndBeforeStart(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost/scheduler",
		Blackouts: []Blackout{
			{
				Start: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	assert.Error(t, Validate(cfg))
}

func TestValidate_InvalidTimezone(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost/scheduler",
		Engine:      EngineConfig{Timezone: "Mars/Olympus_Mons"},
	}

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timezone")
}

func TestValidate_InvalidNotifyEmail(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost/scheduler",
		Publish:     PublishConfig{NotifyEmail: "not-an-email"},
	}

	assert.Error(t, Validate(cfg))
}

func TestLoadFromPath_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `databaseURL: postgres://localhost/scheduler
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.CapacityCacheTTL)
	assert.Equal(t, "@every 5m", cfg.CacheRefreshSpec)
	assert.Equal(t, 30, cfg.PlanningHorizonDays)
	assert.Equal(t, 30*24*time.Hour, cfg.PlanningHorizon())
	assert.InDelta(t, 0.20, cfg.BufferRatio(), 1e-9)
	assert.Equal(t, 15*time.Minute, cfg.MinOperationGap())
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.False(t, cfg.Engine.EnforceRequiredSkills)
}

func TestLoadFromPath_FullConfig(t *testing.T) {
	path := writeConfig(t, `databaseURL: postgres://localhost/scheduler
redisURL: redis://localhost:6379/0
capacityCacheTTL: 90s
cacheRefreshSpec: "@every 1m"
planningHorizonDays: 14
engine:
  bufferRatio: 0.5
  minOperationGapMinutes: 30
  enforceRequiredSkills: true
  timezone: UTC
workCenterCalendars:
  - workCenterID: weld-1
    rrule: "FREQ=WEEKLY;BYDAY=MO,WE,FR;BYHOUR=8"
    shiftHours: 6
blackouts:
  - workCenterID: weld-1
    start: 2025-03-04T00:00:00Z
    end: 2025-03-05T00:00:00Z
server:
  addr: ":9090"
publish:
  spreadsheetID: sheet-123
  notifyEmail: planner@example.com
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 90*time.Second, cfg.CapacityCacheTTL)
	assert.Equal(t, 14, cfg.PlanningHorizonDays)
	assert.InDelta(t, 0.5, cfg.BufferRatio(), 1e-9)
	assert.Equal(t, 30*time.Minute, cfg.MinOperationGap())
	assert.True(t, cfg.Engine.EnforceRequiredSkills)
	assert.Equal(t, ":9090", cfg.Server.Addr)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	rules := cfg.CalendarOverrides()
	require.Contains(t, rules, "weld-1")
	assert.Equal(t, 6.0, rules["weld-1"].ShiftHours)

	blackouts := cfg.BlackoutWindows()
	require.Len(t, blackouts, 1)
	assert.Equal(t, "weld-1", blackouts[0].WorkCenterID)
	assert.Equal(t, 24*time.Hour, blackouts[0].End.Sub(blackouts[0].Start))
}

func TestLoadFromPath_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://override/scheduler")
	t.Setenv("REDIS_URL", "redis://override:6379/1")
	t.Setenv("SCHEDULER_ADDR", ":7070")

	path := writeConfig(t, `databaseURL: postgres://localhost/scheduler
server:
  addr: ":9090"
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://override/scheduler", cfg.DatabaseURL)
	assert.Equal(t, "redis://override:6379/1", cfg.RedisURL)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

func TestLoadFromPath_DatabaseURLFromEnvOnly(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/scheduler")

	path := writeConfig(t, "planningHorizonDays: 7\n")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://env/scheduler", cfg.DatabaseURL)
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "databaseURL: [unterminated\n")

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadWithEnv_ReadsEnvSpecificFileAndDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", dir)
	// Registers restoration, then clears it so the .env value is picked up
	t.Setenv("DATABASE_URL", "")
	require.NoError(t, os.Unsetenv("DATABASE_URL"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "scheduler_config.test.yaml"), []byte("planningHorizonDays: 10\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DATABASE_URL=postgres://dotenv/scheduler\n"), 0644))

	cfg, err := LoadWithEnv("test")
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.PlanningHorizonDays)
	assert.Equal(t, "postgres://dotenv/scheduler", cfg.DatabaseURL)
}

func TestLoadWithEnv_NotFound(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", dir)

	_, err := LoadWithEnv("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheduler_config.missing.yaml")
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
