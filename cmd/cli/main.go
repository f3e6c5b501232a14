package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/production-scheduler/cmd/cli/commands"
	"github.com/jakechorley/production-scheduler/internal/config"
	"github.com/jakechorley/production-scheduler/pkg/cache"
	"github.com/jakechorley/production-scheduler/pkg/core/capacity"
	"github.com/jakechorley/production-scheduler/pkg/postgres"
	"github.com/jakechorley/production-scheduler/pkg/utils/logging"
)

var (
	env      string
	logLevel string
	app      = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Production Scheduler CLI - Plan jobs onto work centers",
		Long:  `A CLI tool for scheduling manufacturing jobs against work-center capacity, previewing schedules, and publishing them to planners.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// deriveOperations is pure and needs no connections
			if cmd.Name() == "deriveOperations" {
				return nil
			}
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Database != nil {
				app.Database.Close()
			}
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Console log level (debug, info, warn, error)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.ScheduleJobCmd(app))
	rootCmd.AddCommand(commands.PreviewScheduleCmd(app))
	rootCmd.AddCommand(commands.RemoveScheduleCmd(app))
	rootCmd.AddCommand(commands.DeriveOperationsCmd())
	rootCmd.AddCommand(commands.ListWorkCentersCmd(app))
	rootCmd.AddCommand(commands.PublishScheduleCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, database, capacity provider and engine
func initApp() error {
	var err error
	app.Env = env
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(env, logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.Logger.Info("Connecting to database")
	app.Database, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.Logger.Debug("Database connected successfully")

	loc, err := app.Cfg.Location()
	if err != nil {
		return err
	}
	clock := func() time.Time { return time.Now().In(loc) }
	app.Provider = capacity.NewStoreProvider(app.Database, app.Cfg.CalendarOverrides(), app.Cfg.PlanningHorizon(), clock)

	if app.Cfg.RedisURL != "" {
		app.Logger.Info("Connecting to redis capacity cache")
		client, err := cache.NewRedisClient(app.Ctx, app.Cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.Cache = cache.NewCapacityCache(client, app.Provider, app.Cfg.CapacityCacheTTL, app.Logger)
		app.Provider = app.Cache
		app.Logger.Debug("Capacity cache enabled", zap.Duration("ttl", app.Cfg.CapacityCacheTTL))
	}

	app.Engine, err = commands.NewEngine(app.Cfg)
	if err != nil {
		return fmt.Errorf("failed to create scheduling engine: %w", err)
	}

	return nil
}
