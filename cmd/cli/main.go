package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/sparkleflow-dispatch/cmd/cli/commands"
	"github.com/jakechorley/sparkleflow-dispatch/internal/config"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/db"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/metrics"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/postgres"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/utils/logging"
)

var (
	env     string
	app     = &commands.AppContext{Ctx: context.Background()}
	closeDB func()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "SparkleFlow Dispatch CLI - Assign cleaning staff to jobs",
		Long:  `A CLI tool for ranking staff against jobs, assigning them, dispatching pending jobs in batches and scheduling recurring work.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if closeDB != nil {
				closeDB()
			}
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.CandidatesCmd(app))
	rootCmd.AddCommand(commands.AutoSelectCmd(app))
	rootCmd.AddCommand(commands.AssignCmd(app))
	rootCmd.AddCommand(commands.DispatchCmd(app))
	rootCmd.AddCommand(commands.ScheduleSeriesCmd(app))
	rootCmd.AddCommand(commands.ImportRosterCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, metrics and database
func initApp() error {
	var err error
	app.Env = env

	// Initialize logger
	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.Recorder = metrics.NewPrometheus(nil, "")

	// Initialize database
	switch app.Cfg.Database.Backend {
	case config.BackendPostgres:
		app.Logger.Info("Connecting to postgres")
		pg, err := postgres.NewDB(app.Ctx, app.Cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		app.Database = pg
		closeDB = pg.Close
	default:
		app.Logger.Info("Opening data file", zap.String("path", app.Cfg.Database.Path))
		fdb, err := db.NewFileDB(app.Cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		app.Database = fdb
	}
	app.Logger.Info("Database initialized successfully", zap.String("backend", app.Cfg.Database.Backend))

	return nil
}
