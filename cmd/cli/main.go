package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/troop900/treelot/cmd/cli/commands"
	"github.com/troop900/treelot/internal/config"
	"github.com/troop900/treelot/pkg/clients/gmailclient"
	"github.com/troop900/treelot/pkg/postgres"
	"github.com/troop900/treelot/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
	db  *postgres.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "treelot",
		Short: "Troop 900 Tree Lot - Manage volunteer shift scheduling",
		Long:  `A CLI tool for managing the seasonal tree lot: shift schedules, signups, and attendance.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
			if db != nil {
				db.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(
		commands.CreateSeasonCmd(appRef()),
		commands.CreateTemplateCmd(appRef()),
		commands.ListTemplatesCmd(appRef()),
		commands.GenerateScheduleCmd(appRef()),
		commands.PublishSeasonCmd(appRef()),
		commands.CancelShiftCmd(appRef()),
		commands.CompleteShiftCmd(appRef()),
		commands.ShiftDetailsCmd(appRef()),
		commands.StaffingReportCmd(appRef()),
		commands.SignUpCmd(appRef()),
		commands.CancelAssignmentCmd(appRef()),
		commands.MyShiftsCmd(appRef()),
		commands.AddWalkInCmd(appRef()),
		commands.CheckInCmd(appRef()),
		commands.CheckOutCmd(appRef()),
		commands.MarkNoShowCmd(appRef()),
		commands.CorrectAttendanceCmd(appRef()),
		commands.ShiftAttendanceCmd(appRef()),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext, allocated before initApp fills it in
// so command constructors can capture it.
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger, config, database and the optional gmail client
func initApp() error {
	var err error
	appRef()
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.Logger.Info("Connecting to database")
	db, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	app.Logger.Info("Running database migrations")
	if err := db.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Database = db
	app.Logger.Info("Database initialized successfully")

	// Email is optional: without a configured sender the publish announcement
	// is simply skipped.
	if app.Cfg.GmailUserID != "" {
		app.Logger.Info("Initializing gmail client")
		oauthCfg, err := config.LoadOAuthClient()
		if err != nil {
			return fmt.Errorf("failed to load OAuth client config: %w", err)
		}
		app.GmailClient, err = gmailclient.NewClient(app.Ctx, oauthCfg, env)
		if err != nil {
			return fmt.Errorf("failed to create gmail client: %w", err)
		}
		app.Logger.Debug("Gmail client initialized successfully")
	}

	return nil
}
