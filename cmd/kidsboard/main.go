package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/remuikids/kidsboard/internal/cli"
	"github.com/remuikids/kidsboard/internal/config"
	"github.com/remuikids/kidsboard/internal/db"
	"github.com/remuikids/kidsboard/internal/moodle"
	"github.com/remuikids/kidsboard/internal/repository"
	"github.com/remuikids/kidsboard/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{
		Open: openApp,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		},
	}
	defer app.Close()

	return cli.NewRootCmd(app).ExecuteContext(context.Background())
}

// openApp connects the configured store and wires the services over it.
func openApp(ctx context.Context, app *cli.App) error {
	cfg := app.Config
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	logger := service.NewLogger(os.Stderr, level, cfg.Log.Format)
	observer := service.NewSlogUseCaseObserver(logger)

	var store repository.Store
	switch cfg.Store {
	case config.StoreMoodle:
		ms, err := moodle.Open(ctx, cfg.Moodle.DSN, cfg.Moodle.Prefix)
		if err != nil {
			return err
		}
		app.OnClose(ms.Close)
		store = ms.Repositories()
	default:
		database, err := db.OpenDB(cfg.DB.Path)
		if err != nil {
			return err
		}
		app.OnClose(func() { database.Close() })
		store = repository.NewSQLiteStore(database)
		app.Import = service.NewImportService(db.NewSQLiteUnitOfWork(database), observer)
	}

	settings := service.Settings{
		Classifier:   cfg.Classifier(),
		ProfileField: cfg.Grade.ProfileField,
		Roles: service.RoleSets{
			Teacher: cfg.Roles.Teacher,
			Student: cfg.Roles.Student,
			Manager: cfg.Roles.Manager,
		},
		Logger: logger,
	}

	app.Dashboard = service.NewDashboardService(store, settings, observer)
	app.Stats = service.NewTenantStatsService(store, settings, observer)
	app.Classify = service.NewClassifyService(store, settings, observer)
	app.Tenants = store.Tenants
	app.Users = store.Users
	app.Classifier = settings.Classifier
	return nil
}
