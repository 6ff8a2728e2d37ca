package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/remuikids/kidsboard/internal/config"
	"github.com/remuikids/kidsboard/internal/domain"
	"github.com/remuikids/kidsboard/internal/gradeband"
	"github.com/remuikids/kidsboard/internal/repository"
	"github.com/remuikids/kidsboard/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and lookups used by CLI commands.
type App struct {
	Dashboard service.DashboardService
	Stats     service.TenantStatsService
	Classify  service.ClassifyService
	// Import is nil when the configured store is read-only.
	Import service.ImportService

	Tenants repository.TenantRepo
	Users   repository.UserRepo

	// Classifier serves offline classification of raw cohort and profile
	// values. Nil means the default boundaries and policy.
	Classifier *gradeband.Classifier

	Config *config.Config

	// IsInteractive reports whether stdout is a terminal. Nil means no.
	IsInteractive func() bool

	// Open wires the services from a loaded config. It runs before every
	// command; nil means the App is already wired.
	Open func(ctx context.Context, app *App) error

	closers []func()
}

// OnClose registers a cleanup to run when the App is closed.
func (a *App) OnClose(fn func()) {
	a.closers = append(a.closers, fn)
}

// Close runs registered cleanups in reverse order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) classifier() *gradeband.Classifier {
	if a.Classifier != nil {
		return a.Classifier
	}
	return gradeband.New(gradeband.DefaultBoundaries(), domain.TieBreakFirstListed)
}

// NewRootCmd creates the top-level "kidsboard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var configFile, envFile string

	root := &cobra.Command{
		Use:           "kidsboard",
		Short:         "Grade-band aware dashboards for a multi-school Moodle",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(service.WithRequestID(cmd.Context(), uuid.NewString()))
			if app.Open == nil {
				return nil
			}
			cfg, err := config.Load(config.LoadOptions{
				ConfigFile: configFile,
				EnvFile:    envFile,
				Flags:      cmd.Flags(),
			})
			if err != nil {
				return err
			}
			app.Config = cfg
			if err := app.Open(cmd.Context(), app); err != nil {
				return fmt.Errorf("opening %s store: %w", cfg.Store, err)
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "Config file (default ./kidsboard.yaml or ~/.kidsboard/kidsboard.yaml)")
	pf.StringVar(&envFile, "env-file", "", "Dotenv file to load (default .env)")
	pf.String("store", "", "Backing store: sqlite or moodle")
	pf.String("db", "", "Path of the local SQLite store")
	pf.String("moodle-dsn", "", "PostgreSQL DSN of the Moodle database")
	pf.String("moodle-prefix", "", "Moodle table prefix")
	pf.Var(&tieBreakValue{policy: new(domain.TieBreakPolicy)}, "tie-break", "Cohort tie-break policy: first_listed, highest_grade or lowest_grade")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.String("log-format", "", "Log format: text or json")

	root.AddCommand(
		newDashboardCmd(app),
		newProgressCmd(app),
		newClassifyCmd(app),
		newStatsCmd(app),
		newHeadcountCmd(app),
		newTenantsCmd(app),
		newUsersCmd(app),
		newImportCmd(app),
	)

	return root
}
