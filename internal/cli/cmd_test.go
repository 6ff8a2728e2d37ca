package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/remuikids/kidsboard/internal/service"
	"github.com/remuikids/kidsboard/internal/testutil"
	"github.com/stretchr/testify/require"
)

var sampleSnapshot = filepath.Join("..", "importer", "testdata", "school.yaml")

// testApp wires a full App over an in-memory store. The store is empty
// until seedSample runs.
func testApp(t *testing.T) *App {
	t.Helper()
	ts := testutil.NewTestStore(t)
	store := ts.Repos
	settings := service.DefaultSettings()

	return &App{
		Dashboard: service.NewDashboardService(store, settings),
		Stats:     service.NewTenantStatsService(store, settings),
		Classify:  service.NewClassifyService(store, settings),
		Import:    service.NewImportService(ts.UoW),
		Tenants:   store.Tenants,
		Users:     store.Users,
	}
}

func seedSample(t *testing.T, app *App) {
	t.Helper()
	_, err := app.Import.ImportSnapshot(context.Background(), sampleSnapshot)
	require.NoError(t, err)
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return stripANSI(buf.String()), err
}
