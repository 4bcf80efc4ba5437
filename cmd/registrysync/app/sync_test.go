package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/registrysync/internal/cmd/alerts"
	"github.com/agentstation/registrysync/pkg/constants"
	"github.com/agentstation/registrysync/pkg/errors"
	issuesmem "github.com/agentstation/registrysync/pkg/issues/memory"
	"github.com/agentstation/registrysync/pkg/logging"
	"github.com/agentstation/registrysync/pkg/registry"
	"github.com/agentstation/registrysync/pkg/registry/memory"
	"github.com/agentstation/registrysync/pkg/sources"
	"github.com/agentstation/registrysync/pkg/sources/herbarium"
	"github.com/agentstation/registrysync/pkg/sync"
)

type fixture struct {
	app     *App
	reg     *memory.Registry
	tracker *issuesmem.Tracker
	out     *bytes.Buffer
	export  string
	config  *Config
}

func newFixture(t *testing.T, modify func(*Config)) *fixture {
	t.Helper()
	dir := t.TempDir()

	export := herbarium.Export{
		Institutions: []herbarium.Institution{{
			IRN:          "1001",
			Code:         "NY",
			Organization: "New York Botanical Garden",
			Address:      herbarium.Address{PhysicalCity: "Bronx", PhysicalCountry: "U.S.A."},
		}},
	}
	data, err := yaml.Marshal(export)
	require.NoError(t, err)
	path := filepath.Join(dir, "ih.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg := &Config{
		Format:           "json",
		RegistryURL:      "https://api.registry.example.org/v1",
		RegistryUser:     "sync",
		RegistryPassword: "secret",
		PortalURL:        constants.DefaultPortalURL,
		GithubToken:      "token",
		GithubRepo:       "org/registry-sync",
		ReportDir:        filepath.Join(dir, "reports"),
		LogFormat:        "json",
		LogOutput:        "discard",
	}
	if modify != nil {
		modify(cfg)
	}

	f := &fixture{
		reg:     memory.New(),
		tracker: issuesmem.New(),
		out:     &bytes.Buffer{},
		export:  path,
		config:  cfg,
	}
	f.app, err = New("test", "none", "today", "go test",
		WithConfig(cfg),
		WithLogger(logging.NewNopLogger()),
		WithRegistry(f.reg),
		WithTracker(f.tracker),
		WithOutput(f.out),
	)
	require.NoError(t, err)
	return f
}

func TestSyncCreatesAndWritesReport(t *testing.T) {
	f := newFixture(t, nil)

	require.NoError(t, f.app.Execute(context.Background(), []string{"sync", "ih", f.export}))

	insts, err := f.reg.Institutions(context.Background())
	require.NoError(t, err)
	require.Len(t, insts, 1)
	assert.Equal(t, "NY", insts[0].Code)

	assert.Contains(t, f.out.String(), `"created"`)
	reports, err := os.ReadDir(f.config.ReportDir)
	require.NoError(t, err)
	assert.Len(t, reports, 1)
	assert.Empty(t, f.tracker.Calls())
}

func TestSyncDryRunMakesNoCalls(t *testing.T) {
	f := newFixture(t, func(c *Config) { c.ReportDir = "" })

	require.NoError(t, f.app.Execute(context.Background(), []string{"sync", "ih", "--dry-run", f.export}))
	assert.Empty(t, f.reg.Calls())
	assert.Contains(t, f.out.String(), `"dryRun": true`)
}

func TestSyncFailureOpensIssue(t *testing.T) {
	f := newFixture(t, func(c *Config) { c.Notify = true; c.ReportDir = "" })
	f.reg.SetFailFunc(func(op string, kind registry.Kind, _ string) error {
		if op == "create" && kind == registry.KindInstitution {
			return errors.NewAPIError("registry", 500, "boom")
		}
		return nil
	})

	err := f.app.Execute(context.Background(), []string{"sync", "ih", f.export})
	var syncErr *errors.SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, "ih", syncErr.Source)

	created := f.tracker.Issues()
	require.Len(t, created, 1)
	assert.Contains(t, created[0].Title, "IH sync")
	assert.Contains(t, created[0].Labels, "IH fail")
}

// slowTags fails machine tag calls once the primary pass is over.
type slowTags struct {
	*memory.Registry
}

func (r slowTags) AddMachineTag(context.Context, registry.Kind, string, registry.MachineTag) (int, error) {
	time.Sleep(50 * time.Millisecond)
	return 0, errors.NewAPIError("registry", 503, "tags unavailable")
}

func TestSyncLateBackgroundFailureFailsRun(t *testing.T) {
	f := newFixture(t, func(c *Config) { c.Notify = true; c.ReportDir = "" })
	f.app.registry = slowTags{Registry: f.reg}

	err := f.app.Execute(context.Background(), []string{"sync", "ih", f.export})
	var syncErr *errors.SyncError
	require.ErrorAs(t, err, &syncErr)

	assert.Contains(t, f.out.String(), "tags unavailable")
	created := f.tracker.Issues()
	require.Len(t, created, 1)
	assert.Contains(t, created[0].Labels, "IH fail")
}

func TestSyncRejectsInvalidConfig(t *testing.T) {
	f := newFixture(t, func(c *Config) { c.RegistryPassword = "" })
	err := f.app.Execute(context.Background(), []string{"sync", "ih", f.export})
	assert.True(t, errors.IsConfigError(err))
	assert.Empty(t, f.reg.Calls())
}

func TestVersionCommand(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.app.Execute(context.Background(), []string{"version"}))
	assert.Contains(t, f.out.String(), "registrysync version test")
}

func TestStatusAlert(t *testing.T) {
	agg := sync.NewAggregator(sources.HerbariumID, "IH", true, nil)
	agg.AddConflict(sync.Conflict{Kind: registry.KindInstitution, Source: "NY"})
	a := statusAlert(agg.Finalize(), nil, "reports/ih.yaml")

	assert.Equal(t, alerts.LevelInfo, a.Level)
	assert.Equal(t, []string{
		"dry run: no registry call was made",
		"1 conflicts need review",
		"report: reports/ih.yaml",
	}, a.Details)

	runErr := errors.NewSyncError("ih", nil, errors.NewAPIError("registry", 401, "bad credentials"))
	a = statusAlert(sync.NewAggregator(sources.HerbariumID, "IH", false, nil).Finalize(), runErr, "")
	assert.Equal(t, alerts.LevelError, a.Level)
	assert.Contains(t, a.Details, "registry credentials were rejected")
}
