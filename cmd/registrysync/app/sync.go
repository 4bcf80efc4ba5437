package app

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/registrysync/internal/cmd/alerts"
	"github.com/agentstation/registrysync/internal/cmd/output"
	"github.com/agentstation/registrysync/internal/transport"
	"github.com/agentstation/registrysync/pkg/constants"
	"github.com/agentstation/registrysync/pkg/convert"
	"github.com/agentstation/registrysync/pkg/errors"
	"github.com/agentstation/registrysync/pkg/executor"
	"github.com/agentstation/registrysync/pkg/issues"
	"github.com/agentstation/registrysync/pkg/logging"
	"github.com/agentstation/registrysync/pkg/report"
	"github.com/agentstation/registrysync/pkg/sources"
	"github.com/agentstation/registrysync/pkg/sources/aggregator"
	"github.com/agentstation/registrysync/pkg/sources/herbarium"
	"github.com/agentstation/registrysync/pkg/sync"
)

// driver is a source sync: one pass over the records, then background
// calls to drain.
type driver interface {
	Run(ctx context.Context) (*sync.Result, error)
	Wait()
	Aggregator() *sync.Aggregator
	Options() sync.Options
}

// NewSyncCommand creates the sync command with one subcommand per source.
func (a *App) NewSyncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile a source export against the registry",
	}

	flags := cmd.PersistentFlags()
	flags.BoolVar(&a.config.DryRun, "dry-run", a.config.DryRun, "log the registry calls without making them")
	flags.BoolVar(&a.config.Notify, "notify", a.config.Notify, "open or update tracker issues for failures and conflicts")
	flags.StringSliceVar(&a.config.GithubAssignees, "assignees", a.config.GithubAssignees, "assignees of the failures issue")
	flags.StringVar(&a.config.PortalURL, "portal-url", a.config.PortalURL, "base URL of the registry portal used in conflict links")
	flags.StringVar(&a.config.ReportDir, "report-dir", a.config.ReportDir, "directory of the run report, empty to skip")
	flags.StringVar(&a.config.ReportFormat, "report-format", a.config.ReportFormat, "report format: yaml, json")
	flags.StringVar(&a.config.MetricsFile, "metrics-file", a.config.MetricsFile, "write run metrics in Prometheus text format")
	flags.StringVar(&a.config.CountryAliases, "aliases", a.config.CountryAliases, "YAML file of extra country aliases")
	flags.StringVar(&a.config.RegistrySnapshot, "registry-snapshot", a.config.RegistrySnapshot, "run against a YAML registry snapshot instead of the API")

	cmd.AddCommand(&cobra.Command{
		Use:   "ih <export>",
		Short: "Sync the herbarium index export (file or URL)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSync(cmd, sources.HerbariumID, args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "idigbio <export>",
		Short: "Sync the specimen aggregator export (file or URL)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSync(cmd, sources.AggregatorID, args[0])
		},
	})
	return cmd
}

func (a *App) runSync(cmd *cobra.Command, id sources.ID, location string) error {
	if err := a.config.Validate(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), constants.SyncTimeout)
	defer cancel()
	ctx = logging.WithLogger(ctx, a.logger)
	logger := logging.FromContext(ctx)

	d, err := a.newDriver(ctx, id, location)
	if err != nil {
		return err
	}
	a.track(d)

	result, runErr := d.Run(ctx)
	if result == nil {
		return runErr
	}
	if runErr != nil {
		logger.Error().Err(runErr).Msg("Sync interrupted")
	}

	if !drain(d, constants.BackgroundDrainTimeout) {
		logger.Warn().Dur("timeout", constants.BackgroundDrainTimeout).Msg("Background calls still running")
	}
	if late := d.Aggregator().LateFailures(); len(late) > 0 {
		for _, f := range late {
			logger.Warn().Str("op", f.Op).Str("kind", string(f.Kind)).Str("key", f.Key).Msg(f.Message)
		}
		result = result.WithLateFailures(late)
	}

	result = a.notify(ctx, d, result)

	reportPath, err := a.writeOutputs(cmd, result)
	if err != nil {
		return err
	}
	status := statusAlert(result, runErr, reportPath)
	if err := alerts.NewWriter(cmd.ErrOrStderr(), a.config.NoColor).Write(status); err != nil {
		logger.Warn().Err(err).Msg("Failed to write status")
	}

	if runErr != nil {
		return runErr
	}
	if !result.IsSuccess() {
		return errors.NewSyncError(id.String(), nil, errors.New(result.Summary()))
	}
	return nil
}

func statusAlert(result *sync.Result, runErr error, reportPath string) *alerts.Alert {
	var a *alerts.Alert
	switch {
	case runErr != nil:
		a = alerts.New(alerts.LevelError, "Sync interrupted").WithError(runErr)
	case !result.IsSuccess():
		a = alerts.New(alerts.LevelWarning, fmt.Sprintf("Sync finished with %d failures", len(result.Failures)))
	case !result.HasChanges():
		a = alerts.New(alerts.LevelInfo, "Registry already up to date")
	default:
		a = alerts.New(alerts.LevelSuccess, "Sync finished")
	}
	if result.Metadata.DryRun {
		a.WithDetails("dry run: no registry call was made")
	}
	if n := len(result.Conflicts()); n > 0 {
		a.WithDetails(fmt.Sprintf("%d conflicts need review", n))
	}
	if errors.IsUnauthorized(runErr) {
		a.WithDetails("registry credentials were rejected")
	}
	if n := len(result.NotificationFailures); n > 0 {
		a.WithDetails(fmt.Sprintf("%d notifications failed", n))
	}
	if reportPath != "" {
		a.WithDetails("report: " + reportPath)
	}
	return a
}

func (a *App) newDriver(ctx context.Context, id sources.ID, location string) (driver, error) {
	client, err := a.Registry()
	if err != nil {
		return nil, err
	}
	resolver, err := a.Resolver()
	if err != nil {
		return nil, err
	}
	conv := convert.New(resolver)
	fetcher := transport.New(nil, transport.WithService(id.String()), transport.WithUserAgent("registrysync/"+a.version))

	opts := []sync.Option{
		sync.WithDryRun(a.config.DryRun),
		sync.WithSendNotification(a.config.Notify),
		sync.WithGithubAssignees(a.config.GithubAssignees...),
		sync.WithPortalURL(a.config.PortalURL),
		sync.WithMetrics(a.Metrics()),
	}

	switch id {
	case sources.HerbariumID:
		src := herbarium.NewWithClient(location, fetcher)
		if err := src.Fetch(ctx); err != nil {
			return nil, err
		}
		return sync.NewHerbariumSync(client, src, conv, opts...)
	case sources.AggregatorID:
		src := aggregator.NewWithClient(location, fetcher)
		if err := src.Fetch(ctx); err != nil {
			return nil, err
		}
		return sync.NewAggregatorSync(client, src, conv, opts...)
	default:
		return nil, errors.NewValidationError("source", id, "unknown source")
	}
}

// notify reports failures and conflicts through the tracker. Notification
// failures are attached to the result and never fail the run.
func (a *App) notify(ctx context.Context, d driver, result *sync.Result) *sync.Result {
	opts := d.Options()
	if !opts.SendNotification {
		return result
	}
	tracker, err := a.Tracker()
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("Issue tracker unavailable")
		return result
	}

	ex := executor.New(
		executor.WithDryRun(opts.DryRun),
		executor.WithClock(opts.Clock),
		executor.WithMetrics(opts.Metrics),
		executor.WithFailureHandler(d.Aggregator().AddNotificationFailure),
	)
	builder := issues.NewBuilder(opts.ProcessName, opts.GithubAssignees, opts.Clock)
	n := issues.NewAggregator(tracker).Notify(ctx, ex, builder, result)
	if !drain(ex, constants.BackgroundDrainTimeout) {
		logging.FromContext(ctx).Warn().Int("issues", n).Msg("Notification still running")
	}
	return result.WithNotificationFailures(d.Aggregator().NotificationFailures())
}

func (a *App) writeOutputs(cmd *cobra.Command, result *sync.Result) (string, error) {
	var reportPath string
	if a.config.ReportDir != "" {
		opts := []report.Option{report.WithDir(a.config.ReportDir)}
		if a.config.ReportFormat != "" {
			format, ok := report.ParseFormat(a.config.ReportFormat)
			if !ok {
				return "", errors.NewValidationError("report-format", a.config.ReportFormat, "must be one of: yaml, json")
			}
			opts = append(opts, report.WithFormat(format))
		}
		path, err := report.Write(result, opts...)
		if err != nil {
			return "", err
		}
		a.logger.Info().Str("path", path).Msg("Report written")
		reportPath = path
	}

	if a.config.MetricsFile != "" {
		if err := a.Metrics().WriteTextfile(a.config.MetricsFile); err != nil {
			return reportPath, err
		}
	}

	format, err := output.ParseFormat(a.config.Format)
	if err != nil {
		return reportPath, err
	}
	if format == "" {
		format = output.DetectFormat("")
	}
	return reportPath, output.FormatResult(cmd.OutOrStdout(), result, format)
}

// drain waits for w up to timeout and reports whether it finished.
func drain(w waiter, timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		w.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
