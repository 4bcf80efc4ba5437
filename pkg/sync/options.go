// Package sync reconciles source records against the registry and applies
// the create, update and link calls that bring the registry in line.
package sync

import (
	"time"

	"github.com/agentstation/registrysync/internal/metrics"
	"github.com/agentstation/registrysync/pkg/constants"
	"github.com/agentstation/registrysync/pkg/errors"
	"github.com/agentstation/registrysync/pkg/normalize"
)

// Options controls a sync run.
type Options struct {
	// Orchestration control
	DryRun bool             // Log the calls without making them
	Clock  func() time.Time // Stamps the result and failures

	// Notification control
	SendNotification bool     // Open or update the failures issue
	GithubAssignees  []string // Assignees of the failures issue
	ProcessName      string   // Names the issue title and labels, e.g. "IH"

	// Output control
	PortalURL string            // Base of the entity links in conflict reports
	Metrics   *metrics.Recorder // Counts calls and outcomes when set
}

// Apply applies the given options to the sync options.
func (s *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defaults returns the default sync options.
func Defaults() *Options {
	return &Options{
		DryRun:           false,
		Clock:            time.Now,
		SendNotification: false,
		GithubAssignees:  nil,
		ProcessName:      "",
		PortalURL:        constants.DefaultPortalURL,
		Metrics:          nil,
	}
}

// Option is a function that configures sync Options.
type Option func(*Options)

// Validate checks if the sync options are valid.
func (s *Options) Validate() error {
	if normalize.String(s.ProcessName) == "" {
		return &errors.ValidationError{
			Field:   "ProcessName",
			Value:   s.ProcessName,
			Message: "process name is required",
		}
	}
	if _, ok := normalize.ParseURL(s.PortalURL); !ok {
		return &errors.ValidationError{
			Field:   "PortalURL",
			Value:   s.PortalURL,
			Message: "portal URL is not a valid URL",
		}
	}
	if s.Clock == nil {
		s.Clock = time.Now
	}
	return nil
}

// WithDryRun configures dry run mode.
func WithDryRun(dryRun bool) Option {
	return func(opts *Options) {
		opts.DryRun = dryRun
	}
}

// WithSendNotification configures whether failures are reported as an issue.
func WithSendNotification(send bool) Option {
	return func(opts *Options) {
		opts.SendNotification = send
	}
}

// WithGithubAssignees configures the assignees of the failures issue.
func WithGithubAssignees(assignees ...string) Option {
	return func(opts *Options) {
		opts.GithubAssignees = assignees
	}
}

// WithProcessName configures the process name used in issues.
func WithProcessName(name string) Option {
	return func(opts *Options) {
		opts.ProcessName = name
	}
}

// WithPortalURL configures the base URL of the registry portal.
func WithPortalURL(url string) Option {
	return func(opts *Options) {
		opts.PortalURL = url
	}
}

// WithClock configures the clock.
func WithClock(now func() time.Time) Option {
	return func(opts *Options) {
		opts.Clock = now
	}
}

// WithMetrics configures the metrics recorder.
func WithMetrics(r *metrics.Recorder) Option {
	return func(opts *Options) {
		opts.Metrics = r
	}
}
