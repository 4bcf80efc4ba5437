// Package executor runs mutating calls against remote collaborators. Calls
// are skipped in dry-run mode and failures are recorded instead of returned,
// so a run always completes.
//
// Example usage:
//
//	ex := executor.New(executor.WithDryRun(dryRun), executor.WithFailureHandler(agg.AddFailure))
//	key, ok := executor.Return(ctx, ex, target, func(ctx context.Context) (string, error) {
//	    return client.CreateInstitution(ctx, inst)
//	}, "")
//	ex.Go(ctx, tagTarget, attachTags)
//	ex.Wait()
package executor

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agentstation/registrysync/internal/metrics"
	"github.com/agentstation/registrysync/pkg/logging"
	"github.com/agentstation/registrysync/pkg/registry"
)

// Target describes the call being made, for logs and failure reports.
type Target struct {
	Op     string
	Kind   registry.Kind
	Key    string
	Entity any
}

// String renders the target for logs.
func (t Target) String() string {
	if t.Key != "" {
		return fmt.Sprintf("%s %s %s", t.Op, t.Kind, t.Key)
	}
	return fmt.Sprintf("%s %s", t.Op, t.Kind)
}

// FailedAction is a call that failed. It is never modified after creation.
type FailedAction struct {
	Op      string        `json:"operation" yaml:"operation"`
	Kind    registry.Kind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Key     string        `json:"key,omitempty" yaml:"key,omitempty"`
	Entity  string        `json:"entity" yaml:"entity"`
	Message string        `json:"message" yaml:"message"`
	At      time.Time     `json:"at" yaml:"at"`
}

// NewFailedAction builds the failure record of target.
func NewFailedAction(target Target, err error, at time.Time) FailedAction {
	return FailedAction{
		Op:      target.Op,
		Kind:    target.Kind,
		Key:     target.Key,
		Entity:  render(target.Entity),
		Message: err.Error(),
		At:      at,
	}
}

func render(entity any) string {
	switch e := entity.(type) {
	case nil:
		return ""
	case fmt.Stringer:
		return e.String()
	case string:
		return e
	}
	return fmt.Sprintf("%+v", entity)
}

// Executor runs calls honoring dry-run and recording failures. Background
// calls run on an errgroup that is never cancelled.
type Executor struct {
	dryRun  bool
	fail    func(FailedAction)
	metrics *metrics.Recorder
	now     func() time.Time
	group   errgroup.Group
}

// Option configures an Executor.
type Option func(*Executor)

// WithDryRun suppresses every call.
func WithDryRun(dryRun bool) Option {
	return func(e *Executor) {
		e.dryRun = dryRun
	}
}

// WithFailureHandler sets the function receiving failed actions. It must be
// safe for concurrent use since background calls report through it.
func WithFailureHandler(fn func(FailedAction)) Option {
	return func(e *Executor) {
		e.fail = fn
	}
}

// WithMetrics counts calls on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(e *Executor) {
		e.metrics = r
	}
}

// WithClock sets the clock used to stamp failures.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) {
		if now != nil {
			e.now = now
		}
	}
}

// New returns an Executor.
func New(opts ...Option) *Executor {
	e := &Executor{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DryRun reports whether calls are suppressed.
func (e *Executor) DryRun() bool {
	return e.dryRun
}

// Do runs fn synchronously. It reports whether the run may proceed as if the
// call succeeded: true after success or in dry-run, false after a failure.
func (e *Executor) Do(ctx context.Context, target Target, fn func(context.Context) error) bool {
	_, ok := Return(ctx, e, target, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	}, struct{}{})
	return ok
}

// Return runs fn synchronously and returns its value. In dry-run the call is
// skipped and placeholder is returned. On failure the failure is recorded and
// placeholder is returned with false.
func Return[T any](ctx context.Context, e *Executor, target Target, fn func(context.Context) (T, error), placeholder T) (T, bool) {
	logger := logging.FromContext(ctx)
	if e.dryRun {
		logger.Debug().Str("call", target.String()).Msg("Dry run, skipping call")
		e.metrics.Call(target.Op, string(target.Kind), metrics.StatusSkipped)
		return placeholder, true
	}

	v, err := fn(ctx)
	if err != nil {
		e.record(ctx, target, err)
		return placeholder, false
	}
	e.metrics.Call(target.Op, string(target.Kind), metrics.StatusExecuted)
	return v, true
}

// Go runs fn in the background. The primary pass does not wait for it and
// it is not cancelled when ctx is. Failures are still recorded.
func (e *Executor) Go(ctx context.Context, target Target, fn func(context.Context) error) {
	if e.dryRun {
		logging.FromContext(ctx).Debug().Str("call", target.String()).Msg("Dry run, skipping background call")
		e.metrics.Call(target.Op, string(target.Kind), metrics.StatusSkipped)
		return
	}

	ctx = context.WithoutCancel(ctx)
	e.group.Go(func() error {
		e.Do(ctx, target, fn)
		return nil
	})
}

// Wait blocks until every background call has finished.
func (e *Executor) Wait() {
	_ = e.group.Wait()
}

func (e *Executor) record(ctx context.Context, target Target, err error) {
	logging.FromContext(ctx).Warn().
		Err(err).
		Str("call", target.String()).
		Msg("Call failed")
	e.metrics.Call(target.Op, string(target.Kind), metrics.StatusFailed)
	if e.fail != nil {
		e.fail(NewFailedAction(target, err, e.now()))
	}
}
