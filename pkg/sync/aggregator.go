package sync

import (
	"slices"
	"sync"
	"time"

	"github.com/agentstation/registrysync/pkg/logging"
	"github.com/agentstation/registrysync/pkg/match"
	"github.com/agentstation/registrysync/pkg/registry"
	"github.com/agentstation/registrysync/pkg/sources"
)

// Aggregator accumulates the outcome of a run. Every method is safe for
// concurrent use. Once Finalize has been called the result is frozen and
// later failures are kept apart as late failures.
type Aggregator struct {
	mu        sync.Mutex
	result    Result
	finalized *Result
	late      []FailedAction
	notify    []FailedAction
	now       func() time.Time
}

// NewAggregator starts the accumulation of a run.
func NewAggregator(source sources.ID, process string, dryRun bool, now func() time.Time) *Aggregator {
	if now == nil {
		now = time.Now
	}
	return &Aggregator{
		now: now,
		result: Result{
			Metadata: Metadata{
				Source:    source,
				Process:   process,
				DryRun:    dryRun,
				StartTime: now(),
				Outcomes:  make(map[string]int),
			},
		},
	}
}

// AddFailure records a failed call. It is the failure handler of the
// executor and may be called from background tasks.
func (a *Aggregator) AddFailure(f FailedAction) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.finalized != nil {
		logging.Warn().Str("call", f.Op).Str("kind", string(f.Kind)).Msg("Failure recorded after the result was finalized")
		a.late = append(a.late, f)
		return
	}
	a.result.Failures = append(a.result.Failures, f)
	if k := a.kind(f.Kind); k != nil {
		k.Failed = append(k.Failed, f)
	}
}

// AddNotificationFailure records a failure of the notification. It never
// changes the status of the sync.
func (a *Aggregator) AddNotificationFailure(f FailedAction) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.notify = append(a.notify, f)
}

// AddChange records a change of an entity.
func (a *Aggregator) AddChange(c Change) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.frozen() {
		return
	}
	k := a.kind(c.Kind)
	if k == nil {
		return
	}
	switch c.Action {
	case ActionMatched:
		k.Matched = append(k.Matched, c)
	case ActionCreated:
		k.Created = append(k.Created, c)
	case ActionUpdated:
		k.Updated = append(k.Updated, c)
	case ActionLinked:
		k.Linked = append(k.Linked, c)
	case ActionUnlinked:
		k.Removed = append(k.Removed, c)
	}
}

// AddConflict records an ambiguous match.
func (a *Aggregator) AddConflict(c Conflict) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.frozen() {
		return
	}
	if k := a.kind(c.Kind); k != nil {
		k.Conflicts = append(k.Conflicts, c)
	}
}

// AddOutcome counts a classified source record.
func (a *Aggregator) AddOutcome(o match.Outcome) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.frozen() {
		return
	}
	a.result.Metadata.Records++
	a.result.Metadata.Outcomes[o.String()]++
}

// Finalize freezes the result and returns it. Later calls return the same
// result.
func (a *Aggregator) Finalize() *Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.finalized != nil {
		return a.finalized
	}
	r := a.result
	r.Metadata.EndTime = a.now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
	a.finalized = &r
	return a.finalized
}

// LateFailures returns the failures recorded after Finalize.
func (a *Aggregator) LateFailures() []FailedAction {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.late)
}

// NotificationFailures returns the failures of the notification.
func (a *Aggregator) NotificationFailures() []FailedAction {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.notify)
}

func (a *Aggregator) frozen() bool {
	if a.finalized != nil {
		logging.Debug().Msg("Ignoring change recorded after the result was finalized")
		return true
	}
	return false
}

func (a *Aggregator) kind(kind registry.Kind) *KindResult {
	switch kind {
	case registry.KindInstitution:
		return &a.result.Institutions
	case registry.KindCollection:
		return &a.result.Collections
	case registry.KindPerson:
		return &a.result.Staff
	}
	return nil
}
