package sync

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/agentstation/registrysync/pkg/executor"
	"github.com/agentstation/registrysync/pkg/registry"
	"github.com/agentstation/registrysync/pkg/sources"
)

// FailedAction is a remote call that failed during a run.
type FailedAction = executor.FailedAction

// Action is what happened to an entity.
type Action string

// Actions recorded per entity.
const (
	ActionMatched  Action = "matched"
	ActionCreated  Action = "created"
	ActionUpdated  Action = "updated"
	ActionLinked   Action = "linked"
	ActionUnlinked Action = "unlinked"
)

// Change is one entity touched by the run.
type Change struct {
	Kind   registry.Kind `json:"kind" yaml:"kind"`
	Action Action        `json:"action" yaml:"action"`
	Key    string        `json:"key,omitempty" yaml:"key,omitempty"`
	Label  string        `json:"label" yaml:"label"`
	Parent string        `json:"parent,omitempty" yaml:"parent,omitempty"`
	Diff   string        `json:"diff,omitempty" yaml:"diff,omitempty"`
}

// Conflict is a source record or staff member whose candidates are
// ambiguous. Nothing was changed for it.
type Conflict struct {
	Kind         registry.Kind `json:"kind" yaml:"kind"`
	Source       string        `json:"source" yaml:"source"`
	Reason       string        `json:"reason" yaml:"reason"`
	Institutions []string      `json:"institutions,omitempty" yaml:"institutions,omitempty"`
	Collections  []string      `json:"collections,omitempty" yaml:"collections,omitempty"`
	Persons      []string      `json:"persons,omitempty" yaml:"persons,omitempty"`
	Links        []string      `json:"links,omitempty" yaml:"links,omitempty"`
}

// KindResult is the per-kind breakdown of a run.
type KindResult struct {
	Matched   []Change       `json:"matched,omitempty" yaml:"matched,omitempty"`
	Created   []Change       `json:"created,omitempty" yaml:"created,omitempty"`
	Updated   []Change       `json:"updated,omitempty" yaml:"updated,omitempty"`
	Linked    []Change       `json:"linked,omitempty" yaml:"linked,omitempty"`
	Removed   []Change       `json:"removed,omitempty" yaml:"removed,omitempty"`
	Conflicts []Conflict     `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
	Failed    []FailedAction `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// Counts returns the number of entries per category.
func (k KindResult) Counts() Counts {
	return Counts{
		Matched:   len(k.Matched),
		Created:   len(k.Created),
		Updated:   len(k.Updated),
		Linked:    len(k.Linked),
		Removed:   len(k.Removed),
		Conflicts: len(k.Conflicts),
		Failed:    len(k.Failed),
	}
}

// Counts summarizes a KindResult.
type Counts struct {
	Matched   int `json:"matched" yaml:"matched"`
	Created   int `json:"created" yaml:"created"`
	Updated   int `json:"updated" yaml:"updated"`
	Linked    int `json:"linked" yaml:"linked"`
	Removed   int `json:"removed" yaml:"removed"`
	Conflicts int `json:"conflicts" yaml:"conflicts"`
	Failed    int `json:"failed" yaml:"failed"`
}

// Metadata describes the run.
type Metadata struct {
	Source    sources.ID     `json:"source" yaml:"source"`
	Process   string         `json:"process" yaml:"process"`
	DryRun    bool           `json:"dryRun" yaml:"dryRun"`
	StartTime time.Time      `json:"startTime" yaml:"startTime"`
	EndTime   time.Time      `json:"endTime" yaml:"endTime"`
	Duration  time.Duration  `json:"duration" yaml:"duration"`
	Records   int            `json:"records" yaml:"records"`
	Outcomes  map[string]int `json:"outcomes,omitempty" yaml:"outcomes,omitempty"`
}

// Result is the outcome of a sync run. It is built by an Aggregator and is
// immutable once finalized.
type Result struct {
	Metadata     Metadata       `json:"metadata" yaml:"metadata"`
	Institutions KindResult     `json:"institutions" yaml:"institutions"`
	Collections  KindResult     `json:"collections" yaml:"collections"`
	Staff        KindResult     `json:"staff" yaml:"staff"`
	Failures     []FailedAction `json:"failures,omitempty" yaml:"failures,omitempty"`

	// NotificationFailures never affect IsSuccess.
	NotificationFailures []FailedAction `json:"notificationFailures,omitempty" yaml:"notificationFailures,omitempty"`
}

// Kind returns the breakdown for kind.
func (r *Result) Kind(kind registry.Kind) KindResult {
	switch kind {
	case registry.KindInstitution:
		return r.Institutions
	case registry.KindCollection:
		return r.Collections
	case registry.KindPerson:
		return r.Staff
	}
	return KindResult{}
}

// Conflicts returns the conflicts of every kind.
func (r *Result) Conflicts() []Conflict {
	var out []Conflict
	out = append(out, r.Institutions.Conflicts...)
	out = append(out, r.Collections.Conflicts...)
	out = append(out, r.Staff.Conflicts...)
	return out
}

// IsSuccess returns true if no call failed.
func (r *Result) IsSuccess() bool {
	return len(r.Failures) == 0
}

// HasChanges returns true if the run created, updated, linked or unlinked anything.
func (r *Result) HasChanges() bool {
	for _, k := range []KindResult{r.Institutions, r.Collections, r.Staff} {
		if len(k.Created)+len(k.Updated)+len(k.Linked)+len(k.Removed) > 0 {
			return true
		}
	}
	return false
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	var parts []string
	if r.Metadata.DryRun {
		parts = append(parts, "(Dry run)")
	}
	for _, kind := range []registry.Kind{registry.KindInstitution, registry.KindCollection, registry.KindPerson} {
		c := r.Kind(kind).Counts()
		parts = append(parts, fmt.Sprintf("%s: %d created, %d updated, %d unchanged, %d conflicts",
			kind, c.Created, c.Updated, c.Matched, c.Conflicts))
	}
	summary := fmt.Sprintf("%s sync of %d records", r.Metadata.Source, r.Metadata.Records)
	if !r.IsSuccess() {
		summary += fmt.Sprintf(" with %d failures", len(r.Failures))
	}
	return summary + "; " + strings.Join(parts, "; ")
}

// WithNotificationFailures returns a copy of r carrying the failures of the
// notification sent after the run.
func (r *Result) WithNotificationFailures(failures []FailedAction) *Result {
	c := *r
	c.NotificationFailures = slices.Clone(failures)
	return &c
}

// WithLateFailures returns a copy of r with failures recorded after it was
// finalized folded into Failures and the per-kind lists.
func (r *Result) WithLateFailures(failures []FailedAction) *Result {
	c := *r
	if len(failures) == 0 {
		return &c
	}
	c.Failures = append(slices.Clone(r.Failures), failures...)
	for _, f := range failures {
		var k *KindResult
		switch f.Kind {
		case registry.KindInstitution:
			k = &c.Institutions
		case registry.KindCollection:
			k = &c.Collections
		case registry.KindPerson:
			k = &c.Staff
		default:
			continue
		}
		k.Failed = append(slices.Clip(k.Failed), f)
	}
	return &c
}
