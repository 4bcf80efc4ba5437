// Package memory provides an in-process issues.Tracker for tests and dry
// runs.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/agentstation/registrysync/pkg/errors"
	"github.com/agentstation/registrysync/pkg/issues"
)

// Tracker stores issues in memory. It is safe for concurrent use.
type Tracker struct {
	mu     sync.Mutex
	issues []issues.Issue
	calls  []string
	fail   error
}

var _ issues.Tracker = (*Tracker)(nil)

// New returns an empty tracker.
func New() *Tracker {
	return &Tracker{}
}

// SetError makes every call fail with err. A nil err restores the tracker.
func (t *Tracker) SetError(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fail = err
}

// Issues returns the stored issues.
func (t *Tracker) Issues() []issues.Issue {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.issues)
}

// Calls returns the names of the calls made so far.
func (t *Tracker) Calls() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.calls)
}

// FindByTitle implements issues.Tracker.
func (t *Tracker) FindByTitle(_ context.Context, title string) (issues.Issue, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, "find")
	if t.fail != nil {
		return issues.Issue{}, false, t.fail
	}
	for _, i := range t.issues {
		if i.Title == title {
			return clone(i), true, nil
		}
	}
	return issues.Issue{}, false, nil
}

// Create implements issues.Tracker.
func (t *Tracker) Create(_ context.Context, issue issues.Issue) (issues.Issue, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, "create")
	if t.fail != nil {
		return issues.Issue{}, t.fail
	}
	issue = clone(issue)
	issue.Number = len(t.issues) + 1
	t.issues = append(t.issues, issue)
	return clone(issue), nil
}

// Update implements issues.Tracker.
func (t *Tracker) Update(_ context.Context, issue issues.Issue) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, "update")
	if t.fail != nil {
		return t.fail
	}
	for i := range t.issues {
		if t.issues[i].Number == issue.Number {
			t.issues[i] = clone(issue)
			return nil
		}
	}
	return errors.NewNotFoundError("issue", issue.Title)
}

func clone(i issues.Issue) issues.Issue {
	i.Labels = slices.Clone(i.Labels)
	i.Assignees = slices.Clone(i.Assignees)
	return i
}
