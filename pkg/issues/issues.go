// Package issues reports the failures and conflicts of a sync run as issues
// in an issue tracker. Submitting is idempotent per title: a run repeated on
// the same day updates the open issue instead of opening another.
package issues

import (
	"context"
)

// Issue is the tracker payload.
type Issue struct {
	Number    int      `json:"number,omitempty" yaml:"number,omitempty"`
	Title     string   `json:"title" yaml:"title"`
	Body      string   `json:"body" yaml:"body"`
	Labels    []string `json:"labels,omitempty" yaml:"labels,omitempty"`
	Assignees []string `json:"assignees,omitempty" yaml:"assignees,omitempty"`
}

// Tracker is the issue tracker contract.
type Tracker interface {
	// FindByTitle returns the open issue with exactly this title.
	FindByTitle(ctx context.Context, title string) (Issue, bool, error)
	Create(ctx context.Context, issue Issue) (Issue, error)
	Update(ctx context.Context, issue Issue) error
}
