package issues

import (
	"context"

	"github.com/agentstation/registrysync/pkg/errors"
	"github.com/agentstation/registrysync/pkg/executor"
	"github.com/agentstation/registrysync/pkg/logging"
	"github.com/agentstation/registrysync/pkg/sync"
)

// Aggregator submits issues so that each title has a single open issue.
type Aggregator struct {
	tracker Tracker
}

// NewAggregator returns an Aggregator on tracker.
func NewAggregator(tracker Tracker) *Aggregator {
	return &Aggregator{tracker: tracker}
}

// Submit opens issue, or merges its labels and assignees into the open issue
// with the same title.
func (a *Aggregator) Submit(ctx context.Context, issue Issue) (Issue, error) {
	existing, found, err := a.tracker.FindByTitle(ctx, issue.Title)
	if err != nil {
		return Issue{}, errors.WrapResource("find", "issue", issue.Title, err)
	}

	if !found {
		created, err := a.tracker.Create(ctx, issue)
		if err != nil {
			return Issue{}, errors.WrapResource("create", "issue", issue.Title, err)
		}
		logging.FromContext(ctx).Info().Int("issue", created.Number).Str("title", issue.Title).Msg("Issue created")
		return created, nil
	}

	existing.Labels = MergeLabels(existing.Labels, issue.Labels)
	existing.Assignees = MergeAssignees(existing.Assignees, issue.Assignees)
	if err := a.tracker.Update(ctx, existing); err != nil {
		return Issue{}, errors.WrapResource("update", "issue", issue.Title, err)
	}
	logging.FromContext(ctx).Info().Int("issue", existing.Number).Str("title", issue.Title).Msg("Issue updated")
	return existing, nil
}

// Notify submits the failures issue and one issue per conflict of r in the
// background. Nothing is sent in a dry run or for a run without failures
// and conflicts. It returns the number of issues dispatched.
func (a *Aggregator) Notify(ctx context.Context, ex *executor.Executor, b *Builder, r *sync.Result) int {
	var batch []Issue
	if !r.IsSuccess() {
		batch = append(batch, b.FailsNotification(r))
	}
	for _, c := range r.Conflicts() {
		batch = append(batch, b.Conflict(c))
	}

	for _, issue := range batch {
		target := executor.Target{Op: "submitIssue", Entity: issue.Title}
		ex.Go(ctx, target, func(ctx context.Context) error {
			_, err := a.Submit(ctx, issue)
			return err
		})
	}
	return len(batch)
}
