package issues_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/registrysync/pkg/errors"
	"github.com/agentstation/registrysync/pkg/executor"
	"github.com/agentstation/registrysync/pkg/issues"
	"github.com/agentstation/registrysync/pkg/issues/memory"
	"github.com/agentstation/registrysync/pkg/registry"
	"github.com/agentstation/registrysync/pkg/sources"
	"github.com/agentstation/registrysync/pkg/sync"
)

var runTime = time.Date(2024, 1, 3, 8, 30, 0, 0, time.UTC)

func builder() *issues.Builder {
	return issues.NewBuilder("IH", []string{"curator"}, func() time.Time { return runTime })
}

func failedResult() *sync.Result {
	agg := sync.NewAggregator(sources.HerbariumID, "IH", false, func() time.Time { return runTime })
	agg.AddFailure(sync.FailedAction{Op: "create", Kind: registry.KindInstitution, Entity: "NY - New York Botanical Garden", Message: "registry unavailable"})
	agg.AddFailure(sync.FailedAction{Op: "addPerson", Kind: registry.KindCollection, Entity: "Ana Lopez", Message: "not found"})
	return agg.Finalize()
}

func TestMergeLabelsKeepsOldestTimestamp(t *testing.T) {
	got := issues.MergeLabels(
		[]string{"2024-01-01 00:00:00", "2024-01-02 00:00:00", "bug"},
		[]string{"2024-01-03 00:00:00"},
	)
	assert.ElementsMatch(t, []string{"2024-01-01 00:00:00", "bug", "2024-01-03 00:00:00"}, got)
}

func TestMergeLabelsUnionsPlainLabels(t *testing.T) {
	got := issues.MergeLabels([]string{"IH fail", "bug"}, []string{"IH fail", "triage"})
	assert.Equal(t, []string{"IH fail", "bug", "triage"}, got)
}

func TestMergeAssignees(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, issues.MergeAssignees([]string{"a", "b"}, []string{"b", "c"}))
}

func TestFailsNotification(t *testing.T) {
	issue := builder().FailsNotification(failedResult())

	assert.Equal(t, "IH sync 2024-01-03 failures", issue.Title)
	assert.Equal(t, []string{"IH fail", "2024-01-03 08:30:00"}, issue.Labels)
	assert.Equal(t, []string{"curator"}, issue.Assignees)
	assert.Contains(t, issue.Body, "```")
	assert.Contains(t, issue.Body, "Error: registry unavailable\nEntity: NY - New York Botanical Garden")
	assert.Contains(t, issue.Body, "Error: not found\nEntity: Ana Lopez")
}

func TestConflictIssueLinksCandidates(t *testing.T) {
	issue := builder().Conflict(sync.Conflict{
		Kind:   registry.KindInstitution,
		Source: "NY (IRN 1001)",
		Reason: "2 institutions and 0 collections match",
		Links:  []string{"https://registry.example.org/institution/i1", "https://registry.example.org/institution/i2"},
	})

	assert.Equal(t, "IH sync conflict: NY (IRN 1001)", issue.Title)
	assert.Contains(t, issue.Labels, "IH conflict")
	assert.Contains(t, issue.Body, "https://registry.example.org/institution/i2")
	assert.Contains(t, issue.Body, "2 institutions and 0 collections match")
}

func TestSubmitCreatesThenUpdates(t *testing.T) {
	ctx := context.Background()
	tracker := memory.New()
	agg := issues.NewAggregator(tracker)

	first, err := agg.Submit(ctx, issues.Issue{
		Title:     "IH sync 2024-01-03 failures",
		Labels:    []string{"IH fail", "2024-01-03 08:30:00"},
		Assignees: []string{"curator"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Number)

	_, err = agg.Submit(ctx, issues.Issue{
		Title:     "IH sync 2024-01-03 failures",
		Labels:    []string{"IH fail", "2024-01-03 18:00:00"},
		Assignees: []string{"maintainer"},
	})
	require.NoError(t, err)

	all := tracker.Issues()
	require.Len(t, all, 1)
	assert.ElementsMatch(t, []string{"IH fail", "2024-01-03 08:30:00", "2024-01-03 18:00:00"}, all[0].Labels)
	assert.Equal(t, []string{"curator", "maintainer"}, all[0].Assignees)
	assert.Equal(t, []string{"find", "create", "find", "update"}, tracker.Calls())
}

func TestSubmitWrapsTrackerErrors(t *testing.T) {
	tracker := memory.New()
	tracker.SetError(errors.NewAPIError("github", 502, "bad gateway"))

	_, err := issues.NewAggregator(tracker).Submit(context.Background(), issues.Issue{Title: "t"})
	require.Error(t, err)
	assert.True(t, errors.IsServiceUnavailable(err))
}

func TestNotifyRecordsFailuresApart(t *testing.T) {
	tracker := memory.New()
	tracker.SetError(errors.New("tracker down"))

	var failed []executor.FailedAction
	ex := executor.New(executor.WithFailureHandler(func(f executor.FailedAction) { failed = append(failed, f) }))
	n := issues.NewAggregator(tracker).Notify(context.Background(), ex, builder(), failedResult())
	ex.Wait()

	assert.Equal(t, 1, n)
	require.Len(t, failed, 1)
	assert.Equal(t, "submitIssue", failed[0].Op)
}

func TestNotifyDryRunSendsNothing(t *testing.T) {
	tracker := memory.New()
	ex := executor.New(executor.WithDryRun(true))

	issues.NewAggregator(tracker).Notify(context.Background(), ex, builder(), failedResult())
	ex.Wait()

	assert.Empty(t, tracker.Calls())
}

func TestNotifySkipsCleanRun(t *testing.T) {
	tracker := memory.New()
	ex := executor.New()
	r := sync.NewAggregator(sources.HerbariumID, "IH", false, nil).Finalize()

	assert.Zero(t, issues.NewAggregator(tracker).Notify(context.Background(), ex, builder(), r))
	ex.Wait()
	assert.Empty(t, tracker.Calls())
}
