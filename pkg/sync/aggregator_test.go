package sync_test

import (
	gosync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/registrysync/pkg/match"
	"github.com/agentstation/registrysync/pkg/registry"
	"github.com/agentstation/registrysync/pkg/sources"
	"github.com/agentstation/registrysync/pkg/sync"
)

func fixedClock() func() time.Time {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return func() time.Time { return now }
}

func TestAggregatorConcurrentAppendsLoseNothing(t *testing.T) {
	agg := sync.NewAggregator(sources.HerbariumID, "IH", false, fixedClock())

	const workers = 64
	var wg gosync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			kind := registry.KindInstitution
			if i%2 == 0 {
				kind = registry.KindCollection
			}
			agg.AddFailure(sync.FailedAction{Op: "create", Kind: kind, Message: "boom"})
			agg.AddChange(sync.Change{Kind: registry.KindPerson, Action: sync.ActionLinked})
			agg.AddConflict(sync.Conflict{Kind: kind})
			agg.AddOutcome(match.NoMatch)
		}()
	}
	wg.Wait()

	r := agg.Finalize()
	assert.Len(t, r.Failures, workers)
	assert.Len(t, r.Institutions.Failed, workers/2)
	assert.Len(t, r.Collections.Failed, workers/2)
	assert.Len(t, r.Staff.Linked, workers)
	assert.Len(t, r.Conflicts(), workers)
	assert.Equal(t, workers, r.Metadata.Records)
	assert.Equal(t, workers, r.Metadata.Outcomes["no match"])
}

func TestAggregatorFinalizeFreezesResult(t *testing.T) {
	agg := sync.NewAggregator(sources.AggregatorID, "iDigBio", true, fixedClock())
	agg.AddChange(sync.Change{Kind: registry.KindCollection, Action: sync.ActionUpdated, Key: "c1"})

	first := agg.Finalize()
	agg.AddChange(sync.Change{Kind: registry.KindCollection, Action: sync.ActionCreated})
	agg.AddFailure(sync.FailedAction{Op: "addIdentifier", Kind: registry.KindCollection})

	second := agg.Finalize()
	assert.Same(t, first, second)
	assert.Len(t, second.Collections.Updated, 1)
	assert.Empty(t, second.Collections.Created)
	assert.True(t, second.IsSuccess())
	assert.Len(t, agg.LateFailures(), 1)
	assert.True(t, second.Metadata.DryRun)
	assert.True(t, second.HasChanges())
}

func TestNotificationFailuresDoNotChangeStatus(t *testing.T) {
	agg := sync.NewAggregator(sources.HerbariumID, "IH", false, fixedClock())
	r := agg.Finalize()

	agg.AddNotificationFailure(sync.FailedAction{Op: "createIssue", Message: "tracker down"})
	withNotify := r.WithNotificationFailures(agg.NotificationFailures())

	require.Len(t, withNotify.NotificationFailures, 1)
	assert.True(t, withNotify.IsSuccess())
	assert.Empty(t, r.NotificationFailures)
}

func TestResultSummary(t *testing.T) {
	agg := sync.NewAggregator(sources.HerbariumID, "IH", true, fixedClock())
	agg.AddChange(sync.Change{Kind: registry.KindInstitution, Action: sync.ActionCreated})
	agg.AddFailure(sync.FailedAction{Op: "create", Kind: registry.KindCollection})

	s := agg.Finalize().Summary()
	assert.Contains(t, s, "(Dry run)")
	assert.Contains(t, s, "institution: 1 created")
	assert.Contains(t, s, "with 1 failures")
}
