package sync

import (
	"context"
	"fmt"

	"github.com/agentstation/registrysync/pkg/executor"
	"github.com/agentstation/registrysync/pkg/logging"
	"github.com/agentstation/registrysync/pkg/match"
	"github.com/agentstation/registrysync/pkg/registry"
	"github.com/agentstation/registrysync/pkg/sources"
	"github.com/agentstation/registrysync/pkg/staff"
)

// Call names, shared with the registry fakes.
const (
	opCreate        = "create"
	opUpdate        = "update"
	opAddIdentifier = "addIdentifier"
	opAddMachineTag = "addMachineTag"
	opAddPerson     = "addPerson"
	opRemovePerson  = "removePerson"
)

// record is a source record converted to registry entities.
type record struct {
	id          string
	label       string
	institution registry.Institution
	collection  registry.Collection
	candidates  []staff.Candidate
	// staffOnInstitution links the staff to the institution as well as the
	// collection.
	staffOnInstitution bool
}

// orchestrator drives the calls of a run. The primary pass is sequential so
// its run state needs no lock; background calls only touch the executor and
// the aggregator.
type orchestrator struct {
	source sources.ID
	opts   *Options
	client registry.Client
	ex     *executor.Executor
	agg    *Aggregator
	links  registry.PortalLinks
	h      handlers

	// latest holds the last written version of each entity by key.
	latest map[string]any
	// persons holds the person each staff candidate became, by candidate ID.
	persons map[string]registry.Person
	// linked and unlinked adjust the snapshot contacts of an entity key.
	linked   map[string][]string
	unlinked map[string]map[string]bool
	// merged holds the contacts already merged with a source row, by
	// candidate ID and person key. staffConflicts holds the staff conflicts
	// already reported.
	merged         map[string]registry.Person
	staffConflicts map[string]bool
}

func newOrchestrator(source sources.ID, client registry.Client, opts *Options) *orchestrator {
	agg := NewAggregator(source, opts.ProcessName, opts.DryRun, opts.Clock)
	ex := executor.New(
		executor.WithDryRun(opts.DryRun),
		executor.WithFailureHandler(agg.AddFailure),
		executor.WithMetrics(opts.Metrics),
		executor.WithClock(opts.Clock),
	)
	return &orchestrator{
		source:   source,
		opts:     opts,
		client:   client,
		ex:       ex,
		agg:      agg,
		links:    registry.NewPortalLinks(opts.PortalURL),
		h:        newHandlers(client),
		latest:   make(map[string]any),
		persons:  make(map[string]registry.Person),
		linked:   make(map[string][]string),
		unlinked: make(map[string]map[string]bool),

		merged:         make(map[string]registry.Person),
		staffConflicts: make(map[string]bool),
	}
}

// syncEntity creates incoming when existing is nil, otherwise merges incoming
// into existing and updates the entity when the merge changed anything.
// Identifiers and machine tags without key are attached in the background.
// It returns the resulting entity and whether it exists in the registry, or
// would in a dry run.
func syncEntity[T any](ctx context.Context, o *orchestrator, h Handler[T], existing *T, incoming T, parent string) (T, bool) {
	if existing == nil {
		return createEntity(ctx, o, h, incoming, parent)
	}

	current := *existing
	key := h.Key(current)
	if v, ok := o.latest[key].(T); ok {
		current = v
	}
	ctx = logging.WithEntity(ctx, string(h.Kind), key)

	merged := h.Merge(current, incoming)
	change := Change{Kind: h.Kind, Key: key, Label: h.Label(merged), Parent: parent}
	if h.Equal(current, merged) {
		logging.FromContext(ctx).Debug().Msg("Entity unchanged")
		change.Action = ActionMatched
		o.agg.AddChange(change)
		return current, true
	}

	target := executor.Target{Op: opUpdate, Kind: h.Kind, Key: key, Entity: change.Label}
	if !o.ex.Do(ctx, target, func(ctx context.Context) error { return h.Update(ctx, merged) }) {
		return current, true
	}
	o.latest[key] = merged
	change.Action = ActionUpdated
	change.Diff = h.Diff(current, merged)
	o.agg.AddChange(change)
	o.attach(ctx, h.Kind, key, h.Identifiers(merged), h.MachineTags(merged))
	return merged, true
}

func createEntity[T any](ctx context.Context, o *orchestrator, h Handler[T], incoming T, parent string) (T, bool) {
	lbl := h.Label(incoming)
	target := executor.Target{Op: opCreate, Kind: h.Kind, Entity: lbl}
	key, ok := executor.Return(ctx, o.ex, target, func(ctx context.Context) (string, error) {
		return h.Create(ctx, h.Bare(incoming))
	}, "")
	if !ok {
		return incoming, false
	}

	created := h.WithKey(incoming, key)
	if key != "" {
		o.latest[key] = created
	}
	o.agg.AddChange(Change{Kind: h.Kind, Action: ActionCreated, Key: key, Label: lbl, Parent: parent})
	o.attach(logging.WithEntity(ctx, string(h.Kind), key), h.Kind, key, h.Identifiers(incoming), h.MachineTags(incoming))
	return created, true
}

// attach adds the identifiers and machine tags that have no key yet.
func (o *orchestrator) attach(ctx context.Context, kind registry.Kind, key string, ids []registry.Identifier, tags []registry.MachineTag) {
	for _, id := range ids {
		if id.Key != 0 {
			continue
		}
		target := executor.Target{Op: opAddIdentifier, Kind: kind, Key: key, Entity: id.Type + ":" + id.Identifier}
		o.ex.Go(ctx, target, func(ctx context.Context) error {
			_, err := o.client.AddIdentifier(ctx, kind, key, id)
			return err
		})
	}
	for _, tag := range tags {
		if tag.Key != 0 {
			continue
		}
		target := executor.Target{Op: opAddMachineTag, Kind: kind, Key: key, Entity: tag.Namespace + ":" + tag.Name + "=" + tag.Value}
		o.ex.Go(ctx, target, func(ctx context.Context) error {
			_, err := o.client.AddMachineTag(ctx, kind, key, tag)
			return err
		})
	}
}

// apply classifies res and brings the registry in line with its record. It
// returns the institution the record ended up under, if any.
func (o *orchestrator) apply(ctx context.Context, m *match.Matcher, res match.Result[record]) (registry.Institution, bool) {
	rec := res.Source
	ctx = logging.WithRecord(ctx, rec.id)
	outcome := res.Classify()
	o.agg.AddOutcome(outcome)
	o.opts.Metrics.Outcome(string(o.source), outcome.String())
	logging.FromContext(ctx).Debug().Str("outcome", outcome.String()).Msg("Record classified")

	switch outcome {
	case match.NoMatch:
		inst, ok := syncEntity(ctx, o, o.h.institution, nil, rec.institution, "")
		if !ok {
			return inst, false
		}
		o.institutionStaff(ctx, m, rec, inst)
		col := rec.collection
		col.InstitutionKey = inst.Key
		o.collection(ctx, m, rec, nil, col, o.h.institution.Label(inst))
		return inst, true

	case match.InstitutionMatch:
		existing := res.Institutions[0]
		inst, _ := syncEntity(ctx, o, o.h.institution, &existing, rec.institution, "")
		o.institutionStaff(ctx, m, rec, inst)
		col := rec.collection
		col.InstitutionKey = inst.Key
		o.collection(ctx, m, rec, nil, col, o.h.institution.Label(inst))
		return inst, true

	case match.CollectionMatch:
		existing := res.Collections[0]
		o.collection(ctx, m, rec, &existing, rec.collection, "")

	case match.InstitutionAndCollectionMatch:
		existingInst, existingCol := res.Institutions[0], res.Collections[0]
		inst, _ := syncEntity(ctx, o, o.h.institution, &existingInst, rec.institution, "")
		o.institutionStaff(ctx, m, rec, inst)
		o.collection(ctx, m, rec, &existingCol, rec.collection, o.h.institution.Label(inst))
		return inst, true

	case match.Ambiguous:
		o.conflict(ctx, rec, res)
	}
	return registry.Institution{}, false
}

// finish freezes the result of the primary pass.
func (o *orchestrator) finish(ctx context.Context) *Result {
	r := o.agg.Finalize()
	o.opts.Metrics.ObserveRun(string(o.source), r.Metadata.Duration)
	logging.FromContext(ctx).Info().
		Int("records", r.Metadata.Records).
		Int("failures", len(r.Failures)).
		Dur("duration", r.Metadata.Duration).
		Msg(r.Summary())
	return r
}

// Aggregator returns the aggregator of the run.
func (o *orchestrator) Aggregator() *Aggregator {
	return o.agg
}

// Executor returns the executor of the run. Notifications sent through it
// honor the dry-run setting.
func (o *orchestrator) Executor() *executor.Executor {
	return o.ex
}

// Options returns the options of the run.
func (o *orchestrator) Options() Options {
	return *o.opts
}

// Wait blocks until the background calls of the run have finished.
func (o *orchestrator) Wait() {
	o.ex.Wait()
}

func (o *orchestrator) institutionStaff(ctx context.Context, m *match.Matcher, rec record, inst registry.Institution) {
	if !rec.staffOnInstitution {
		return
	}
	o.syncStaff(ctx, m, registry.KindInstitution, inst.Key, inst.Contacts, rec.candidates, o.h.institution.Label(inst))
}

func (o *orchestrator) collection(ctx context.Context, m *match.Matcher, rec record, existing *registry.Collection, incoming registry.Collection, parent string) {
	col, ok := syncEntity(ctx, o, o.h.collection, existing, incoming, parent)
	if !ok {
		return
	}
	o.syncStaff(ctx, m, registry.KindCollection, col.Key, col.Contacts, rec.candidates, o.h.collection.Label(col))
}

func (o *orchestrator) conflict(ctx context.Context, rec record, res match.Result[record]) {
	c := Conflict{
		Kind:   registry.KindInstitution,
		Source: rec.label,
		Reason: fmt.Sprintf("%d institutions and %d collections match", len(res.Institutions), len(res.Collections)),
	}
	if len(res.Collections) > 1 || (len(res.Institutions) <= 1 && len(res.Collections) == 1) {
		c.Kind = registry.KindCollection
	}
	for _, i := range res.Institutions {
		c.Institutions = append(c.Institutions, i.Key)
		c.Links = append(c.Links, o.links.EntityLink(i))
	}
	for _, col := range res.Collections {
		c.Collections = append(c.Collections, col.Key)
		c.Links = append(c.Links, o.links.EntityLink(col))
	}
	logging.FromContext(ctx).Warn().Str("reason", c.Reason).Msg("Ambiguous match, nothing changed")
	o.agg.AddConflict(c)
}
