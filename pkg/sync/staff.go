package sync

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/agentstation/registrysync/pkg/executor"
	"github.com/agentstation/registrysync/pkg/logging"
	"github.com/agentstation/registrysync/pkg/match"
	"github.com/agentstation/registrysync/pkg/registry"
	"github.com/agentstation/registrysync/pkg/staff"
)

// syncStaff reconciles the candidates of a record against the contacts of
// one entity. New persons are created once per run and linked, matched
// persons are merged, contacts no longer listed are unlinked and conflicts
// are reported untouched.
func (o *orchestrator) syncStaff(ctx context.Context, m *match.Matcher, kind registry.Kind, key string, contactKeys []string, candidates []staff.Candidate, parent string) {
	if len(candidates) == 0 && len(contactKeys) == 0 {
		return
	}
	ctx = logging.WithEntity(ctx, string(kind), key)
	diff := staff.Reconcile(candidates, o.contacts(ctx, m, key, contactKeys))
	for _, d := range diff.Duplicates {
		logging.FromContext(ctx).Debug().Str("candidate", d.ID).Msg("Discarded less complete duplicate staff")
	}

	for _, c := range diff.New {
		p, ok := o.persons[c.ID]
		if !ok {
			incoming := c.Person.Clone()
			switch kind {
			case registry.KindInstitution:
				incoming.PrimaryInstitutionKey = key
			case registry.KindCollection:
				incoming.PrimaryCollectionKey = key
			}
			if p, ok = syncEntity(ctx, o, o.h.person, nil, incoming, parent); !ok {
				continue
			}
			o.persons[c.ID] = p
		}
		o.link(ctx, kind, key, p, parent)
	}

	for _, pair := range diff.Matched {
		contact := pair.Contact
		id := pair.Candidate.ID + "|" + contact.Key
		p, done := o.merged[id]
		if !done {
			p, _ = syncEntity(ctx, o, o.h.person, &contact, pair.Candidate.Person, parent)
			if contact.Key != "" {
				o.merged[id] = p
			}
		}
		o.persons[pair.Candidate.ID] = p
	}

	for _, p := range diff.Removed {
		o.unlink(ctx, kind, key, p, parent)
	}

	for _, c := range diff.Conflicts {
		o.staffConflict(ctx, c, parent)
	}
}

// contacts resolves the current contacts of an entity: the snapshot keys
// adjusted by the links made in this run.
func (o *orchestrator) contacts(ctx context.Context, m *match.Matcher, key string, snapshotKeys []string) []registry.Person {
	keys := slices.Clone(snapshotKeys)
	for _, k := range o.linked[key] {
		keys = registry.AddContact(keys, k)
	}
	out := make([]registry.Person, 0, len(keys))
	for _, k := range keys {
		if o.unlinked[key][k] {
			continue
		}
		if p, ok := o.latest[k].(registry.Person); ok {
			out = append(out, p)
			continue
		}
		if p, ok := m.Person(k); ok {
			out = append(out, p)
			continue
		}
		p, err := o.h.person.Get(ctx, k)
		if err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("person", k).Msg("Contact not found, skipping")
			continue
		}
		out = append(out, p)
	}
	return out
}

func (o *orchestrator) link(ctx context.Context, kind registry.Kind, key string, p registry.Person, parent string) {
	target := executor.Target{Op: opAddPerson, Kind: kind, Key: key, Entity: p.FullName()}
	if !o.ex.Do(ctx, target, func(ctx context.Context) error {
		return o.client.AddPerson(ctx, kind, key, p.Key)
	}) {
		return
	}
	if p.Key != "" {
		o.linked[key] = registry.AddContact(o.linked[key], p.Key)
		delete(o.unlinked[key], p.Key)
	}
	o.agg.AddChange(Change{Kind: registry.KindPerson, Action: ActionLinked, Key: p.Key, Label: p.FullName(), Parent: parent})
}

func (o *orchestrator) unlink(ctx context.Context, kind registry.Kind, key string, p registry.Person, parent string) {
	target := executor.Target{Op: opRemovePerson, Kind: kind, Key: key, Entity: p.FullName()}
	if !o.ex.Do(ctx, target, func(ctx context.Context) error {
		return o.client.RemovePerson(ctx, kind, key, p.Key)
	}) {
		return
	}
	if o.unlinked[key] == nil {
		o.unlinked[key] = make(map[string]bool)
	}
	o.unlinked[key][p.Key] = true
	o.linked[key] = registry.RemoveContact(o.linked[key], p.Key)
	o.agg.AddChange(Change{Kind: registry.KindPerson, Action: ActionUnlinked, Key: p.Key, Label: p.FullName(), Parent: parent})
}

// staffConflict reports c once per run, under the first entity it was found
// on.
func (o *orchestrator) staffConflict(ctx context.Context, c staff.Conflict, parent string) {
	names := make([]string, 0, len(c.Candidates))
	ids := make([]string, 0, len(c.Candidates)+len(c.Contacts))
	for _, cand := range c.Candidates {
		names = append(names, cand.Person.FullName())
		ids = append(ids, cand.ID)
	}
	for _, p := range c.Contacts {
		ids = append(ids, p.Key)
	}
	slices.Sort(ids)
	id := strings.Join(ids, "|")
	if o.staffConflicts[id] {
		return
	}
	o.staffConflicts[id] = true

	conflict := Conflict{
		Kind:   registry.KindPerson,
		Source: strings.Join(names, ", "),
		Reason: fmt.Sprintf("%d staff match %d contacts of %s", len(c.Candidates), len(c.Contacts), parent),
	}
	for _, p := range c.Contacts {
		conflict.Persons = append(conflict.Persons, p.Key)
		conflict.Links = append(conflict.Links, o.links.EntityLink(p))
	}
	logging.FromContext(ctx).Warn().Str("reason", conflict.Reason).Msg("Ambiguous staff match, nothing changed")
	o.agg.AddConflict(conflict)
}
