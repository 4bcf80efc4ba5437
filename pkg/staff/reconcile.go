package staff

import (
	"github.com/agentstation/registrysync/pkg/registry"
)

// Candidate is a staff member proposed by a source, converted to a person.
type Candidate struct {
	// ID identifies the row in the source, e.g. its IRN.
	ID string
	// Person is the source data as a registry person without key.
	Person registry.Person
	// Completeness counts the non-empty fields of the source row.
	Completeness int
}

// Pair is a source candidate matched to an existing contact.
type Pair struct {
	Candidate Candidate
	Contact   registry.Person
	Rule      Rule
}

// Conflict is a match that cannot be applied automatically: one candidate
// matching several contacts or one contact matched by several candidates.
type Conflict struct {
	Candidates []Candidate
	Contacts   []registry.Person
}

// Diff is the outcome of reconciling source staff against contacts.
type Diff struct {
	Matched    []Pair
	New        []Candidate
	Removed    []registry.Person
	Conflicts  []Conflict
	Duplicates []Candidate
}

// HasChanges reports whether applying the diff would mutate the registry.
func (d Diff) HasChanges() bool {
	return len(d.New) > 0 || len(d.Removed) > 0 || len(d.Matched) > 0
}

// Dedup drops duplicate candidates describing the same person, keeping the
// most complete one. On ties the earlier candidate wins. Discarded
// candidates are returned second.
func Dedup(candidates []Candidate) (kept, discarded []Candidate) {
	views := make([]View, len(candidates))
	for i, c := range candidates {
		views[i] = NewView(c.Person)
	}

	dropped := make([]bool, len(candidates))
	for i := range candidates {
		if dropped[i] {
			continue
		}
		for j := i + 1; j < len(candidates); j++ {
			if dropped[j] || !SameIdentity(views[i], views[j]) {
				continue
			}
			if candidates[j].Completeness > candidates[i].Completeness {
				dropped[i] = true
				break
			}
			dropped[j] = true
		}
	}

	for i, c := range candidates {
		if dropped[i] {
			discarded = append(discarded, c)
		} else {
			kept = append(kept, c)
		}
	}
	return kept, discarded
}

// Reconcile matches source candidates against the current contacts of an
// entity. For each candidate the rules are tried in order of preference and
// the first rule matching any contact decides its matches.
//
// A candidate matching no contact is new. A contact matched by no candidate
// is removed, meaning unlinked. A candidate matching several contacts, or a
// contact matched by several candidates, is a conflict and none of the
// persons involved is changed.
func Reconcile(candidates []Candidate, contacts []registry.Person) Diff {
	var diff Diff
	candidates, diff.Duplicates = Dedup(candidates)

	contactViews := make([]View, len(contacts))
	for i, c := range contacts {
		contactViews[i] = NewView(c)
	}

	type tentative struct {
		candidate int
		rule      Rule
	}
	byContact := make(map[int][]tentative)
	touched := make([]bool, len(contacts))

	for ci, cand := range candidates {
		view := NewView(cand.Person)
		matched, rule := matchContacts(view, contactViews)

		switch len(matched) {
		case 0:
			diff.New = append(diff.New, cand)
		case 1:
			byContact[matched[0]] = append(byContact[matched[0]], tentative{candidate: ci, rule: rule})
		default:
			conflict := Conflict{Candidates: []Candidate{cand}}
			for _, idx := range matched {
				conflict.Contacts = append(conflict.Contacts, contacts[idx])
				touched[idx] = true
			}
			diff.Conflicts = append(diff.Conflicts, conflict)
		}
	}

	for idx, contact := range contacts {
		matches := byContact[idx]
		switch {
		case len(matches) == 0:
			if !touched[idx] {
				diff.Removed = append(diff.Removed, contact)
			}
		case len(matches) > 1 || touched[idx]:
			conflict := Conflict{Contacts: []registry.Person{contact}}
			for _, m := range matches {
				conflict.Candidates = append(conflict.Candidates, candidates[m.candidate])
			}
			diff.Conflicts = append(diff.Conflicts, conflict)
		default:
			diff.Matched = append(diff.Matched, Pair{
				Candidate: candidates[matches[0].candidate],
				Contact:   contact,
				Rule:      matches[0].rule,
			})
		}
	}
	return diff
}

func matchContacts(view View, contacts []View) ([]int, Rule) {
	for _, rule := range rules {
		var matched []int
		for i, c := range contacts {
			if rule.Matches(view, c) {
				matched = append(matched, i)
			}
		}
		if len(matched) > 0 {
			return matched, rule
		}
	}
	return nil, RuleNone
}
