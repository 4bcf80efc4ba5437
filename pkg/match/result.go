// Package match finds the registry entities a source record corresponds to
// and classifies the outcome.
package match

import (
	"github.com/agentstation/registrysync/pkg/registry"
)

// Outcome is the classification of a Result.
type Outcome int

// Outcomes, in classification precedence.
const (
	NoMatch Outcome = iota
	InstitutionMatch
	CollectionMatch
	InstitutionAndCollectionMatch
	Ambiguous
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case NoMatch:
		return "no match"
	case InstitutionMatch:
		return "institution match"
	case CollectionMatch:
		return "collection match"
	case InstitutionAndCollectionMatch:
		return "institution and collection match"
	case Ambiguous:
		return "ambiguous"
	}
	return "unknown"
}

// Result holds a source record and the registry candidates found for it.
// Institution and collection candidates are collected independently.
type Result[S any] struct {
	Source       S
	Staff        []registry.Person
	Institutions []registry.Institution
	Collections  []registry.Collection
}

// NoMatches reports whether no candidate was found.
func (r Result[S]) NoMatches() bool {
	return len(r.Institutions) == 0 && len(r.Collections) == 0
}

// OnlyOneInstitutionMatch reports exactly one institution and no collection.
func (r Result[S]) OnlyOneInstitutionMatch() bool {
	return len(r.Institutions) == 1 && len(r.Collections) == 0
}

// OnlyOneCollectionMatch reports exactly one collection and no institution.
func (r Result[S]) OnlyOneCollectionMatch() bool {
	return len(r.Collections) == 1 && len(r.Institutions) == 0
}

// InstitutionAndCollectionMatch reports exactly one candidate of each kind
// where the collection belongs to the institution.
func (r Result[S]) InstitutionAndCollectionMatch() bool {
	return len(r.Institutions) == 1 &&
		len(r.Collections) == 1 &&
		r.Collections[0].InstitutionKey == r.Institutions[0].Key
}

// Classify returns exactly one outcome. Anything not covered by the other
// outcomes is Ambiguous and must not be applied automatically.
func (r Result[S]) Classify() Outcome {
	switch {
	case r.NoMatches():
		return NoMatch
	case r.OnlyOneInstitutionMatch():
		return InstitutionMatch
	case r.OnlyOneCollectionMatch():
		return CollectionMatch
	case r.InstitutionAndCollectionMatch():
		return InstitutionAndCollectionMatch
	}
	return Ambiguous
}

// Institution returns the single institution candidate.
func (r Result[S]) Institution() (registry.Institution, bool) {
	if len(r.Institutions) != 1 {
		return registry.Institution{}, false
	}
	return r.Institutions[0], true
}

// Collection returns the single collection candidate.
func (r Result[S]) Collection() (registry.Collection, bool) {
	if len(r.Collections) != 1 {
		return registry.Collection{}, false
	}
	return r.Collections[0], true
}
