package sync

import (
	"context"

	"github.com/agentstation/registrysync/pkg/convert"
	"github.com/agentstation/registrysync/pkg/registry"
)

// Handler holds the per-kind operations the orchestrator needs. The state
// machine in syncEntity is written once against it.
type Handler[T any] struct {
	Kind   registry.Kind
	Get    func(ctx context.Context, key string) (T, error)
	Create func(ctx context.Context, v T) (string, error)
	Update func(ctx context.Context, v T) error

	Key         func(v T) string
	WithKey     func(v T, key string) T
	Label       func(v T) string
	Identifiers func(v T) []registry.Identifier
	MachineTags func(v T) []registry.MachineTag

	// Bare strips the sub-entities, which are attached after creation.
	Bare  func(v T) T
	Merge func(existing, incoming T) T
	Equal func(a, b T) bool
	Diff  func(a, b T) string
}

// handlers is the lookup table of handlers per kind.
type handlers struct {
	institution Handler[registry.Institution]
	collection  Handler[registry.Collection]
	person      Handler[registry.Person]
}

func newHandlers(c registry.Client) handlers {
	return handlers{
		institution: Handler[registry.Institution]{
			Kind:   registry.KindInstitution,
			Get:    c.Institution,
			Create: c.CreateInstitution,
			Update: c.UpdateInstitution,
			Key:    func(i registry.Institution) string { return i.Key },
			WithKey: func(i registry.Institution, key string) registry.Institution {
				i.Key = key
				return i
			},
			Label:       func(i registry.Institution) string { return label(i.Code, i.Name) },
			Identifiers: registry.Institution.IdentifierList,
			MachineTags: registry.Institution.MachineTagList,
			Bare: func(i registry.Institution) registry.Institution {
				i = i.Clone()
				i.Identifiers, i.MachineTags = nil, nil
				return i
			},
			Merge: convert.MergeInstitution,
			Equal: registry.LenientEqualInstitution,
			Diff:  registry.LenientDiff[registry.Institution],
		},
		collection: Handler[registry.Collection]{
			Kind:   registry.KindCollection,
			Get:    c.Collection,
			Create: c.CreateCollection,
			Update: c.UpdateCollection,
			Key:    func(col registry.Collection) string { return col.Key },
			WithKey: func(col registry.Collection, key string) registry.Collection {
				col.Key = key
				return col
			},
			Label:       func(col registry.Collection) string { return label(col.Code, col.Name) },
			Identifiers: registry.Collection.IdentifierList,
			MachineTags: registry.Collection.MachineTagList,
			Bare: func(col registry.Collection) registry.Collection {
				col = col.Clone()
				col.Identifiers, col.MachineTags = nil, nil
				return col
			},
			Merge: convert.MergeCollection,
			Equal: registry.LenientEqualCollection,
			Diff:  registry.LenientDiff[registry.Collection],
		},
		person: Handler[registry.Person]{
			Kind:   registry.KindPerson,
			Get:    c.Person,
			Create: c.CreatePerson,
			Update: c.UpdatePerson,
			Key:    func(p registry.Person) string { return p.Key },
			WithKey: func(p registry.Person, key string) registry.Person {
				p.Key = key
				return p
			},
			Label:       registry.Person.FullName,
			Identifiers: registry.Person.IdentifierList,
			MachineTags: registry.Person.MachineTagList,
			Bare: func(p registry.Person) registry.Person {
				p = p.Clone()
				p.Identifiers, p.MachineTags = nil, nil
				return p
			},
			Merge: convert.MergePerson,
			Equal: registry.LenientEqualPerson,
			Diff:  registry.LenientDiff[registry.Person],
		},
	}
}

func label(code, name string) string {
	switch {
	case code == "":
		return name
	case name == "":
		return code
	}
	return code + " - " + name
}
