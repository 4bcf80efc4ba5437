package registry

import (
	"context"
	"strings"
)

// Reader reads the registry. Snapshot readers return every entity and are
// used once at the start of a run.
type Reader interface {
	Institution(ctx context.Context, key string) (Institution, error)
	Collection(ctx context.Context, key string) (Collection, error)
	Person(ctx context.Context, key string) (Person, error)

	Institutions(ctx context.Context) ([]Institution, error)
	Collections(ctx context.Context) ([]Collection, error)
	Persons(ctx context.Context) ([]Person, error)
}

// Writer mutates the registry. Create calls return the new entity key and
// sub-entity calls return the new sub-entity key.
type Writer interface {
	CreateInstitution(ctx context.Context, i Institution) (string, error)
	UpdateInstitution(ctx context.Context, i Institution) error
	CreateCollection(ctx context.Context, c Collection) (string, error)
	UpdateCollection(ctx context.Context, c Collection) error
	CreatePerson(ctx context.Context, p Person) (string, error)
	UpdatePerson(ctx context.Context, p Person) error

	AddIdentifier(ctx context.Context, kind Kind, key string, id Identifier) (int, error)
	AddMachineTag(ctx context.Context, kind Kind, key string, tag MachineTag) (int, error)
	AddPerson(ctx context.Context, kind Kind, key, personKey string) error
	RemovePerson(ctx context.Context, kind Kind, key, personKey string) error
}

// Client is the full registry contract.
type Client interface {
	Reader
	Writer
}

// Snapshot is the registry state read at the start of a run.
type Snapshot struct {
	Institutions []Institution `json:"institutions" yaml:"institutions"`
	Collections  []Collection  `json:"collections" yaml:"collections"`
	Persons      []Person      `json:"persons" yaml:"persons"`
}

// LoadSnapshot reads every entity from r.
func LoadSnapshot(ctx context.Context, r Reader) (*Snapshot, error) {
	institutions, err := r.Institutions(ctx)
	if err != nil {
		return nil, err
	}
	collections, err := r.Collections(ctx)
	if err != nil {
		return nil, err
	}
	persons, err := r.Persons(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Institutions: institutions, Collections: collections, Persons: persons}, nil
}

// PersonsByKey returns the persons whose keys are listed, in list order.
// Unknown keys are skipped.
func (s *Snapshot) PersonsByKey(keys []string) []Person {
	index := make(map[string]Person, len(s.Persons))
	for _, p := range s.Persons {
		index[p.Key] = p
	}
	persons := make([]Person, 0, len(keys))
	for _, k := range keys {
		if p, ok := index[k]; ok {
			persons = append(persons, p)
		}
	}
	return persons
}

// PortalLinks builds links to entities in the registry portal.
type PortalLinks struct {
	base string
}

// NewPortalLinks returns links rooted at baseURL. A trailing slash is dropped.
func NewPortalLinks(baseURL string) PortalLinks {
	return PortalLinks{base: strings.TrimRight(baseURL, "/")}
}

// Link returns <base>/<kind>/<key>.
func (l PortalLinks) Link(kind Kind, key string) string {
	return l.base + "/" + string(kind) + "/" + key
}

// EntityLink returns the link to e.
func (l PortalLinks) EntityLink(e Entity) string {
	return l.Link(e.EntityKind(), e.EntityKey())
}
