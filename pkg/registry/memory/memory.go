// Package memory provides an in-process registry.Client. It backs dry runs
// against a YAML snapshot and the tests of every package driving the registry.
package memory

import (
	"context"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"

	"github.com/agentstation/registrysync/pkg/errors"
	"github.com/agentstation/registrysync/pkg/registry"
)

// Call records one mutating call.
type Call struct {
	Op   string
	Kind registry.Kind
	Key  string
}

// FailFunc decides whether a mutating call fails. It returns nil to let the
// call through.
type FailFunc func(op string, kind registry.Kind, key string) error

// Registry is a concurrency safe in-memory registry.
type Registry struct {
	mu           sync.RWMutex
	institutions map[string]registry.Institution
	collections  map[string]registry.Collection
	persons      map[string]registry.Person
	order        map[registry.Kind][]string
	nextSubKey   int
	calls        []Call
	fail         FailFunc
	now          func() time.Time
}

var _ registry.Client = (*Registry)(nil)

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		institutions: make(map[string]registry.Institution),
		collections:  make(map[string]registry.Collection),
		persons:      make(map[string]registry.Person),
		order:        make(map[registry.Kind][]string),
		now:          time.Now,
	}
}

// SetFailFunc installs a failure injector for mutating calls.
func (r *Registry) SetFailFunc(fn FailFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = fn
}

// Calls returns the mutating calls made so far.
func (r *Registry) Calls() []Call {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.calls)
}

// Seed stores the snapshot as is, minting keys for entities without one.
// Seeding is not recorded as a mutating call.
func (r *Registry) Seed(s registry.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range s.Institutions {
		if i.Key == "" {
			i.Key = uuid.NewString()
		}
		r.putInstitution(i)
	}
	for _, c := range s.Collections {
		if c.Key == "" {
			c.Key = uuid.NewString()
		}
		r.putCollection(c)
	}
	for _, p := range s.Persons {
		if p.Key == "" {
			p.Key = uuid.NewString()
		}
		r.putPerson(p)
	}
}

// Load seeds a registry from a YAML snapshot file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	var s registry.Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	r := New()
	r.Seed(s)
	return r, nil
}

// Save writes the current state as a YAML snapshot.
func (r *Registry) Save(path string) error {
	s, err := registry.LoadSnapshot(context.Background(), r)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	return errors.WrapIO("write", path, os.WriteFile(path, data, 0o644))
}

// Institution implements registry.Reader.
func (r *Registry) Institution(_ context.Context, key string) (registry.Institution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.institutions[key]
	if !ok {
		return registry.Institution{}, errors.NewNotFoundError(string(registry.KindInstitution), key)
	}
	return i.Clone(), nil
}

// Collection implements registry.Reader.
func (r *Registry) Collection(_ context.Context, key string) (registry.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.collections[key]
	if !ok {
		return registry.Collection{}, errors.NewNotFoundError(string(registry.KindCollection), key)
	}
	return c.Clone(), nil
}

// Person implements registry.Reader.
func (r *Registry) Person(_ context.Context, key string) (registry.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.persons[key]
	if !ok {
		return registry.Person{}, errors.NewNotFoundError(string(registry.KindPerson), key)
	}
	return p.Clone(), nil
}

// Institutions implements registry.Reader.
func (r *Registry) Institutions(_ context.Context) ([]registry.Institution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]registry.Institution, 0, len(r.institutions))
	for _, k := range r.order[registry.KindInstitution] {
		out = append(out, r.institutions[k].Clone())
	}
	return out, nil
}

// Collections implements registry.Reader.
func (r *Registry) Collections(_ context.Context) ([]registry.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]registry.Collection, 0, len(r.collections))
	for _, k := range r.order[registry.KindCollection] {
		out = append(out, r.collections[k].Clone())
	}
	return out, nil
}

// Persons implements registry.Reader.
func (r *Registry) Persons(_ context.Context) ([]registry.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]registry.Person, 0, len(r.persons))
	for _, k := range r.order[registry.KindPerson] {
		out = append(out, r.persons[k].Clone())
	}
	return out, nil
}

// CreateInstitution implements registry.Writer.
func (r *Registry) CreateInstitution(_ context.Context, i registry.Institution) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("create", registry.KindInstitution, i.Key); err != nil {
		return "", err
	}
	if i.Key != "" {
		if _, exists := r.institutions[i.Key]; exists {
			return "", errors.ErrAlreadyExists
		}
	}
	i = i.Clone()
	i.Key = uuid.NewString()
	i.Created, i.Modified = r.stamp(), r.stamp()
	i.Identifiers = r.assignIdentifierKeys(i.Identifiers)
	i.MachineTags = r.assignTagKeys(i.MachineTags)
	r.putInstitution(i)
	return i.Key, nil
}

// UpdateInstitution implements registry.Writer. Sub-entities and contacts
// are managed through their own calls and are left unchanged.
func (r *Registry) UpdateInstitution(_ context.Context, i registry.Institution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("update", registry.KindInstitution, i.Key); err != nil {
		return err
	}
	existing, ok := r.institutions[i.Key]
	if !ok {
		return errors.NewNotFoundError(string(registry.KindInstitution), i.Key)
	}
	i = i.Clone()
	i.Identifiers, i.MachineTags, i.Contacts = existing.Identifiers, existing.MachineTags, existing.Contacts
	i.Created, i.Modified = existing.Created, r.stamp()
	r.institutions[i.Key] = i
	return nil
}

// CreateCollection implements registry.Writer.
func (r *Registry) CreateCollection(_ context.Context, c registry.Collection) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("create", registry.KindCollection, c.Key); err != nil {
		return "", err
	}
	if c.InstitutionKey != "" {
		if _, ok := r.institutions[c.InstitutionKey]; !ok {
			return "", errors.NewNotFoundError(string(registry.KindInstitution), c.InstitutionKey)
		}
	}
	c = c.Clone()
	c.Key = uuid.NewString()
	c.Created, c.Modified = r.stamp(), r.stamp()
	c.Identifiers = r.assignIdentifierKeys(c.Identifiers)
	c.MachineTags = r.assignTagKeys(c.MachineTags)
	r.putCollection(c)
	return c.Key, nil
}

// UpdateCollection implements registry.Writer.
func (r *Registry) UpdateCollection(_ context.Context, c registry.Collection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("update", registry.KindCollection, c.Key); err != nil {
		return err
	}
	existing, ok := r.collections[c.Key]
	if !ok {
		return errors.NewNotFoundError(string(registry.KindCollection), c.Key)
	}
	c = c.Clone()
	c.Identifiers, c.MachineTags, c.Contacts = existing.Identifiers, existing.MachineTags, existing.Contacts
	c.Created, c.Modified = existing.Created, r.stamp()
	r.collections[c.Key] = c
	return nil
}

// CreatePerson implements registry.Writer.
func (r *Registry) CreatePerson(_ context.Context, p registry.Person) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("create", registry.KindPerson, p.Key); err != nil {
		return "", err
	}
	p = p.Clone()
	p.Key = uuid.NewString()
	p.Created, p.Modified = r.stamp(), r.stamp()
	p.Identifiers = r.assignIdentifierKeys(p.Identifiers)
	p.MachineTags = r.assignTagKeys(p.MachineTags)
	r.putPerson(p)
	return p.Key, nil
}

// UpdatePerson implements registry.Writer.
func (r *Registry) UpdatePerson(_ context.Context, p registry.Person) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("update", registry.KindPerson, p.Key); err != nil {
		return err
	}
	existing, ok := r.persons[p.Key]
	if !ok {
		return errors.NewNotFoundError(string(registry.KindPerson), p.Key)
	}
	p = p.Clone()
	p.Identifiers, p.MachineTags = existing.Identifiers, existing.MachineTags
	p.Created, p.Modified = existing.Created, r.stamp()
	r.persons[p.Key] = p
	return nil
}

// AddIdentifier implements registry.Writer.
func (r *Registry) AddIdentifier(_ context.Context, kind registry.Kind, key string, id registry.Identifier) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("addIdentifier", kind, key); err != nil {
		return 0, err
	}
	r.nextSubKey++
	id.Key = r.nextSubKey
	err := r.mutate(kind, key, func(ids *[]registry.Identifier, _ *[]registry.MachineTag, _ *[]string) {
		*ids = append(*ids, id)
	})
	if err != nil {
		return 0, err
	}
	return id.Key, nil
}

// AddMachineTag implements registry.Writer.
func (r *Registry) AddMachineTag(_ context.Context, kind registry.Kind, key string, tag registry.MachineTag) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("addMachineTag", kind, key); err != nil {
		return 0, err
	}
	r.nextSubKey++
	tag.Key = r.nextSubKey
	err := r.mutate(kind, key, func(_ *[]registry.Identifier, tags *[]registry.MachineTag, _ *[]string) {
		*tags = append(*tags, tag)
	})
	if err != nil {
		return 0, err
	}
	return tag.Key, nil
}

// AddPerson implements registry.Writer.
func (r *Registry) AddPerson(_ context.Context, kind registry.Kind, key, personKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("addPerson", kind, key); err != nil {
		return err
	}
	if _, ok := r.persons[personKey]; !ok {
		return errors.NewNotFoundError(string(registry.KindPerson), personKey)
	}
	return r.mutate(kind, key, func(_ *[]registry.Identifier, _ *[]registry.MachineTag, contacts *[]string) {
		*contacts = registry.AddContact(*contacts, personKey)
	})
}

// RemovePerson implements registry.Writer. The person itself is kept.
func (r *Registry) RemovePerson(_ context.Context, kind registry.Kind, key, personKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("removePerson", kind, key); err != nil {
		return err
	}
	return r.mutate(kind, key, func(_ *[]registry.Identifier, _ *[]registry.MachineTag, contacts *[]string) {
		*contacts = registry.RemoveContact(*contacts, personKey)
	})
}

func (r *Registry) record(op string, kind registry.Kind, key string) error {
	r.calls = append(r.calls, Call{Op: op, Kind: kind, Key: key})
	if r.fail != nil {
		return r.fail(op, kind, key)
	}
	return nil
}

// mutate applies fn to the sub-entity lists of the entity. Persons have no
// contacts; fn receives a throwaway slice for them.
func (r *Registry) mutate(kind registry.Kind, key string, fn func(*[]registry.Identifier, *[]registry.MachineTag, *[]string)) error {
	switch kind {
	case registry.KindInstitution:
		i, ok := r.institutions[key]
		if !ok {
			return errors.NewNotFoundError(string(kind), key)
		}
		fn(&i.Identifiers, &i.MachineTags, &i.Contacts)
		r.institutions[key] = i
	case registry.KindCollection:
		c, ok := r.collections[key]
		if !ok {
			return errors.NewNotFoundError(string(kind), key)
		}
		fn(&c.Identifiers, &c.MachineTags, &c.Contacts)
		r.collections[key] = c
	case registry.KindPerson:
		p, ok := r.persons[key]
		if !ok {
			return errors.NewNotFoundError(string(kind), key)
		}
		var contacts []string
		fn(&p.Identifiers, &p.MachineTags, &contacts)
		r.persons[key] = p
	default:
		return errors.NewValidationError("kind", kind, "unknown entity kind")
	}
	return nil
}

func (r *Registry) assignIdentifierKeys(ids []registry.Identifier) []registry.Identifier {
	for i := range ids {
		r.nextSubKey++
		ids[i].Key = r.nextSubKey
	}
	return ids
}

func (r *Registry) assignTagKeys(tags []registry.MachineTag) []registry.MachineTag {
	for i := range tags {
		r.nextSubKey++
		tags[i].Key = r.nextSubKey
	}
	return tags
}

func (r *Registry) stamp() *time.Time {
	t := r.now().UTC()
	return &t
}

func (r *Registry) putInstitution(i registry.Institution) {
	if _, exists := r.institutions[i.Key]; !exists {
		r.order[registry.KindInstitution] = append(r.order[registry.KindInstitution], i.Key)
	}
	r.institutions[i.Key] = i
}

func (r *Registry) putCollection(c registry.Collection) {
	if _, exists := r.collections[c.Key]; !exists {
		r.order[registry.KindCollection] = append(r.order[registry.KindCollection], c.Key)
	}
	r.collections[c.Key] = c
}

func (r *Registry) putPerson(p registry.Person) {
	if _, exists := r.persons[p.Key]; !exists {
		r.order[registry.KindPerson] = append(r.order[registry.KindPerson], p.Key)
	}
	r.persons[p.Key] = p
}
