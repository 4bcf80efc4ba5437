package match

import (
	"github.com/agentstation/registrysync/pkg/normalize"
	"github.com/agentstation/registrysync/pkg/registry"
)

// Matcher indexes a registry snapshot for candidate discovery. It is read
// only once built and safe for concurrent use.
type Matcher struct {
	snapshot *registry.Snapshot

	persons map[string]registry.Person

	instByTag   map[string][]int
	collByTag   map[string][]int
	instByIdent map[string][]int
	collByIdent map[string][]int
	instByCode  map[string][]int
	collByCode  map[string][]int
	instByName  map[string][]int
	collByName  map[string][]int
}

// NewMatcher builds the indexes over s.
func NewMatcher(s *registry.Snapshot) *Matcher {
	m := &Matcher{
		snapshot:    s,
		persons:     make(map[string]registry.Person, len(s.Persons)),
		instByTag:   make(map[string][]int),
		collByTag:   make(map[string][]int),
		instByIdent: make(map[string][]int),
		collByIdent: make(map[string][]int),
		instByCode:  make(map[string][]int),
		collByCode:  make(map[string][]int),
		instByName:  make(map[string][]int),
		collByName:  make(map[string][]int),
	}

	for _, p := range s.Persons {
		m.persons[p.Key] = p
	}
	for i, inst := range s.Institutions {
		for _, t := range inst.MachineTags {
			add(m.instByTag, tagKey(t.Namespace, t.Name, t.Value), i)
		}
		for _, id := range inst.Identifiers {
			add(m.instByIdent, identKey(id.Type, id.Identifier), i)
		}
		add(m.instByCode, normalize.String(inst.Code), i)
		add(m.instByName, normalize.String(inst.Name), i)
	}
	for i, coll := range s.Collections {
		for _, t := range coll.MachineTags {
			add(m.collByTag, tagKey(t.Namespace, t.Name, t.Value), i)
		}
		for _, id := range coll.Identifiers {
			add(m.collByIdent, identKey(id.Type, id.Identifier), i)
		}
		add(m.collByCode, normalize.String(coll.Code), i)
		add(m.collByName, normalize.String(coll.Name), i)
	}
	return m
}

// ByMachineTag returns the entities carrying the machine tag.
func (m *Matcher) ByMachineTag(namespace, name, value string) ([]registry.Institution, []registry.Collection) {
	if value == "" {
		return nil, nil
	}
	k := tagKey(namespace, name, value)
	return m.institutions(m.instByTag[k]), m.collections(m.collByTag[k])
}

// ByIdentifier returns the entities carrying the identifier.
func (m *Matcher) ByIdentifier(typ, value string) ([]registry.Institution, []registry.Collection) {
	if value == "" {
		return nil, nil
	}
	k := identKey(typ, value)
	return m.institutions(m.instByIdent[k]), m.collections(m.collByIdent[k])
}

// InstitutionsByCode returns the institutions whose normalized code equals code.
func (m *Matcher) InstitutionsByCode(code string) []registry.Institution {
	k := normalize.String(code)
	if k == "" {
		return nil
	}
	return m.institutions(m.instByCode[k])
}

// CollectionsByCode returns the collections whose normalized code equals code.
// When institutionKey is set only collections of that institution are kept.
func (m *Matcher) CollectionsByCode(code, institutionKey string) []registry.Collection {
	k := normalize.String(code)
	if k == "" {
		return nil
	}
	var out []registry.Collection
	for _, c := range m.collections(m.collByCode[k]) {
		if institutionKey == "" || c.InstitutionKey == institutionKey {
			out = append(out, c)
		}
	}
	return out
}

// InstitutionsByName returns the institutions with an equal normalized name,
// falling back to prefix or suffix matches when there is none.
func (m *Matcher) InstitutionsByName(name string) []registry.Institution {
	k := normalize.String(name)
	if k == "" {
		return nil
	}
	if exact := m.instByName[k]; len(exact) > 0 {
		return m.institutions(exact)
	}
	var out []registry.Institution
	for _, inst := range m.snapshot.Institutions {
		if normalize.ComparePartially(inst.Name, name) {
			out = append(out, inst.Clone())
		}
	}
	return out
}

// CollectionsByName returns the collections with an equal normalized name.
func (m *Matcher) CollectionsByName(name, institutionKey string) []registry.Collection {
	k := normalize.String(name)
	if k == "" {
		return nil
	}
	var out []registry.Collection
	for _, c := range m.collections(m.collByName[k]) {
		if institutionKey == "" || c.InstitutionKey == institutionKey {
			out = append(out, c)
		}
	}
	return out
}

// Person returns the snapshot person with key.
func (m *Matcher) Person(key string) (registry.Person, bool) {
	p, ok := m.persons[key]
	if !ok {
		return registry.Person{}, false
	}
	return p.Clone(), true
}

// Contacts resolves the contact keys of e against the snapshot.
func (m *Matcher) Contacts(e registry.Contactable) []registry.Person {
	keys := e.ContactKeys()
	out := make([]registry.Person, 0, len(keys))
	for _, k := range keys {
		if p, ok := m.persons[k]; ok {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Staff returns the distinct contacts of every candidate in r.
func Staff[S any](m *Matcher, r Result[S]) []registry.Person {
	seen := make(map[string]bool)
	var out []registry.Person
	collect := func(e registry.Contactable) {
		for _, p := range m.Contacts(e) {
			if !seen[p.Key] {
				seen[p.Key] = true
				out = append(out, p)
			}
		}
	}
	for _, i := range r.Institutions {
		collect(i)
	}
	for _, c := range r.Collections {
		collect(c)
	}
	return out
}

func (m *Matcher) institutions(idx []int) []registry.Institution {
	if len(idx) == 0 {
		return nil
	}
	out := make([]registry.Institution, 0, len(idx))
	for _, i := range idx {
		out = append(out, m.snapshot.Institutions[i].Clone())
	}
	return out
}

func (m *Matcher) collections(idx []int) []registry.Collection {
	if len(idx) == 0 {
		return nil
	}
	out := make([]registry.Collection, 0, len(idx))
	for _, i := range idx {
		out = append(out, m.snapshot.Collections[i].Clone())
	}
	return out
}

func add(index map[string][]int, k string, i int) {
	if k == "" {
		return
	}
	for _, existing := range index[k] {
		if existing == i {
			return
		}
	}
	index[k] = append(index[k], i)
}

func tagKey(namespace, name, value string) string {
	if value == "" {
		return ""
	}
	return namespace + ":" + name + "=" + normalize.String(value)
}

func identKey(typ, value string) string {
	if value == "" {
		return ""
	}
	return typ + ":" + normalize.String(value)
}
