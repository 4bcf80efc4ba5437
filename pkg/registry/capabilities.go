package registry

import (
	"slices"
)

// Entity is anything stored in the registry under a key.
type Entity interface {
	EntityKey() string
	EntityKind() Kind
}

// Identifiable entities carry external identifiers.
type Identifiable interface {
	Entity
	IdentifierList() []Identifier
}

// Taggable entities carry machine tags.
type Taggable interface {
	Entity
	MachineTagList() []MachineTag
}

// Contactable entities hold an ordered set of person keys.
type Contactable interface {
	Entity
	ContactKeys() []string
}

var (
	_ Identifiable = Institution{}
	_ Taggable     = Institution{}
	_ Contactable  = Institution{}
	_ Identifiable = Collection{}
	_ Taggable     = Collection{}
	_ Contactable  = Collection{}
	_ Identifiable = Person{}
	_ Taggable     = Person{}
)

// EntityKey implements Entity.
func (i Institution) EntityKey() string { return i.Key }

// EntityKind implements Entity.
func (Institution) EntityKind() Kind { return KindInstitution }

// IdentifierList implements Identifiable.
func (i Institution) IdentifierList() []Identifier { return i.Identifiers }

// MachineTagList implements Taggable.
func (i Institution) MachineTagList() []MachineTag { return i.MachineTags }

// ContactKeys implements Contactable.
func (i Institution) ContactKeys() []string { return i.Contacts }

// EntityKey implements Entity.
func (c Collection) EntityKey() string { return c.Key }

// EntityKind implements Entity.
func (Collection) EntityKind() Kind { return KindCollection }

// IdentifierList implements Identifiable.
func (c Collection) IdentifierList() []Identifier { return c.Identifiers }

// MachineTagList implements Taggable.
func (c Collection) MachineTagList() []MachineTag { return c.MachineTags }

// ContactKeys implements Contactable.
func (c Collection) ContactKeys() []string { return c.Contacts }

// EntityKey implements Entity.
func (p Person) EntityKey() string { return p.Key }

// EntityKind implements Entity.
func (Person) EntityKind() Kind { return KindPerson }

// IdentifierList implements Identifiable.
func (p Person) IdentifierList() []Identifier { return p.Identifiers }

// MachineTagList implements Taggable.
func (p Person) MachineTagList() []MachineTag { return p.MachineTags }

// FindIdentifier returns the first identifier of the given type.
func FindIdentifier(e Identifiable, typ string) (Identifier, bool) {
	for _, id := range e.IdentifierList() {
		if id.Type == typ {
			return id, true
		}
	}
	return Identifier{}, false
}

// FindMachineTag returns the first machine tag with the given namespace and name.
func FindMachineTag(e Taggable, namespace, name string) (MachineTag, bool) {
	for _, tag := range e.MachineTagList() {
		if tag.Namespace == namespace && tag.Name == name {
			return tag, true
		}
	}
	return MachineTag{}, false
}

// PendingIdentifiers returns the identifiers the registry has not stored yet.
func PendingIdentifiers(e Identifiable) []Identifier {
	var pending []Identifier
	for _, id := range e.IdentifierList() {
		if id.Key == 0 {
			pending = append(pending, id)
		}
	}
	return pending
}

// PendingMachineTags returns the machine tags the registry has not stored yet.
func PendingMachineTags(e Taggable) []MachineTag {
	var pending []MachineTag
	for _, tag := range e.MachineTagList() {
		if tag.Key == 0 {
			pending = append(pending, tag)
		}
	}
	return pending
}

// HasContact reports whether personKey is one of e's contacts.
func HasContact(e Contactable, personKey string) bool {
	return slices.Contains(e.ContactKeys(), personKey)
}

// AddContact appends personKey to keys unless already present.
func AddContact(keys []string, personKey string) []string {
	if personKey == "" || slices.Contains(keys, personKey) {
		return keys
	}
	return append(keys, personKey)
}

// RemoveContact drops personKey from keys, preserving order.
func RemoveContact(keys []string, personKey string) []string {
	return slices.DeleteFunc(slices.Clone(keys), func(k string) bool { return k == personKey })
}

// MergeIdentifiers adds the identifiers of extra that are not in base yet,
// compared by type and value.
func MergeIdentifiers(base, extra []Identifier) []Identifier {
	merged := slices.Clone(base)
	for _, id := range extra {
		if !slices.ContainsFunc(merged, func(e Identifier) bool {
			return e.Type == id.Type && e.Identifier == id.Identifier
		}) {
			merged = append(merged, id)
		}
	}
	return merged
}

// MergeMachineTags adds the machine tags of extra that are not in base yet.
func MergeMachineTags(base, extra []MachineTag) []MachineTag {
	merged := slices.Clone(base)
	for _, tag := range extra {
		if !slices.ContainsFunc(merged, func(e MachineTag) bool {
			return e.Namespace == tag.Namespace && e.Name == tag.Name && e.Value == tag.Value
		}) {
			merged = append(merged, tag)
		}
	}
	return merged
}
