package registry

import (
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// lenientOptions ignore the fields owned by the registry: entity and
// sub-entity keys, audit data and the order of contacts.
var lenientOptions = cmp.Options{
	cmpopts.IgnoreFields(Institution{}, "Key", "Audit"),
	cmpopts.IgnoreFields(Collection{}, "Key", "Audit"),
	cmpopts.IgnoreFields(Person{}, "Key", "Audit"),
	cmpopts.IgnoreFields(Identifier{}, "Key"),
	cmpopts.IgnoreFields(MachineTag{}, "Key"),
	cmpopts.IgnoreFields(Address{}, "Key"),
	cmpopts.EquateEmpty(),
	cmp.FilterPath(isContactsPath, cmpopts.SortSlices(func(a, b string) bool { return a < b })),
	cmpopts.SortSlices(func(a, b Identifier) bool {
		return a.Type+"\x00"+a.Identifier < b.Type+"\x00"+b.Identifier
	}),
	cmpopts.SortSlices(func(a, b MachineTag) bool {
		return a.Namespace+"\x00"+a.Name+"\x00"+a.Value < b.Namespace+"\x00"+b.Name+"\x00"+b.Value
	}),
}

func isContactsPath(p cmp.Path) bool {
	return strings.HasSuffix(p.GoString(), ".Contacts")
}

// LenientEqualInstitution compares the business fields of two institutions.
func LenientEqualInstitution(a, b Institution) bool {
	return cmp.Equal(a, b, lenientOptions)
}

// LenientEqualCollection compares the business fields of two collections.
func LenientEqualCollection(a, b Collection) bool {
	return cmp.Equal(a, b, lenientOptions)
}

// LenientEqualPerson compares the business fields of two persons.
func LenientEqualPerson(a, b Person) bool {
	return cmp.Equal(a, b, lenientOptions)
}

// LenientDiff reports the business field differences between two entities of
// the same kind. It is empty when the entities are leniently equal.
func LenientDiff[T Institution | Collection | Person](a, b T) string {
	return cmp.Diff(a, b, lenientOptions)
}
