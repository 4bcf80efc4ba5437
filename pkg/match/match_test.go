package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/registrysync/pkg/match"
	"github.com/agentstation/registrysync/pkg/registry"
)

func TestClassify(t *testing.T) {
	inst := registry.Institution{Key: "i1"}
	other := registry.Institution{Key: "i2"}
	owned := registry.Collection{Key: "c1", InstitutionKey: "i1"}
	foreign := registry.Collection{Key: "c2", InstitutionKey: "i9"}

	tests := []struct {
		name         string
		institutions []registry.Institution
		collections  []registry.Collection
		want         match.Outcome
	}{
		{"none", nil, nil, match.NoMatch},
		{"single institution", []registry.Institution{inst}, nil, match.InstitutionMatch},
		{"single collection", nil, []registry.Collection{owned}, match.CollectionMatch},
		{"combined", []registry.Institution{inst}, []registry.Collection{owned}, match.InstitutionAndCollectionMatch},
		{"combined wrong owner", []registry.Institution{inst}, []registry.Collection{foreign}, match.Ambiguous},
		{"two institutions", []registry.Institution{inst, other}, nil, match.Ambiguous},
		{"two collections", nil, []registry.Collection{owned, foreign}, match.Ambiguous},
		{"two and one", []registry.Institution{inst, other}, []registry.Collection{owned}, match.Ambiguous},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := match.Result[string]{Source: "rec", Institutions: tt.institutions, Collections: tt.collections}
			assert.Equal(t, tt.want, r.Classify())
		})
	}
}

func TestInstitutionAndCollectionMatchCardinality(t *testing.T) {
	inst := registry.Institution{Key: "i1"}
	coll := registry.Collection{Key: "c1", InstitutionKey: "i1"}

	assert.True(t, match.Result[int]{Institutions: []registry.Institution{inst}, Collections: []registry.Collection{coll}}.InstitutionAndCollectionMatch())
	assert.False(t, match.Result[int]{Institutions: []registry.Institution{inst}}.InstitutionAndCollectionMatch())
	assert.False(t, match.Result[int]{Collections: []registry.Collection{coll}}.InstitutionAndCollectionMatch())
	assert.False(t, match.Result[int]{
		Institutions: []registry.Institution{inst, inst},
		Collections:  []registry.Collection{coll},
	}.InstitutionAndCollectionMatch())
	assert.False(t, match.Result[int]{
		Institutions: []registry.Institution{inst},
		Collections:  []registry.Collection{coll, coll},
	}.InstitutionAndCollectionMatch())
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "collection match", match.CollectionMatch.String())
	assert.Equal(t, "unknown", match.Outcome(42).String())
}

func snapshot() *registry.Snapshot {
	return &registry.Snapshot{
		Institutions: []registry.Institution{
			{
				Key:         "i1",
				Code:        "B",
				Name:        "Botanic Garden and Botanical Museum",
				MachineTags: []registry.MachineTag{{Key: 1, Namespace: registry.NamespaceIH, Name: registry.TagIRN, Value: "100"}},
				Contacts:    []string{"p1"},
			},
			{
				Key:         "i2",
				Code:        "K",
				Name:        "Royal Botanic Gardens",
				Identifiers: []registry.Identifier{{Key: 2, Type: registry.IdentifierIHIRN, Identifier: "200"}},
			},
		},
		Collections: []registry.Collection{
			{
				Key:            "c1",
				Code:           "B",
				Name:           "Herbarium",
				InstitutionKey: "i1",
				MachineTags:    []registry.MachineTag{{Key: 3, Namespace: registry.NamespaceIH, Name: registry.TagIRN, Value: "100"}},
				Contacts:       []string{"p1", "p2"},
			},
			{Key: "c2", Code: "K", Name: "Herbarium", InstitutionKey: "i2"},
		},
		Persons: []registry.Person{
			{Key: "p1", FirstName: "Ana", LastName: "Schmidt"},
			{Key: "p2", FirstName: "Luis", LastName: "Perez"},
		},
	}
}

func TestMatcherByMachineTag(t *testing.T) {
	m := match.NewMatcher(snapshot())

	insts, colls := m.ByMachineTag(registry.NamespaceIH, registry.TagIRN, "100")
	assert.Len(t, insts, 1)
	assert.Len(t, colls, 1)

	r := match.Result[string]{Institutions: insts, Collections: colls}
	assert.Equal(t, match.InstitutionAndCollectionMatch, r.Classify())

	insts, colls = m.ByMachineTag(registry.NamespaceIH, registry.TagIRN, "")
	assert.Empty(t, insts)
	assert.Empty(t, colls)
}

func TestMatcherByIdentifierAndCode(t *testing.T) {
	m := match.NewMatcher(snapshot())

	insts, colls := m.ByIdentifier(registry.IdentifierIHIRN, "200")
	assert.Len(t, insts, 1)
	assert.Empty(t, colls)

	assert.Len(t, m.InstitutionsByCode(" k "), 1)
	assert.Len(t, m.CollectionsByCode("k", ""), 1)
	assert.Empty(t, m.CollectionsByCode("k", "i1"))
	assert.Nil(t, m.InstitutionsByCode(""))
}

func TestMatcherByName(t *testing.T) {
	m := match.NewMatcher(snapshot())

	assert.Len(t, m.InstitutionsByName("royal botanic gardens"), 1)
	assert.Len(t, m.InstitutionsByName("Royal Botanic"), 1, "falls back to partial match")
	assert.Len(t, m.CollectionsByName("herbarium", ""), 2)
	assert.Len(t, m.CollectionsByName("herbarium", "i2"), 1)
}

func TestStaffCollectsDistinctContacts(t *testing.T) {
	s := snapshot()
	m := match.NewMatcher(s)
	r := match.Result[string]{Institutions: s.Institutions[:1], Collections: s.Collections[:1]}

	staff := match.Staff(m, r)
	assert.Len(t, staff, 2)
	assert.Equal(t, "p1", staff[0].Key)
}
