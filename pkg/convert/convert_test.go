package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/registrysync/internal/utils/ptr"
	"github.com/agentstation/registrysync/pkg/convert"
	"github.com/agentstation/registrysync/pkg/country"
	"github.com/agentstation/registrysync/pkg/registry"
	"github.com/agentstation/registrysync/pkg/sources/aggregator"
	"github.com/agentstation/registrysync/pkg/sources/herbarium"
)

func converter() *convert.Converter {
	return convert.New(country.NewResolver(country.DefaultConfig()))
}

func TestHerbariumInstitution(t *testing.T) {
	src := herbarium.Institution{
		IRN:           "100",
		Code:          " B ",
		Organization:  "Botanic Garden",
		Division:      "Herbarium Berolinense",
		CurrentStatus: "Active",
		DateFounded:   "1 January 1815",
		SpecimenTotal: 3800000,
		Address:       herbarium.Address{PhysicalCity: "Berlin", PhysicalCountry: "Deutschland", PostalCity: "Berlin", PostalCountry: "Atlantis"},
		Contact:       herbarium.Contact{Email: "a@bgbm.org; nope\nb@bgbm.org", Phone: "+49 30 1234;12", WebURL: "www.bgbm.org"},
		Location:      herbarium.Location{Lat: 52.45},
	}

	inst := converter().HerbariumInstitution(src)
	assert.Equal(t, "B", inst.Code)
	assert.True(t, inst.Active)
	assert.Equal(t, 1815, inst.FoundingYear)
	assert.Equal(t, []string{"a@bgbm.org", "b@bgbm.org"}, inst.Email)
	assert.Equal(t, []string{"+49 30 1234"}, inst.Phone)
	assert.Equal(t, "http://www.bgbm.org", inst.Homepage)
	require.NotNil(t, inst.Latitude)
	assert.Nil(t, inst.Longitude)
	require.NotNil(t, inst.Address)
	assert.Equal(t, country.Germany, inst.Address.Country)
	require.NotNil(t, inst.MailingAddress, "unknown country leaves the rest of the address")
	assert.Equal(t, country.Unknown, inst.MailingAddress.Country)

	tag, ok := registry.FindMachineTag(inst, registry.NamespaceIH, registry.TagIRN)
	require.True(t, ok)
	assert.Equal(t, "100", tag.Value)

	coll := converter().HerbariumCollection(src)
	assert.Equal(t, "Herbarium Berolinense", coll.Name)
	assert.True(t, coll.IndexHerbariorumRecord)
	_, ok = registry.FindIdentifier(coll, registry.IdentifierIHIRN)
	assert.True(t, ok)
}

func TestHerbariumCandidates(t *testing.T) {
	members := []herbarium.StaffMember{{
		IRN:        "7",
		FirstName:  "Ana",
		MiddleName: "María",
		LastName:   "Schmidt",
		Contact:    herbarium.Contact{Email: "A@B.org", Fax: "12"},
		Address:    herbarium.StaffAddress{Country: "UK"},
	}}

	cands := converter().HerbariumCandidates(members)
	require.Len(t, cands, 1)
	p := cands[0].Person
	assert.Equal(t, "Ana María", p.FirstName)
	assert.Equal(t, []string{"a@b.org"}, p.Email)
	assert.Empty(t, p.Fax, "invalid fax is dropped")
	assert.Equal(t, country.UnitedKingdom, p.MailingAddress.Country)
	assert.Equal(t, members[0].Completeness(), cands[0].Completeness)
}

func TestAggregatorConversion(t *testing.T) {
	rec := aggregator.Record{
		UUID:            "u-1",
		Institution:     "Field Museum",
		InstitutionCode: "F",
		Collection:      "Botany",
		CollectionCode:  "BOT",
		ContactName:     "Mary Jane Watson",
		ContactEmail:    "mj@fm.org",
		Lat:             "41.86",
		Lon:             "bad",
		Country:         "USA",
	}
	c := converter()

	inst := c.AggregatorInstitution(rec)
	assert.Equal(t, "F", inst.Code)
	require.NotNil(t, inst.Latitude)
	assert.InDelta(t, 41.86, *inst.Latitude, 0.001)
	assert.Nil(t, inst.Longitude)

	coll := c.AggregatorCollection(rec)
	tag, ok := registry.FindMachineTag(coll, registry.NamespaceIDigBio, registry.TagIDigBioUUID)
	require.True(t, ok)
	assert.Equal(t, "u-1", tag.Value)
	assert.Equal(t, country.UnitedStates, coll.Address.Country)

	cands := c.AggregatorCandidates(rec)
	require.Len(t, cands, 1)
	assert.Equal(t, "Mary Jane", cands[0].Person.FirstName)
	assert.Equal(t, "Watson", cands[0].Person.LastName)

	rec.ContactName = " "
	assert.Empty(t, c.AggregatorCandidates(rec))
}

func TestMergeKeepsBetterExistingFields(t *testing.T) {
	existing := registry.Collection{
		Key:         "c1",
		Code:        "code",
		Name:        "Herbarium",
		Description: "curated description",
		Email:       []string{"a@b.org"},
		Contacts:    []string{"p1"},
		Address:     &registry.Address{Key: 4, City: "Leiden", Country: country.Netherlands},
		MachineTags: []registry.MachineTag{{Key: 1, Namespace: "n", Name: "a", Value: "v"}},
	}
	incoming := registry.Collection{
		Code:        "code2",
		Name:        "",
		Email:       []string{"A@B.org", "c@d.org"},
		Address:     &registry.Address{PostalCode: "2333"},
		MachineTags: []registry.MachineTag{{Namespace: "n", Name: "a", Value: "v"}, {Namespace: "n", Name: "b", Value: "w"}},
	}

	merged := convert.MergeCollection(existing, incoming)
	assert.Equal(t, "c1", merged.Key)
	assert.Equal(t, "code2", merged.Code)
	assert.Equal(t, "Herbarium", merged.Name)
	assert.Equal(t, "curated description", merged.Description)
	assert.Equal(t, []string{"a@b.org", "c@d.org"}, merged.Email)
	assert.Equal(t, []string{"p1"}, merged.Contacts)
	assert.Equal(t, 4, merged.Address.Key)
	assert.Equal(t, "Leiden", merged.Address.City)
	assert.Equal(t, "2333", merged.Address.PostalCode)
	assert.Len(t, merged.MachineTags, 2)
	assert.Len(t, registry.PendingMachineTags(merged), 1)

	assert.False(t, registry.LenientEqualCollection(existing, merged))
	assert.Equal(t, "code", existing.Code, "existing entity is not modified")
}

func TestMergeIdenticalIsLenientlyEqual(t *testing.T) {
	existing := registry.Institution{Key: "i1", Code: "B", Name: "Botanic Garden", Active: true, Latitude: ptr.To(1.0)}
	incoming := registry.Institution{Code: "B", Name: "Botanic Garden", Active: true}

	merged := convert.MergeInstitution(existing, incoming)
	assert.True(t, registry.LenientEqualInstitution(existing, merged))
}

func TestMergePersonKeepsPrimaryKeys(t *testing.T) {
	existing := registry.Person{Key: "p1", FirstName: "Ana", PrimaryInstitutionKey: "i1"}
	incoming := registry.Person{FirstName: "Ana", LastName: "Schmidt", PrimaryInstitutionKey: "i2", PrimaryCollectionKey: "c2"}

	merged := convert.MergePerson(existing, incoming)
	assert.Equal(t, "i1", merged.PrimaryInstitutionKey)
	assert.Equal(t, "c2", merged.PrimaryCollectionKey)
	assert.Equal(t, "Schmidt", merged.LastName)
}

func TestMergeAddress(t *testing.T) {
	assert.Nil(t, convert.MergeAddress(nil, nil))
	a := &registry.Address{City: "x"}
	got := convert.MergeAddress(nil, a)
	assert.Equal(t, a, got)
	assert.NotSame(t, a, got)
}
