package sync_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/registrysync/pkg/convert"
	"github.com/agentstation/registrysync/pkg/country"
	"github.com/agentstation/registrysync/pkg/errors"
	"github.com/agentstation/registrysync/pkg/registry"
	"github.com/agentstation/registrysync/pkg/registry/memory"
	"github.com/agentstation/registrysync/pkg/sources/aggregator"
	"github.com/agentstation/registrysync/pkg/sources/herbarium"
	"github.com/agentstation/registrysync/pkg/sync"
)

func converter() *convert.Converter {
	return convert.New(country.NewResolver(country.DefaultConfig()))
}

func ops(calls []memory.Call) []string {
	out := make([]string, 0, len(calls))
	for _, c := range calls {
		out = append(out, c.Op+" "+string(c.Kind))
	}
	return out
}

// primaryCalls drops the sub-entity calls, which run in the background and
// interleave freely with the primary pass.
func primaryCalls(calls []memory.Call) []memory.Call {
	var out []memory.Call
	for _, c := range calls {
		if c.Op == "addIdentifier" || c.Op == "addMachineTag" {
			continue
		}
		out = append(out, c)
	}
	return out
}

func primaryOps(calls []memory.Call) []string {
	return ops(primaryCalls(calls))
}

func nybg() herbarium.Institution {
	return herbarium.Institution{
		IRN:           "1001",
		Code:          "NY",
		Organization:  "New York Botanical Garden",
		CurrentStatus: "Active",
	}
}

func ana() herbarium.StaffMember {
	return herbarium.StaffMember{
		IRN:       "2001",
		Code:      "NY",
		FirstName: "Ana",
		LastName:  "Lopez",
		Contact:   herbarium.Contact{Email: "ana@nybg.org"},
	}
}

func runHerbarium(t *testing.T, reg *memory.Registry, export herbarium.Export, opts ...sync.Option) (*sync.HerbariumSync, *sync.Result) {
	t.Helper()
	s, err := sync.NewHerbariumSync(reg, herbarium.FromExport(export), converter(), append([]sync.Option{sync.WithClock(fixedClock())}, opts...)...)
	require.NoError(t, err)
	r, err := s.Run(context.Background())
	require.NoError(t, err)
	return s, r
}

func runAggregator(t *testing.T, reg *memory.Registry, records []aggregator.Record, opts ...sync.Option) (*sync.AggregatorSync, *sync.Result) {
	t.Helper()
	s, err := sync.NewAggregatorSync(reg, aggregator.FromRecords(records), converter(), append([]sync.Option{sync.WithClock(fixedClock())}, opts...)...)
	require.NoError(t, err)
	r, err := s.Run(context.Background())
	require.NoError(t, err)
	return s, r
}

func TestHerbariumNoMatchCreatesAndLinks(t *testing.T) {
	reg := memory.New()
	s, r := runHerbarium(t, reg, herbarium.Export{
		Institutions: []herbarium.Institution{nybg()},
		Staff:        []herbarium.StaffMember{ana()},
	})
	s.Wait()

	assert.Equal(t, []string{
		"create institution",
		"create person",
		"addPerson institution",
		"create collection",
		"addPerson collection",
	}, primaryOps(reg.Calls()))
	assert.Len(t, reg.Calls(), 10)

	assert.Len(t, r.Institutions.Created, 1)
	assert.Len(t, r.Collections.Created, 1)
	assert.Len(t, r.Staff.Created, 1)
	assert.Len(t, r.Staff.Linked, 2)
	assert.True(t, r.IsSuccess())

	insts, err := reg.Institutions(context.Background())
	require.NoError(t, err)
	require.Len(t, insts, 1)
	id, ok := registry.FindIdentifier(insts[0], registry.IdentifierIHIRN)
	require.True(t, ok)
	assert.Equal(t, "1001", id.Identifier)
	assert.NotZero(t, id.Key)
	require.Len(t, insts[0].Contacts, 1)

	cols, err := reg.Collections(context.Background())
	require.NoError(t, err)
	require.Len(t, cols, 1)
	assert.Equal(t, insts[0].Key, cols[0].InstitutionKey)
	assert.Equal(t, insts[0].Contacts, cols[0].Contacts)

	persons, err := reg.Persons(context.Background())
	require.NoError(t, err)
	require.Len(t, persons, 1)
	assert.Equal(t, insts[0].Key, persons[0].PrimaryInstitutionKey)
}

func TestHerbariumMatchUnlinksRemovedStaff(t *testing.T) {
	reg := memory.New()
	reg.Seed(registry.Snapshot{
		Persons: []registry.Person{{Key: "p-old", FirstName: "Old", LastName: "Curator", Email: []string{"old@nybg.org"}}},
		Institutions: []registry.Institution{{
			Key:         "i1",
			Code:        "NY",
			Name:        "New York Botanical Garden",
			Type:        "HERBARIUM",
			Active:      true,
			Identifiers: []registry.Identifier{{Key: 1, Type: registry.IdentifierIHIRN, Identifier: "1001"}},
			MachineTags: []registry.MachineTag{{Key: 2, Namespace: registry.NamespaceIH, Name: registry.TagIRN, Value: "1001"}},
			Contacts:    []string{"p-old"},
		}},
	})

	s, r := runHerbarium(t, reg, herbarium.Export{
		Institutions: []herbarium.Institution{nybg()},
		Staff:        []herbarium.StaffMember{ana()},
	})
	s.Wait()

	assert.Len(t, r.Institutions.Matched, 1)
	assert.Empty(t, r.Institutions.Updated)
	assert.Len(t, r.Collections.Created, 1)
	require.Len(t, r.Staff.Removed, 1)
	assert.Equal(t, "p-old", r.Staff.Removed[0].Key)

	got, err := reg.Institution(context.Background(), "i1")
	require.NoError(t, err)
	require.Len(t, got.Contacts, 1)
	assert.NotEqual(t, "p-old", got.Contacts[0])

	_, err = reg.Person(context.Background(), "p-old")
	assert.NoError(t, err, "unlinking keeps the person")
}

func TestHerbariumAmbiguousIsConflict(t *testing.T) {
	tag := []registry.MachineTag{{Key: 1, Namespace: registry.NamespaceIH, Name: registry.TagIRN, Value: "1001"}}
	reg := memory.New()
	reg.Seed(registry.Snapshot{Institutions: []registry.Institution{
		{Key: "i1", Code: "NY", MachineTags: tag},
		{Key: "i2", Code: "NYBG", MachineTags: tag},
	}})

	s, r := runHerbarium(t, reg, herbarium.Export{Institutions: []herbarium.Institution{nybg()}},
		sync.WithPortalURL("https://registry.example.org/"))
	s.Wait()

	assert.Empty(t, reg.Calls())
	require.Len(t, r.Institutions.Conflicts, 1)
	c := r.Institutions.Conflicts[0]
	assert.ElementsMatch(t, []string{"i1", "i2"}, c.Institutions)
	assert.Contains(t, c.Links, "https://registry.example.org/institution/i1")
	assert.Equal(t, 1, r.Metadata.Outcomes["ambiguous"])
}

func TestHerbariumCreateFailureIsRecorded(t *testing.T) {
	reg := memory.New()
	reg.SetFailFunc(func(op string, kind registry.Kind, _ string) error {
		if op == "create" && kind == registry.KindInstitution {
			return errors.New("registry unavailable")
		}
		return nil
	})

	s, r := runHerbarium(t, reg, herbarium.Export{Institutions: []herbarium.Institution{nybg()}})
	s.Wait()

	assert.Equal(t, []string{"create institution"}, ops(reg.Calls()))
	assert.False(t, r.IsSuccess())
	require.Len(t, r.Institutions.Failed, 1)
	assert.Equal(t, "registry unavailable", r.Institutions.Failed[0].Message)
	assert.Contains(t, r.Institutions.Failed[0].Entity, "New York Botanical Garden")
}

func collectionWithTag(code string) registry.Collection {
	return registry.Collection{
		Key:         "c1",
		Code:        code,
		Name:        "name",
		Active:      true,
		MachineTags: []registry.MachineTag{{Key: 7, Namespace: registry.NamespaceIDigBio, Name: registry.TagIDigBioUUID, Value: "u1"}},
	}
}

func TestAggregatorCollectionMatchUpdatesChangedCode(t *testing.T) {
	reg := memory.New()
	reg.Seed(registry.Snapshot{Collections: []registry.Collection{collectionWithTag("code")}})

	s, r := runAggregator(t, reg, []aggregator.Record{{UUID: "u1", Collection: "name", CollectionCode: "code2"}})
	s.Wait()

	assert.Equal(t, []memory.Call{{Op: "update", Kind: registry.KindCollection, Key: "c1"}}, reg.Calls())
	require.Len(t, r.Collections.Updated, 1)
	assert.Contains(t, r.Collections.Updated[0].Diff, "code2")

	got, err := reg.Collection(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "code2", got.Code)
	assert.Equal(t, 1, r.Metadata.Outcomes["collection match"])
}

func TestAggregatorIdenticalCollectionIsNoOp(t *testing.T) {
	reg := memory.New()
	reg.Seed(registry.Snapshot{Collections: []registry.Collection{collectionWithTag("code")}})

	s, r := runAggregator(t, reg, []aggregator.Record{{UUID: "u1", Collection: "name", CollectionCode: "code"}})
	s.Wait()

	assert.Empty(t, reg.Calls())
	assert.Len(t, r.Collections.Matched, 1)
	assert.False(t, r.HasChanges())
}

func TestAggregatorCreatesNewInstitutionOnce(t *testing.T) {
	reg := memory.New()
	records := []aggregator.Record{
		{UUID: "u1", Institution: "Field Museum", InstitutionCode: "F", Collection: "Botany", CollectionCode: "B"},
		{UUID: "u2", Institution: "Field Museum", InstitutionCode: "F", Collection: "Zoology", CollectionCode: "Z"},
	}

	s, r := runAggregator(t, reg, records)
	s.Wait()

	insts, err := reg.Institutions(context.Background())
	require.NoError(t, err)
	assert.Len(t, insts, 1)
	cols, err := reg.Collections(context.Background())
	require.NoError(t, err)
	assert.Len(t, cols, 2)
	assert.Len(t, r.Institutions.Created, 1)
	assert.Len(t, r.Institutions.Matched, 1)
}

func TestDryRunMakesNoCalls(t *testing.T) {
	reg := memory.New()
	records := []aggregator.Record{{
		UUID:            "u1",
		Institution:     "Field Museum",
		InstitutionCode: "F",
		Collection:      "Botany",
		CollectionCode:  "B",
		ContactName:     "Ana Lopez",
		ContactEmail:    "ana@fieldmuseum.org",
	}}

	s, r := runAggregator(t, reg, records, sync.WithDryRun(true))
	s.Wait()

	assert.Empty(t, reg.Calls())
	assert.True(t, r.Metadata.DryRun)
	assert.Len(t, r.Institutions.Created, 1)
	assert.Len(t, r.Collections.Created, 1)
	assert.Len(t, r.Staff.Created, 1)
	assert.Len(t, r.Staff.Linked, 1)
	assert.True(t, r.IsSuccess())
}

func TestDryRunCreatesNewInstitutionOnce(t *testing.T) {
	reg := memory.New()
	records := []aggregator.Record{
		{UUID: "u1", Institution: "Field Museum", InstitutionCode: "F", Collection: "Botany", CollectionCode: "B"},
		{UUID: "u2", Institution: "Field Museum", InstitutionCode: "F", Collection: "Zoology", CollectionCode: "Z"},
	}

	s, r := runAggregator(t, reg, records, sync.WithDryRun(true))
	s.Wait()

	assert.Empty(t, reg.Calls())
	assert.Len(t, r.Institutions.Created, 1)
	assert.Len(t, r.Institutions.Matched, 1)
	assert.Len(t, r.Collections.Created, 2)
}

// personOps keeps the primary calls that touch persons or contact links.
func personOps(calls []memory.Call) []string {
	var out []string
	for _, c := range primaryCalls(calls) {
		if c.Kind == registry.KindPerson || c.Op == "addPerson" || c.Op == "removePerson" {
			out = append(out, c.Op+" "+string(c.Kind))
		}
	}
	return out
}

// seedNYBG seeds the institution and herbarium collection of nybg() with
// persons as contacts of both.
func seedNYBG(reg *memory.Registry, persons ...registry.Person) {
	keys := make([]string, 0, len(persons))
	for _, p := range persons {
		keys = append(keys, p.Key)
	}
	tag := func() []registry.MachineTag {
		return []registry.MachineTag{{Key: 1, Namespace: registry.NamespaceIH, Name: registry.TagIRN, Value: "1001"}}
	}
	reg.Seed(registry.Snapshot{
		Persons:      persons,
		Institutions: []registry.Institution{{Key: "i1", Code: "NY", Name: "New York Botanical Garden", MachineTags: tag(), Contacts: keys}},
		Collections:  []registry.Collection{{Key: "c1", InstitutionKey: "i1", Code: "NY", Name: "New York Botanical Garden", MachineTags: tag(), Contacts: keys}},
	})
}

func TestHerbariumStaffConflictChangesNoPerson(t *testing.T) {
	reg := memory.New()
	seedNYBG(reg,
		registry.Person{Key: "p1", FirstName: "Ana", LastName: "Lopez", Email: []string{"ana.lopez@example.org"}},
		registry.Person{Key: "p2", FirstName: "Ana", LastName: "Lopez", Email: []string{"alopez@example.org"}},
	)

	s, r := runHerbarium(t, reg, herbarium.Export{
		Institutions: []herbarium.Institution{nybg()},
		Staff:        []herbarium.StaffMember{ana()},
	}, sync.WithPortalURL("https://registry.example.org/"))
	s.Wait()

	assert.Equal(t, 1, r.Metadata.Outcomes["institution and collection match"])
	assert.Empty(t, personOps(reg.Calls()))
	assert.Empty(t, r.Staff.Created)
	assert.Empty(t, r.Staff.Updated)
	assert.Empty(t, r.Staff.Removed)

	require.Len(t, r.Staff.Conflicts, 1, "the same conflict on the institution and the collection is reported once")
	c := r.Staff.Conflicts[0]
	assert.Equal(t, "Ana Lopez", c.Source)
	assert.ElementsMatch(t, []string{"p1", "p2"}, c.Persons)
	assert.ElementsMatch(t, []string{
		"https://registry.example.org/person/p1",
		"https://registry.example.org/person/p2",
	}, c.Links)
}

func TestHerbariumMatchedStaffIsUpdatedOnce(t *testing.T) {
	reg := memory.New()
	seedNYBG(reg, registry.Person{Key: "p1", FirstName: "Ana", LastName: "Lopez", Email: []string{"ana@nybg.org"}})

	member := ana()
	member.Position = "Curator"
	s, r := runHerbarium(t, reg, herbarium.Export{
		Institutions: []herbarium.Institution{nybg()},
		Staff:        []herbarium.StaffMember{member},
	})
	s.Wait()

	assert.Equal(t, []string{"update person"}, personOps(reg.Calls()))
	require.Len(t, r.Staff.Updated, 1, "a contact of both entities is merged once")
	assert.Equal(t, "p1", r.Staff.Updated[0].Key)
	assert.Contains(t, r.Staff.Updated[0].Diff, "Curator")
	assert.Empty(t, r.Staff.Matched)
	assert.Empty(t, r.Staff.Created)

	got, err := reg.Person(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Curator", got.Position)
}

// slowTags fails every machine tag call after a delay, so the failures
// arrive once the primary pass has finished.
type slowTags struct {
	*memory.Registry
	attempts atomic.Int32
}

func (r *slowTags) AddMachineTag(ctx context.Context, _ registry.Kind, _ string, _ registry.MachineTag) (int, error) {
	r.attempts.Add(1)
	select {
	case <-time.After(50 * time.Millisecond):
	case <-ctx.Done():
	}
	return 0, errors.New("tag service unavailable")
}

func TestLateBackgroundFailuresFailTheRun(t *testing.T) {
	reg := &slowTags{Registry: memory.New()}
	s, err := sync.NewHerbariumSync(reg, herbarium.FromExport(herbarium.Export{
		Institutions: []herbarium.Institution{nybg()},
		Staff:        []herbarium.StaffMember{ana()},
	}), converter(), sync.WithClock(fixedClock()))
	require.NoError(t, err)

	r, err := s.Run(context.Background())
	require.NoError(t, err)
	s.Wait()

	late := s.Aggregator().LateFailures()
	require.NotEmpty(t, late)
	folded := r.WithLateFailures(late)

	assert.False(t, folded.IsSuccess())
	assert.Len(t, folded.Failures, int(reg.attempts.Load()))
	assert.NotEmpty(t, folded.Institutions.Failed)
	assert.NotEmpty(t, folded.Collections.Failed)
	for _, f := range folded.Failures {
		assert.Equal(t, "addMachineTag", f.Op)
		assert.Equal(t, "tag service unavailable", f.Message)
	}
	assert.Len(t, r.Failures, len(folded.Failures)-len(late), "the finalized result is left as is")
}

func TestOptionsValidate(t *testing.T) {
	opts := sync.Defaults()
	assert.True(t, errors.IsValidationError(opts.Validate()))

	opts.Apply(sync.WithProcessName("IH"), sync.WithPortalURL("not a url"))
	assert.True(t, errors.IsValidationError(opts.Validate()))

	opts.Apply(sync.WithPortalURL("https://registry.example.org"))
	assert.NoError(t, opts.Validate())
}
