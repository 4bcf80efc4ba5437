package sources_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/registrysync/pkg/errors"
	"github.com/agentstation/registrysync/pkg/sources"
	"github.com/agentstation/registrysync/pkg/sources/aggregator"
	"github.com/agentstation/registrysync/pkg/sources/herbarium"
)

const herbariumYAML = `
institutions:
  - irn: "100"
    code: B
    organization: Botanic Garden and Botanical Museum
    currentStatus: Active
    address:
      physicalCity: Berlin
      physicalCountry: Germany
    contact:
      email: herbarium@bgbm.org
staff:
  - irn: "500"
    code: B
    firstName: Ana
    lastName: Schmidt
    contact:
      email: a.schmidt@bgbm.org
  - irn: "501"
    code: K
    firstName: Luis
    lastName: Perez
`

func TestIDs(t *testing.T) {
	assert.True(t, sources.HerbariumID.IsValid())
	assert.False(t, sources.ID("gbif").IsValid())
	assert.Len(t, sources.IDs(), 2)
}

func TestHerbariumFetchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ih.yaml")
	require.NoError(t, os.WriteFile(path, []byte(herbariumYAML), 0o600))

	src := herbarium.New(path)
	require.False(t, src.Fetched())
	require.NoError(t, src.Fetch(context.Background()))

	require.Len(t, src.Institutions(), 1)
	inst := src.Institutions()[0]
	assert.Equal(t, "100", inst.IRN)
	assert.Equal(t, "Berlin", inst.Address.PhysicalCity)

	staff := src.Staff(" b ")
	require.Len(t, staff, 1)
	assert.Equal(t, "Schmidt", staff[0].LastName)
	assert.Empty(t, src.Staff("missing"))
}

func TestAggregatorFetchJSONOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"collection_uuid":"u-1","institution":"Field Museum","institution_code":"F","collection":"Botany","collection_code":"BOT"}]`))
	}))
	defer srv.Close()

	src := aggregator.New(srv.URL + "/export.json")
	require.NoError(t, src.Fetch(context.Background()))
	require.Len(t, src.Records(), 1)
	assert.Equal(t, "BOT", src.Records()[0].CollectionCode)
}

func TestFetchAllJoinsErrors(t *testing.T) {
	all := sources.NewSources()
	all.Set(herbarium.New(filepath.Join(t.TempDir(), "missing.yaml")))
	all.Set(aggregator.FromRecords(nil))
	assert.Equal(t, 2, all.Len())

	err := all.FetchAll(context.Background())
	require.Error(t, err)
	var syncErr *errors.SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, "ih", syncErr.Source)
}

func TestLoadParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("institutions: [\n"), 0o600))

	var e herbarium.Export
	err := sources.Load(context.Background(), nil, path, &e)
	var parseErr *errors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "json", parseErr.Format)
}

func TestStaffCompleteness(t *testing.T) {
	sparse := herbarium.StaffMember{IRN: "1", FirstName: "Ana"}
	full := herbarium.StaffMember{
		IRN:       "2",
		FirstName: "Ana",
		LastName:  "Schmidt",
		Address:   herbarium.StaffAddress{City: "Berlin"},
		Contact:   herbarium.Contact{Email: "a@b.org"},
	}
	assert.Equal(t, 2, sparse.Completeness())
	assert.Equal(t, 5, full.Completeness())
}
