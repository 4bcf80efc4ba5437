package output_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/registrysync/internal/cmd/output"
	"github.com/agentstation/registrysync/pkg/errors"
	"github.com/agentstation/registrysync/pkg/registry"
	"github.com/agentstation/registrysync/pkg/sources"
	"github.com/agentstation/registrysync/pkg/sync"
)

func result() *sync.Result {
	agg := sync.NewAggregator(sources.HerbariumID, "IH", false, nil)
	agg.AddChange(sync.Change{Kind: registry.KindInstitution, Action: sync.ActionCreated})
	agg.AddChange(sync.Change{Kind: registry.KindPerson, Action: sync.ActionLinked})
	agg.AddFailure(sync.FailedAction{Op: "update", Kind: registry.KindCollection, Key: "c1", Message: "boom"})
	return agg.Finalize()
}

func TestParseFormat(t *testing.T) {
	f, err := output.ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, output.FormatYAML, f)

	_, err = output.ParseFormat("xml")
	assert.True(t, errors.IsValidationError(err))
}

func TestResultToTableData(t *testing.T) {
	d := output.ResultToTableData(result(), false)
	assert.Equal(t, []string{"Kind", "Unchanged", "Created", "Updated", "Conflicts", "Failed"}, d.Headers)
	require.Len(t, d.Rows, 3)
	assert.Equal(t, []string{"Institution", "0", "1", "0", "0", "0"}, d.Rows[0])
	assert.Equal(t, "1", d.Rows[1][5])

	wide := output.ResultToTableData(result(), true)
	assert.Equal(t, "1", wide.Rows[2][4])
}

func TestFormatResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.FormatResult(&buf, result(), output.FormatTable))
	assert.Contains(t, buf.String(), "Institution")
	assert.Contains(t, buf.String(), "boom")

	buf.Reset()
	require.NoError(t, output.FormatResult(&buf, result(), output.FormatJSON))
	assert.Contains(t, buf.String(), `"source": "ih"`)
}

func TestNewFormatter(t *testing.T) {
	d := output.Data{Headers: []string{"Kind", "Created"}, Rows: [][]string{{"Institution", "1"}}}

	var buf bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatYAML).Format(&buf, d))
	assert.Contains(t, buf.String(), "- Institution")

	buf.Reset()
	require.NoError(t, output.NewFormatter(output.FormatTable).Format(&buf, map[string]int{"created": 1}))
	assert.Contains(t, buf.String(), `"created": 1`, "non-table data falls back to JSON")
}
