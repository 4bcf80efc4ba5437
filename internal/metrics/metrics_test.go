package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	r := New()
	r.Call("create", "institution", StatusExecuted)
	r.Call("create", "institution", StatusExecuted)
	r.Call("update", "collection", StatusFailed)
	r.Outcome("ih", "no match")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.calls.WithLabelValues("create", "institution", StatusExecuted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.calls.WithLabelValues("update", "collection", StatusFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.outcomes.WithLabelValues("ih", "no match")))
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	r.Call("create", "person", StatusSkipped)
	r.Outcome("ih", "ambiguous")
	r.ObserveRun("ih", time.Second)
	assert.Nil(t, r.Registry())
	assert.NoError(t, r.WriteTextfile("unused"))
}

func TestWriteTextfile(t *testing.T) {
	r := New()
	r.Call("addPerson", "collection", StatusExecuted)
	r.ObserveRun("idigbio", 3*time.Second)

	path := filepath.Join(t.TempDir(), "registrysync.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "registrysync_registry_calls_total")
	assert.Contains(t, string(data), "registrysync_sync_run_duration_seconds")
}
