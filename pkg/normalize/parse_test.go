package normalize_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/registrysync/pkg/logging"
	"github.com/agentstation/registrysync/pkg/normalize"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		year  int
		month time.Month
	}{
		{"2019-08-08", 2019, time.August},
		{"08/08/2019", 2019, time.August},
		{"1 January 2019", 2019, time.January},
		{"2019.", 2019, time.January},
		{"2019-03", 2019, time.March},
		{"March 2019", 2019, time.March},
		{"marzo 2019", 2019, time.March},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := normalize.ParseDate(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.year, got.Year())
			assert.Equal(t, tt.month, got.Month())
		})
	}
}

func TestParseDateInvalidLogsWarning(t *testing.T) {
	tl := logging.CaptureLoggingForTest(t)

	_, ok := normalize.ParseDate("sometime last century")
	assert.False(t, ok)
	tl.AssertContains(t, "Could not parse date")
	tl.AssertContains(t, "date parse error")

	_, ok = normalize.ParseDate("")
	assert.False(t, ok)
}

func TestParseURL(t *testing.T) {
	got, ok := normalize.ParseURL("www.b.com")
	require.True(t, ok)
	assert.Equal(t, "http://www.b.com", got)

	got, ok = normalize.ParseURL("https://abc.com/de/fg/")
	require.True(t, ok)
	assert.Equal(t, "https://abc.com/de/fg/", got)

	got, ok = normalize.ParseURL(" http//:typo.org ")
	require.True(t, ok)
	assert.Equal(t, "http://typo.org", got)

	_, ok = normalize.ParseURL("na")
	assert.False(t, ok)

	_, ok = normalize.ParseURL("")
	assert.False(t, ok)
}
