package issues

import (
	"slices"
	"time"

	"github.com/agentstation/registrysync/pkg/constants"
)

// IsTimestampLabel reports whether label marks a run.
func IsTimestampLabel(label string) bool {
	_, err := time.Parse(constants.TimestampLabelFormat, label)
	return err == nil
}

// TimestampLabel returns the label marking a run started at t.
func TimestampLabel(t time.Time) string {
	return t.Format(constants.TimestampLabelFormat)
}

// MergeLabels merges the labels of a new run into the labels of an existing
// issue. Of the existing timestamp labels only the oldest is kept, so the
// issue keeps its creation time without growing a label per run. Every new
// label is added.
func MergeLabels(existing, added []string) []string {
	var (
		oldest   string
		oldestAt time.Time
		out      []string
	)
	for _, l := range existing {
		at, err := time.Parse(constants.TimestampLabelFormat, l)
		if err != nil {
			out = appendUnique(out, l)
			continue
		}
		if oldest == "" || at.Before(oldestAt) {
			oldest, oldestAt = l, at
		}
	}
	if oldest != "" {
		out = appendUnique(out, oldest)
	}
	for _, l := range added {
		out = appendUnique(out, l)
	}
	return out
}

// MergeAssignees unions the assignees, keeping the existing order.
func MergeAssignees(existing, added []string) []string {
	var out []string
	for _, a := range slices.Concat(existing, added) {
		out = appendUnique(out, a)
	}
	return out
}

func appendUnique(list []string, v string) []string {
	if v == "" || slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}
