package output

import (
	"io"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/registrysync/pkg/registry"
	"github.com/agentstation/registrysync/pkg/sync"
)

var kinds = []registry.Kind{registry.KindInstitution, registry.KindCollection, registry.KindPerson}

// ResultToTableData summarizes r per entity kind. The wide table adds the
// link columns.
func ResultToTableData(r *sync.Result, wide bool) Data {
	caser := cases.Title(language.English)
	headers := []string{"Kind", "Unchanged", "Created", "Updated"}
	if wide {
		headers = append(headers, "Linked", "Unlinked")
	}
	headers = append(headers, "Conflicts", "Failed")

	d := Data{Headers: headers}
	d.ColumnAlignment = append([]Align{AlignLeft}, repeat(AlignRight, len(headers)-1)...)
	for _, kind := range kinds {
		c := r.Kind(kind).Counts()
		row := []string{caser.String(kind.String()), itoa(c.Matched), itoa(c.Created), itoa(c.Updated)}
		if wide {
			row = append(row, itoa(c.Linked), itoa(c.Removed))
		}
		row = append(row, itoa(c.Conflicts), itoa(c.Failed))
		d.Rows = append(d.Rows, row)
	}
	return d
}

// FailuresToTableData lists the failed calls.
func FailuresToTableData(failures []sync.FailedAction) Data {
	d := Data{Headers: []string{"Operation", "Kind", "Key", "Entity", "Error"}}
	for _, f := range failures {
		d.Rows = append(d.Rows, []string{f.Op, string(f.Kind), f.Key, f.Entity, f.Message})
	}
	return d
}

// FormatResult writes r in format. Tables show the summary followed by the
// failures, other formats the whole result.
func FormatResult(w io.Writer, r *sync.Result, format Format) error {
	formatter := NewFormatter(format)
	switch format {
	case FormatTable, FormatWide, "":
		if err := formatter.Format(w, ResultToTableData(r, format == FormatWide)); err != nil {
			return err
		}
		failures := append(append([]sync.FailedAction{}, r.Failures...), r.NotificationFailures...)
		if len(failures) == 0 {
			return nil
		}
		return formatter.Format(w, FailuresToTableData(failures))
	default:
		return formatter.Format(w, r)
	}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func repeat(a Align, n int) []Align {
	out := make([]Align, n)
	for i := range out {
		out[i] = a
	}
	return out
}
