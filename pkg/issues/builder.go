package issues

import (
	"fmt"
	"strings"
	"time"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/registrysync/pkg/constants"
	"github.com/agentstation/registrysync/pkg/logging"
	"github.com/agentstation/registrysync/pkg/sync"
)

// Builder renders the issues of a run.
type Builder struct {
	process   string
	assignees []string
	now       func() time.Time
}

// NewBuilder returns a builder for the runs of process, e.g. "IH".
func NewBuilder(process string, assignees []string, now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{process: process, assignees: assignees, now: now}
}

// FailLabel is the label of every failures issue of the process.
func (b *Builder) FailLabel() string {
	return b.process + constants.DefaultFailLabelSuffix
}

// ConflictLabel is the label of every conflict issue of the process.
func (b *Builder) ConflictLabel() string {
	return b.process + " conflict"
}

// FailsTitle is the title of the failures issue of a run on day.
func (b *Builder) FailsTitle(day time.Time) string {
	return fmt.Sprintf("%s sync %s failures", b.process, day.Format(constants.DateFormat))
}

// FailsNotification builds the failures issue of r, one fenced block per
// failure.
func (b *Builder) FailsNotification(r *sync.Result) Issue {
	now := b.now()
	var buf strings.Builder
	doc := md.NewMarkdown(&buf)
	doc.PlainTextf("%s sync of %s finished with %d failures.", b.process, r.Metadata.Source, len(r.Failures)).LF()
	for _, f := range r.Failures {
		doc.CodeBlocks(md.SyntaxHighlight(""), fmt.Sprintf("Error: %s\nEntity: %s", f.Message, f.Entity))
	}
	return Issue{
		Title:     b.FailsTitle(now),
		Body:      render(doc, &buf),
		Labels:    []string{b.FailLabel(), TimestampLabel(now)},
		Assignees: b.assignees,
	}
}

// Conflict builds the issue of an ambiguous match, linking the candidates in
// the registry portal.
func (b *Builder) Conflict(c sync.Conflict) Issue {
	now := b.now()
	var buf strings.Builder
	doc := md.NewMarkdown(&buf)
	doc.PlainTextf("The %s %s matches more than one registry entity and was not synced.", c.Kind, md.Bold(c.Source)).LF()
	doc.PlainText(c.Reason).LF()
	if len(c.Links) > 0 {
		links := make([]string, 0, len(c.Links))
		for _, l := range c.Links {
			links = append(links, md.Link(l, l))
		}
		doc.H3("Candidates")
		doc.BulletList(links...)
	}
	return Issue{
		Title:     fmt.Sprintf("%s sync conflict: %s", b.process, c.Source),
		Body:      render(doc, &buf),
		Labels:    []string{b.ConflictLabel(), TimestampLabel(now)},
		Assignees: b.assignees,
	}
}

func render(doc *md.Markdown, buf *strings.Builder) string {
	if err := doc.Build(); err != nil {
		logging.Warn().Err(err).Msg("Failed to render issue body")
	}
	return buf.String()
}
