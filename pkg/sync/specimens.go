package sync

import (
	"context"
	"strings"

	"github.com/agentstation/registrysync/pkg/convert"
	"github.com/agentstation/registrysync/pkg/errors"
	"github.com/agentstation/registrysync/pkg/logging"
	"github.com/agentstation/registrysync/pkg/match"
	"github.com/agentstation/registrysync/pkg/normalize"
	"github.com/agentstation/registrysync/pkg/registry"
	"github.com/agentstation/registrysync/pkg/sources"
	"github.com/agentstation/registrysync/pkg/sources/aggregator"
)

// AggregatorProcess is the default process name of the aggregator sync.
const AggregatorProcess = "iDigBio"

// AggregatorSync syncs the specimen aggregator export. Each record is a
// collection of an institution, and its contact is a contact of the
// collection.
type AggregatorSync struct {
	*orchestrator
	src  *aggregator.Source
	conv *convert.Converter

	// created holds the institutions created in this run by code, so the
	// collections of a new institution end up under a single one.
	created map[string]registry.Institution
}

// NewAggregatorSync returns the sync of a fetched aggregator source.
func NewAggregatorSync(client registry.Client, src *aggregator.Source, conv *convert.Converter, opts ...Option) (*AggregatorSync, error) {
	options := Defaults().Apply(WithProcessName(AggregatorProcess)).Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}
	return &AggregatorSync{
		orchestrator: newOrchestrator(sources.AggregatorID, client, options),
		src:          src,
		conv:         conv,
		created:      make(map[string]registry.Institution),
	}, nil
}

// Run makes the single pass over the records. Background calls may still be
// running when it returns; see Wait.
func (s *AggregatorSync) Run(ctx context.Context) (*Result, error) {
	ctx = logging.WithSource(ctx, sources.AggregatorID.String())
	snapshot, err := registry.LoadSnapshot(ctx, s.client)
	if err != nil {
		return nil, errors.NewSyncError(sources.AggregatorID.String(), nil, err)
	}
	m := match.NewMatcher(snapshot)

	for _, rec := range s.src.Records() {
		if err := ctx.Err(); err != nil {
			return s.finish(ctx), errors.NewSyncError(sources.AggregatorID.String(), []string{rec.UUID}, err)
		}
		res := match.Result[record]{Source: s.record(rec)}
		res.Institutions, res.Collections = s.candidates(m, rec)
		res.Staff = match.Staff(m, res)

		inst, ok := s.apply(ctx, m, res)
		if code := normalize.String(rec.InstitutionCode); ok && code != "" {
			if len(res.Institutions) == 0 {
				s.created[code] = inst
			}
		}
	}
	return s.finish(ctx), nil
}

// candidates looks the collection up by aggregator UUID tag and the
// institution by code, then by name. Without a tagged collection, the
// collections of a single institution are searched by code, then by name.
func (s *AggregatorSync) candidates(m *match.Matcher, rec aggregator.Record) ([]registry.Institution, []registry.Collection) {
	var cols []registry.Collection
	if id := strings.TrimSpace(rec.UUID); id != "" {
		_, cols = m.ByMachineTag(registry.NamespaceIDigBio, registry.TagIDigBioUUID, id)
	}

	insts := m.InstitutionsByCode(rec.InstitutionCode)
	if len(insts) == 0 {
		insts = m.InstitutionsByName(rec.Institution)
	}
	if len(insts) == 0 {
		if inst, ok := s.created[normalize.String(rec.InstitutionCode)]; ok {
			insts = []registry.Institution{inst}
		}
	}

	if len(cols) == 0 && len(insts) == 1 {
		cols = m.CollectionsByCode(rec.CollectionCode, insts[0].Key)
		if len(cols) == 0 {
			cols = m.CollectionsByName(rec.Collection, insts[0].Key)
		}
	}
	return insts, cols
}

func (s *AggregatorSync) record(rec aggregator.Record) record {
	return record{
		id:          rec.UUID,
		label:       label(rec.InstitutionCode, rec.Institution) + " / " + label(rec.CollectionCode, rec.Collection) + " (" + rec.UUID + ")",
		institution: s.conv.AggregatorInstitution(rec),
		collection:  s.conv.AggregatorCollection(rec),
		candidates:  s.conv.AggregatorCandidates(rec),
	}
}
