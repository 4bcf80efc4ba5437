package sync

import (
	"context"
	"strings"

	"github.com/agentstation/registrysync/pkg/convert"
	"github.com/agentstation/registrysync/pkg/errors"
	"github.com/agentstation/registrysync/pkg/logging"
	"github.com/agentstation/registrysync/pkg/match"
	"github.com/agentstation/registrysync/pkg/registry"
	"github.com/agentstation/registrysync/pkg/sources"
	"github.com/agentstation/registrysync/pkg/sources/herbarium"
)

// HerbariumProcess is the default process name of the herbarium sync.
const HerbariumProcess = "IH"

// HerbariumSync syncs the herbarium index. Each index entry is an
// institution with its herbarium collection, and its staff are contacts of
// both.
type HerbariumSync struct {
	*orchestrator
	src  *herbarium.Source
	conv *convert.Converter
}

// NewHerbariumSync returns the sync of a fetched herbarium source.
func NewHerbariumSync(client registry.Client, src *herbarium.Source, conv *convert.Converter, opts ...Option) (*HerbariumSync, error) {
	options := Defaults().Apply(WithProcessName(HerbariumProcess)).Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}
	return &HerbariumSync{
		orchestrator: newOrchestrator(sources.HerbariumID, client, options),
		src:          src,
		conv:         conv,
	}, nil
}

// Run makes the single pass over the index entries. Background calls may
// still be running when it returns; see Wait.
func (s *HerbariumSync) Run(ctx context.Context) (*Result, error) {
	ctx = logging.WithSource(ctx, sources.HerbariumID.String())
	snapshot, err := registry.LoadSnapshot(ctx, s.client)
	if err != nil {
		return nil, errors.NewSyncError(sources.HerbariumID.String(), nil, err)
	}
	m := match.NewMatcher(snapshot)

	for _, inst := range s.src.Institutions() {
		if err := ctx.Err(); err != nil {
			return s.finish(ctx), errors.NewSyncError(sources.HerbariumID.String(), []string{inst.IRN}, err)
		}
		res := match.Result[record]{Source: s.record(inst)}
		res.Institutions, res.Collections = s.candidates(m, inst)
		res.Staff = match.Staff(m, res)
		s.apply(ctx, m, res)
	}
	return s.finish(ctx), nil
}

// candidates looks the entry up by IRN machine tag, then IRN identifier,
// then code.
func (s *HerbariumSync) candidates(m *match.Matcher, inst herbarium.Institution) ([]registry.Institution, []registry.Collection) {
	if irn := strings.TrimSpace(inst.IRN); irn != "" {
		if insts, cols := m.ByMachineTag(registry.NamespaceIH, registry.TagIRN, irn); len(insts)+len(cols) > 0 {
			return insts, cols
		}
		if insts, cols := m.ByIdentifier(registry.IdentifierIHIRN, irn); len(insts)+len(cols) > 0 {
			return insts, cols
		}
	}
	return m.InstitutionsByCode(inst.Code), m.CollectionsByCode(inst.Code, "")
}

func (s *HerbariumSync) record(inst herbarium.Institution) record {
	return record{
		id:                 inst.IRN,
		label:              label(inst.Code, inst.Organization) + " (IRN " + inst.IRN + ")",
		institution:        s.conv.HerbariumInstitution(inst),
		collection:         s.conv.HerbariumCollection(inst),
		candidates:         s.conv.HerbariumCandidates(s.src.Staff(inst.Code)),
		staffOnInstitution: true,
	}
}
