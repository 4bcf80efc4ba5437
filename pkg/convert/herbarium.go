package convert

import (
	"strings"

	"github.com/agentstation/registrysync/pkg/normalize"
	"github.com/agentstation/registrysync/pkg/registry"
	"github.com/agentstation/registrysync/pkg/sources/herbarium"
	"github.com/agentstation/registrysync/pkg/staff"
)

func irnTags(irn string) ([]registry.Identifier, []registry.MachineTag) {
	if irn == "" {
		return nil, nil
	}
	return []registry.Identifier{{Type: registry.IdentifierIHIRN, Identifier: irn}},
		[]registry.MachineTag{{Namespace: registry.NamespaceIH, Name: registry.TagIRN, Value: irn}}
}

// HerbariumInstitution converts a herbarium index entry to an institution.
func (c *Converter) HerbariumInstitution(src herbarium.Institution) registry.Institution {
	ids, tags := irnTags(src.IRN)
	return registry.Institution{
		Code:            strings.TrimSpace(src.Code),
		Name:            strings.TrimSpace(src.Organization),
		Type:            "HERBARIUM",
		Active:          isActive(src.CurrentStatus),
		Email:           emails(src.Contact.Email),
		Phone:           phones(src.Contact.Phone),
		Homepage:        homepage(src.Contact.WebURL),
		FoundingYear:    year(src.DateFounded),
		NumberSpecimens: src.SpecimenTotal,
		Latitude:        nonZero(src.Location.Lat),
		Longitude:       nonZero(src.Location.Lon),
		Address:         c.physicalAddress(src.Address),
		MailingAddress:  c.postalAddress(src.Address),
		Identifiers:     ids,
		MachineTags:     tags,
	}
}

// HerbariumCollection converts a herbarium index entry to the herbarium
// collection of the institution.
func (c *Converter) HerbariumCollection(src herbarium.Institution) registry.Collection {
	ids, tags := irnTags(src.IRN)
	return registry.Collection{
		Code:                   strings.TrimSpace(src.Code),
		Name:                   normalize.FirstNonEmpty(strings.TrimSpace(src.Division), strings.TrimSpace(src.Department), strings.TrimSpace(src.Organization)),
		Active:                 isActive(src.CurrentStatus),
		TaxonomicCoverage:      strings.TrimSpace(src.TaxonomicCoverage),
		Geography:              strings.TrimSpace(src.Geography),
		Email:                  emails(src.Contact.Email),
		Phone:                  phones(src.Contact.Phone),
		Homepage:               homepage(src.Contact.WebURL),
		NumberSpecimens:        src.SpecimenTotal,
		IndexHerbariorumRecord: true,
		Address:                c.physicalAddress(src.Address),
		MailingAddress:         c.postalAddress(src.Address),
		Identifiers:            ids,
		MachineTags:            tags,
	}
}

// HerbariumPerson converts a staff member to a person.
func (c *Converter) HerbariumPerson(st herbarium.StaffMember) registry.Person {
	_, tags := irnTags(st.IRN)
	first := strings.Join(strings.Fields(st.FirstName+" "+st.MiddleName), " ")
	return registry.Person{
		FirstName:          first,
		LastName:           strings.TrimSpace(st.LastName),
		Position:           strings.TrimSpace(st.Position),
		AreaResponsibility: strings.TrimSpace(st.Specialities),
		Email:              emails(st.Contact.Email),
		Phone:              phones(st.Contact.Phone),
		Fax:                fax(st.Contact.Fax),
		MailingAddress:     c.address(st.Address.Street, st.Address.City, st.Address.State, st.Address.ZipCode, st.Address.Country),
		MachineTags:        tags,
	}
}

// HerbariumCandidates converts the staff of an institution to reconciliation
// candidates.
func (c *Converter) HerbariumCandidates(members []herbarium.StaffMember) []staff.Candidate {
	out := make([]staff.Candidate, 0, len(members))
	for _, m := range members {
		out = append(out, staff.Candidate{
			ID:           m.IRN,
			Person:       c.HerbariumPerson(m),
			Completeness: m.Completeness(),
		})
	}
	return out
}

func (c *Converter) physicalAddress(a herbarium.Address) *registry.Address {
	return c.address(a.PhysicalStreet, a.PhysicalCity, a.PhysicalState, a.PhysicalZipCode, a.PhysicalCountry)
}

func (c *Converter) postalAddress(a herbarium.Address) *registry.Address {
	return c.address(a.PostalStreet, a.PostalCity, a.PostalState, a.PostalZipCode, a.PostalCountry)
}

func isActive(status string) bool {
	return normalize.String(status) == "active"
}
