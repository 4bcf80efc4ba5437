package convert

import (
	"github.com/agentstation/registrysync/internal/utils/ptr"
	"github.com/agentstation/registrysync/pkg/country"
	"github.com/agentstation/registrysync/pkg/normalize"
	"github.com/agentstation/registrysync/pkg/registry"
)

// The merge functions overlay source values onto an existing entity. A source
// value replaces the existing one only when it is present, so better data
// already in the registry is never discarded. Keys, audit data, contacts and
// stored sub-entities always come from the existing entity.

// MergeInstitution merges incoming into existing.
func MergeInstitution(existing, incoming registry.Institution) registry.Institution {
	m := existing.Clone()
	m.Code = pick(incoming.Code, existing.Code)
	m.Name = pick(incoming.Name, existing.Name)
	m.Description = pick(incoming.Description, existing.Description)
	m.Type = pick(incoming.Type, existing.Type)
	m.Active = incoming.Active
	m.Email = union(existing.Email, incoming.Email)
	m.Phone = union(existing.Phone, incoming.Phone)
	m.Homepage = pick(incoming.Homepage, existing.Homepage)
	m.CatalogURL = pick(incoming.CatalogURL, existing.CatalogURL)
	m.APIURL = pick(incoming.APIURL, existing.APIURL)
	m.FoundingYear = pickInt(incoming.FoundingYear, existing.FoundingYear)
	m.NumberSpecimens = pickInt(incoming.NumberSpecimens, existing.NumberSpecimens)
	m.Latitude = ptr.Or(incoming.Latitude, existing.Latitude)
	m.Longitude = ptr.Or(incoming.Longitude, existing.Longitude)
	m.Address = MergeAddress(existing.Address, incoming.Address)
	m.MailingAddress = MergeAddress(existing.MailingAddress, incoming.MailingAddress)
	m.Identifiers = registry.MergeIdentifiers(existing.Identifiers, incoming.Identifiers)
	m.MachineTags = registry.MergeMachineTags(existing.MachineTags, incoming.MachineTags)
	return m
}

// MergeCollection merges incoming into existing. The owning institution
// changes only when incoming names one.
func MergeCollection(existing, incoming registry.Collection) registry.Collection {
	m := existing.Clone()
	m.Code = pick(incoming.Code, existing.Code)
	m.Name = pick(incoming.Name, existing.Name)
	m.Description = pick(incoming.Description, existing.Description)
	m.Active = incoming.Active
	m.InstitutionKey = pick(incoming.InstitutionKey, existing.InstitutionKey)
	m.ContentTypes = union(existing.ContentTypes, incoming.ContentTypes)
	m.PreservationTypes = union(existing.PreservationTypes, incoming.PreservationTypes)
	m.TaxonomicCoverage = pick(incoming.TaxonomicCoverage, existing.TaxonomicCoverage)
	m.Geography = pick(incoming.Geography, existing.Geography)
	m.Email = union(existing.Email, incoming.Email)
	m.Phone = union(existing.Phone, incoming.Phone)
	m.Homepage = pick(incoming.Homepage, existing.Homepage)
	m.CatalogURL = pick(incoming.CatalogURL, existing.CatalogURL)
	m.APIURL = pick(incoming.APIURL, existing.APIURL)
	m.NumberSpecimens = pickInt(incoming.NumberSpecimens, existing.NumberSpecimens)
	m.IndexHerbariorumRecord = existing.IndexHerbariorumRecord || incoming.IndexHerbariorumRecord
	m.Address = MergeAddress(existing.Address, incoming.Address)
	m.MailingAddress = MergeAddress(existing.MailingAddress, incoming.MailingAddress)
	m.Identifiers = registry.MergeIdentifiers(existing.Identifiers, incoming.Identifiers)
	m.MachineTags = registry.MergeMachineTags(existing.MachineTags, incoming.MachineTags)
	return m
}

// MergePerson merges incoming into existing. Primary institution and
// collection keys are only set when the existing person has none.
func MergePerson(existing, incoming registry.Person) registry.Person {
	m := existing.Clone()
	m.FirstName = pick(incoming.FirstName, existing.FirstName)
	m.LastName = pick(incoming.LastName, existing.LastName)
	m.Position = pick(incoming.Position, existing.Position)
	m.AreaResponsibility = pick(incoming.AreaResponsibility, existing.AreaResponsibility)
	m.ResearchPursuits = pick(incoming.ResearchPursuits, existing.ResearchPursuits)
	m.Email = union(existing.Email, incoming.Email)
	m.Phone = union(existing.Phone, incoming.Phone)
	m.Fax = pick(incoming.Fax, existing.Fax)
	m.MailingAddress = MergeAddress(existing.MailingAddress, incoming.MailingAddress)
	m.PrimaryInstitutionKey = pick(existing.PrimaryInstitutionKey, incoming.PrimaryInstitutionKey)
	m.PrimaryCollectionKey = pick(existing.PrimaryCollectionKey, incoming.PrimaryCollectionKey)
	m.Identifiers = registry.MergeIdentifiers(existing.Identifiers, incoming.Identifiers)
	m.MachineTags = registry.MergeMachineTags(existing.MachineTags, incoming.MachineTags)
	return m
}

// MergeAddress merges field by field, keeping the existing address key.
func MergeAddress(existing, incoming *registry.Address) *registry.Address {
	switch {
	case incoming == nil:
		return existing.Clone()
	case existing == nil:
		return incoming.Clone()
	}
	return &registry.Address{
		Key:        existing.Key,
		Address:    pick(incoming.Address, existing.Address),
		City:       pick(incoming.City, existing.City),
		Province:   pick(incoming.Province, existing.Province),
		PostalCode: pick(incoming.PostalCode, existing.PostalCode),
		Country:    pickCode(incoming, existing),
	}
}

func pickCode(incoming, existing *registry.Address) country.Code {
	if incoming.Country != "" {
		return incoming.Country
	}
	return existing.Country
}

func pick(incoming, existing string) string {
	if normalize.String(incoming) != "" {
		return incoming
	}
	return existing
}

func pickInt(incoming, existing int) int {
	if incoming != 0 {
		return incoming
	}
	return existing
}

// union keeps existing values in order and appends the new ones, comparing
// normalized values.
func union(existing, incoming []string) []string {
	out := make([]string, 0, len(existing)+len(incoming))
	seen := make(map[string]bool, len(existing)+len(incoming))
	for _, list := range [][]string{existing, incoming} {
		for _, v := range list {
			k := normalize.String(v)
			if k == "" || seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
