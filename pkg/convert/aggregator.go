package convert

import (
	"strings"

	"github.com/agentstation/registrysync/pkg/normalize"
	"github.com/agentstation/registrysync/pkg/registry"
	"github.com/agentstation/registrysync/pkg/sources/aggregator"
	"github.com/agentstation/registrysync/pkg/staff"
)

// AggregatorInstitution converts the institution part of a record.
func (c *Converter) AggregatorInstitution(rec aggregator.Record) registry.Institution {
	return registry.Institution{
		Code:           strings.TrimSpace(rec.InstitutionCode),
		Name:           strings.TrimSpace(rec.Institution),
		Active:         true,
		Latitude:       coordinate(rec.Lat),
		Longitude:      coordinate(rec.Lon),
		Address:        c.address(rec.Address, rec.City, rec.State, rec.Zip, rec.Country),
		MailingAddress: c.address(rec.MailingAddress, rec.MailingCity, rec.MailingState, rec.MailingZip, rec.Country),
	}
}

// AggregatorCollection converts the collection part of a record.
func (c *Converter) AggregatorCollection(rec aggregator.Record) registry.Collection {
	var tags []registry.MachineTag
	if id := strings.TrimSpace(rec.UUID); id != "" {
		tags = []registry.MachineTag{{Namespace: registry.NamespaceIDigBio, Name: registry.TagIDigBioUUID, Value: id}}
	}
	return registry.Collection{
		Code:              strings.TrimSpace(rec.CollectionCode),
		Name:              strings.TrimSpace(rec.Collection),
		Description:       strings.TrimSpace(rec.Description),
		Active:            true,
		TaxonomicCoverage: strings.TrimSpace(rec.Taxa),
		Email:             emails(rec.ContactEmail),
		Phone:             phones(rec.ContactPhone),
		Homepage:          homepage(rec.CollectionURL),
		CatalogURL:        homepage(rec.CatalogURL),
		NumberSpecimens:   rec.Cataloged,
		Address:           c.address(rec.Address, rec.City, rec.State, rec.Zip, rec.Country),
		MailingAddress:    c.address(rec.MailingAddress, rec.MailingCity, rec.MailingState, rec.MailingZip, rec.Country),
		MachineTags:       tags,
	}
}

// AggregatorCandidates returns the record contact as a reconciliation
// candidate, if the record names one.
func (c *Converter) AggregatorCandidates(rec aggregator.Record) []staff.Candidate {
	if normalize.String(rec.ContactName) == "" {
		return nil
	}
	first, last := splitName(rec.ContactName)
	p := registry.Person{
		FirstName: first,
		LastName:  last,
		Position:  strings.TrimSpace(rec.ContactRole),
		Email:     emails(rec.ContactEmail),
		Phone:     phones(rec.ContactPhone),
	}
	completeness := 0
	for _, v := range []string{rec.ContactName, rec.ContactRole, rec.ContactEmail, rec.ContactPhone} {
		if normalize.String(v) != "" {
			completeness++
		}
	}
	return []staff.Candidate{{ID: rec.UUID + ":" + normalize.String(rec.ContactName), Person: p, Completeness: completeness}}
}
