// Package registry models the canonical registry of institutions, collections
// and personnel, and the client contract used to read and mutate it.
//
// Entities are plain records. Behavior that applies to several kinds is
// expressed as free functions over the capability interfaces Identifiable,
// Taggable and Contactable rather than through a type hierarchy.
package registry

import (
	"time"

	"github.com/agentstation/registrysync/pkg/country"
)

// Kind is the type of a registry entity.
type Kind string

// Entity kinds.
const (
	KindInstitution Kind = "institution"
	KindCollection  Kind = "collection"
	KindPerson      Kind = "person"
)

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// Identifier types and machine tag namespaces written by the sync drivers.
const (
	IdentifierIHIRN = "IH_IRN"
	IdentifierGRSCI = "GRSCICOLL_ID"

	NamespaceIH      = "ih.gbif.org"
	TagIRN           = "irn"
	NamespaceIDigBio = "idigbio.org"
	TagIDigBioUUID   = "uuid"
)

// Identifier is an external identifier attached to an entity. Key is zero
// until the registry has stored it.
type Identifier struct {
	Key        int    `json:"key,omitempty" yaml:"key,omitempty"`
	Type       string `json:"type" yaml:"type"`
	Identifier string `json:"identifier" yaml:"identifier"`
}

// MachineTag is a namespaced key/value annotation. Key is zero until the
// registry has stored it.
type MachineTag struct {
	Key       int    `json:"key,omitempty" yaml:"key,omitempty"`
	Namespace string `json:"namespace" yaml:"namespace"`
	Name      string `json:"name" yaml:"name"`
	Value     string `json:"value" yaml:"value"`
}

// Address is a postal or physical address.
type Address struct {
	Key        int          `json:"key,omitempty" yaml:"key,omitempty"`
	Address    string       `json:"address,omitempty" yaml:"address,omitempty"`
	City       string       `json:"city,omitempty" yaml:"city,omitempty"`
	Province   string       `json:"province,omitempty" yaml:"province,omitempty"`
	PostalCode string       `json:"postalCode,omitempty" yaml:"postalCode,omitempty"`
	Country    country.Code `json:"country,omitempty" yaml:"country,omitempty"`
}

// Audit holds registry managed bookkeeping fields.
type Audit struct {
	CreatedBy  string     `json:"createdBy,omitempty" yaml:"createdBy,omitempty"`
	ModifiedBy string     `json:"modifiedBy,omitempty" yaml:"modifiedBy,omitempty"`
	Created    *time.Time `json:"created,omitempty" yaml:"created,omitempty"`
	Modified   *time.Time `json:"modified,omitempty" yaml:"modified,omitempty"`
}

// Institution is a canonical institution record.
type Institution struct {
	Key             string       `json:"key,omitempty" yaml:"key,omitempty"`
	Code            string       `json:"code" yaml:"code"`
	Name            string       `json:"name" yaml:"name"`
	Description     string       `json:"description,omitempty" yaml:"description,omitempty"`
	Type            string       `json:"type,omitempty" yaml:"type,omitempty"`
	Active          bool         `json:"active" yaml:"active"`
	Email           []string     `json:"email,omitempty" yaml:"email,omitempty"`
	Phone           []string     `json:"phone,omitempty" yaml:"phone,omitempty"`
	Homepage        string       `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	CatalogURL      string       `json:"catalogUrl,omitempty" yaml:"catalogUrl,omitempty"`
	APIURL          string       `json:"apiUrl,omitempty" yaml:"apiUrl,omitempty"`
	FoundingYear    int          `json:"foundingDate,omitempty" yaml:"foundingDate,omitempty"`
	NumberSpecimens int          `json:"numberSpecimens,omitempty" yaml:"numberSpecimens,omitempty"`
	Latitude        *float64     `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude       *float64     `json:"longitude,omitempty" yaml:"longitude,omitempty"`
	Address         *Address     `json:"address,omitempty" yaml:"address,omitempty"`
	MailingAddress  *Address     `json:"mailingAddress,omitempty" yaml:"mailingAddress,omitempty"`
	Identifiers     []Identifier `json:"identifiers,omitempty" yaml:"identifiers,omitempty"`
	MachineTags     []MachineTag `json:"machineTags,omitempty" yaml:"machineTags,omitempty"`
	Contacts        []string     `json:"contacts,omitempty" yaml:"contacts,omitempty"`
	Audit           `json:",inline" yaml:",inline"`
}

// Collection is a canonical collection record.
type Collection struct {
	Key                    string       `json:"key,omitempty" yaml:"key,omitempty"`
	Code                   string       `json:"code" yaml:"code"`
	Name                   string       `json:"name" yaml:"name"`
	Description            string       `json:"description,omitempty" yaml:"description,omitempty"`
	Active                 bool         `json:"active" yaml:"active"`
	InstitutionKey         string       `json:"institutionKey,omitempty" yaml:"institutionKey,omitempty"`
	ContentTypes           []string     `json:"contentTypes,omitempty" yaml:"contentTypes,omitempty"`
	PreservationTypes      []string     `json:"preservationTypes,omitempty" yaml:"preservationTypes,omitempty"`
	TaxonomicCoverage      string       `json:"taxonomicCoverage,omitempty" yaml:"taxonomicCoverage,omitempty"`
	Geography              string       `json:"geography,omitempty" yaml:"geography,omitempty"`
	Email                  []string     `json:"email,omitempty" yaml:"email,omitempty"`
	Phone                  []string     `json:"phone,omitempty" yaml:"phone,omitempty"`
	Homepage               string       `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	CatalogURL             string       `json:"catalogUrl,omitempty" yaml:"catalogUrl,omitempty"`
	APIURL                 string       `json:"apiUrl,omitempty" yaml:"apiUrl,omitempty"`
	NumberSpecimens        int          `json:"numberSpecimens,omitempty" yaml:"numberSpecimens,omitempty"`
	IndexHerbariorumRecord bool         `json:"indexHerbariorumRecord,omitempty" yaml:"indexHerbariorumRecord,omitempty"`
	Address                *Address     `json:"address,omitempty" yaml:"address,omitempty"`
	MailingAddress         *Address     `json:"mailingAddress,omitempty" yaml:"mailingAddress,omitempty"`
	Identifiers            []Identifier `json:"identifiers,omitempty" yaml:"identifiers,omitempty"`
	MachineTags            []MachineTag `json:"machineTags,omitempty" yaml:"machineTags,omitempty"`
	Contacts               []string     `json:"contacts,omitempty" yaml:"contacts,omitempty"`
	Audit                  `json:",inline" yaml:",inline"`
}

// Person is a canonical staff member.
type Person struct {
	Key                   string       `json:"key,omitempty" yaml:"key,omitempty"`
	FirstName             string       `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	LastName              string       `json:"lastName,omitempty" yaml:"lastName,omitempty"`
	Position              string       `json:"position,omitempty" yaml:"position,omitempty"`
	AreaResponsibility    string       `json:"areaResponsibility,omitempty" yaml:"areaResponsibility,omitempty"`
	ResearchPursuits      string       `json:"researchPursuits,omitempty" yaml:"researchPursuits,omitempty"`
	Email                 []string     `json:"email,omitempty" yaml:"email,omitempty"`
	Phone                 []string     `json:"phone,omitempty" yaml:"phone,omitempty"`
	Fax                   string       `json:"fax,omitempty" yaml:"fax,omitempty"`
	MailingAddress        *Address     `json:"mailingAddress,omitempty" yaml:"mailingAddress,omitempty"`
	PrimaryInstitutionKey string       `json:"primaryInstitutionKey,omitempty" yaml:"primaryInstitutionKey,omitempty"`
	PrimaryCollectionKey  string       `json:"primaryCollectionKey,omitempty" yaml:"primaryCollectionKey,omitempty"`
	Identifiers           []Identifier `json:"identifiers,omitempty" yaml:"identifiers,omitempty"`
	MachineTags           []MachineTag `json:"machineTags,omitempty" yaml:"machineTags,omitempty"`
	Audit                 `json:",inline" yaml:",inline"`
}

// FullName joins the first and last name.
func (p Person) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
