// Package herbarium reads exports of the herbarium index: institutions with
// their herbarium collection and the staff working for them.
package herbarium

import (
	"context"
	"sync"

	"github.com/agentstation/registrysync/internal/transport"
	"github.com/agentstation/registrysync/pkg/logging"
	"github.com/agentstation/registrysync/pkg/normalize"
	"github.com/agentstation/registrysync/pkg/sources"
)

// Institution is one herbarium index entry.
type Institution struct {
	IRN               string   `json:"irn" yaml:"irn"`
	Code              string   `json:"code" yaml:"code"`
	Organization      string   `json:"organization" yaml:"organization"`
	Division          string   `json:"division,omitempty" yaml:"division,omitempty"`
	Department        string   `json:"department,omitempty" yaml:"department,omitempty"`
	CurrentStatus     string   `json:"currentStatus,omitempty" yaml:"currentStatus,omitempty"`
	DateFounded       string   `json:"dateFounded,omitempty" yaml:"dateFounded,omitempty"`
	TaxonomicCoverage string   `json:"taxonomicCoverage,omitempty" yaml:"taxonomicCoverage,omitempty"`
	Geography         string   `json:"geography,omitempty" yaml:"geography,omitempty"`
	SpecimenTotal     int      `json:"specimenTotal,omitempty" yaml:"specimenTotal,omitempty"`
	Address           Address  `json:"address" yaml:"address"`
	Contact           Contact  `json:"contact" yaml:"contact"`
	Location          Location `json:"location" yaml:"location"`
}

// Address holds the physical and postal address of an institution.
type Address struct {
	PhysicalStreet  string `json:"physicalStreet,omitempty" yaml:"physicalStreet,omitempty"`
	PhysicalCity    string `json:"physicalCity,omitempty" yaml:"physicalCity,omitempty"`
	PhysicalState   string `json:"physicalState,omitempty" yaml:"physicalState,omitempty"`
	PhysicalZipCode string `json:"physicalZipCode,omitempty" yaml:"physicalZipCode,omitempty"`
	PhysicalCountry string `json:"physicalCountry,omitempty" yaml:"physicalCountry,omitempty"`
	PostalStreet    string `json:"postalStreet,omitempty" yaml:"postalStreet,omitempty"`
	PostalCity      string `json:"postalCity,omitempty" yaml:"postalCity,omitempty"`
	PostalState     string `json:"postalState,omitempty" yaml:"postalState,omitempty"`
	PostalZipCode   string `json:"postalZipCode,omitempty" yaml:"postalZipCode,omitempty"`
	PostalCountry   string `json:"postalCountry,omitempty" yaml:"postalCountry,omitempty"`
}

// Contact holds contact details. Email and phone may hold several values
// separated by newlines, semicolons or commas.
type Contact struct {
	Phone  string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email  string `json:"email,omitempty" yaml:"email,omitempty"`
	Fax    string `json:"fax,omitempty" yaml:"fax,omitempty"`
	WebURL string `json:"webUrl,omitempty" yaml:"webUrl,omitempty"`
}

// Location is a coordinate pair. Zero values mean absent.
type Location struct {
	Lat float64 `json:"lat,omitempty" yaml:"lat,omitempty"`
	Lon float64 `json:"lon,omitempty" yaml:"lon,omitempty"`
}

// StaffMember is a person working at an institution.
type StaffMember struct {
	IRN           string       `json:"irn" yaml:"irn"`
	Code          string       `json:"code" yaml:"code"`
	FirstName     string       `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	MiddleName    string       `json:"middleName,omitempty" yaml:"middleName,omitempty"`
	LastName      string       `json:"lastName,omitempty" yaml:"lastName,omitempty"`
	Position      string       `json:"position,omitempty" yaml:"position,omitempty"`
	Specialities  string       `json:"specialities,omitempty" yaml:"specialities,omitempty"`
	CurrentStatus string       `json:"currentStatus,omitempty" yaml:"currentStatus,omitempty"`
	Address       StaffAddress `json:"address" yaml:"address"`
	Contact       Contact      `json:"contact" yaml:"contact"`
}

// StaffAddress is the postal address of a staff member.
type StaffAddress struct {
	Street  string `json:"street,omitempty" yaml:"street,omitempty"`
	City    string `json:"city,omitempty" yaml:"city,omitempty"`
	State   string `json:"state,omitempty" yaml:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty" yaml:"zipCode,omitempty"`
	Country string `json:"country,omitempty" yaml:"country,omitempty"`
}

// Completeness counts the non-empty fields of the staff record, its address
// and its contact. Duplicates of the same person keep the most complete one.
func (s StaffMember) Completeness() int {
	return countNonEmpty(s.IRN, s.Code, s.FirstName, s.MiddleName, s.LastName, s.Position, s.Specialities, s.CurrentStatus) +
		countNonEmpty(s.Address.Street, s.Address.City, s.Address.State, s.Address.ZipCode, s.Address.Country) +
		countNonEmpty(s.Contact.Phone, s.Contact.Email, s.Contact.Fax, s.Contact.WebURL)
}

func countNonEmpty(values ...string) int {
	n := 0
	for _, v := range values {
		if normalize.String(v) != "" {
			n++
		}
	}
	return n
}

// Export is the document layout of a herbarium index export.
type Export struct {
	Institutions []Institution `json:"institutions" yaml:"institutions"`
	Staff        []StaffMember `json:"staff" yaml:"staff"`
}

// Source reads a herbarium index export.
type Source struct {
	location string
	client   *transport.Client

	mu      sync.RWMutex
	export  Export
	byCode  map[string][]StaffMember
	fetched bool
}

var _ sources.Source = (*Source)(nil)

// New returns a source reading location, a file path or an http(s) URL.
func New(location string) *Source {
	return &Source{location: location}
}

// NewWithClient returns a source fetching remote exports with client.
func NewWithClient(location string, client *transport.Client) *Source {
	return &Source{location: location, client: client}
}

// FromExport returns an already loaded source.
func FromExport(e Export) *Source {
	s := &Source{}
	s.set(e)
	return s
}

// ID implements sources.Source.
func (s *Source) ID() sources.ID {
	return sources.HerbariumID
}

// Fetch implements sources.Source. Sources built from in-memory data have
// nothing to fetch.
func (s *Source) Fetch(ctx context.Context) error {
	if s.location == "" {
		return nil
	}
	var e Export
	if err := sources.Load(ctx, s.client, s.location, &e); err != nil {
		return err
	}
	s.set(e)
	logging.FromContext(ctx).Info().
		Str("source", s.ID().String()).
		Int("institutions", len(e.Institutions)).
		Int("staff", len(e.Staff)).
		Msg("Loaded herbarium index export")
	return nil
}

func (s *Source) set(e Export) {
	byCode := make(map[string][]StaffMember)
	for _, st := range e.Staff {
		code := normalize.String(st.Code)
		byCode[code] = append(byCode[code], st)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.export = e
	s.byCode = byCode
	s.fetched = true
}

// Institutions returns the institutions in export order.
func (s *Source) Institutions() []Institution {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.export.Institutions
}

// Staff returns the staff of the institution with the given code.
func (s *Source) Staff(code string) []StaffMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byCode[normalize.String(code)]
}

// Fetched reports whether the export has been loaded.
func (s *Source) Fetched() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetched
}
