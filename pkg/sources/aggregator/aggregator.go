// Package aggregator reads specimen-aggregator exports. Each record describes
// one collection and the institution holding it.
package aggregator

import (
	"context"
	"sync"

	"github.com/agentstation/registrysync/internal/transport"
	"github.com/agentstation/registrysync/pkg/logging"
	"github.com/agentstation/registrysync/pkg/sources"
)

// Record is one aggregator collection entry.
type Record struct {
	UUID            string `json:"collection_uuid" yaml:"collection_uuid"`
	Institution     string `json:"institution" yaml:"institution"`
	InstitutionCode string `json:"institution_code" yaml:"institution_code"`
	Collection      string `json:"collection" yaml:"collection"`
	CollectionCode  string `json:"collection_code" yaml:"collection_code"`
	Description     string `json:"description,omitempty" yaml:"description,omitempty"`
	Taxa            string `json:"taxonomic_coverage,omitempty" yaml:"taxonomic_coverage,omitempty"`
	CollectionURL   string `json:"collection_url,omitempty" yaml:"collection_url,omitempty"`
	CatalogURL      string `json:"collection_catalog_url,omitempty" yaml:"collection_catalog_url,omitempty"`
	Cataloged       int    `json:"cataloged_specimens,omitempty" yaml:"cataloged_specimens,omitempty"`
	ContactName     string `json:"contact,omitempty" yaml:"contact,omitempty"`
	ContactRole     string `json:"contact_role,omitempty" yaml:"contact_role,omitempty"`
	ContactEmail    string `json:"contact_email,omitempty" yaml:"contact_email,omitempty"`
	ContactPhone    string `json:"contact_phone,omitempty" yaml:"contact_phone,omitempty"`
	Address         string `json:"physical_address,omitempty" yaml:"physical_address,omitempty"`
	City            string `json:"physical_city,omitempty" yaml:"physical_city,omitempty"`
	State           string `json:"physical_state,omitempty" yaml:"physical_state,omitempty"`
	Zip             string `json:"physical_zip,omitempty" yaml:"physical_zip,omitempty"`
	Country         string `json:"physical_country,omitempty" yaml:"physical_country,omitempty"`
	MailingAddress  string `json:"mailing_address,omitempty" yaml:"mailing_address,omitempty"`
	MailingCity     string `json:"mailing_city,omitempty" yaml:"mailing_city,omitempty"`
	MailingState    string `json:"mailing_state,omitempty" yaml:"mailing_state,omitempty"`
	MailingZip      string `json:"mailing_zip,omitempty" yaml:"mailing_zip,omitempty"`
	Lat             string `json:"lat,omitempty" yaml:"lat,omitempty"`
	Lon             string `json:"lon,omitempty" yaml:"lon,omitempty"`
	Updated         string `json:"update_date,omitempty" yaml:"update_date,omitempty"`
}

// Source reads an aggregator export: a list of records.
type Source struct {
	location string
	client   *transport.Client

	mu      sync.RWMutex
	records []Record
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

// FromRecords returns an already loaded source.
func FromRecords(records []Record) *Source {
	return &Source{records: records}
}

// ID implements sources.Source.
func (s *Source) ID() sources.ID {
	return sources.AggregatorID
}

// Fetch implements sources.Source. Sources built from in-memory data have
// nothing to fetch.
func (s *Source) Fetch(ctx context.Context) error {
	if s.location == "" {
		return nil
	}
	var records []Record
	if err := sources.Load(ctx, s.client, s.location, &records); err != nil {
		return err
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	logging.FromContext(ctx).Info().
		Str("source", s.ID().String()).
		Int("records", len(records)).
		Msg("Loaded aggregator export")
	return nil
}

// Records returns the records in export order.
func (s *Source) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}
