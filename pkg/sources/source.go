// Package sources defines the external directories whose records are synced
// into the registry. Sources are read only: records are loaded once per run
// and never mutated.
//
// Exports are read from local files or over HTTP and may be JSON or YAML.
//
// Example usage:
//
//	src := herbarium.New("ih-export.yaml")
//	if err := src.Fetch(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	for _, inst := range src.Institutions() {
//	    // ...
//	}
package sources

import (
	"context"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/registrysync/internal/transport"
	"github.com/agentstation/registrysync/pkg/errors"
)

// ID represents the identifier of a data source.
type ID string

// String returns the string representation of a source name.
func (id ID) String() string {
	return string(id)
}

// Known sources.
const (
	HerbariumID  ID = "ih"
	AggregatorID ID = "idigbio"
)

// IDs returns all available source IDs.
func IDs() []ID {
	return []ID{HerbariumID, AggregatorID}
}

// IsValid returns true if the ID is one of the defined constants.
func (id ID) IsValid() bool {
	return slices.Contains(IDs(), id)
}

// Source is an external directory.
type Source interface {
	// ID returns the identifier of this source
	ID() ID

	// Fetch loads the records of this source
	Fetch(ctx context.Context) error
}

// Sources is a thread-safe container for managing multiple data sources.
type Sources struct {
	mu      sync.RWMutex
	sources map[ID]Source
}

// NewSources creates a new Sources instance.
func NewSources() *Sources {
	return &Sources{
		sources: make(map[ID]Source),
	}
}

// Get returns a source by ID.
func (s *Sources) Get(id ID) (Source, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src, found := s.sources[id]
	return src, found
}

// Set sets a source by ID.
func (s *Sources) Set(src Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources[src.ID()] = src
}

// Len returns the number of sources.
func (s *Sources) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sources)
}

// FetchAll fetches every registered source, returning the joined errors.
func (s *Sources) FetchAll(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var errs []error
	for _, id := range IDs() {
		if src, ok := s.sources[id]; ok {
			if err := src.Fetch(ctx); err != nil {
				errs = append(errs, errors.NewSyncError(id.String(), nil, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Load reads location into v. Locations starting with http:// or https://
// are fetched with client; anything else is a file path. JSON is decoded as
// the YAML subset it is.
func Load(ctx context.Context, client *transport.Client, location string, v any) error {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		if client == nil {
			client = transport.New(nil, transport.WithService("source"))
		}
		data, err = client.Fetch(ctx, location)
		if err != nil {
			return err
		}
	} else {
		data, err = os.ReadFile(location)
		if err != nil {
			return errors.WrapIO("read", location, err)
		}
	}

	if err := yaml.UnmarshalContext(ctx, data, v); err != nil {
		return errors.WrapParse(format(location), location, err)
	}
	return nil
}

func format(location string) string {
	if strings.HasSuffix(strings.ToLower(location), ".json") {
		return "json"
	}
	return "yaml"
}
