// Package convert turns source records into registry entities and merges
// them into the entities they matched.
package convert

import (
	"strconv"
	"strings"

	"github.com/agentstation/registrysync/internal/utils/ptr"
	"github.com/agentstation/registrysync/pkg/country"
	"github.com/agentstation/registrysync/pkg/logging"
	"github.com/agentstation/registrysync/pkg/normalize"
	"github.com/agentstation/registrysync/pkg/registry"
)

// Converter converts source records. It is safe for concurrent use.
type Converter struct {
	countries *country.Resolver
}

// New returns a converter resolving countries with r.
func New(r *country.Resolver) *Converter {
	if r == nil {
		r = country.NewResolver(country.DefaultConfig())
	}
	return &Converter{countries: r}
}

// resolveCountry leaves unknown countries absent so matching on the other
// fields is not blocked.
func (c *Converter) resolveCountry(s string) country.Code {
	if strings.TrimSpace(s) == "" {
		return country.Unknown
	}
	code, ok := c.countries.Resolve(s)
	if !ok {
		logging.Debug().Str("country", s).Msg("Could not resolve country")
	}
	return code
}

func (c *Converter) address(street, city, province, postal, countryName string) *registry.Address {
	a := &registry.Address{
		Address:    strings.TrimSpace(street),
		City:       strings.TrimSpace(city),
		Province:   strings.TrimSpace(province),
		PostalCode: strings.TrimSpace(postal),
		Country:    c.resolveCountry(countryName),
	}
	if *a == (registry.Address{}) {
		return nil
	}
	return a
}

func emails(s string) []string {
	var out []string
	for _, e := range normalize.StringList(s) {
		if normalize.IsValidEmail(e) {
			out = append(out, e)
		}
	}
	return normalize.Dedup(out)
}

func phones(s string) []string {
	var out []string
	for _, p := range normalize.StringList(s) {
		if normalize.IsValidPhone(p) {
			out = append(out, p)
		}
	}
	return normalize.Dedup(out)
}

func fax(s string) string {
	for _, f := range normalize.StringList(s) {
		if normalize.IsValidFax(f) {
			return f
		}
	}
	return ""
}

func homepage(s string) string {
	u, _ := normalize.ParseURL(s)
	return u
}

func year(s string) int {
	t, ok := normalize.ParseDate(s)
	if !ok {
		return 0
	}
	return t.Year()
}

func coordinate(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		logging.Warn().Str("coordinate", s).Msg("Could not parse coordinate")
		return nil
	}
	return ptr.To(f)
}

func nonZero(f float64) *float64 {
	if f == 0 {
		return nil
	}
	return ptr.To(f)
}

// splitName splits a full name on its last space into first and last name.
func splitName(full string) (first, last string) {
	full = strings.Join(strings.Fields(full), " ")
	i := strings.LastIndex(full, " ")
	if i < 0 {
		return "", full
	}
	return full[:i], full[i+1:]
}
