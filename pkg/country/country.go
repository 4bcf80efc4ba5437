// Package country maps free-text country strings found in source records to a
// closed country enumeration.
package country

import (
	"strings"
)

// Code is an ISO 3166-1 alpha-2 country code.
type Code string

// Unknown is the absent country.
const Unknown Code = ""

// Well known codes referenced by the default alias table and tests.
const (
	UnitedKingdom Code = "GB"
	UnitedStates  Code = "US"
	Germany       Code = "DE"
	Spain         Code = "ES"
	Netherlands   Code = "NL"
)

type entry struct {
	code   Code
	symbol string
	name   string
}

var byCode = func() map[Code]entry {
	m := make(map[Code]entry, len(entries))
	for _, e := range entries {
		m[e.code] = e
	}
	return m
}()

// String returns the ISO code.
func (c Code) String() string {
	return string(c)
}

// Valid reports whether c belongs to the enumeration.
func (c Code) Valid() bool {
	_, ok := byCode[c]
	return ok
}

// Name returns the display name, or "" for unknown codes.
func (c Code) Name() string {
	return byCode[c].name
}

// Symbol returns the symbolic identifier, e.g. UNITED_KINGDOM.
func (c Code) Symbol() string {
	return byCode[c].symbol
}

// All returns every code of the enumeration in ISO order.
func All() []Code {
	codes := make([]Code, 0, len(entries))
	for _, e := range entries {
		codes = append(codes, e.code)
	}
	return codes
}

// FromISO returns the code for an ISO alpha-2 string, ignoring case.
func FromISO(iso string) (Code, bool) {
	c := Code(strings.ToUpper(strings.TrimSpace(iso)))
	if !c.Valid() {
		return Unknown, false
	}
	return c, true
}
