// Package staff reconciles the staff listed by a source against the contacts
// an entity already has in the registry.
package staff

import (
	"github.com/agentstation/registrysync/pkg/country"
	"github.com/agentstation/registrysync/pkg/normalize"
	"github.com/agentstation/registrysync/pkg/registry"
)

// View is the comparison-ready projection of a person. It has no identity and
// is recomputed for every comparison.
type View struct {
	FullName              string
	FirstName             string
	LastName              string
	Emails                []string
	Phones                []string
	Fax                   string
	Position              string
	Address               string
	City                  string
	Province              string
	PostalCode            string
	Country               country.Code
	PrimaryInstitutionKey string
	PrimaryCollectionKey  string
}

// NewView builds the view of p.
func NewView(p registry.Person) View {
	v := View{
		FullName:              normalize.String(p.FullName()),
		FirstName:             normalize.String(p.FirstName),
		LastName:              normalize.String(p.LastName),
		Emails:                normalizeAll(p.Email),
		Phones:                normalizeAll(p.Phone),
		Fax:                   normalize.String(p.Fax),
		Position:              normalize.String(p.Position),
		PrimaryInstitutionKey: p.PrimaryInstitutionKey,
		PrimaryCollectionKey:  p.PrimaryCollectionKey,
	}
	if a := p.MailingAddress; a != nil {
		v.Address = normalize.String(a.Address)
		v.City = normalize.String(a.City)
		v.Province = normalize.String(a.Province)
		v.PostalCode = normalize.String(a.PostalCode)
		v.Country = a.Country
	}
	return v
}

func normalizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if n := normalize.String(v); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Rule is a staff matching heuristic.
type Rule int

// Rules in order of preference.
const (
	RuleNone Rule = iota
	RuleNameAndEmail
	RuleName
	RulePartialNameAndField
)

// String returns the rule name.
func (r Rule) String() string {
	switch r {
	case RuleNameAndEmail:
		return "name and email"
	case RuleName:
		return "name"
	case RulePartialNameAndField:
		return "partial name and phone, fax or position"
	}
	return "none"
}

var rules = []Rule{RuleNameAndEmail, RuleName, RulePartialNameAndField}

// Matches reports whether a and b match under r.
func (r Rule) Matches(a, b View) bool {
	switch r {
	case RuleNameAndEmail:
		return a.FullName != "" && a.FullName == b.FullName && normalize.CompareLists(a.Emails, b.Emails)
	case RuleName:
		return a.FullName != "" && a.FullName == b.FullName
	case RulePartialNameAndField:
		if !normalize.CompareFullNamePartially(a.FullName, b.FullName) {
			return false
		}
		return normalize.CompareLists(a.Phones, b.Phones) ||
			(a.Fax != "" && a.Fax == b.Fax) ||
			(a.Position != "" && a.Position == b.Position)
	}
	return false
}

// SameIdentity reports whether two source views describe the same person:
// equal full names and no contradicting emails.
func SameIdentity(a, b View) bool {
	if a.FullName == "" || a.FullName != b.FullName {
		return false
	}
	if len(a.Emails) == 0 || len(b.Emails) == 0 {
		return true
	}
	return normalize.CompareLists(a.Emails, b.Emails)
}
