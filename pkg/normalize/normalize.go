// Package normalize provides the string and list normalization primitives and
// the fuzzy comparison predicates used to match source records against
// registry entities. Every function is pure and safe for concurrent use.
package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// minNameTokenLength is the shortest name token considered by CompareFullNamePartially.
const minNameTokenLength = 5

// minContactFieldLength is the shortest email, phone or fax value considered valid.
const minContactFieldLength = 5

// String lowercases s, collapses internal whitespace to single spaces and trims it.
// The empty string means the value is absent. String is idempotent.
func String(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// StringList splits s on commas, semicolons and newlines, drops empty and "null"
// tokens and normalizes the rest. Order and duplicates are preserved.
func StringList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	replacer := strings.NewReplacer("\n", ",", "\r", ",", ";", ",")
	var out []string
	for _, token := range strings.Split(replacer.Replace(s), ",") {
		value := String(token)
		if value == "" || value == "null" {
			continue
		}
		out = append(out, value)
	}
	return out
}

// CompareLists reports whether any element of l1 equals any element of l2.
// It is false when either list is empty.
func CompareLists(l1, l2 []string) bool {
	if len(l1) == 0 || len(l2) == 0 {
		return false
	}

	seen := make(map[string]struct{}, len(l1))
	for _, v := range l1 {
		seen[v] = struct{}{}
	}
	for _, v := range l2 {
		if _, ok := seen[v]; ok {
			return true
		}
	}
	return false
}

// ComparePartially reports whether one normalized value is a prefix or suffix
// of the other. Empty values never match.
func ComparePartially(a, b string) bool {
	a, b = String(a), String(b)
	if a == "" || b == "" {
		return false
	}
	return strings.HasPrefix(a, b) || strings.HasSuffix(a, b) ||
		strings.HasPrefix(b, a) || strings.HasSuffix(b, a)
}

// CompareFullNamePartially reports whether the two names share a whitespace
// separated token of at least five characters. Short tokens such as initials
// and particles are ignored.
func CompareFullNamePartially(a, b string) bool {
	tokensA := longTokens(a)
	if len(tokensA) == 0 {
		return false
	}
	for token := range longTokens(b) {
		if _, ok := tokensA[token]; ok {
			return true
		}
	}
	return false
}

func longTokens(name string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, token := range strings.Fields(String(name)) {
		if utf8.RuneCountInString(token) >= minNameTokenLength {
			tokens[token] = struct{}{}
		}
	}
	return tokens
}

// IsValidEmail performs the minimal sanity check applied to source emails.
func IsValidEmail(email string) bool {
	return len(email) >= minContactFieldLength && strings.Contains(email, "@")
}

// IsValidPhone performs the minimal sanity check applied to source phone numbers.
func IsValidPhone(phone string) bool {
	return len(phone) >= minContactFieldLength && strings.ContainsFunc(phone, unicode.IsDigit)
}

// IsValidFax applies the same check as IsValidPhone.
func IsValidFax(fax string) bool {
	return IsValidPhone(fax)
}

// FoldAccents removes diacritical marks, e.g. "Perú" becomes "Peru".
func FoldAccents(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FirstNonEmpty returns the first value that is not blank.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Dedup returns values without duplicates, keeping the first occurrence.
func Dedup(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
