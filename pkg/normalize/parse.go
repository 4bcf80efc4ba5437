package normalize

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/registrysync/pkg/errors"
	"github.com/agentstation/registrysync/pkg/logging"
)

// dateLayouts are tried in order; the first one that parses wins.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2/1/2006",
	"January 2006",
	"2 January 2006",
	"2006",
}

// spanishMonths maps the second supported locale onto English month names so
// the "month year" layouts can parse them.
var spanishMonths = strings.NewReplacer(
	"enero", "January",
	"febrero", "February",
	"marzo", "March",
	"abril", "April",
	"mayo", "May",
	"junio", "June",
	"julio", "July",
	"agosto", "August",
	"septiembre", "September",
	"setiembre", "September",
	"octubre", "October",
	"noviembre", "November",
	"diciembre", "December",
)

// ParseDate parses a free-text source date. A trailing "." is ignored.
// Unparseable input is logged and reported as absent, never as an error.
func ParseDate(s string) (time.Time, bool) {
	value := strings.TrimSuffix(strings.TrimSpace(s), ".")
	if value == "" {
		return time.Time{}, false
	}

	candidates := []string{value}
	if translated := spanishMonths.Replace(strings.ToLower(value)); translated != strings.ToLower(value) {
		candidates = append(candidates, translated)
	}

	for _, layout := range dateLayouts {
		for _, candidate := range candidates {
			if t, err := time.Parse(layout, candidate); err == nil {
				return t, true
			}
		}
	}

	logging.Warn().Err(errors.NewParseError("date", "", "no known layout matches "+strconv.Quote(s), nil)).Msg("Could not parse date")
	return time.Time{}, false
}

var schemePrefix = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// ParseURL cleans up a free-text source URL: whitespace is removed, the common
// "http//:" typo is fixed and "http://" is prefixed when no scheme is present.
// Values that still do not form an absolute URL with a dotted host are absent.
func ParseURL(s string) (string, bool) {
	value := strings.Join(strings.Fields(s), "")
	if value == "" {
		return "", false
	}

	value = strings.Replace(value, "http//:", "http://", 1)
	if !schemePrefix.MatchString(value) {
		value = "http://" + value
	}

	parsed, err := url.ParseRequestURI(value)
	if err != nil || parsed.Host == "" || !strings.Contains(parsed.Host, ".") {
		logging.Debug().Str("url", s).Msg("Could not parse url")
		return "", false
	}
	return value, true
}
