package country

import (
	"maps"
	"os"
	"strings"
	"unicode"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/registrysync/pkg/errors"
	"github.com/agentstation/registrysync/pkg/normalize"
)

// minSubstringLength guards the substring rules against very short inputs
// such as "a" or "us" matching many names.
const minSubstringLength = 4

// Config is the immutable resolver configuration. It is built once at process
// start and passed to NewResolver.
type Config struct {
	aliases map[string]Code
}

// DefaultConfig returns a configuration with the built-in alias table.
func DefaultConfig() Config {
	return Config{aliases: maps.Clone(defaultAliases)}
}

// WithAliases returns a copy of the configuration with extra aliases merged in.
// Extra aliases win over built-in ones.
func (c Config) WithAliases(extra map[string]Code) Config {
	merged := maps.Clone(c.aliases)
	if merged == nil {
		merged = make(map[string]Code, len(extra))
	}
	for k, v := range extra {
		merged[key(k)] = v
	}
	return Config{aliases: merged}
}

// LoadAliases reads a YAML mapping of free-text country names to ISO codes.
func LoadAliases(path string) (map[string]Code, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	aliases := make(map[string]Code, len(raw))
	for name, iso := range raw {
		code, ok := FromISO(iso)
		if !ok {
			return nil, errors.NewValidationError("aliases."+name, iso, "unknown ISO country code")
		}
		aliases[name] = code
	}
	return aliases, nil
}

// Resolver resolves free-text country strings. It is safe for concurrent use.
type Resolver struct {
	aliases map[string]Code
	names   map[string]Code
	isos    map[string]Code
	symbols map[string]Code
	folded  []foldedName
}

type foldedName struct {
	name string
	code Code
}

// NewResolver builds the lookup tables for cfg.
func NewResolver(cfg Config) *Resolver {
	r := &Resolver{
		aliases: make(map[string]Code, len(cfg.aliases)),
		names:   make(map[string]Code, len(entries)),
		isos:    make(map[string]Code, len(entries)),
		symbols: make(map[string]Code, len(entries)),
		folded:  make([]foldedName, 0, len(entries)),
	}

	for k, v := range cfg.aliases {
		r.aliases[key(k)] = v
	}
	for _, e := range entries {
		name := key(e.name)
		r.names[name] = e.code
		r.isos[strings.ToLower(string(e.code))] = e.code
		r.symbols[key(strings.ReplaceAll(e.symbol, "_", " "))] = e.code
		r.folded = append(r.folded, foldedName{name: name, code: e.code})
	}
	return r
}

// Resolve maps s to a country. Unresolvable input reports false; it is never an error.
func (r *Resolver) Resolve(s string) (Code, bool) {
	k := key(s)
	if k == "" {
		return Unknown, false
	}

	// the alias table overrides every other rule
	if code, ok := r.aliases[k]; ok {
		return code, true
	}
	if code, ok := r.names[k]; ok {
		return code, true
	}
	if code, ok := r.isos[k]; ok {
		return code, true
	}
	if code, ok := r.isos[stripPunctuation(k)]; ok {
		return code, true
	}
	if before, _, found := strings.Cut(k, ","); found {
		if code, ok := r.names[strings.TrimSpace(before)]; ok {
			return code, true
		}
	}
	if len(k) >= minSubstringLength {
		if code, ok := r.nameContainedIn(k); ok {
			return code, true
		}
		for _, n := range r.folded {
			if strings.Contains(n.name, k) {
				return n.code, true
			}
		}
	}
	if code, ok := r.symbols[k]; ok {
		return code, true
	}
	return Unknown, false
}

// nameContainedIn returns the longest canonical name contained in k.
func (r *Resolver) nameContainedIn(k string) (Code, bool) {
	best := foldedName{}
	for _, n := range r.folded {
		if len(n.name) > len(best.name) && strings.Contains(k, n.name) {
			best = n
		}
	}
	return best.code, best.code != Unknown
}

func key(s string) string {
	return normalize.String(normalize.FoldAccents(s))
}

func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
