// Package rights resolves free-text rights cells against the registry of
// recognized licensing tags.
package rights

import (
	"sort"
	"strings"
)

// Registry is the immutable set of recognized right names.
type Registry struct {
	names map[string]struct{}
}

// NewRegistry builds a registry from names. Surrounding whitespace is trimmed
// and blank names are ignored.
func NewRegistry(names ...string) Registry {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			set[name] = struct{}{}
		}
	}
	return Registry{names: set}
}

// Contains reports whether name is a recognized right.
func (r Registry) Contains(name string) bool {
	_, ok := r.names[name]
	return ok
}

// Len reports the number of recognized rights.
func (r Registry) Len() int {
	return len(r.names)
}

// Names returns the recognized rights in lexical order.
func (r Registry) Names() []string {
	out := make([]string, 0, len(r.names))
	for name := range r.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Resolve parses a raw rights cell. When raw contains a comma it is split on
// commas only; otherwise it is split on line breaks. Tokens are trimmed, blanks
// dropped, and the survivors filtered to registry members in input order.
// ok is false when nothing known remains.
func Resolve(raw string, registry Registry) (resolved []string, ok bool) {
	for _, token := range Tokens(raw) {
		if registry.Contains(token) {
			resolved = append(resolved, token)
		}
	}
	return resolved, len(resolved) > 0
}

// Tokens splits raw using the comma-or-line-break rule without consulting a registry.
func Tokens(raw string) []string {
	var parts []string
	if strings.Contains(raw, ",") {
		parts = strings.Split(raw, ",")
	} else {
		parts = splitLines(raw)
	}

	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

func splitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	return strings.Split(raw, "\n")
}
