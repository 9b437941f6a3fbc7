package people

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoMatch is returned when a selector matches none of the names.
var ErrNoMatch = errors.New("no matching person")

// Match is the outcome of resolving a selector.
type Match struct {
	Name       string   // chosen full name
	Candidates []string // every name that matched, in source order
}

// Ambiguous reports whether more than one name matched.
func (m Match) Ambiguous() bool {
	return len(m.Candidates) > 1
}

// Resolve finds the full name a selector refers to. An exact match wins;
// otherwise any name containing the selector (case-insensitive) matches and
// the first one in source order is chosen.
func Resolve(selector string, names []string) (Match, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return Match{}, fmt.Errorf("empty person selector: %w", ErrNoMatch)
	}

	for _, n := range names {
		if n == selector {
			return Match{Name: n, Candidates: []string{n}}, nil
		}
	}

	needle := strings.ToLower(selector)
	var found []string
	for _, n := range names {
		if strings.Contains(strings.ToLower(n), needle) {
			found = append(found, n)
		}
	}
	if len(found) == 0 {
		return Match{}, fmt.Errorf("%q: %w", selector, ErrNoMatch)
	}
	return Match{Name: found[0], Candidates: found}, nil
}

// Resolver maps tracker logins to HR full names.
type Resolver struct {
	Names       []string          // HR full names in source order
	Selectors   map[string]string // login -> selector; logins without one are used as-is
	OnAmbiguous func(login string, m Match)
}

// Resolve maps one login.
func (r Resolver) Resolve(login string) (string, error) {
	selector := login
	if s, ok := r.Selectors[login]; ok && s != "" {
		selector = s
	}
	m, err := Resolve(selector, r.Names)
	if err != nil {
		return "", fmt.Errorf("tracker login %q: %w", login, err)
	}
	if m.Ambiguous() && r.OnAmbiguous != nil {
		r.OnAmbiguous(login, m)
	}
	return m.Name, nil
}
