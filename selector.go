package matchspec

import (
	"strings"

	"github.com/condakit/matchspec/version"
)

// Selector is a comparison operator paired with a version or build
// literal.
type Selector string

const (
	SelEqual        Selector = "=="
	SelNotEqual     Selector = "!="
	SelGreater      Selector = ">"
	SelGreaterEqual Selector = ">="
	SelLess         Selector = "<"
	SelLessEqual    Selector = "<="
	SelCompatible   Selector = "~="
	SelExact        Selector = "==="
)

// selectorFromToken maps an operator spelling to its selector. "=" and
// "==" are synonyms.
func selectorFromToken(tok string) (Selector, bool) {
	switch tok {
	case "=", "==":
		return SelEqual, true
	case "!=":
		return SelNotEqual, true
	case ">":
		return SelGreater, true
	case ">=":
		return SelGreaterEqual, true
	case "<":
		return SelLess, true
	case "<=":
		return SelLessEqual, true
	case "~=":
		return SelCompatible, true
	case "===":
		return SelExact, true
	}
	return "", false
}

// Constraint is a single selector applied to one version literal.
type Constraint struct {
	Selector Selector `json:"selector"`
	Version  string   `json:"version"`
}

func (c Constraint) String() string { return string(c.Selector) + c.Version }

// Match reports whether the actual version satisfies the constraint.
func (c Constraint) Match(actual string) bool {
	switch c.Selector {
	case SelExact:
		return actual == c.Version
	case SelEqual:
		return matchEqual(actual, c.Version)
	case SelNotEqual:
		return !matchEqual(actual, c.Version)
	case SelCompatible:
		return matchCompatible(actual, c.Version)
	}

	// Ordering selectors ignore a trailing wildcard: ">=1.10.*" behaves
	// as ">=1.10".
	cmp := version.Compare(actual, trimWildcard(c.Version))
	switch c.Selector {
	case SelGreater:
		return cmp > 0
	case SelGreaterEqual:
		return cmp >= 0
	case SelLess:
		return cmp < 0
	case SelLessEqual:
		return cmp <= 0
	}
	return false
}

// matchEqual handles equality including wildcard literals. A trailing
// "*" matches by segment prefix; a wildcard elsewhere falls back to
// glob matching on the raw version string.
func matchEqual(actual, lit string) bool {
	if !strings.ContainsAny(lit, "*?") {
		return version.Compare(actual, lit) == 0
	}
	if strings.HasSuffix(lit, "*") && !strings.ContainsAny(lit[:len(lit)-1], "*?") {
		prefix := trimWildcard(lit)
		if prefix == "" {
			return true
		}
		return version.Parse(actual).HasPrefix(version.Parse(prefix))
	}
	return globMatch(lit, actual)
}

// matchCompatible implements "~=": at least the literal, and within the
// same release family (the literal minus its last segment).
func matchCompatible(actual, lit string) bool {
	va, vl := version.Parse(actual), version.Parse(lit)
	if va.Compare(vl) < 0 {
		return false
	}
	n := vl.NumSegments() - 1
	if n < 1 {
		return true
	}
	return va.HasPrefix(vl.Truncate(n))
}

func trimWildcard(lit string) string {
	if !strings.HasSuffix(lit, "*") {
		return lit
	}
	lit = strings.TrimRight(lit, "*")
	return strings.TrimRight(lit, "._-")
}

// CompoundSelector is one or more constraints over a version. The
// default combination is AND (comma-separated clauses); Any flips it to
// OR (bar-separated clauses). A parsed CompoundSelector always holds at
// least one constraint.
type CompoundSelector struct {
	Any         bool         `json:"any,omitempty"`
	Constraints []Constraint `json:"constraints"`
}

// Match reports whether ver satisfies the compound, stopping at the
// first decisive leaf. A nil or empty compound matches everything.
func (cs *CompoundSelector) Match(ver string) bool {
	if cs == nil || len(cs.Constraints) == 0 {
		return true
	}
	if cs.Any {
		for _, c := range cs.Constraints {
			if c.Match(ver) {
				return true
			}
		}
		return false
	}
	for _, c := range cs.Constraints {
		if !c.Match(ver) {
			return false
		}
	}
	return true
}

func (cs *CompoundSelector) String() string {
	if cs == nil {
		return ""
	}
	sep := ","
	if cs.Any {
		sep = "|"
	}
	parts := make([]string, len(cs.Constraints))
	for i, c := range cs.Constraints {
		parts[i] = c.String()
	}
	return strings.Join(parts, sep)
}

func (cs *CompoundSelector) equal(o *CompoundSelector) bool {
	if cs == nil || o == nil {
		return cs == o
	}
	if cs.Any != o.Any || len(cs.Constraints) != len(o.Constraints) {
		return false
	}
	for i := range cs.Constraints {
		if cs.Constraints[i] != o.Constraints[i] {
			return false
		}
	}
	return true
}
