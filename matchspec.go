// Package matchspec parses conda-style package constraint expressions
// ("matchspecs") and evaluates whether concrete package candidates
// satisfy them.
//
// A matchspec combines an optional channel/subdir prefix, a mandatory
// package name (which may contain glob wildcards), and optional version
// and build selectors:
//
//	main/linux-64::pytorch>1.10.2
//	python>=3.8,<3.12
//	tensorflow 2.9.1 mkl_py39hb9fcb14_0
//	numpy=1.11=py36_0[subdir=linux-64]
//
// Parse once, match many times: a MatchSpec is immutable after Parse
// and safe for unsynchronized concurrent use.
package matchspec

import (
	"strconv"
	"strings"
)

// MatchSpec is a parsed package constraint. Package is always set;
// every other field defaults to "unconstrained, always matches".
type MatchSpec struct {
	Channel     string            `json:"channel,omitempty"`
	Subdir      string            `json:"subdir,omitempty"`
	Namespace   string            `json:"namespace,omitempty"`
	Package     string            `json:"package"`
	Version     *CompoundSelector `json:"version,omitempty"`
	Build       string            `json:"build,omitempty"`
	BuildNumber *CompoundSelector `json:"build_number,omitempty"`
	// KeyValues retains every bracketed key=value constraint verbatim,
	// including keys matching treats as opaque. Unknown keys are kept
	// for forward compatibility but never affect the match outcome.
	KeyValues []KeyValue `json:"key_values,omitempty"`
}

// KeyValue is one bracketed key=value constraint.
type KeyValue struct {
	Key      string   `json:"key"`
	Selector Selector `json:"selector"`
	Value    string   `json:"value"`
}

// MatchesPackageName matches a candidate package name against the
// spec's package field. Names containing glob wildcards match by glob;
// anything else requires exact equality. Candidate names are restricted
// to alphanumerics, '-', '_', and '.'.
func (m *MatchSpec) MatchesPackageName(name string) bool {
	if !validPackageName(name) {
		return false
	}
	if strings.ContainsAny(m.Package, "*?") {
		return globMatch(m.Package, name)
	}
	return m.Package == name
}

// MatchesNameVersion is the resolver fast path: it checks only the
// package name and the version selector, skipping channel, subdir,
// build, and build-number constraints. It is strictly less strict than
// Matches — it can accept a candidate the full predicate would reject
// on those grounds.
func (m *MatchSpec) MatchesNameVersion(name, ver string) bool {
	return m.MatchesPackageName(name) && m.Version.Match(ver)
}

// Matches applies the full predicate against a candidate. Constraints
// are checked cheapest and most discriminating first, short-circuiting
// on the first failure; unset spec fields are vacuously satisfied.
func (m *MatchSpec) Matches(c *PackageCandidate) bool {
	if !m.MatchesPackageName(c.Name) {
		return false
	}
	if m.Channel != "" && m.Channel != c.Channel {
		return false
	}
	if m.Subdir != "" && m.Subdir != c.Subdir {
		return false
	}
	if m.Version != nil {
		if c.Version == "" || !m.Version.Match(c.Version) {
			return false
		}
	}
	if m.Build != "" && !globMatch(m.Build, c.Build) {
		return false
	}
	// A candidate without a build number vacuously satisfies a
	// build-number constraint.
	if m.BuildNumber != nil && c.BuildNumber != nil {
		if !m.BuildNumber.Match(strconv.FormatUint(*c.BuildNumber, 10)) {
			return false
		}
	}
	return true
}

// Equal reports structural equality. Like matching, it ignores the raw
// KeyValues list: two specs that constrain identically are equal even
// if they carry different unknown bracket keys.
func (m *MatchSpec) Equal(o *MatchSpec) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.Channel == o.Channel &&
		m.Subdir == o.Subdir &&
		m.Namespace == o.Namespace &&
		m.Package == o.Package &&
		m.Version.equal(o.Version) &&
		m.Build == o.Build &&
		m.BuildNumber.equal(o.BuildNumber)
}

// String renders a canonical form of the spec. Parsing the result
// yields a spec Equal to the original.
func (m *MatchSpec) String() string {
	var b strings.Builder
	switch {
	case m.Channel != "":
		b.WriteString(m.Channel)
		if m.Subdir != "" {
			b.WriteByte('/')
			b.WriteString(m.Subdir)
		}
		b.WriteByte(':')
		b.WriteString(m.Namespace)
		b.WriteByte(':')
	case m.Namespace != "":
		b.WriteByte(':')
		b.WriteString(m.Namespace)
		b.WriteByte(':')
	}
	b.WriteString(m.Package)
	if m.Version != nil {
		b.WriteString(m.Version.String())
	}

	var keys []string
	if m.Build != "" {
		keys = append(keys, "build="+m.Build)
	}
	if m.BuildNumber != nil {
		for _, c := range m.BuildNumber.Constraints {
			keys = append(keys, "build_number"+c.String())
		}
	}
	if m.Channel == "" && m.Subdir != "" {
		keys = append(keys, "subdir="+m.Subdir)
	}
	if len(keys) > 0 {
		b.WriteByte('[')
		b.WriteString(strings.Join(keys, ","))
		b.WriteByte(']')
	}
	return b.String()
}

// Filter returns the candidates matching spec, preserving input order.
// Each candidate is evaluated independently, so callers may shard the
// input and filter concurrently if they prefer.
func Filter(spec *MatchSpec, candidates []PackageCandidate) []PackageCandidate {
	var out []PackageCandidate
	for i := range candidates {
		if spec.Matches(&candidates[i]) {
			out = append(out, candidates[i])
		}
	}
	return out
}

func validPackageName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}
