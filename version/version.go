// Package version provides conda-style version parsing and ordering.
//
// Version strings are decomposed into dot/dash/underscore separated
// segments, with alphanumeric segments further split at digit/letter
// boundaries ("10rc1" becomes 10, "rc", 1). The resulting components
// form a strict total order: recognized pre-release qualifiers sort
// below the bare release, post-release qualifiers above it, numbers
// above unrecognized words, and missing trailing segments count as
// zero, so "1.0" equals "1.0.0".
//
// Parsing is deliberately permissive: any string decomposes into
// something comparable, because real-world version strings are
// inconsistent.
package version

import "strings"

// QualifierRanks assigns recognized release qualifiers their position
// relative to the bare release: negative ranks sort before it, positive
// ranks after. The table is plain data so the recognized token set can
// be adjusted to the reference ecosystem without touching comparison
// logic. Qualifiers with equal rank (such as "a" and "alpha") compare
// equal.
var QualifierRanks = map[string]int{
	"dev":   -4,
	"a":     -3,
	"alpha": -3,
	"b":     -2,
	"beta":  -2,
	"c":     -1,
	"rc":    -1,
	"post":  1,
}

// Component order classes, lowest first. A recognized pre-release
// qualifier sorts below everything else at its position, a post-release
// qualifier above everything, and a number above an unrecognized word.
type kind int

const (
	kindQualifier kind = iota // recognized qualifier with rank < 0
	kindAlpha                 // unrecognized alphabetic run
	kindNumeric               // digit run, including implicit zero padding
	kindPost                  // recognized qualifier with rank > 0
)

// component is one digit or letter run within a segment. Numerics keep
// their digits as a normalized string (leading zeros stripped) so that
// arbitrarily long numbers compare without overflow.
type component struct {
	kind kind
	rank int
	str  string
}

var zeroComponent = component{kind: kindNumeric, str: "0"}

type segment []component

// Version is the comparable decomposition of a version string.
// It is immutable after Parse and safe for concurrent use.
type Version struct {
	raw      string
	epoch    string // normalized digits, "0" when absent
	segments []segment
	local    []segment // segments after "+", empty when absent
}

// Parse decomposes a version string. It never fails: any input yields a
// comparable Version.
func Parse(s string) Version {
	v := Version{raw: s, epoch: "0"}
	s = strings.ToLower(strings.TrimSpace(s))

	if i := strings.IndexByte(s, '!'); i > 0 && isDigits(s[:i]) {
		v.epoch = normalizeDigits(s[:i])
		s = s[i+1:]
	}
	if i := strings.IndexByte(s, '+'); i >= 0 {
		v.local = splitSegments(s[i+1:])
		s = s[:i]
	}
	v.segments = splitSegments(s)
	if len(v.segments) == 0 {
		v.segments = []segment{{zeroComponent}}
	}
	return v
}

// String returns the original input string unmodified.
func (v Version) String() string { return v.raw }

// Compare returns a negative value if v orders before o, zero if they
// are equal, and a positive value otherwise. The order is total:
// exactly one of the three outcomes holds for any pair.
func (v Version) Compare(o Version) int {
	if c := cmpDigits(v.epoch, o.epoch); c != 0 {
		return c
	}
	if c := cmpSegments(v.segments, o.segments); c != 0 {
		return c
	}
	// A local suffix sorts above the same version without one.
	switch {
	case len(v.local) == 0 && len(o.local) == 0:
		return 0
	case len(v.local) == 0:
		return -1
	case len(o.local) == 0:
		return 1
	}
	return cmpSegments(v.local, o.local)
}

// Equal reports whether v and o occupy the same position in the order.
func (v Version) Equal(o Version) bool { return v.Compare(o) == 0 }

// NumSegments returns the number of release segments.
func (v Version) NumSegments() int { return len(v.segments) }

// Truncate returns a version keeping only the leading n release
// segments, dropping any local suffix. Used for prefix and
// compatible-release matching.
func (v Version) Truncate(n int) Version {
	if n >= len(v.segments) {
		n = len(v.segments)
	}
	return Version{raw: v.raw, epoch: v.epoch, segments: v.segments[:n]}
}

// HasPrefix reports whether the leading segments of v equal p. Shorter
// versions are padded with zeros, so "1.10" has prefix "1.10.0".
func (v Version) HasPrefix(p Version) bool {
	if cmpDigits(v.epoch, p.epoch) != 0 {
		return false
	}
	segs := v.segments
	if len(segs) > len(p.segments) {
		segs = segs[:len(p.segments)]
	}
	return cmpSegments(segs, p.segments) == 0
}

// Compare parses both strings and compares them. The result is negative
// when a orders before b, zero when equal, positive otherwise.
func Compare(a, b string) int {
	return Parse(a).Compare(Parse(b))
}

// splitSegments splits on every non-alphanumeric byte and decomposes
// each chunk into digit/letter components. Empty chunks are skipped.
func splitSegments(s string) []segment {
	var segs []segment
	start := 0
	for start <= len(s) {
		end := start
		for end < len(s) && isAlnum(s[end]) {
			end++
		}
		if end > start {
			segs = append(segs, splitComponents(s[start:end]))
		}
		start = end + 1
	}
	return segs
}

func splitComponents(chunk string) segment {
	var seg segment
	start := 0
	for start < len(chunk) {
		end := start + 1
		num := isDigit(chunk[start])
		for end < len(chunk) && isDigit(chunk[end]) == num {
			end++
		}
		seg = append(seg, makeComponent(chunk[start:end], num))
		start = end
	}
	return seg
}

func makeComponent(run string, numeric bool) component {
	if numeric {
		return component{kind: kindNumeric, str: normalizeDigits(run)}
	}
	if rank, ok := QualifierRanks[run]; ok {
		k := kindQualifier
		if rank > 0 {
			k = kindPost
		}
		return component{kind: k, rank: rank, str: run}
	}
	return component{kind: kindAlpha, str: run}
}

func cmpSegments(a, b []segment) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := segmentAt(a, i).cmp(segmentAt(b, i)); c != 0 {
			return c
		}
	}
	return 0
}

func segmentAt(segs []segment, i int) segment {
	if i < len(segs) {
		return segs[i]
	}
	return segment{zeroComponent}
}

func (s segment) cmp(o segment) int {
	n := len(s)
	if len(o) > n {
		n = len(o)
	}
	for i := 0; i < n; i++ {
		if c := componentAt(s, i).cmp(componentAt(o, i)); c != 0 {
			return c
		}
	}
	return 0
}

func componentAt(s segment, i int) component {
	if i < len(s) {
		return s[i]
	}
	return zeroComponent
}

func (c component) cmp(o component) int {
	if c.kind != o.kind {
		return int(c.kind) - int(o.kind)
	}
	switch c.kind {
	case kindQualifier, kindPost:
		return c.rank - o.rank
	case kindNumeric:
		return cmpDigits(c.str, o.str)
	default:
		return strings.Compare(c.str, o.str)
	}
}

// cmpDigits compares two normalized digit strings numerically: by
// length first, then byte-wise.
func cmpDigits(a, b string) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return strings.Compare(a, b)
}

func normalizeDigits(s string) string {
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return "0"
	}
	return s
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlnum(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
