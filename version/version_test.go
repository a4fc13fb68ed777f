package version

import (
	"fmt"
	"testing"
)

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int // -1, 0, 1
	}{
		// Numeric segment comparison
		{"1.0", "1.1", -1},
		{"3.6", "3.10", -1},
		{"10.0", "9.0", 1},
		{"2.9.1", "2.9.1", 0},
		{"19.16.27032.1", "19.16.27032.1", 0},
		{"01.1", "1.1", 0},
		{"1.0", "2", -1},

		// Missing trailing segments are implicit zeros
		{"1.0", "1.0.0", 0},
		{"1.0", "1.0.0.0.0", 0},
		{"1", "1.0", 0},
		{"1.0.1", "1.0", 1},

		// Separators are interchangeable
		{"1.21_5", "1.21.5", 0},
		{"1-2-3", "1.2.3", 0},

		// Pre-release qualifiers sort below the bare release
		{"1.0a1", "1.0", -1},
		{"1.0rc1", "1.0", -1},
		{"1.0dev1", "1.0a1", -1},
		{"1.0a1", "1.0b1", -1},
		{"1.0b1", "1.0rc1", -1},
		{"1.0alpha1", "1.0a1", 0},
		{"1.0beta2", "1.0b2", 0},
		{"1.0c1", "1.0rc1", 0},
		{"1.0rc1", "1.0rc2", -1},
		{"1.0rc", "1.0rc1", -1},

		// Post-release qualifiers sort above everything at their position
		{"1.0", "1.0.post1", -1},
		{"1.0", "1.0post1", -1},
		{"1.0.post1", "1.0.1", 1},
		{"4.3.post1", "4.3", 1},

		// Numbers outrank unrecognized words, words compare among themselves
		{"1.0.z", "1.0", -1},
		{"1.0.x", "1.0.z", -1},
		{"1.1.1a", "1.1.1", -1},
		{"1.1.1a", "1.1.1r", -1},
		{"1.1.1g", "1.1.1r", -1},

		// Case is insignificant
		{"1.0A1", "1.0a1", 0},
		{"1.0RC1", "1.0rc1", 0},

		// Epochs dominate
		{"1!1.0", "2.0", 1},
		{"2!1.0", "1!9.9", 1},
		{"0!1.0", "1.0", 0},

		// Local suffixes sort above the bare version
		{"1.0+foo", "1.0", 1},
		{"1.0+1", "1.0+2", -1},
		{"1.0+foo", "1.1", -1},

		// Permissive handling of junk
		{"", "0", 0},
		{"not-a-version", "not-a-version", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			if got := sign(Compare(tt.a, tt.b)); got != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			// Swapping operands must flip the result.
			if got := sign(Compare(tt.b, tt.a)); got != -tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.b, tt.a, got, -tt.want)
			}
		})
	}
}

// TestTotalOrder checks antisymmetry and transitivity over a ladder of
// versions listed in strictly ascending order.
func TestTotalOrder(t *testing.T) {
	ascending := []string{
		"0.4",
		"0.4.1",
		"0.5a1",
		"0.5",
		"0.5.post1",
		"0.9.6",
		"0.960923",
		"1.0dev1",
		"1.0a1",
		"1.0a2",
		"1.0b1",
		"1.0rc1",
		"1.0",
		"1.0.post1",
		"1.1",
		"1.1.1a",
		"1.1.1g",
		"1.1.1",
		"1.2",
		"2!0.1",
	}

	for i := range ascending {
		for j := range ascending {
			got := sign(Compare(ascending[i], ascending[j]))
			want := sign(i - j)
			if got != want {
				t.Errorf("Compare(%q, %q) = %d, want %d",
					ascending[i], ascending[j], got, want)
			}
		}
	}
}

func TestHasPrefix(t *testing.T) {
	tests := []struct {
		v, prefix string
		want      bool
	}{
		{"1.10.2", "1.10", true},
		{"1.10", "1.10", true},
		{"1.10", "1.10.0", true}, // implicit zero padding
		{"1.100", "1.10", false},
		{"1.11.0", "1.10", false},
		{"2.9.1", "2.9", true},
		{"2.10.1", "2.9", false},
		{"1.4.9", "1.4", true},
		{"1.5.0", "1.4", false},
		{"1!1.10.2", "1.10", false}, // epoch mismatch
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s has prefix %s", tt.v, tt.prefix), func(t *testing.T) {
			if got := Parse(tt.v).HasPrefix(Parse(tt.prefix)); got != tt.want {
				t.Errorf("HasPrefix(%q, %q) = %v, want %v", tt.v, tt.prefix, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	v := Parse("1.4.2")

	if got := v.Truncate(2); !got.Equal(Parse("1.4")) {
		t.Errorf("Truncate(2) of 1.4.2 = %d segments, want equal to 1.4", got.NumSegments())
	}
	if got := v.Truncate(10); !got.Equal(v) {
		t.Errorf("Truncate beyond length must be a no-op")
	}
	if v.NumSegments() != 3 {
		t.Errorf("NumSegments(1.4.2) = %d, want 3", v.NumSegments())
	}
}

func TestStringPreservesInput(t *testing.T) {
	for _, s := range []string{"1.0", "1.0.POST1", " 1.0 ", "2022.1"} {
		if got := Parse(s).String(); got != s {
			t.Errorf("Parse(%q).String() = %q", s, got)
		}
	}
}
