package matchspec

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PackageCandidate is a package record as found in repodata. Field
// names follow the repodata JSON schema; BuildNumber is a pointer so
// records without the field stay distinguishable from build number 0.
type PackageCandidate struct {
	Name        string   `json:"name"`
	Version     string   `json:"version,omitempty"`
	Build       string   `json:"build,omitempty"`
	BuildNumber *uint64  `json:"build_number,omitempty"`
	Depends     []string `json:"depends,omitempty"`
	License     string   `json:"license,omitempty"`
	MD5         string   `json:"md5,omitempty"`
	SHA256      string   `json:"sha256,omitempty"`
	Size        uint64   `json:"size,omitempty"`
	Channel     string   `json:"channel,omitempty"`
	Subdir      string   `json:"subdir,omitempty"`
	Timestamp   uint64   `json:"timestamp,omitempty"`
}

// CandidateFromJSON decodes a single repodata package record.
func CandidateFromJSON(data []byte) (*PackageCandidate, error) {
	var c PackageCandidate
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding package record: %w", err)
	}
	return &c, nil
}

// Matches reports whether the candidate satisfies the spec.
func (c *PackageCandidate) Matches(spec *MatchSpec) bool {
	return spec.Matches(c)
}

func (c *PackageCandidate) String() string {
	parts := []string{c.Name}
	if c.Version != "" {
		parts = append(parts, c.Version)
	}
	if c.Build != "" {
		parts = append(parts, c.Build)
	}
	return strings.Join(parts, " ")
}
