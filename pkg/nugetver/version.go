// Package nugetver implements NuGet package versions and version ranges.
//
// NuGet versions carry up to four numeric segments (Major.Minor.Patch.Revision)
// plus optional SemVer 2.0.0 prerelease and build metadata. Inputs with two or
// three segments are accepted and compare as if the missing segments were zero,
// matching the lenient parsing the packaging pipeline expects.
package nugetver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Comparison is the result of ordering two versions.
type Comparison int

const (
	ComparisonUnknown Comparison = iota
	ComparisonLess
	ComparisonEqual
	ComparisonGreater
)

var versionPattern = regexp.MustCompile(`^(\d+)(?:\.(\d+))?(?:\.(\d+))?(?:\.(\d+))?(?:-([0-9A-Za-z.-]+))?(?:\+([0-9A-Za-z.-]+))?$`)

type identifier struct {
	raw     string
	numeric bool
	num     int
}

// Version is a parsed NuGet package version.
type Version struct {
	major    int
	minor    int
	patch    int
	revision int
	pre      []identifier
	build    string
	raw      string
}

// Parse parses a NuGet version string.
func Parse(input string) (*Version, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, errors.New("empty version")
	}

	matches := versionPattern.FindStringSubmatch(trimmed)
	if len(matches) == 0 {
		return nil, fmt.Errorf("invalid version '%s'", trimmed)
	}

	v := &Version{raw: trimmed}

	segments := []*int{&v.major, &v.minor, &v.patch, &v.revision}
	for i, dst := range segments {
		m := matches[i+1]
		if m == "" {
			continue
		}
		n, err := strconv.Atoi(m)
		if err != nil {
			return nil, fmt.Errorf("segment '%s': %w", m, err)
		}
		*dst = n
	}

	if prerelease := matches[5]; prerelease != "" {
		parts := strings.Split(prerelease, ".")
		v.pre = make([]identifier, len(parts))
		for i, part := range parts {
			if part == "" {
				return nil, fmt.Errorf("invalid prerelease identifier: empty segment")
			}
			if isNumeric(part) {
				n, err := strconv.Atoi(part)
				if err != nil {
					return nil, fmt.Errorf("invalid prerelease identifier '%s': %w", part, err)
				}
				v.pre[i] = identifier{raw: part, numeric: true, num: n}
			} else {
				v.pre[i] = identifier{raw: part}
			}
		}
	}

	v.build = matches[6]

	return v, nil
}

// MustParse parses a version string and panics on failure. Intended for tests
// and compile-time constants.
func MustParse(input string) *Version {
	v, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the original textual form of the version.
func (v *Version) String() string {
	if v == nil {
		return ""
	}
	return v.raw
}

// IsPrerelease reports whether the version carries prerelease labels.
func (v *Version) IsPrerelease() bool {
	return v != nil && len(v.pre) > 0
}

// Compare orders a against b. Build metadata is ignored, numeric segments
// compare with missing segments treated as zero, and prerelease labels follow
// SemVer 2.0.0 precedence.
func Compare(a, b *Version) Comparison {
	if a == nil || b == nil {
		return ComparisonUnknown
	}

	pairs := [][2]int{
		{a.major, b.major},
		{a.minor, b.minor},
		{a.patch, b.patch},
		{a.revision, b.revision},
	}
	for _, p := range pairs {
		if p[0] != p[1] {
			if p[0] < p[1] {
				return ComparisonLess
			}
			return ComparisonGreater
		}
	}

	return comparePrerelease(a.pre, b.pre)
}

func comparePrerelease(a, b []identifier) Comparison {
	if len(a) == 0 && len(b) == 0 {
		return ComparisonEqual
	}
	if len(a) == 0 {
		return ComparisonGreater
	}
	if len(b) == 0 {
		return ComparisonLess
	}

	limit := len(a)
	if len(b) < limit {
		limit = len(b)
	}

	for i := 0; i < limit; i++ {
		ai := a[i]
		bi := b[i]
		if ai.numeric && bi.numeric {
			if ai.num < bi.num {
				return ComparisonLess
			}
			if ai.num > bi.num {
				return ComparisonGreater
			}
			continue
		}
		if ai.numeric {
			return ComparisonLess
		}
		if bi.numeric {
			return ComparisonGreater
		}
		if cmp := strings.Compare(ai.raw, bi.raw); cmp != 0 {
			if cmp < 0 {
				return ComparisonLess
			}
			return ComparisonGreater
		}
	}

	if len(a) < len(b) {
		return ComparisonLess
	}
	if len(a) > len(b) {
		return ComparisonGreater
	}
	return ComparisonEqual
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
