package nugetver

import (
	"errors"
	"fmt"
	"strings"
)

// Range is a constraint interval over the version ordering. Either bound may
// be absent, and each present bound is independently inclusive or exclusive.
// A nil *Range means "any version"; downstream consumers must tolerate it.
type Range struct {
	Min          *Version
	Max          *Version
	MinInclusive bool
	MaxInclusive bool
}

// ParseRange parses NuGet interval notation. A bare version is shorthand for
// an inclusive floor with an open ceiling.
//
//	1.0.0        → [1.0.0, )
//	[1.0.0]      → exactly 1.0.0
//	[1.0, 2.0)   → 1.0 ≤ v < 2.0
//	(, 2.0]      → v ≤ 2.0
func ParseRange(input string) (*Range, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, errors.New("empty version range")
	}

	first := trimmed[0]
	if first != '[' && first != '(' {
		min, err := Parse(trimmed)
		if err != nil {
			return nil, err
		}
		return &Range{Min: min, MinInclusive: true}, nil
	}

	last := trimmed[len(trimmed)-1]
	if last != ']' && last != ')' {
		return nil, fmt.Errorf("invalid version range '%s': unterminated interval", trimmed)
	}

	r := &Range{
		MinInclusive: first == '[',
		MaxInclusive: last == ']',
	}

	inner := trimmed[1 : len(trimmed)-1]
	parts := strings.Split(inner, ",")
	switch len(parts) {
	case 1:
		// [1.0.0] pins an exact version; (1.0.0) is unsatisfiable and rejected.
		if !r.MinInclusive || !r.MaxInclusive {
			return nil, fmt.Errorf("invalid version range '%s': exact version requires inclusive bounds", trimmed)
		}
		v, err := Parse(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid version range '%s': %w", trimmed, err)
		}
		r.Min = v
		r.Max = v
	case 2:
		if s := strings.TrimSpace(parts[0]); s != "" {
			v, err := Parse(s)
			if err != nil {
				return nil, fmt.Errorf("invalid version range '%s': %w", trimmed, err)
			}
			r.Min = v
		}
		if s := strings.TrimSpace(parts[1]); s != "" {
			v, err := Parse(s)
			if err != nil {
				return nil, fmt.Errorf("invalid version range '%s': %w", trimmed, err)
			}
			r.Max = v
		}
		if r.Min == nil && r.Max == nil {
			return nil, fmt.Errorf("invalid version range '%s': no bounds", trimmed)
		}
	default:
		return nil, fmt.Errorf("invalid version range '%s': too many commas", trimmed)
	}

	if r.Min == nil {
		r.MinInclusive = false
	}
	if r.Max == nil {
		r.MaxInclusive = false
	}

	return r, nil
}

// MustParseRange parses a range string and panics on failure.
func MustParseRange(input string) *Range {
	r, err := ParseRange(input)
	if err != nil {
		panic(err)
	}
	return r
}

// String renders the range in canonical notation. A floor-only inclusive
// range renders as the bare minimum version, which is the shorthand the
// manifest schema expects. A nil range renders as the empty string.
func (r *Range) String() string {
	if r == nil {
		return ""
	}
	if r.Max == nil && r.Min != nil && r.MinInclusive {
		return r.Min.String()
	}
	if r.Min != nil && r.Max != nil && r.MinInclusive && r.MaxInclusive && Compare(r.Min, r.Max) == ComparisonEqual {
		return "[" + r.Min.String() + "]"
	}

	var b strings.Builder
	if r.MinInclusive {
		b.WriteByte('[')
	} else {
		b.WriteByte('(')
	}
	if r.Min != nil {
		b.WriteString(r.Min.String())
	}
	b.WriteString(", ")
	if r.Max != nil {
		b.WriteString(r.Max.String())
	}
	if r.MaxInclusive {
		b.WriteByte(']')
	} else {
		b.WriteByte(')')
	}
	return b.String()
}

// Combine folds source into target, tightening each bound independently: the
// higher minimum wins, the lower maximum wins, and equal bounds AND their
// inclusivity so an exclusive bound is never silently widened. A nil input
// contributes no bounds; a result with no bounds collapses back to nil.
func Combine(target, source *Range) *Range {
	if source == nil {
		return target
	}
	if target == nil {
		target = &Range{}
	}

	combined := &Range{
		Min:          target.Min,
		Max:          target.Max,
		MinInclusive: target.MinInclusive,
		MaxInclusive: target.MaxInclusive,
	}

	if source.Min != nil {
		switch {
		case combined.Min == nil:
			combined.Min = source.Min
			combined.MinInclusive = source.MinInclusive
		case Compare(combined.Min, source.Min) == ComparisonLess:
			combined.Min = source.Min
			combined.MinInclusive = source.MinInclusive
		case Compare(combined.Min, source.Min) == ComparisonEqual:
			combined.MinInclusive = combined.MinInclusive && source.MinInclusive
		}
	}

	if source.Max != nil {
		switch {
		case combined.Max == nil:
			combined.Max = source.Max
			combined.MaxInclusive = source.MaxInclusive
		case Compare(combined.Max, source.Max) == ComparisonGreater:
			combined.Max = source.Max
			combined.MaxInclusive = source.MaxInclusive
		case Compare(combined.Max, source.Max) == ComparisonEqual:
			combined.MaxInclusive = combined.MaxInclusive && source.MaxInclusive
		}
	}

	if combined.Min == nil && combined.Max == nil {
		return nil
	}
	return combined
}

// Aggregate left-folds Combine over ranges in input order. Callers must keep
// the original declaration order so repeated runs stay deterministic.
func Aggregate(ranges []*Range) *Range {
	var result *Range
	for _, r := range ranges {
		result = Combine(result, r)
	}
	return result
}
