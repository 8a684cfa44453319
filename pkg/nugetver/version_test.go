package nugetver

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		errMsg  string
	}{
		{"three_segments", "1.2.3", false, ""},
		{"two_segments", "1.2", false, ""},
		{"four_segments", "1.2.3.4", false, ""},
		{"one_segment", "1", false, ""},
		{"prerelease", "1.0.0-beta.2", false, ""},
		{"build_metadata", "1.2.3+build.7", false, ""},
		{"prerelease_and_build", "1.2.3-rc.1+sha.abc", false, ""},
		{"whitespace_tolerated", "  2.0.0  ", false, ""},
		{"empty", "", true, "empty version"},
		{"non_numeric", "a.b.c", true, "invalid version"},
		{"five_segments", "1.2.3.4.5", true, "invalid version"},
		{"empty_prerelease_segment", "1.0.0-alpha..1", true, "empty segment"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := Parse(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error containing '%s', got nil", tc.errMsg)
				}
				if !strings.Contains(err.Error(), tc.errMsg) {
					t.Fatalf("expected error containing '%s', got: %v", tc.errMsg, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := v.String(); got != strings.TrimSpace(tc.input) {
				t.Fatalf("String() = %q, want round-trip of %q", got, tc.input)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want Comparison
	}{
		{"less_patch", "1.2.0", "1.2.1", ComparisonLess},
		{"greater_major", "3.0.0", "2.9.9", ComparisonGreater},
		{"equal", "1.2.3", "1.2.3", ComparisonEqual},
		{"missing_segments_are_zero", "1.0", "1.0.0", ComparisonEqual},
		{"four_segment_equal", "1.0.0", "1.0.0.0", ComparisonEqual},
		{"revision_orders", "1.0.0.1", "1.0.0.2", ComparisonLess},
		{"revision_beats_prerelease_tier", "2.0.0.1", "2.0.0", ComparisonGreater},
		{"prerelease_before_release", "1.0.0-rc.1", "1.0.0", ComparisonLess},
		{"prerelease_order", "1.0.0-alpha", "1.0.0-beta", ComparisonLess},
		{"numeric_prerelease_natural", "1.0.0-rc.2", "1.0.0-rc.11", ComparisonLess},
		{"numeric_before_alphanumeric", "1.0.0-1", "1.0.0-alpha", ComparisonLess},
		{"shorter_prerelease_less", "1.0.0-alpha", "1.0.0-alpha.1", ComparisonLess},
		{"build_metadata_ignored", "1.2.3+a", "1.2.3+b", ComparisonEqual},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Compare(MustParse(tc.a), MustParse(tc.b))
			if got != tc.want {
				t.Fatalf("Compare(%s, %s) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestCompareNil(t *testing.T) {
	if got := Compare(nil, MustParse("1.0.0")); got != ComparisonUnknown {
		t.Fatalf("Compare(nil, v) = %v, want ComparisonUnknown", got)
	}
}

func TestIsPrerelease(t *testing.T) {
	if !MustParse("1.0.0-beta").IsPrerelease() {
		t.Fatal("1.0.0-beta should be a prerelease")
	}
	if MustParse("1.0.0+build").IsPrerelease() {
		t.Fatal("build metadata alone is not a prerelease")
	}
}
