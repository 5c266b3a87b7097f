package shelf

import "testing"

func TestCompareNatural(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"Doc 2", "Doc 10", -1},
		{"Doc 10", "Doc 2", 1},
		{"Doc", "Doc 1", -1},
		{"doc1", "Doc 2", -1},
		{"Doc", "doc1", -1},
		{"a2b", "a10a", -1},
		{"file007", "file7", -1}, // zero-padded ties break on the raw string
		{"file7", "file7", 0},
		{"ALPHA", "beta", -1},
		{"beta", "ALPHA", 1},
		{"", "a", -1},
		{"9999999999999999999999", "10000000000000000000000", -1},
	}
	for _, tt := range tests {
		got := compareNatural(tt.a, tt.b)
		if sign(got) != tt.want {
			t.Errorf("compareNatural(%q, %q) = %d, want sign %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
