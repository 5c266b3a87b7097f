package shelf

import (
	"context"
	"sort"
)

// NaturalSortChildren re-orders one container's children (or the root level
// when parentID is empty) by natural name comparison and persists the result
// as a reorder. "Doc 2" sorts before "Doc 10"; "Doc" sorts before "Doc 1".
func (s *Store) NaturalSortChildren(ctx context.Context, parentID string) error {
	return s.runWrite(ctx, func() error {
		if parentID != "" {
			parent := s.data.Find(parentID)
			if parent == nil {
				return ErrNotFound
			}
			if !parent.IsContainer() {
				return ErrNotContainer
			}
		}
		children := s.data.ChildrenOf(parentID)
		ids := make([]string, len(children))
		names := make(map[string]string, len(children))
		for i, c := range children {
			ids[i] = c.ID
			names[c.ID] = c.Name
		}
		sort.SliceStable(ids, func(i, j int) bool {
			return compareNatural(names[ids[i]], names[ids[j]]) < 0
		})
		return s.adapter.ReorderItems(ctx, parentID, ids)
	})
}

// compareNatural orders two strings the way a person reads them: the strings
// are split into alternating runs of digits and non-digits, digit runs
// compare numerically, non-digit runs compare case-insensitively, and when
// one string is a prefix of the other's run sequence the shorter comes
// first. Returns <0, 0 or >0.
func compareNatural(a, b string) int {
	ia, ib := 0, 0
	for ia < len(a) && ib < len(b) {
		runA, digitA := nextRun(a, ia)
		runB, digitB := nextRun(b, ib)

		switch {
		case digitA && digitB:
			if c := compareNumericRuns(runA, runB); c != 0 {
				return c
			}
		case digitA != digitB:
			// A digit run sorts ahead of text, so "doc1" lands before
			// "doc 2" even though '1' > ' ' byte-wise.
			if digitA {
				return -1
			}
			return 1
		default:
			if c := compareFold(runA, runB); c != 0 {
				return c
			}
		}
		ia += len(runA)
		ib += len(runB)
	}

	// One string exhausted: the shorter prefix sorts first.
	if c := (len(a) - ia) - (len(b) - ib); c != 0 {
		if c < 0 {
			return -1
		}
		return 1
	}

	// Full case-insensitive tie; fall back to the raw strings so the order
	// is still deterministic.
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// nextRun returns the maximal run of digits or non-digits starting at pos.
func nextRun(s string, pos int) (string, bool) {
	digit := isDigit(s[pos])
	end := pos
	for end < len(s) && isDigit(s[end]) == digit {
		end++
	}
	return s[pos:end], digit
}

// compareNumericRuns compares two digit runs by numeric value without
// converting, so arbitrarily long runs cannot overflow: strip leading
// zeros, then longer means larger, then compare digit-wise.
func compareNumericRuns(a, b string) int {
	a = trimLeadingZeros(a)
	b = trimLeadingZeros(b)
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func trimLeadingZeros(s string) string {
	i := 0
	for i < len(s)-1 && s[i] == '0' {
		i++
	}
	return s[i:]
}

// compareFold is a case-insensitive byte-wise comparison of two text runs.
func compareFold(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		ca, cb := lowerByte(a[i]), lowerByte(b[i])
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
	}
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return 0
}

func lowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
