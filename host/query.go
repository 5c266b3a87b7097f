package host

import (
	"sort"
	"strings"

	"github.com/arthur-debert/nanoshelf/types"
)

// EvaluateQuery runs a structured query against a block collection and
// returns matching ids in result order. This is the local stand-in for the
// host's query engine, used by the file-backed gateway and the mock; a real
// host embedding the core supplies its own RunQuery.
func EvaluateQuery(q types.QueryDescription, blocks []*types.Block) []string {
	var matched []*types.Block
	for _, b := range blocks {
		if blockMatches(q, b) {
			matched = append(matched, b)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := sortKey(q.SortBy, matched[i]), sortKey(q.SortBy, matched[j])
		if a != b {
			if q.Descending {
				return a > b
			}
			return a < b
		}
		return matched[i].ID < matched[j].ID
	})

	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}

	ids := make([]string, len(matched))
	for i, b := range matched {
		ids[i] = b.ID
	}
	return ids
}

func blockMatches(q types.QueryDescription, b *types.Block) bool {
	// Hidden blocks never appear in query results.
	if p, ok := b.Property(types.PropHide); ok && p.AsBool() {
		return false
	}
	for _, f := range q.Filters {
		if !filterMatches(f, b) {
			return false
		}
	}
	return true
}

func filterMatches(f types.QueryFilter, b *types.Block) bool {
	var subject string
	if f.Property == "" {
		subject = b.Text
	} else {
		p, ok := b.Property(f.Property)
		if !ok {
			return false
		}
		subject = p.Value
	}

	switch f.Op {
	case "contains":
		return strings.Contains(strings.ToLower(subject), strings.ToLower(f.Value))
	case "eq", "":
		return subject == f.Value
	}
	return false
}

func sortKey(field string, b *types.Block) string {
	switch field {
	case "", "text":
		return strings.ToLower(b.Text)
	case "id":
		return b.ID
	}
	if p, ok := b.Property(field); ok {
		return strings.ToLower(p.Value)
	}
	return ""
}
