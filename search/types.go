// Package search ranks items of the tree against a keyword. It is a small,
// self-contained engine over an injected item provider so it can be tested
// without a live store.
package search

import "github.com/arthur-debert/nanoshelf/types"

// Options configures search behavior.
type Options struct {
	// Query is the search term to look for.
	Query string

	// CaseSensitive controls whether matching is case-sensitive.
	CaseSensitive bool

	// ExactMatch requires the entire name to match the query. When false,
	// substring matching applies.
	ExactMatch bool

	// MaxResults limits the number of results; zero means no limit.
	MaxResults int
}

// MatchType indicates where and how a match was found.
type MatchType string

const (
	MatchExactName   MatchType = "exact_name"
	MatchNamePrefix  MatchType = "name_prefix"
	MatchPartialName MatchType = "partial_name"
	MatchBlockID     MatchType = "block_id"
)

// Result is one search match with ranking metadata.
type Result struct {
	// Item is a copy of the matched item.
	Item types.Item

	// Score represents match relevance (0.0 to 1.0, higher is better).
	Score float64

	// MatchType describes where the match was found.
	MatchType MatchType
}

// ItemProvider supplies the items to search. The indirection keeps the
// engine decoupled from the store and easy to mock in tests.
type ItemProvider interface {
	Items() ([]types.Item, error)
}
