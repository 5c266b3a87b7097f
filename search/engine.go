package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/nanoshelf/types"
)

// Engine implements keyword search over an item provider.
type Engine struct {
	provider ItemProvider
}

// NewEngine creates a search engine with the given item provider.
func NewEngine(provider ItemProvider) *Engine {
	return &Engine{provider: provider}
}

// Search returns ranked results for the given options. An empty query
// matches nothing.
func (e *Engine) Search(options Options) ([]Result, error) {
	if options.Query == "" {
		return []Result{}, nil
	}

	items, err := e.provider.Items()
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}

	query := options.Query
	if !options.CaseSensitive {
		query = strings.ToLower(query)
	}

	var results []Result
	for _, item := range items {
		if result := e.match(item, query, options); result != nil {
			results = append(results, *result)
		}
	}

	// Highest score first; ties resolve by name then id so the order is
	// stable across runs.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].Item.Name != results[j].Item.Name {
			return results[i].Item.Name < results[j].Item.Name
		}
		return results[i].Item.ID < results[j].Item.ID
	})

	if options.MaxResults > 0 && len(results) > options.MaxResults {
		results = results[:options.MaxResults]
	}
	return results, nil
}

func (e *Engine) match(item types.Item, query string, options Options) *Result {
	name := item.Name
	if !options.CaseSensitive {
		name = strings.ToLower(name)
	}

	switch {
	case name == query:
		return &Result{Item: item, Score: 1.0, MatchType: MatchExactName}
	case options.ExactMatch:
		// Exact mode still honors block-id lookups below.
	case strings.HasPrefix(name, query):
		return &Result{Item: item, Score: 0.8, MatchType: MatchNamePrefix}
	case strings.Contains(name, query):
		return &Result{Item: item, Score: 0.5, MatchType: MatchPartialName}
	}

	if item.BlockID != "" && item.BlockID == options.Query {
		return &Result{Item: item, Score: 0.9, MatchType: MatchBlockID}
	}
	return nil
}
