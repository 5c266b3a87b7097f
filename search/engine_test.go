package search

import (
	"errors"
	"testing"

	"github.com/arthur-debert/nanoshelf/types"
)

type staticProvider struct {
	items []types.Item
	err   error
}

func (p staticProvider) Items() ([]types.Item, error) {
	return p.items, p.err
}

func testProvider() staticProvider {
	return staticProvider{items: []types.Item{
		{ID: "i1", Name: "Doc", Type: types.ItemDocument},
		{ID: "i2", Name: "Doc 2", Type: types.ItemDocument},
		{ID: "i3", Name: "My Documents", Type: types.ItemFolder},
		{ID: "i4", Name: "Roadmap", Type: types.ItemDocument, BlockID: "blk-road"},
		{ID: "i5", Name: "recipes", Type: types.ItemFolder},
	}}
}

func TestSearchRanking(t *testing.T) {
	engine := NewEngine(testProvider())

	results, err := engine.Search(Options{Query: "doc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Item.ID != "i1" || results[0].MatchType != MatchExactName {
		t.Errorf("expected exact match first, got %+v", results[0])
	}
	if results[1].Item.ID != "i2" || results[1].MatchType != MatchNamePrefix {
		t.Errorf("expected prefix match second, got %+v", results[1])
	}
	if results[2].Item.ID != "i3" || results[2].MatchType != MatchPartialName {
		t.Errorf("expected partial match last, got %+v", results[2])
	}
	if !(results[0].Score > results[1].Score && results[1].Score > results[2].Score) {
		t.Error("scores must strictly decrease across match types")
	}
}

func TestSearchByBlockID(t *testing.T) {
	engine := NewEngine(testProvider())

	results, err := engine.Search(Options{Query: "blk-road"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Item.ID != "i4" || results[0].MatchType != MatchBlockID {
		t.Fatalf("expected the block-id match, got %+v", results)
	}
}

func TestSearchOptions(t *testing.T) {
	engine := NewEngine(testProvider())

	t.Run("empty query matches nothing", func(t *testing.T) {
		results, err := engine.Search(Options{})
		if err != nil || len(results) != 0 {
			t.Errorf("expected no results, got %v (%v)", results, err)
		}
	})

	t.Run("case sensitive", func(t *testing.T) {
		results, _ := engine.Search(Options{Query: "recipes", CaseSensitive: true})
		if len(results) != 1 || results[0].Item.ID != "i5" {
			t.Errorf("expected only the lowercase folder, got %+v", results)
		}
		results, _ = engine.Search(Options{Query: "DOC", CaseSensitive: true})
		if len(results) != 0 {
			t.Errorf("expected no case-sensitive matches, got %+v", results)
		}
	})

	t.Run("exact match suppresses partials", func(t *testing.T) {
		results, _ := engine.Search(Options{Query: "doc", ExactMatch: true})
		if len(results) != 1 || results[0].Item.ID != "i1" {
			t.Errorf("expected only the exact match, got %+v", results)
		}
	})

	t.Run("max results truncates", func(t *testing.T) {
		results, _ := engine.Search(Options{Query: "doc", MaxResults: 2})
		if len(results) != 2 {
			t.Errorf("expected 2 results, got %d", len(results))
		}
	})
}

func TestSearchProviderError(t *testing.T) {
	boom := errors.New("boom")
	engine := NewEngine(staticProvider{err: boom})
	if _, err := engine.Search(Options{Query: "x"}); !errors.Is(err, boom) {
		t.Errorf("expected provider error to propagate, got %v", err)
	}
}
