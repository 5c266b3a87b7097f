package host

import (
	"context"
	"reflect"
	"testing"

	"github.com/arthur-debert/nanoshelf/types"
)

func queryBlocks() []*types.Block {
	return []*types.Block{
		{ID: "b1", Text: "Pasta carbonara", Properties: []types.BlockProperty{
			{Name: "tag", Kind: types.PropertyText, Value: "recipe"},
		}},
		{ID: "b2", Text: "Apple pie", Properties: []types.BlockProperty{
			{Name: "tag", Kind: types.PropertyText, Value: "recipe"},
		}},
		{ID: "b3", Text: "Standup notes", Properties: []types.BlockProperty{
			{Name: "tag", Kind: types.PropertyText, Value: "work"},
		}},
		{ID: "b4", Text: "Secret recipe", Properties: []types.BlockProperty{
			{Name: "tag", Kind: types.PropertyText, Value: "recipe"},
			{Name: types.PropHide, Kind: types.PropertyBool, Value: "true"},
		}},
	}
}

func TestEvaluateQueryFilters(t *testing.T) {
	tests := []struct {
		name  string
		query types.QueryDescription
		want  []string
	}{
		{
			"property eq",
			types.QueryDescription{Filters: []types.QueryFilter{{Property: "tag", Op: "eq", Value: "recipe"}}},
			[]string{"b1", "b2"},
		},
		{
			"text contains is case insensitive",
			types.QueryDescription{Filters: []types.QueryFilter{{Op: "contains", Value: "PIE"}}},
			[]string{"b2"},
		},
		{
			"missing property excludes block",
			types.QueryDescription{Filters: []types.QueryFilter{{Property: "nope", Op: "eq", Value: "x"}}},
			nil,
		},
		{
			"no filters returns all visible",
			types.QueryDescription{SortBy: "id"},
			[]string{"b1", "b2", "b3"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateQuery(tt.query, queryBlocks())
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEvaluateQueryHidesMarkedBlocks(t *testing.T) {
	q := types.QueryDescription{Filters: []types.QueryFilter{{Property: "tag", Op: "eq", Value: "recipe"}}}
	for _, id := range EvaluateQuery(q, queryBlocks()) {
		if id == "b4" {
			t.Error("hidden block leaked into query results")
		}
	}
}

func TestEvaluateQuerySortAndLimit(t *testing.T) {
	q := types.QueryDescription{SortBy: "text", Descending: true, Limit: 2}
	got := EvaluateQuery(q, queryBlocks())
	// "standup notes" > "pasta carbonara" > "apple pie"
	want := []string{"b3", "b1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestEvaluateQuerySortByProperty(t *testing.T) {
	blocks := []*types.Block{
		{ID: "b1", Text: "x", Properties: []types.BlockProperty{{Name: "rank", Kind: types.PropertyText, Value: "b"}}},
		{ID: "b2", Text: "y", Properties: []types.BlockProperty{{Name: "rank", Kind: types.PropertyText, Value: "a"}}},
	}
	got := EvaluateQuery(types.QueryDescription{SortBy: "rank"}, blocks)
	want := []string{"b2", "b1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestMockGatewayScriptedQueries(t *testing.T) {
	m := NewMockGateway()
	m.EnqueueQueryResult("a", "b")
	m.EnqueueQueryResult("c")

	ctx := context.Background()
	first, err := m.RunQuery(ctx, types.QueryDescription{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, []string{"a", "b"}) {
		t.Errorf("expected scripted [a b], got %v", first)
	}
	second, _ := m.RunQuery(ctx, types.QueryDescription{})
	if !reflect.DeepEqual(second, []string{"c"}) {
		t.Errorf("expected scripted [c], got %v", second)
	}

	// With the script drained the mock falls back to local evaluation.
	m.AddBlock(&types.Block{ID: "blk", Text: "hello"})
	third, _ := m.RunQuery(ctx, types.QueryDescription{})
	if !reflect.DeepEqual(third, []string{"blk"}) {
		t.Errorf("expected local evaluation [blk], got %v", third)
	}
}

func TestMockGatewayKVRoundTrip(t *testing.T) {
	m := NewMockGateway()
	ctx := context.Background()

	if _, ok, err := m.KVGet(ctx, "ns", "k"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}
	if err := m.KVSet(ctx, "ns", "k", "v"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok, err := m.KVGet(ctx, "ns", "k")
	if err != nil || !ok || v != "v" {
		t.Errorf("expected (v, true), got (%q, %v, %v)", v, ok, err)
	}
}
