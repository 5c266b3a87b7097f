package types

import "testing"

func TestBlockPropertyLookup(t *testing.T) {
	block := &Block{
		ID:   "blk1",
		Text: "Groceries\nmilk, bread",
		Properties: []BlockProperty{
			{Name: PropIcon, Kind: PropertyText, Value: "🛒"},
			{Name: PropHide, Kind: PropertyBool, Value: "true"},
		},
	}

	if p, ok := block.Property(PropIcon); !ok || p.Value != "🛒" {
		t.Errorf("expected icon property, got %+v ok=%v", p, ok)
	}
	if _, ok := block.Property("nope"); ok {
		t.Error("expected missing property to report ok=false")
	}
	if p, _ := block.Property(PropHide); !p.AsBool() {
		t.Error("expected hide property to read as true")
	}
}

func TestAsBoolKindMismatch(t *testing.T) {
	p := BlockProperty{Name: "x", Kind: PropertyText, Value: "true"}
	if p.AsBool() {
		t.Error("text property must not read as boolean true")
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name  string
		block Block
		want  string
	}{
		{"first alias wins", Block{Text: "body", Aliases: []string{"My Page", "Other"}}, "My Page"},
		{"blank alias falls through", Block{Text: "First line\nrest", Aliases: []string{"  "}}, "First line"},
		{"first text line", Block{Text: "Heading\nbody body"}, "Heading"},
		{"single line", Block{Text: "Only"}, "Only"},
		{"empty block", Block{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.block.DisplayName(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseQueryDescription(t *testing.T) {
	q, err := ParseQueryDescription(`{"filters":[{"property":"tag","op":"eq","value":"recipe"}],"sortBy":"text","limit":5}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.Filters) != 1 || q.Filters[0].Value != "recipe" {
		t.Errorf("unexpected filters: %+v", q.Filters)
	}
	if q.SortBy != "text" || q.Limit != 5 {
		t.Errorf("unexpected sort/limit: %+v", q)
	}

	if _, err := ParseQueryDescription("{not json"); err == nil {
		t.Error("expected error for malformed query")
	}
}
