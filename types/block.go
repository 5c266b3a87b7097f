package types

import (
	"encoding/json"
	"strings"
)

// PropertyKind tags the payload carried by a BlockProperty.
type PropertyKind string

const (
	PropertyText   PropertyKind = "text"
	PropertyNumber PropertyKind = "number"
	PropertyBool   PropertyKind = "bool"
	PropertyJSON   PropertyKind = "json"
)

// Well-known property names consumed from host blocks.
const (
	PropIcon  = "icon"
	PropColor = "color"
	PropQuery = "query"
	PropHide  = "hide"
)

// BlockProperty is a tagged value from a host block's property bag. The raw
// payload is kept in canonical string form; typed access goes through the
// As* accessors rather than duck-typed field reads.
type BlockProperty struct {
	Name  string       `json:"name"`
	Kind  PropertyKind `json:"kind"`
	Value string       `json:"value"`
}

// AsBool interprets the property as a boolean. Only PropertyBool values of
// "true"/"1" are true; everything else is false.
func (p BlockProperty) AsBool() bool {
	if p.Kind != PropertyBool {
		return false
	}
	v := strings.ToLower(strings.TrimSpace(p.Value))
	return v == "true" || v == "1"
}

// AsJSON unmarshals a PropertyJSON payload into out.
func (p BlockProperty) AsJSON(out interface{}) error {
	return json.Unmarshal([]byte(p.Value), out)
}

// Block is the read-only view of a host content unit consumed by the tree
// store: display text, alias list and a property bag keyed by name.
type Block struct {
	ID         string          `json:"id"`
	Text       string          `json:"text"`
	Aliases    []string        `json:"aliases,omitempty"`
	Properties []BlockProperty `json:"properties,omitempty"`
}

// Property looks up a property by name. The boolean result distinguishes an
// absent property from one holding a zero value.
func (b *Block) Property(name string) (BlockProperty, bool) {
	for _, p := range b.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return BlockProperty{}, false
}

// DisplayName derives a human-readable label for the block: the first alias
// when present, otherwise the first line of the block text.
func (b *Block) DisplayName() string {
	if len(b.Aliases) > 0 && strings.TrimSpace(b.Aliases[0]) != "" {
		return strings.TrimSpace(b.Aliases[0])
	}
	text := b.Text
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// QueryFilter is a single predicate of a QueryDescription.
type QueryFilter struct {
	// Property names the block property the predicate applies to; the empty
	// string targets the block text itself.
	Property string `json:"property,omitempty"`

	// Op is the comparison operator: "eq" or "contains".
	Op string `json:"op"`

	Value string `json:"value"`
}

// QueryDescription is the structured query a query-backed folder re-runs
// against the host on expand: conjunctive filters plus sort and pagination.
type QueryDescription struct {
	Filters    []QueryFilter `json:"filters,omitempty"`
	SortBy     string        `json:"sortBy,omitempty"`
	Descending bool          `json:"descending,omitempty"`
	Limit      int           `json:"limit,omitempty"`
}

// ParseQueryDescription decodes the JSON payload of a query property.
func ParseQueryDescription(raw string) (QueryDescription, error) {
	var q QueryDescription
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		return QueryDescription{}, err
	}
	return q, nil
}
