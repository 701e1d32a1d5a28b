package extract

import "sort"

// ValueKind discriminates the shapes an attribute value can take. Terraform
// attribute values are freely nested, so callers switch on Kind instead of
// assuming a shape.
type ValueKind int

const (
	ScalarValue ValueKind = iota
	ListValue
	MapValue
)

// Value is an uninterpreted attribute value. Expressions that cannot be
// resolved without evaluation (references, interpolations, function calls)
// are carried as scalars holding their raw source text.
type Value struct {
	Kind   ValueKind
	Scalar string
	Items  []Value
	Fields []Field
}

// Field is one entry of a map-shaped Value, in source order.
type Field struct {
	Name string
	Val  Value
}

// Scalar returns a scalar Value.
func Scalar(s string) Value {
	return Value{Kind: ScalarValue, Scalar: s}
}

// Attribute is one attribute of a declaration, in source order.
type Attribute struct {
	Name string
	Val  Value
}

// Declaration is a single named block recovered from configuration text.
// Attributes may be empty when only lexical extraction succeeded.
type Declaration struct {
	Type       string
	Name       string
	Attributes []Attribute
}

// Attr returns the named attribute value and whether it was present.
func (d Declaration) Attr(name string) (Value, bool) {
	for _, a := range d.Attributes {
		if a.Name == name {
			return a.Val, true
		}
	}
	return Value{}, false
}

// Inventory maps a resource type to its declarations in extraction order.
// Duplicate (type, name) pairs from different files are kept as separate
// entries: files in one deployment directory accumulate additively.
type Inventory map[string][]Declaration

// Add appends a declaration under its type.
func (inv Inventory) Add(d Declaration) {
	inv[d.Type] = append(inv[d.Type], d)
}

// Merge appends all declarations from other, preserving their order.
func (inv Inventory) Merge(other Inventory) {
	for _, t := range other.Types() {
		inv[t] = append(inv[t], other[t]...)
	}
}

// Types returns the resource types in sorted order. Iteration over the
// inventory must go through this to keep downstream output reproducible.
func (inv Inventory) Types() []string {
	types := make([]string, 0, len(inv))
	for t := range inv {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Len returns the total number of declarations across all types.
func (inv Inventory) Len() int {
	n := 0
	for _, decls := range inv {
		n += len(decls)
	}
	return n
}
