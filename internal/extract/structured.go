package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// ParseError reports that the grammar-aware extractor could not produce an
// inventory. It carries enough detail for the downgrade log line; callers
// recover by switching to the lexical extractor.
type ParseError struct {
	File   string
	Detail string
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("structured parse failed: %s", e.Detail)
	}
	return fmt.Sprintf("structured parse of %s failed: %s", e.File, e.Detail)
}

// Structured parses configuration text with the HCL grammar and extracts all
// recognized block declarations. It is pure: on any syntax or structural
// error it returns a *ParseError and no inventory, performing no fallback
// itself. Attribute expressions are never evaluated against a context;
// anything that cannot be resolved statically is kept as its raw source text.
func Structured(src []byte, filename string) (Inventory, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, &ParseError{File: filename, Detail: diags.Error()}
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, &ParseError{File: filename, Detail: "configuration body is not native HCL syntax"}
	}

	inv := make(Inventory)
	for _, block := range body.Blocks {
		decl, ok, err := declarationFromBlock(block, src)
		if err != nil {
			return nil, &ParseError{File: filename, Detail: err.Error()}
		}
		if ok {
			inv.Add(decl)
		}
	}

	return inv, nil
}

// declarationFromBlock converts one top-level block into a Declaration.
// Unrecognized block types (terraform, locals, ...) are skipped rather than
// rejected. A recognized block with the wrong label shape is a structural
// error.
func declarationFromBlock(block *hclsyntax.Block, src []byte) (Declaration, bool, error) {
	switch block.Type {
	case "resource", "data":
		if len(block.Labels) != 2 {
			return Declaration{}, false, fmt.Errorf("%s block at %s has %d labels, want 2",
				block.Type, block.DefRange().String(), len(block.Labels))
		}
		declType := block.Labels[0]
		if block.Type == "data" {
			declType = "data_" + declType
		}
		return Declaration{
			Type:       declType,
			Name:       block.Labels[1],
			Attributes: attributesFromBody(block.Body, src),
		}, true, nil

	case "module":
		if len(block.Labels) != 1 {
			return Declaration{}, false, fmt.Errorf("module block at %s has %d labels, want 1",
				block.DefRange().String(), len(block.Labels))
		}
		attrs := attributesFromBody(block.Body, src)
		return Declaration{
			Type:       moduleType(block.Labels[0], attrs),
			Name:       block.Labels[0],
			Attributes: attrs,
		}, true, nil

	case "variable", "output", "provider":
		if len(block.Labels) != 1 {
			return Declaration{}, false, fmt.Errorf("%s block at %s has %d labels, want 1",
				block.Type, block.DefRange().String(), len(block.Labels))
		}
		return Declaration{
			Type:       block.Type,
			Name:       block.Labels[0],
			Attributes: attributesFromBody(block.Body, src),
		}, true, nil
	}

	return Declaration{}, false, nil
}

// moduleType folds a module's source reference into a synthesized resource
// type so topology synthesis can still place the module.
func moduleType(name string, attrs []Attribute) string {
	for _, a := range attrs {
		if a.Name == "source" && a.Val.Kind == ScalarValue {
			return "module_" + moduleSourceTail(a.Val.Scalar)
		}
	}
	return "module_" + name
}

// moduleSourceTail returns the last path segment of a module source address.
func moduleSourceTail(source string) string {
	source = strings.Trim(source, `"`)
	if i := strings.LastIndex(source, "/"); i >= 0 && i+1 < len(source) {
		return source[i+1:]
	}
	return source
}

// attributesFromBody flattens a block body into ordered attributes. Nested
// blocks become map-shaped attributes named after the nested block type, so
// attribute shape differences (mapping vs. sequence vs. scalar) surface as
// Value kinds instead of parse failures.
func attributesFromBody(body *hclsyntax.Body, src []byte) []Attribute {
	type positioned struct {
		offset int
		attr   Attribute
	}
	var entries []positioned

	for _, attr := range body.Attributes {
		entries = append(entries, positioned{
			offset: attr.SrcRange.Start.Byte,
			attr:   Attribute{Name: attr.Name, Val: valueFromExpr(attr.Expr, src)},
		})
	}

	for _, nested := range body.Blocks {
		entries = append(entries, positioned{
			offset: nested.DefRange().Start.Byte,
			attr: Attribute{
				Name: nested.Type,
				Val:  Value{Kind: MapValue, Fields: fieldsFromBody(nested.Body, src)},
			},
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].offset < entries[j].offset })

	attrs := make([]Attribute, len(entries))
	for i, e := range entries {
		attrs[i] = e.attr
	}
	return attrs
}

func fieldsFromBody(body *hclsyntax.Body, src []byte) []Field {
	attrs := attributesFromBody(body, src)
	fields := make([]Field, len(attrs))
	for i, a := range attrs {
		fields[i] = Field{Name: a.Name, Val: a.Val}
	}
	return fields
}

// valueFromExpr resolves an expression to a Value. Only literals and static
// collections resolve; references, interpolations and function calls are
// retained verbatim from the source text.
func valueFromExpr(expr hclsyntax.Expression, src []byte) Value {
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return Scalar(rawSource(expr.Range(), src))
	}
	val, ok := valueFromCty(v)
	if !ok {
		return Scalar(rawSource(expr.Range(), src))
	}
	return val
}

func rawSource(rng hcl.Range, src []byte) string {
	if rng.Start.Byte < 0 || rng.End.Byte > len(src) || rng.Start.Byte > rng.End.Byte {
		return ""
	}
	return strings.TrimSpace(string(src[rng.Start.Byte:rng.End.Byte]))
}

func valueFromCty(v cty.Value) (Value, bool) {
	if v.IsNull() || !v.IsWhollyKnown() {
		return Value{}, false
	}

	t := v.Type()
	switch {
	case t == cty.String:
		return Scalar(v.AsString()), true

	case t == cty.Bool:
		if v.True() {
			return Scalar("true"), true
		}
		return Scalar("false"), true

	case t == cty.Number:
		return Scalar(v.AsBigFloat().Text('f', -1)), true

	case t.IsTupleType() || t.IsListType() || t.IsSetType():
		list := Value{Kind: ListValue}
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			item, ok := valueFromCty(ev)
			if !ok {
				return Value{}, false
			}
			list.Items = append(list.Items, item)
		}
		return list, true

	case t.IsObjectType() || t.IsMapType():
		m := Value{Kind: MapValue}
		for it := v.ElementIterator(); it.Next(); {
			kv, ev := it.Element()
			item, ok := valueFromCty(ev)
			if !ok {
				return Value{}, false
			}
			m.Fields = append(m.Fields, Field{Name: kv.AsString(), Val: item})
		}
		return m, true
	}

	return Value{}, false
}
