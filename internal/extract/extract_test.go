package extract

import (
	"reflect"
	"testing"
)

// Attribute expected to be a mapping is a sequence here: the structured
// extractor rejects the file, yet the block header is still recoverable.
const malformedConfig = `
resource "aws_instance" "web" {
  tags = { unterminated
}
`

func TestParseFallsBackToLexical(t *testing.T) {
	if _, err := Structured([]byte(malformedConfig), "bad.tf"); err == nil {
		t.Fatal("Precondition failed: expected structured parse to fail")
	}

	inv := Parse([]byte(malformedConfig), "bad.tf")

	want := Lexical([]byte(malformedConfig))
	if !reflect.DeepEqual(inv, want) {
		t.Errorf("Fallback result differs from lexical extraction:\n got %+v\nwant %+v", inv, want)
	}

	// The declaration survives the downgrade, with empty attributes.
	decls := inv["aws_instance"]
	if len(decls) != 1 || decls[0].Name != "web" {
		t.Fatalf("Expected aws_instance 'web' recovered lexically, got %+v", decls)
	}
	if len(decls[0].Attributes) != 0 {
		t.Errorf("Expected empty attributes after fallback, got %+v", decls[0].Attributes)
	}
}

func TestParseIdempotent(t *testing.T) {
	inputs := []string{
		`resource "aws_instance" "web" { ami = "ami-123" }`,
		malformedConfig,
		"",
	}

	for _, input := range inputs {
		first := Parse([]byte(input), "a.tf")
		second := Parse([]byte(input), "a.tf")
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Parse not idempotent for input %q", input)
		}
	}
}

func TestParseEmptyInput(t *testing.T) {
	inv := Parse(nil, "empty.tf")
	if inv.Len() != 0 {
		t.Errorf("Expected empty inventory for empty input, got %d declarations", inv.Len())
	}
}

func TestParseFilesMergeOrder(t *testing.T) {
	f1 := Source{Path: "a.tf", Content: []byte(`resource "aws_instance" "one" {}`)}
	f2 := Source{Path: "b.tf", Content: []byte(`resource "aws_instance" "two" {}`)}

	merged := ParseFiles([]Source{f1, f2})

	decls := merged["aws_instance"]
	if len(decls) != 2 {
		t.Fatalf("Expected 2 declarations after merge, got %d", len(decls))
	}
	if decls[0].Name != "one" || decls[1].Name != "two" {
		t.Errorf("Expected file-order merge [one two], got [%s %s]", decls[0].Name, decls[1].Name)
	}
}

func TestParseFilesMonotonicMerge(t *testing.T) {
	f1 := Source{Path: "a.tf", Content: []byte(`
resource "aws_instance" "one" {}
resource "aws_s3_bucket" "logs" {}
`)}
	f2 := Source{Path: "b.tf", Content: []byte(`resource "aws_instance" "two" {}`)}

	merged := ParseFiles([]Source{f1, f2})

	separate := make(Inventory)
	separate.Merge(ParseFiles([]Source{f1}))
	separate.Merge(ParseFiles([]Source{f2}))

	if !reflect.DeepEqual(merged, separate) {
		t.Errorf("Merging files together differs from merging separately:\n got %+v\nwant %+v", merged, separate)
	}
}

func TestParseFilesPreservesDuplicates(t *testing.T) {
	// The same (type, name) pair in two files is additive, not deduplicated.
	src := []byte(`resource "aws_instance" "web" {}`)
	merged := ParseFiles([]Source{
		{Path: "a.tf", Content: src},
		{Path: "b.tf", Content: src},
	})

	if len(merged["aws_instance"]) != 2 {
		t.Errorf("Expected duplicates preserved across files, got %d declarations", len(merged["aws_instance"]))
	}
}

func TestInventoryTypesSorted(t *testing.T) {
	inv := make(Inventory)
	inv.Add(Declaration{Type: "zzz", Name: "a"})
	inv.Add(Declaration{Type: "aaa", Name: "b"})
	inv.Add(Declaration{Type: "mmm", Name: "c"})

	types := inv.Types()
	want := []string{"aaa", "mmm", "zzz"}
	if !reflect.DeepEqual(types, want) {
		t.Errorf("Expected sorted types %v, got %v", want, types)
	}
}
