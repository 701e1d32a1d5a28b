// Package extract recovers a resource inventory from Terraform-style
// configuration text. Extraction is two-tier: a grammar-aware HCL parse is
// preferred, and a regex scan recovers what it can when that fails. Callers
// never observe a parse failure, only a possibly-empty inventory.
package extract

import "log"

// Source is one configuration unit. Path is used for diagnostics only and
// is never interpreted.
type Source struct {
	Path    string
	Content []byte
}

// Parse extracts an inventory from one configuration text. On any structured
// parse failure it logs the downgrade and returns the lexical result
// unconditionally.
func Parse(src []byte, filename string) Inventory {
	inv, err := Structured(src, filename)
	if err == nil {
		return inv
	}

	log.Printf("Warning: %v; falling back to lexical extraction", err)
	return Lexical(src)
}

// ParseFiles extracts and merges inventories from a set of sources belonging
// to one deployment directory. Sources are processed in the given order, so
// callers that sort their file lists get reproducible inventories.
func ParseFiles(sources []Source) Inventory {
	merged := make(Inventory)
	for _, s := range sources {
		merged.Merge(Parse(s.Content, s.Path))
	}
	return merged
}
