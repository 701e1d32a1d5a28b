package extract

import (
	"regexp"
	"strings"
)

// Block header patterns for best-effort recovery. The scan anchors only on
// opening lines; bodies and nested braces are not tracked.
var (
	resourcePattern = regexp.MustCompile(`(?m)^\s*resource\s+"([^"]+)"\s+"([^"]+)"\s*\{`)
	dataPattern     = regexp.MustCompile(`(?m)^\s*data\s+"([^"]+)"\s+"([^"]+)"\s*\{`)
	modulePattern   = regexp.MustCompile(`(?m)^\s*module\s+"([^"]+)"\s*\{`)
	variablePattern = regexp.MustCompile(`(?m)^\s*variable\s+"([^"]+)"\s*\{`)
	outputPattern   = regexp.MustCompile(`(?m)^\s*output\s+"([^"]+)"\s*\{`)
	providerPattern = regexp.MustCompile(`(?m)^\s*provider\s+"([^"]+)"\s*\{`)

	blockCommentPattern = regexp.MustCompile(`(?s)/\*.*?\*/`)
	moduleSourcePattern = regexp.MustCompile(`source\s*=\s*"([^"]+)"`)
)

// Lexical recovers declarations from raw configuration text with plain
// pattern matching. It is the last-resort fallback and therefore total: any
// input yields an inventory, possibly empty. Every recovered declaration
// carries empty attributes.
func Lexical(src []byte) Inventory {
	text := stripComments(string(src))
	inv := make(Inventory)

	for _, m := range resourcePattern.FindAllStringSubmatch(text, -1) {
		inv.Add(Declaration{Type: m[1], Name: m[2]})
	}
	for _, m := range dataPattern.FindAllStringSubmatch(text, -1) {
		inv.Add(Declaration{Type: "data_" + m[1], Name: m[2]})
	}

	// Module blocks fold their source reference into a synthesized type so
	// topology synthesis can still place them.
	for _, loc := range modulePattern.FindAllStringSubmatchIndex(text, -1) {
		name := text[loc[2]:loc[3]]
		declType := "module_" + name
		if source, ok := moduleSource(text[loc[1]:]); ok {
			declType = "module_" + moduleSourceTail(source)
		}
		inv.Add(Declaration{Type: declType, Name: name})
	}

	for _, m := range variablePattern.FindAllStringSubmatch(text, -1) {
		inv.Add(Declaration{Type: "variable", Name: m[1]})
	}
	for _, m := range outputPattern.FindAllStringSubmatch(text, -1) {
		inv.Add(Declaration{Type: "output", Name: m[1]})
	}
	for _, m := range providerPattern.FindAllStringSubmatch(text, -1) {
		inv.Add(Declaration{Type: "provider", Name: m[1]})
	}

	return inv
}

// moduleSource looks for a source attribute between a module block header
// and the next closing brace. Nested braces are not tracked.
func moduleSource(body string) (string, bool) {
	if end := strings.Index(body, "}"); end >= 0 {
		body = body[:end]
	}
	if m := moduleSourcePattern.FindStringSubmatch(body); m != nil {
		return m[1], true
	}
	return "", false
}

// stripComments removes block comments and the remainder of any line after
// a # or // marker outside a quoted string, so commented-out blocks do not
// produce declarations.
func stripComments(text string) string {
	text = blockCommentPattern.ReplaceAllString(text, "")

	var sb strings.Builder
	for _, line := range strings.Split(text, "\n") {
		sb.WriteString(stripLineComment(line))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func stripLineComment(line string) string {
	inQuote := false
	for i := 0; i < len(line); i++ {
		switch {
		case line[i] == '"' && (i == 0 || line[i-1] != '\\'):
			inQuote = !inQuote
		case inQuote:
		case line[i] == '#':
			return line[:i]
		case line[i] == '/' && i+1 < len(line) && line[i+1] == '/':
			return line[:i]
		}
	}
	return line
}
