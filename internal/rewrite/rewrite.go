// Package rewrite implements the schema transformation pass: a single
// line-oriented walk over a Prisma-style schema that renames model and field
// identifiers to idiomatic form and records the raw database names in
// @@map/@map annotations. The pass never fails; anything it cannot resolve
// is emitted unchanged or renamed with the best-effort transform.
package rewrite

import (
	"regexp"
	"sort"
	"strings"

	"prisma-remap/internal/mapping"
	"prisma-remap/internal/naming"
)

var (
	modelHeaderRe = regexp.MustCompile(`^(\s*)model\s+(\w+)\s*\{`)
	blockCloseRe  = regexp.MustCompile(`^\s*}\s*$`)
	tableMapRe    = regexp.MustCompile(`@@map\(\s*["']([^"']+)["']\s*\)`)
	// fieldDeclRe matches a field declaration: leading identifier followed by
	// at least the type. Multi-line field definitions are not supported.
	fieldDeclRe = regexp.MustCompile(`^(\s*)([A-Za-z_]\w*)(\s.*)$`)
)

// cursor tracks the open model block during the walk. Model and table are
// non-empty exactly while inBlock is true.
type cursor struct {
	model   string
	table   string
	inBlock bool
}

// walker owns the state for one transformation pass. A fresh walker is
// created per Transform call so concurrent transformations never interfere.
type walker struct {
	maps  mapping.Maps
	namer *naming.Namer
	cur   cursor
	out   []string
}

// Transform rewrites the schema text using the catalog-derived maps as
// ground truth and the namer as fallback. The result preserves indentation,
// comments, already-annotated lines and any content outside model blocks.
// Given the same inputs the output is fully deterministic.
func Transform(input string, maps mapping.Maps, namer *naming.Namer) string {
	if namer == nil {
		namer = naming.Default()
	}
	w := &walker{
		maps:  maps,
		namer: namer,
		out:   make([]string, 0, strings.Count(input, "\n")+1),
	}

	lines := strings.Split(input, "\n")
	for i, line := range lines {
		w.processLine(line, lines[i+1:])
	}
	return strings.Join(w.out, "\n")
}

func (w *walker) emit(line string) {
	w.out = append(w.out, line)
}

// processLine classifies one line and dispatches to its handler. The
// matchers run in fixed priority order; the first that applies wins.
func (w *walker) processLine(line string, rest []string) {
	if !w.cur.inBlock {
		if modelHeaderRe.MatchString(line) {
			w.enterBlock(line, rest)
			return
		}
		w.emit(line)
		return
	}

	switch {
	case blockCloseRe.MatchString(line):
		w.cur = cursor{}
		w.emit(line)
	case tableMapRe.MatchString(line):
		// Existing table mapping, already consumed during lookahead.
		w.emit(line)
	case directiveRe.MatchString(line):
		w.emit(RewriteDirective(line, w.maps, w.cur.table, w.namer))
	case isComment(line) || strings.TrimSpace(line) == "":
		w.emit(line)
	case fieldDeclRe.MatchString(line):
		w.emit(w.rewriteField(line))
	default:
		w.emit(line)
	}
}

// enterBlock resolves the authoritative table name for a model block and
// emits the (possibly rewritten) header. Resolution priority: an explicit
// @@map inside the block, then a catalog match, then the lower-cased model
// name as a last resort.
func (w *walker) enterBlock(line string, rest []string) {
	loc := modelHeaderRe.FindStringSubmatchIndex(line)
	indent := line[loc[2]:loc[3]]
	model := line[loc[4]:loc[5]]

	w.cur = cursor{model: model, inBlock: true}

	if raw, ok := lookaheadTableMap(rest); ok {
		// The block already records its table; trust it unconditionally.
		w.cur.table = raw
		w.emit(line)
		return
	}

	raw, modelName, ok := w.matchCatalog(model)
	if ok {
		w.cur.table = raw
		if model != modelName {
			line = line[:loc[4]] + modelName + line[loc[5]:]
			w.cur.model = modelName
		}
	} else {
		w.cur.table = strings.ToLower(model)
	}

	w.emit(line)
	if w.namer.ToModelName(w.cur.table) != w.cur.table {
		w.emit(indent + `  @@map("` + w.cur.table + `")`)
	}
}

// matchCatalog searches the table map for the entry backing a model name:
// either its model-side name equals the header identifier, or its raw name
// does up to case. Raw names are scanned in sorted order so ambiguous
// catalogs resolve the same way every run.
func (w *walker) matchCatalog(model string) (raw, modelName string, ok bool) {
	rawNames := make([]string, 0, len(w.maps.Tables))
	for name := range w.maps.Tables {
		rawNames = append(rawNames, name)
	}
	sort.Strings(rawNames)

	for _, name := range rawNames {
		transformed := w.maps.Tables[name]
		if transformed == model || strings.EqualFold(name, model) {
			return name, transformed, true
		}
	}
	return "", "", false
}

// rewriteField renames the leading identifier of a field declaration and
// appends a @map annotation recording the raw column name. Fields that
// already carry a @map, or that the classifier leaves alone, or whose
// mapped name is unchanged, pass through byte-identical.
func (w *walker) rewriteField(line string) string {
	if strings.Contains(line, "@map(") {
		return line
	}

	m := fieldDeclRe.FindStringSubmatch(line)
	indent, field, tail := m[1], m[2], m[3]
	if !naming.NeedsTransform(field) {
		return line
	}

	mapped := w.maps.Field(w.cur.table, field, w.namer)
	if mapped == field {
		return line
	}
	annotation := ` @map("` + field + `")`
	// Keep a trailing line comment trailing: the annotation goes before it.
	if idx := strings.Index(tail, "//"); idx >= 0 {
		return indent + mapped + strings.TrimRight(tail[:idx], " \t") + annotation + " " + tail[idx:]
	}
	return indent + mapped + tail + annotation
}

// lookaheadTableMap scans forward for an explicit @@map annotation within
// the current block, bounded by the next block close. At end of input the
// scan simply stops; an unterminated block is not detected here.
func lookaheadTableMap(rest []string) (string, bool) {
	for _, line := range rest {
		if blockCloseRe.MatchString(line) {
			return "", false
		}
		if m := tableMapRe.FindStringSubmatch(line); m != nil {
			return m[1], true
		}
	}
	return "", false
}

func isComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "//")
}
