// Package commentsync keeps database comment metadata and schema
// documentation comments in step. Pull copies table and column comments from
// the catalog into /// doc comments; Script turns /// doc comments into an
// ALTER TABLE script. The script is only ever written to a file, never
// executed by this tool.
package commentsync

import (
	"regexp"
	"strings"

	"prisma-remap/internal/catalog"
)

var (
	modelHeaderRe = regexp.MustCompile(`^(\s*)model\s+(\w+)\s*\{`)
	blockCloseRe  = regexp.MustCompile(`^\s*}\s*$`)
	tableMapRe    = regexp.MustCompile(`@@map\(\s*["']([^"']+)["']\s*\)`)
	fieldMapRe    = regexp.MustCompile(`@map\(\s*["']([^"']+)["']\s*\)`)
	fieldDeclRe   = regexp.MustCompile(`^(\s*)([A-Za-z_]\w*)(\s.*)$`)
	docCommentRe  = regexp.MustCompile(`^\s*///`)
)

// Pull inserts /// doc comments from the catalog into the schema text.
// Models and fields that already carry a doc comment are left alone, so
// hand-written documentation always wins over database comments.
func Pull(schema string, tables []catalog.Table, columns []catalog.Column) string {
	tableComments := make(map[string]string, len(tables))
	for _, t := range tables {
		if t.Comment != "" {
			tableComments[t.Name] = t.Comment
		}
	}
	columnComments := make(map[string]string, len(columns))
	for _, c := range columns {
		if c.Comment != "" {
			columnComments[c.Table+"."+c.Name] = c.Comment
		}
	}

	lines := strings.Split(schema, "\n")
	out := make([]string, 0, len(lines))
	table := ""
	inBlock := false

	for i, line := range lines {
		switch {
		case !inBlock && modelHeaderRe.MatchString(line):
			m := modelHeaderRe.FindStringSubmatch(line)
			indent, model := m[1], m[2]
			table = resolveTable(model, lines[i+1:])
			inBlock = true
			if c, ok := tableComments[table]; ok && !endsWithDoc(out) {
				out = append(out, indent+"/// "+c)
			}
		case inBlock && blockCloseRe.MatchString(line):
			table = ""
			inBlock = false
		case inBlock && isFieldLine(line):
			m := fieldDeclRe.FindStringSubmatch(line)
			indent, field := m[1], m[2]
			raw := field
			if fm := fieldMapRe.FindStringSubmatch(line); fm != nil {
				raw = fm[1]
			}
			if c, ok := columnComments[table+"."+raw]; ok && !endsWithDoc(out) {
				out = append(out, indent+"/// "+c)
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// resolveTable mirrors the rewriter's table resolution for an annotated
// schema: an explicit @@map wins, otherwise the lower-cased model name.
func resolveTable(model string, rest []string) string {
	for _, line := range rest {
		if blockCloseRe.MatchString(line) {
			break
		}
		if m := tableMapRe.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return strings.ToLower(model)
}

func isFieldLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "@") {
		return false
	}
	return fieldDeclRe.MatchString(line)
}

func endsWithDoc(out []string) bool {
	return len(out) > 0 && docCommentRe.MatchString(out[len(out)-1])
}
