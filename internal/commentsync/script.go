package commentsync

import (
	"fmt"
	"regexp"
	"strings"

	"prisma-remap/internal/catalog"
	"prisma-remap/internal/sqlutil"
)

// Script generates an ALTER TABLE script that brings database comments in
// line with the schema's /// doc comments. Statements are only emitted for
// comments that differ from what the catalog already holds, so applying the
// script is a no-op when the two sides agree. Column statements need the
// full column definition and are skipped (with no error) for columns the
// catalog does not list.
func Script(schema string, tables []catalog.Table, columns []catalog.Column) string {
	currentTable := make(map[string]string, len(tables))
	for _, t := range tables {
		currentTable[t.Name] = t.Comment
	}
	currentColumn := make(map[string]catalog.Column, len(columns))
	for _, c := range columns {
		currentColumn[c.Table+"."+c.Name] = c
	}

	var stmts []string

	lines := strings.Split(schema, "\n")
	var pendingDoc []string
	table := ""
	inBlock := false

	for i, line := range lines {
		if docCommentRe.MatchString(line) {
			text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "///"))
			pendingDoc = append(pendingDoc, text)
			continue
		}

		switch {
		case !inBlock && modelHeaderRe.MatchString(line):
			m := modelHeaderRe.FindStringSubmatch(line)
			table = resolveTable(m[2], lines[i+1:])
			inBlock = true
			if doc := strings.Join(pendingDoc, " "); doc != "" {
				if existing, ok := currentTable[table]; ok && existing != doc {
					stmts = append(stmts, fmt.Sprintf(
						"ALTER TABLE %s COMMENT = %s;",
						sqlutil.QuoteIdentifier(table),
						sqlutil.QuoteString(doc),
					))
				}
			}
		case inBlock && blockCloseRe.MatchString(line):
			table = ""
			inBlock = false
		case inBlock && isFieldLine(line):
			m := fieldDeclRe.FindStringSubmatch(line)
			raw := m[2]
			if fm := fieldMapRe.FindStringSubmatch(line); fm != nil {
				raw = fm[1]
			}
			if doc := strings.Join(pendingDoc, " "); doc != "" {
				if col, ok := currentColumn[table+"."+raw]; ok && col.Comment != doc {
					stmts = append(stmts, modifyColumnStatement(col, doc))
				}
			}
		}
		pendingDoc = nil
	}

	if len(stmts) == 0 {
		return ""
	}
	return strings.Join(stmts, "\n") + "\n"
}

// modifyColumnStatement rebuilds the column definition from the catalog
// listing. MySQL has no way to change a column comment without restating
// the definition.
func modifyColumnStatement(col catalog.Column, comment string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ALTER TABLE %s MODIFY COLUMN %s %s",
		sqlutil.QuoteIdentifier(col.Table),
		sqlutil.QuoteIdentifier(col.Name),
		col.ColumnType,
	)
	if !col.IsNullable {
		b.WriteString(" NOT NULL")
	}
	if col.Default.Valid {
		fmt.Fprintf(&b, " DEFAULT %s", defaultLiteral(col.Default.String))
	}
	if extra := strings.TrimSpace(col.Extra); extra != "" && !strings.Contains(strings.ToUpper(extra), "DEFAULT_GENERATED") {
		fmt.Fprintf(&b, " %s", extra)
	}
	fmt.Fprintf(&b, " COMMENT %s;", sqlutil.QuoteString(comment))
	return b.String()
}

var numericLiteralRe = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

func defaultLiteral(v string) string {
	if numericLiteralRe.MatchString(v) {
		return v
	}
	if strings.HasPrefix(strings.ToUpper(v), "CURRENT_TIMESTAMP") {
		return v
	}
	return sqlutil.QuoteString(v)
}
