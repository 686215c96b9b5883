// Package mapping builds the ground-truth rename maps from the database
// catalog. The maps are constructed once per run and treated as read-only by
// the schema walker.
package mapping

import (
	"prisma-remap/internal/catalog"
	"prisma-remap/internal/naming"
)

// Maps holds the catalog-derived rename maps.
type Maps struct {
	// Tables maps a raw table name to its model name, e.g. "order_items" -> "OrderItem".
	Tables map[string]string
	// Columns maps "table.column" composite keys to field names,
	// e.g. "order_items.user_id" -> "userId".
	Columns map[string]string
}

// ColumnKey builds the composite lookup key for a column.
func ColumnKey(table, column string) string {
	return table + "." + column
}

// Field returns the mapped field name for a column, falling back to the
// namer's transform when the catalog has no entry.
func (m Maps) Field(table, column string, namer *naming.Namer) string {
	if mapped, ok := m.Columns[ColumnKey(table, column)]; ok {
		return mapped
	}
	return namer.ToFieldName(column)
}

// Build derives rename maps from the catalog listing. Only identifiers
// flagged by naming.NeedsTransform are entered; names that already carry
// upper-case characters are assumed hand-maintained and never renamed.
func Build(tables []catalog.Table, columns []catalog.Column, namer *naming.Namer) Maps {
	m := Maps{
		Tables:  make(map[string]string, len(tables)),
		Columns: make(map[string]string, len(columns)),
	}

	for _, t := range tables {
		if !naming.NeedsTransform(t.Name) {
			continue
		}
		m.Tables[t.Name] = namer.ToModelName(t.Name)
	}

	for _, c := range columns {
		if !naming.NeedsTransform(c.Name) {
			continue
		}
		m.Columns[ColumnKey(c.Table, c.Name)] = namer.ToFieldName(c.Name)
	}

	return m
}
