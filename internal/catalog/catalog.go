// Package catalog reads table and column listings from the database's
// INFORMATION_SCHEMA. The listing is the ground truth the rewriter maps
// schema identifiers against.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Table represents one row of the table listing.
type Table struct {
	Name    string
	Comment string
}

// Column represents one row of the column listing. The type attributes are
// carried for comment-script generation, which needs the full column
// definition to emit MODIFY COLUMN statements.
type Column struct {
	Table      string
	Name       string
	ColumnType string
	IsNullable bool
	Default    sql.NullString
	Extra      string
	Comment    string
}

// Queryer provides query access for catalog listing.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// ListTables returns the base tables of the given database, ordered by name.
func ListTables(ctx context.Context, db Queryer, databaseName string) ([]Table, error) {
	query, args, err := sq.
		Select("TABLE_NAME", "TABLE_COMMENT").
		From("INFORMATION_SCHEMA.TABLES").
		Where(sq.Eq{"TABLE_SCHEMA": databaseName, "TABLE_TYPE": "BASE TABLE"}).
		OrderBy("TABLE_NAME").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build table listing query: %w", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var tables []Table
	for rows.Next() {
		var name string
		var comment sql.NullString
		if err := rows.Scan(&name, &comment); err != nil {
			return nil, err
		}
		tables = append(tables, Table{
			Name:    name,
			Comment: strings.TrimSpace(comment.String),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tables, nil
}

// ListColumns returns every column of the given database, ordered by table
// and ordinal position.
func ListColumns(ctx context.Context, db Queryer, databaseName string) ([]Column, error) {
	query, args, err := sq.
		Select(
			"TABLE_NAME",
			"COLUMN_NAME",
			"COLUMN_TYPE",
			"IS_NULLABLE",
			"COLUMN_DEFAULT",
			"EXTRA",
			"COLUMN_COMMENT",
		).
		From("INFORMATION_SCHEMA.COLUMNS").
		Where(sq.Eq{"TABLE_SCHEMA": databaseName}).
		OrderBy("TABLE_NAME", "ORDINAL_POSITION").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build column listing query: %w", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var columns []Column
	for rows.Next() {
		var col Column
		var isNullable string
		var comment sql.NullString
		if err := rows.Scan(&col.Table, &col.Name, &col.ColumnType, &isNullable, &col.Default, &col.Extra, &comment); err != nil {
			return nil, err
		}
		col.IsNullable = strings.ToUpper(isNullable) == "YES"
		col.Comment = strings.TrimSpace(comment.String)
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return columns, nil
}
