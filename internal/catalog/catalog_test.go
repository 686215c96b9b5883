package catalog

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"TABLE_NAME", "TABLE_COMMENT"}).
		AddRow("order_items", "line items").
		AddRow("users", "")

	mock.ExpectQuery("SELECT TABLE_NAME, TABLE_COMMENT FROM INFORMATION_SCHEMA.TABLES").
		WithArgs("appdb", "BASE TABLE").
		WillReturnRows(rows)

	tables, err := ListTables(context.Background(), db, "appdb")
	require.NoError(t, err)

	assert.Equal(t, []Table{
		{Name: "order_items", Comment: "line items"},
		{Name: "users", Comment: ""},
	}, tables)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTablesNullComment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"TABLE_NAME", "TABLE_COMMENT"}).
		AddRow("users", nil)

	mock.ExpectQuery("SELECT TABLE_NAME, TABLE_COMMENT FROM INFORMATION_SCHEMA.TABLES").
		WithArgs("appdb", "BASE TABLE").
		WillReturnRows(rows)

	tables, err := ListTables(context.Background(), db, "appdb")
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "", tables[0].Comment)
}

func TestListTablesQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT TABLE_NAME, TABLE_COMMENT FROM INFORMATION_SCHEMA.TABLES").
		WillReturnError(assert.AnError)

	_, err = ListTables(context.Background(), db, "appdb")
	assert.Error(t, err)
}

func TestListColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"TABLE_NAME", "COLUMN_NAME", "COLUMN_TYPE", "IS_NULLABLE",
		"COLUMN_DEFAULT", "EXTRA", "COLUMN_COMMENT",
	}).
		AddRow("order_items", "id", "bigint", "NO", nil, "auto_increment", "").
		AddRow("order_items", "user_id", "bigint", "YES", nil, "", "buyer reference")

	mock.ExpectQuery("SELECT TABLE_NAME, COLUMN_NAME, COLUMN_TYPE, IS_NULLABLE, COLUMN_DEFAULT, EXTRA, COLUMN_COMMENT FROM INFORMATION_SCHEMA.COLUMNS").
		WithArgs("appdb").
		WillReturnRows(rows)

	columns, err := ListColumns(context.Background(), db, "appdb")
	require.NoError(t, err)
	require.Len(t, columns, 2)

	assert.Equal(t, "order_items", columns[0].Table)
	assert.Equal(t, "id", columns[0].Name)
	assert.False(t, columns[0].IsNullable)
	assert.Equal(t, "auto_increment", columns[0].Extra)

	assert.Equal(t, "user_id", columns[1].Name)
	assert.True(t, columns[1].IsNullable)
	assert.Equal(t, "buyer reference", columns[1].Comment)
	assert.NoError(t, mock.ExpectationsWereMet())
}
