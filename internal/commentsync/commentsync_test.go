package commentsync

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"prisma-remap/internal/catalog"
)

func TestPullInsertsDocComments(t *testing.T) {
	tables := []catalog.Table{
		{Name: "orders", Comment: "customer orders"},
	}
	columns := []catalog.Column{
		{Table: "orders", Name: "placed_at", Comment: "UTC order timestamp"},
		{Table: "orders", Name: "id"},
	}

	input := strings.Join([]string{
		"model Order {",
		`  @@map("orders")`,
		"  id Int @id",
		`  placedAt DateTime @map("placed_at")`,
		"}",
	}, "\n")

	expected := strings.Join([]string{
		"/// customer orders",
		"model Order {",
		`  @@map("orders")`,
		"  id Int @id",
		"  /// UTC order timestamp",
		`  placedAt DateTime @map("placed_at")`,
		"}",
	}, "\n")

	assert.Equal(t, expected, Pull(input, tables, columns))
}

func TestPullKeepsExistingDocComments(t *testing.T) {
	tables := []catalog.Table{
		{Name: "orders", Comment: "catalog comment"},
	}

	input := strings.Join([]string{
		"/// hand-written documentation",
		"model Order {",
		`  @@map("orders")`,
		"  id Int @id",
		"}",
	}, "\n")

	assert.Equal(t, input, Pull(input, tables, nil))
}

func TestPullResolvesTableWithoutAnnotation(t *testing.T) {
	tables := []catalog.Table{
		{Name: "user", Comment: "application users"},
	}

	input := strings.Join([]string{
		"model User {",
		"  id Int @id",
		"}",
	}, "\n")

	out := Pull(input, tables, nil)
	assert.True(t, strings.HasPrefix(out, "/// application users\n"))
}

func TestScriptTableComment(t *testing.T) {
	tables := []catalog.Table{{Name: "orders", Comment: "stale"}}

	input := strings.Join([]string{
		"/// customer orders",
		"model Order {",
		`  @@map("orders")`,
		"  id Int @id",
		"}",
	}, "\n")

	out := Script(input, tables, nil)
	assert.Equal(t, "ALTER TABLE `orders` COMMENT = 'customer orders';\n", out)
}

func TestScriptColumnComment(t *testing.T) {
	tables := []catalog.Table{{Name: "orders"}}
	columns := []catalog.Column{
		{
			Table:      "orders",
			Name:       "placed_at",
			ColumnType: "datetime",
			IsNullable: false,
		},
	}

	input := strings.Join([]string{
		"model Order {",
		`  @@map("orders")`,
		"  /// UTC order timestamp",
		`  placedAt DateTime @map("placed_at")`,
		"}",
	}, "\n")

	out := Script(input, tables, columns)
	assert.Equal(t,
		"ALTER TABLE `orders` MODIFY COLUMN `placed_at` datetime NOT NULL COMMENT 'UTC order timestamp';\n",
		out,
	)
}

func TestScriptColumnDefinitionRestated(t *testing.T) {
	columns := []catalog.Column{
		{
			Table:      "orders",
			Name:       "status",
			ColumnType: "varchar(32)",
			IsNullable: true,
			Default:    sql.NullString{String: "open", Valid: true},
		},
	}

	input := strings.Join([]string{
		"model Order {",
		`  @@map("orders")`,
		"  /// order lifecycle state",
		`  status String @map("status")`,
		"}",
	}, "\n")

	out := Script(input, []catalog.Table{{Name: "orders"}}, columns)
	assert.Contains(t, out, "MODIFY COLUMN `status` varchar(32) DEFAULT 'open' COMMENT 'order lifecycle state';")
}

func TestScriptNoChanges(t *testing.T) {
	tables := []catalog.Table{{Name: "orders", Comment: "customer orders"}}

	input := strings.Join([]string{
		"/// customer orders",
		"model Order {",
		`  @@map("orders")`,
		"  id Int @id",
		"}",
	}, "\n")

	assert.Empty(t, Script(input, tables, nil))
}

func TestScriptEscapesQuotes(t *testing.T) {
	tables := []catalog.Table{{Name: "orders", Comment: ""}}

	input := strings.Join([]string{
		"/// the customer's orders",
		"model Order {",
		`  @@map("orders")`,
		"}",
	}, "\n")

	out := Script(input, tables, nil)
	assert.Contains(t, out, "'the customer''s orders'")
}
