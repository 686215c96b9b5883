package naming

import (
	"log/slog"
	"strings"
)

// Namer converts raw SQL identifiers to Prisma-idiomatic names. It handles
// singularization overrides and case conversion. Alternate naming policies
// substitute at this boundary without touching the schema walker.
type Namer struct {
	config Config
	logger *slog.Logger
}

// New creates a Namer with the given configuration
func New(cfg Config, logger *slog.Logger) *Namer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Namer{
		config: cfg,
		logger: logger,
	}
}

// Default returns a Namer with default configuration
func Default() *Namer {
	return New(DefaultConfig(), nil)
}

// NeedsTransform reports whether a raw identifier is a rename candidate.
// Only fully lower-case identifiers qualify; anything already carrying an
// upper-case character is treated as hand-written and left alone.
func NeedsTransform(identifier string) bool {
	return identifier == strings.ToLower(identifier)
}

// ToModelName converts a table name to a Prisma model name (singular PascalCase)
// Example: "order_items" -> "OrderItem"
func (n *Namer) ToModelName(tableName string) string {
	return toPascalCase(n.Singularize(tableName))
}

// ToFieldName converts a column name to a Prisma field name (camelCase)
// Example: "user_name" -> "userName"
func (n *Namer) ToFieldName(columnName string) string {
	return toCamelCase(columnName)
}

// toPascalCase converts snake_case to PascalCase
func toPascalCase(s string) string {
	parts := strings.Split(s, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, "")
}

// toCamelCase converts snake_case to camelCase
func toCamelCase(s string) string {
	parts := strings.Split(s, "_")
	for i := 1; i < len(parts); i++ {
		if len(parts[i]) > 0 {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}
