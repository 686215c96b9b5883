package rewrite

import (
	"regexp"

	"prisma-remap/internal/mapping"
	"prisma-remap/internal/naming"
)

var (
	// directiveRe matches block attributes that reference fields by name.
	directiveRe = regexp.MustCompile(`^\s*@@(index|unique|id|fulltext)\(`)
	// bracketRe locates the field list inside a directive's argument list.
	bracketRe = regexp.MustCompile(`\[[^\]]*\]`)
	// listEntryRe matches one field reference, optionally carrying inline
	// arguments, e.g. "user_id" or "title(sort: Desc)". The parenthesized
	// suffix is consumed with the entry so its contents are never treated
	// as field references themselves.
	listEntryRe = regexp.MustCompile(`([A-Za-z_]\w*)(\([^()]*\))?`)
)

// RewriteDirective rewrites the field references inside an @@index, @@unique,
// @@id or @@fulltext attribute line. Field names resolve through the catalog
// column map for the block's table, falling back to the namer. Inline
// arguments attached to an entry are preserved verbatim. Lines without a
// bracketed field list are returned unchanged.
func RewriteDirective(line string, maps mapping.Maps, table string, namer *naming.Namer) string {
	if !directiveRe.MatchString(line) {
		return line
	}

	loc := bracketRe.FindStringIndex(line)
	if loc == nil {
		return line
	}

	list := line[loc[0]:loc[1]]
	rewritten := listEntryRe.ReplaceAllStringFunc(list, func(entry string) string {
		sub := listEntryRe.FindStringSubmatch(entry)
		ident, suffix := sub[1], sub[2]
		if !naming.NeedsTransform(ident) {
			return entry
		}
		return maps.Field(table, ident, namer) + suffix
	})

	return line[:loc[0]] + rewritten + line[loc[1]:]
}
