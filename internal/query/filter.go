package query

import (
	"fmt"
	"strings"
)

// Builder composes a list query from a base SELECT, zero or more AND-joined
// predicates and exactly one ORDER BY. Predicates are added conditionally;
// an empty filter value is skipped, so callers can chain unconditionally.
type Builder struct {
	base  string
	conds []string
	args  []any
	order string
}

func New(base string) *Builder {
	return &Builder{base: base}
}

// WhereContains adds a case-insensitive substring match on col. The value
// is lowercased and wrapped in wildcards on the argument side; the column
// side is folded with LOWER so the predicate stays parameterized.
func (b *Builder) WhereContains(col, value string) *Builder {
	if value == "" {
		return b
	}
	b.args = append(b.args, "%"+strings.ToLower(value)+"%")
	b.conds = append(b.conds, fmt.Sprintf("LOWER(%s) LIKE $%d", col, len(b.args)))
	return b
}

// WhereEq adds an exact-match predicate on col. Empty string values are
// treated as "filter not provided".
func (b *Builder) WhereEq(col string, value any) *Builder {
	if s, ok := value.(string); ok && s == "" {
		return b
	}
	b.args = append(b.args, value)
	b.conds = append(b.conds, fmt.Sprintf("%s = $%d", col, len(b.args)))
	return b
}

// OrderBy sets the sort expression. The expression must be a code constant,
// never caller input; repositories map recognized orderBy values onto it
// and silently fall back to the entity default for anything else.
func (b *Builder) OrderBy(expr string) *Builder {
	b.order = expr
	return b
}

// SQL assembles the final query text.
func (b *Builder) SQL() string {
	var sb strings.Builder
	sb.WriteString(b.base)
	if len(b.conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.conds, " AND "))
	}
	if b.order != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.order)
	}
	return sb.String()
}

// Args returns the ordered argument list matching the placeholders in SQL.
func (b *Builder) Args() []any {
	return b.args
}
