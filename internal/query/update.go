// Package query builds the parameterized SQL fragments shared by every
// repository: SET clauses for partial updates and WHERE/ORDER BY fragments
// for list queries. Column names always come from code, values always go
// through placeholders; nothing here interpolates caller input into SQL.
package query

import (
	"fmt"
	"sort"
	"strings"

	"wishlist-service/internal/apperr"
)

// PartialUpdate translates a sparse field map into a SET clause and the
// matching ordered argument list. cols maps logical field names to physical
// column names; fields missing from cols keep their name as-is. Placeholders
// are numbered from $1 and contiguous, in sorted field order, so callers can
// append their identifying key(s) as $len(args)+1 onward.
//
// An empty field map is rejected with a BadRequest error: updating nothing
// is a caller mistake, not a no-op.
func PartialUpdate(fields map[string]any, cols map[string]string) (string, []any, error) {
	if len(fields) == 0 {
		return "", nil, apperr.BadRequest("no fields to update")
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	frags := make([]string, 0, len(names))
	args := make([]any, 0, len(names))
	for i, name := range names {
		col, ok := cols[name]
		if !ok {
			col = name
		}
		frags = append(frags, fmt.Sprintf("%s = $%d", col, i+1))
		args = append(args, fields[name])
	}

	return strings.Join(frags, ", "), args, nil
}
