package query

import (
	"fmt"
	"strings"

	"github.com/unclebandit/blooddrive-backend/internal/filter"
)

// Join is an INNER JOIN against Table on the On expression. Rows of the
// base table without a match are dropped.
type Join struct {
	Table string
	On    string
}

// Select describes a single-table read with optional join, filter,
// grouping, ordering and an offset/limit window. Limit 0 means unbounded.
type Select struct {
	Table   string
	Columns []string
	Joins   []Join
	Where   filter.Predicate
	GroupBy []string
	OrderBy []string
	Limit   int
	Offset  int
}

func (s Select) from(b *strings.Builder) []any {
	b.WriteString(" FROM ")
	b.WriteString(s.Table)
	for _, j := range s.Joins {
		fmt.Fprintf(b, " INNER JOIN %s ON %s", j.Table, j.On)
	}
	where, args := s.Where.SQL(1)
	if where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(where)
	}
	return args
}

// Build renders the statement and its positional arguments.
func (s Select) Build() (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(s.Columns, ", "))
	args := s.from(&b)

	if len(s.GroupBy) > 0 {
		b.WriteString(" GROUP BY ")
		b.WriteString(strings.Join(s.GroupBy, ", "))
	}
	if len(s.OrderBy) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(s.OrderBy, ", "))
	}
	if s.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, s.Limit, s.Offset)
	}
	return b.String(), args
}

// Count renders COUNT(*) over the same table, joins and filter, ignoring
// grouping, ordering and the window.
func (s Select) Count() (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT COUNT(*)")
	args := s.from(&b)
	return b.String(), args
}
