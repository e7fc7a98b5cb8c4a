package query

import (
	"strings"

	"cloud.google.com/go/spanner"
)

// Direction is an ORDER BY direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// Builder assembles read-only SELECT statements over one ledger table.
// Parameters are named @p0, @p1, ... in condition order, a form both
// Spanner and the SQLite driver bind. Every method returns a copy, so a
// partially built query can be shared between reports.
type Builder struct {
	table   string
	columns []string
	where   []Condition
	groupBy []string
	orderBy string
	dir     Direction
}

// From starts a query on table.
func From(table string) *Builder {
	return &Builder{table: table}
}

// Select appends result columns or aggregate expressions.
func (b *Builder) Select(columns ...string) *Builder {
	c := b.clone()
	c.columns = append(c.columns, columns...)
	return c
}

// Where ANDs a condition onto the query.
func (b *Builder) Where(cond Condition) *Builder {
	c := b.clone()
	c.where = append(c.where, cond)
	return c
}

// WhereIf adds cond only when ok holds. Report filters with a zero
// bound use it to stay open-ended.
func (b *Builder) WhereIf(ok bool, cond Condition) *Builder {
	if !ok {
		return b
	}
	return b.Where(cond)
}

func (b *Builder) GroupBy(columns ...string) *Builder {
	c := b.clone()
	c.groupBy = append(c.groupBy, columns...)
	return c
}

func (b *Builder) OrderBy(column string, dir Direction) *Builder {
	c := b.clone()
	c.orderBy = column
	c.dir = dir
	return c
}

// Build renders the statement.
func (b *Builder) Build() spanner.Statement {
	var sb strings.Builder
	params := map[string]interface{}{}

	sb.WriteString("SELECT ")
	if len(b.columns) == 0 {
		sb.WriteString("*")
	} else {
		sb.WriteString(strings.Join(b.columns, ", "))
	}
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)

	if len(b.where) > 0 {
		parts := make([]string, 0, len(b.where))
		next := 0
		for _, cond := range b.where {
			fragment, p := cond.SQL(next)
			parts = append(parts, fragment)
			for k, v := range p {
				params[k] = v
			}
			next += len(p)
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(parts, " AND "))
	}

	if len(b.groupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(b.groupBy, ", "))
	}

	if b.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.orderBy)
		if b.dir == Desc {
			sb.WriteString(" DESC")
		} else {
			sb.WriteString(" ASC")
		}
	}

	return spanner.Statement{SQL: sb.String(), Params: params}
}

func (b *Builder) clone() *Builder {
	return &Builder{
		table:   b.table,
		columns: append([]string(nil), b.columns...),
		where:   append([]Condition(nil), b.where...),
		groupBy: append([]string(nil), b.groupBy...),
		orderBy: b.orderBy,
		dir:     b.dir,
	}
}
