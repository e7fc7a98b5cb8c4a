package query

import "fmt"

// Condition renders one WHERE predicate. index is the number of
// parameters already bound, used to keep parameter names unique.
type Condition interface {
	SQL(index int) (string, map[string]interface{})
}

type comparison struct {
	column string
	op     string
	value  interface{}
}

// Eq matches column = value.
func Eq(column string, value interface{}) Condition {
	return comparison{column: column, op: "=", value: value}
}

// Gte is an inclusive lower bound, used for report from_date.
func Gte(column string, value interface{}) Condition {
	return comparison{column: column, op: ">=", value: value}
}

// Lt is an exclusive upper bound, used for report to_date.
func Lt(column string, value interface{}) Condition {
	return comparison{column: column, op: "<", value: value}
}

func (c comparison) SQL(index int) (string, map[string]interface{}) {
	name := fmt.Sprintf("p%d", index)
	return fmt.Sprintf("%s %s @%s", c.column, c.op, name), map[string]interface{}{name: c.value}
}
