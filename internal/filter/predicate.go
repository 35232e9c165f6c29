package filter

import (
	"fmt"
	"net/url"
	"strings"
)

// Operator is a SQL comparison operator.
type Operator string

const (
	OpEqual          Operator = "="
	OpGreaterOrEqual Operator = ">="
	OpLessOrEqual    Operator = "<="
	OpBetween        Operator = "BETWEEN"
	OpILike          Operator = "ILIKE"
)

// Params holds raw filter values keyed by query parameter name.
// An empty value is treated the same as an absent one.
type Params map[string]string

// ParamsFromQuery keeps the first value of every query parameter.
func ParamsFromQuery(values url.Values) Params {
	p := make(Params, len(values))
	for k, v := range values {
		if len(v) > 0 {
			p[k] = v[0]
		}
	}
	return p
}

func (p Params) lookup(key string) (string, bool) {
	v, ok := p[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Condition is a single column comparison. BETWEEN carries two values,
// every other operator carries one.
type Condition struct {
	Column   string
	Operator Operator
	Values   []any
}

func (c Condition) render(param int) (string, int) {
	if c.Operator == OpBetween {
		return fmt.Sprintf("%s BETWEEN $%d AND $%d", c.Column, param, param+1), 2
	}
	return fmt.Sprintf("%s %s $%d", c.Column, c.Operator, param), 1
}

// Predicate is an immutable conjunction of conditions. The zero value
// matches every row.
type Predicate struct {
	conditions []Condition
}

func And(conditions ...Condition) Predicate {
	return Predicate{conditions: append([]Condition(nil), conditions...)}
}

func (p Predicate) IsEmpty() bool {
	return len(p.conditions) == 0
}

// Conditions returns a copy of the predicate's conditions in order.
func (p Predicate) Conditions() []Condition {
	return append([]Condition(nil), p.conditions...)
}

// SQL renders the predicate as a boolean expression whose positional
// parameters start at $start. An empty predicate renders as "".
func (p Predicate) SQL(start int) (string, []any) {
	if p.IsEmpty() {
		return "", nil
	}
	clauses := make([]string, 0, len(p.conditions))
	args := make([]any, 0, len(p.conditions))
	param := start
	for _, c := range p.conditions {
		clause, used := c.render(param)
		clauses = append(clauses, clause)
		args = append(args, c.Values...)
		param += used
	}
	return strings.Join(clauses, " AND "), args
}
