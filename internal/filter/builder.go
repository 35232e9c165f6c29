package filter

// Rule turns raw params into at most one condition.
type Rule func(Params) (Condition, bool)

// Build folds rules in order into a predicate. Rules that report no
// condition contribute nothing.
func Build(p Params, rules ...Rule) Predicate {
	var conditions []Condition
	for _, rule := range rules {
		if c, ok := rule(p); ok {
			conditions = append(conditions, c)
		}
	}
	return Predicate{conditions: conditions}
}

// Exact matches column = value.
func Exact(key, column string) Rule {
	return func(p Params) (Condition, bool) {
		v, ok := p.lookup(key)
		if !ok {
			return Condition{}, false
		}
		return Condition{Column: column, Operator: OpEqual, Values: []any{v}}, true
	}
}

// Contains is a case-insensitive substring match.
func Contains(key, column string) Rule {
	return func(p Params) (Condition, bool) {
		v, ok := p.lookup(key)
		if !ok {
			return Condition{}, false
		}
		return Condition{Column: column, Operator: OpILike, Values: []any{"%" + v + "%"}}, true
	}
}

// AtLeast is an inclusive lower bound.
func AtLeast(key, column string) Rule {
	return func(p Params) (Condition, bool) {
		v, ok := p.lookup(key)
		if !ok {
			return Condition{}, false
		}
		return Condition{Column: column, Operator: OpGreaterOrEqual, Values: []any{v}}, true
	}
}

// AtMost is an inclusive upper bound.
func AtMost(key, column string) Rule {
	return func(p Params) (Condition, bool) {
		v, ok := p.lookup(key)
		if !ok {
			return Condition{}, false
		}
		return Condition{Column: column, Operator: OpLessOrEqual, Values: []any{v}}, true
	}
}

// Range emits a single BETWEEN when both bounds are present and a
// one-sided inclusive bound when only one is.
func Range(minKey, maxKey, column string) Rule {
	lower, upper := AtLeast(minKey, column), AtMost(maxKey, column)
	return func(p Params) (Condition, bool) {
		lo, hasLo := p.lookup(minKey)
		hi, hasHi := p.lookup(maxKey)
		if hasLo && hasHi {
			return Condition{Column: column, Operator: OpBetween, Values: []any{lo, hi}}, true
		}
		if hasLo {
			return lower(p)
		}
		return upper(p)
	}
}

// Bool matches the literal strings "true" and "false"; any other value
// leaves the column unfiltered.
func Bool(key, column string) Rule {
	return func(p Params) (Condition, bool) {
		switch p[key] {
		case "true":
			return Condition{Column: column, Operator: OpEqual, Values: []any{true}}, true
		case "false":
			return Condition{Column: column, Operator: OpEqual, Values: []any{false}}, true
		}
		return Condition{}, false
	}
}
