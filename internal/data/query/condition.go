// Package query models filter predicates as a small boolean expression tree.
// Conditions are plain values: they can be combined freely with And, Or and
// Not and are only turned into SQL when a repository compiles them with Where.
//
// Column names are trusted identifiers supplied by repository code; every
// value ends up as a bind parameter.
package query

// Condition is a node of a filter expression.
type Condition interface {
	condition()
}

type Operator string

const (
	OpEq  Operator = "="
	OpNeq Operator = "<>"
	OpLt  Operator = "<"
	OpLte Operator = "<="
	OpGt  Operator = ">"
	OpGte Operator = ">="
)

type (
	truth   struct{}
	falsity struct{}

	andCond struct{ conds []Condition }
	orCond  struct{ conds []Condition }
	notCond struct{ cond Condition }

	compare struct {
		column string
		op     Operator
		value  any
	}

	// iequal compares case-insensitively.
	iequal struct {
		column string
		value  string
	}

	columnCompare struct {
		left  string
		op    Operator
		right string
	}

	inCond struct {
		column string
		values []any
	}

	existsCond struct {
		from  string
		where Condition
	}
)

func (truth) condition()         {}
func (falsity) condition()       {}
func (andCond) condition()       {}
func (orCond) condition()        {}
func (notCond) condition()       {}
func (compare) condition()       {}
func (iequal) condition()        {}
func (columnCompare) condition() {}
func (inCond) condition()        {}
func (existsCond) condition()    {}

// True matches everything. It is the identity of And.
func True() Condition { return truth{} }

// False matches nothing. It is the identity of Or.
func False() Condition { return falsity{} }

// IsTrue reports whether c places no constraint at all.
func IsTrue(c Condition) bool {
	_, ok := c.(truth)
	return c == nil || ok
}

// And combines conditions with logical AND. Nil and True operands are dropped
// and nested ANDs are flattened.
func And(conds ...Condition) Condition {
	flat := make([]Condition, 0, len(conds))
	for _, c := range conds {
		switch c := c.(type) {
		case nil, truth:
			continue
		case falsity:
			return falsity{}
		case andCond:
			flat = append(flat, c.conds...)
		default:
			flat = append(flat, c)
		}
	}

	switch len(flat) {
	case 0:
		return truth{}
	case 1:
		return flat[0]
	}
	return andCond{conds: flat}
}

// Or combines conditions with logical OR. Nil and False operands are dropped.
func Or(conds ...Condition) Condition {
	flat := make([]Condition, 0, len(conds))
	for _, c := range conds {
		switch c := c.(type) {
		case nil, falsity:
			continue
		case truth:
			return truth{}
		case orCond:
			flat = append(flat, c.conds...)
		default:
			flat = append(flat, c)
		}
	}

	switch len(flat) {
	case 0:
		return falsity{}
	case 1:
		return flat[0]
	}
	return orCond{conds: flat}
}

// Not negates c.
func Not(c Condition) Condition {
	switch c := c.(type) {
	case nil, truth:
		return falsity{}
	case falsity:
		return truth{}
	case notCond:
		return c.cond
	}
	return notCond{cond: c}
}

func Eq(column string, value any) Condition  { return compare{column, OpEq, value} }
func Neq(column string, value any) Condition { return compare{column, OpNeq, value} }
func Lt(column string, value any) Condition  { return compare{column, OpLt, value} }
func Lte(column string, value any) Condition { return compare{column, OpLte, value} }
func Gt(column string, value any) Condition  { return compare{column, OpGt, value} }
func Gte(column string, value any) Condition { return compare{column, OpGte, value} }

// IEq matches column against value ignoring case.
func IEq(column, value string) Condition { return iequal{column, value} }

// ColumnEq relates two columns, typically to correlate a subquery.
func ColumnEq(left, right string) Condition { return columnCompare{left, OpEq, right} }

// In matches column against any of values. An empty list matches nothing.
func In[T any](column string, values ...T) Condition {
	if len(values) == 0 {
		return falsity{}
	}
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return inCond{column: column, values: vs}
}

// Exists holds when at least one row of from satisfies where.
func Exists(from string, where Condition) Condition {
	return existsCond{from: from, where: where}
}
