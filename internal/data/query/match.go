package query

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Row maps qualified column names ("l.city") to values for in-memory
// evaluation.
type Row map[string]any

// Source returns the rows an Exists subquery ranges over, keyed by its FROM
// text ("bookings b").
type Source func(from string) ([]Row, error)

// Match evaluates c against row with the same semantics Where gives it in SQL.
// Inside Exists the subquery row is layered over the outer one, so correlated
// references resolve.
func Match(c Condition, row Row, from Source) (bool, error) {
	switch c := c.(type) {
	case nil, truth:
		return true, nil
	case falsity:
		return false, nil
	case andCond:
		for _, sub := range c.conds {
			ok, err := Match(sub, row, from)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case orCond:
		for _, sub := range c.conds {
			ok, err := Match(sub, row, from)
			if err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	case notCond:
		ok, err := Match(c.cond, row, from)
		return !ok, err
	case compare:
		v, err := row.get(c.column)
		if err != nil {
			return false, err
		}
		return holds(v, c.op, c.value)
	case iequal:
		v, err := row.get(c.column)
		if err != nil {
			return false, err
		}
		s, ok := asString(v)
		return ok && strings.EqualFold(s, c.value), nil
	case columnCompare:
		left, err := row.get(c.left)
		if err != nil {
			return false, err
		}
		right, err := row.get(c.right)
		if err != nil {
			return false, err
		}
		return holds(left, c.op, right)
	case inCond:
		v, err := row.get(c.column)
		if err != nil {
			return false, err
		}
		for _, candidate := range c.values {
			if ok, err := holds(v, OpEq, candidate); err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	case existsCond:
		if from == nil {
			return false, fmt.Errorf("query: no source for %q", c.from)
		}
		inner, err := from(c.from)
		if err != nil {
			return false, err
		}
		for _, r := range inner {
			ok, err := Match(c.where, row.with(r), from)
			if err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	default:
		return false, fmt.Errorf("query: unsupported condition %T", c)
	}
}

func (r Row) get(column string) (any, error) {
	v, ok := r[column]
	if !ok {
		return nil, fmt.Errorf("query: unknown column %q", column)
	}
	return v, nil
}

func (r Row) with(inner Row) Row {
	merged := make(Row, len(r)+len(inner))
	for k, v := range r {
		merged[k] = v
	}
	for k, v := range inner {
		merged[k] = v
	}
	return merged
}

func holds(left any, op Operator, right any) (bool, error) {
	cmp, err := compareValues(left, right)
	if err != nil {
		// unordered values that did not compare equal
		if op == OpEq || op == OpNeq {
			return op == OpNeq, nil
		}
		return false, err
	}

	switch op {
	case OpEq:
		return cmp == 0, nil
	case OpNeq:
		return cmp != 0, nil
	case OpLt:
		return cmp < 0, nil
	case OpLte:
		return cmp <= 0, nil
	case OpGt:
		return cmp > 0, nil
	case OpGte:
		return cmp >= 0, nil
	}
	return false, fmt.Errorf("query: unknown operator %q", op)
}

// compareValues orders strings (including named string types), integers,
// times, and any type with a `Cmp(T) int` method such as decimal.Decimal.
// Other values of the same comparable type only support equality.
func compareValues(a, b any) (int, error) {
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb), nil
		}
	}
	if sa, ok := asString(a); ok {
		if sb, ok := asString(b); ok {
			return strings.Compare(sa, sb), nil
		}
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.IsValid() || !vb.IsValid() {
		return 0, fmt.Errorf("query: cannot compare %v with %v", a, b)
	}
	if isInt(va) && isInt(vb) {
		x, y := va.Int(), vb.Int()
		switch {
		case x < y:
			return -1, nil
		case x > y:
			return 1, nil
		}
		return 0, nil
	}
	if va.Type() == vb.Type() {
		if m := va.MethodByName("Cmp"); m.IsValid() && m.Type().NumIn() == 1 && m.Type().In(0) == vb.Type() {
			out := m.Call([]reflect.Value{vb})
			if len(out) == 1 && out[0].Kind() == reflect.Int {
				return int(out[0].Int()), nil
			}
		}
		if va.Comparable() && va.Equal(vb) {
			return 0, nil
		}
	}
	return 0, fmt.Errorf("query: cannot order %T against %T", a, b)
}

func asString(v any) (string, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.String {
		return "", false
	}
	return rv.String(), true
}

func isInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}
