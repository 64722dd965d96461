package query

import (
	"fmt"
	"strings"
)

// Where compiles c into a PostgreSQL boolean expression. Placeholders start at
// $offset+1 so the clause can follow arguments already bound by the caller.
func Where(c Condition, offset int) (string, []any) {
	b := &sqlBuilder{offset: offset}
	b.write(c)
	return b.sb.String(), b.args
}

type sqlBuilder struct {
	sb     strings.Builder
	args   []any
	offset int
}

func (b *sqlBuilder) bind(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", b.offset+len(b.args))
}

func (b *sqlBuilder) write(c Condition) {
	switch c := c.(type) {
	case nil, truth:
		b.sb.WriteString("TRUE")
	case falsity:
		b.sb.WriteString("FALSE")
	case andCond:
		b.join(c.conds, " AND ")
	case orCond:
		b.join(c.conds, " OR ")
	case notCond:
		b.sb.WriteString("NOT (")
		b.write(c.cond)
		b.sb.WriteString(")")
	case compare:
		fmt.Fprintf(&b.sb, "%s %s %s", c.column, c.op, b.bind(c.value))
	case iequal:
		fmt.Fprintf(&b.sb, "LOWER(%s) = LOWER(%s)", c.column, b.bind(c.value))
	case columnCompare:
		fmt.Fprintf(&b.sb, "%s %s %s", c.left, c.op, c.right)
	case inCond:
		placeholders := make([]string, len(c.values))
		for i, v := range c.values {
			placeholders[i] = b.bind(v)
		}
		fmt.Fprintf(&b.sb, "%s IN (%s)", c.column, strings.Join(placeholders, ", "))
	case existsCond:
		fmt.Fprintf(&b.sb, "EXISTS (SELECT 1 FROM %s WHERE ", c.from)
		b.write(c.where)
		b.sb.WriteString(")")
	default:
		panic(fmt.Sprintf("query: unsupported condition %T", c))
	}
}

func (b *sqlBuilder) join(conds []Condition, sep string) {
	b.sb.WriteString("(")
	for i, c := range conds {
		if i > 0 {
			b.sb.WriteString(sep)
		}
		b.write(c)
	}
	b.sb.WriteString(")")
}
