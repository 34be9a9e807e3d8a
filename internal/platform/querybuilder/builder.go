package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition renders one WHERE predicate with PostgreSQL positional placeholders.
type Condition interface {
	appendSQL(buf *strings.Builder, args *[]any, argIndex *int)
}

type compareCondition struct {
	column string
	op     string
	value  any
}

func Eq(column string, value any) Condition {
	return compareCondition{column: column, op: "=", value: value}
}

func Gte(column string, value any) Condition {
	return compareCondition{column: column, op: ">=", value: value}
}

func Lt(column string, value any) Condition {
	return compareCondition{column: column, op: "<", value: value}
}

func (c compareCondition) appendSQL(buf *strings.Builder, args *[]any, argIndex *int) {
	buf.WriteString(c.column)
	buf.WriteString(" ")
	buf.WriteString(c.op)
	buf.WriteString(" ")
	buf.WriteString(placeholder(*argIndex))
	*args = append(*args, c.value)
	*argIndex = *argIndex + 1
}

type inCondition struct {
	column string
	values []any
}

func In(column string, values []any) Condition {
	return inCondition{column: column, values: values}
}

func (c inCondition) appendSQL(buf *strings.Builder, args *[]any, argIndex *int) {
	if len(c.values) == 0 {
		buf.WriteString("1=0")
		return
	}

	buf.WriteString(c.column)
	buf.WriteString(" IN (")
	for i, v := range c.values {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(placeholder(*argIndex))
		*args = append(*args, v)
		*argIndex = *argIndex + 1
	}
	buf.WriteString(")")
}

type nullCondition struct {
	column string
	not    bool
}

func IsNull(column string) Condition {
	return nullCondition{column: column}
}

func IsNotNull(column string) Condition {
	return nullCondition{column: column, not: true}
}

func (c nullCondition) appendSQL(buf *strings.Builder, _ *[]any, _ *int) {
	buf.WriteString(c.column)
	if c.not {
		buf.WriteString(" IS NOT NULL")
		return
	}
	buf.WriteString(" IS NULL")
}

type orCondition struct {
	conditions []Condition
}

// Or groups conditions in parentheses joined by OR.
func Or(conditions ...Condition) Condition {
	return orCondition{conditions: conditions}
}

func (c orCondition) appendSQL(buf *strings.Builder, args *[]any, argIndex *int) {
	if len(c.conditions) == 0 {
		buf.WriteString("1=0")
		return
	}
	buf.WriteString("(")
	for i, cond := range c.conditions {
		if i > 0 {
			buf.WriteString(" OR ")
		}
		cond.appendSQL(buf, args, argIndex)
	}
	buf.WriteString(")")
}

type exprCondition struct {
	expr string
	args []any
}

// Expr embeds a raw predicate; each '?' is bound to the next argument.
func Expr(expr string, args ...any) Condition {
	return exprCondition{expr: expr, args: args}
}

func (c exprCondition) appendSQL(buf *strings.Builder, args *[]any, argIndex *int) {
	buf.WriteString(rewritePlaceholders(c.expr, c.args, args, argIndex))
}

type SelectBuilder struct {
	columns []string
	table   string
	joins   []string
	where   []Condition
	groupBy []string
	orderBy []string
	limit   int
	offset  int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) LeftJoin(table, on string) *SelectBuilder {
	b.joins = append(b.joins, "LEFT JOIN "+table+" ON "+on)
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) GroupBy(parts ...string) *SelectBuilder {
	b.groupBy = append(b.groupBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) Offset(offset int) *SelectBuilder {
	b.offset = offset
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var buf strings.Builder
	buf.WriteString("SELECT ")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(" FROM ")
	buf.WriteString(b.table)
	for _, join := range b.joins {
		buf.WriteString(" ")
		buf.WriteString(join)
	}

	args := make([]any, 0, len(b.where))
	argIndex := 1
	appendWhereClause(&buf, b.where, &args, &argIndex)
	appendGroupByClause(&buf, b.groupBy)
	appendOrderByClause(&buf, b.orderBy)
	appendLimitClause(&buf, b.limit, b.offset)

	return buf.String(), args, nil
}

func appendWhereClause(buf *strings.Builder, conditions []Condition, args *[]any, argIndex *int) {
	if len(conditions) == 0 {
		return
	}
	buf.WriteString(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			buf.WriteString(" AND ")
		}
		c.appendSQL(buf, args, argIndex)
	}
}

func appendOrderByClause(buf *strings.Builder, orderBy []string) {
	if len(orderBy) == 0 {
		return
	}
	buf.WriteString(" ORDER BY ")
	buf.WriteString(strings.Join(orderBy, ", "))
}

func appendGroupByClause(buf *strings.Builder, groupBy []string) {
	if len(groupBy) == 0 {
		return
	}
	buf.WriteString(" GROUP BY ")
	buf.WriteString(strings.Join(groupBy, ", "))
}

func appendLimitClause(buf *strings.Builder, limit, offset int) {
	if limit > 0 {
		buf.WriteString(" LIMIT ")
		buf.WriteString(strconv.Itoa(limit))
	}
	if offset > 0 {
		buf.WriteString(" OFFSET ")
		buf.WriteString(strconv.Itoa(offset))
	}
}

func placeholder(i int) string {
	return "$" + strconv.Itoa(i)
}

func rewritePlaceholders(expr string, exprArgs []any, args *[]any, argIndex *int) string {
	if len(exprArgs) == 0 {
		return expr
	}

	var out strings.Builder
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' {
			if next >= len(exprArgs) {
				out.WriteByte('?')
				continue
			}
			out.WriteString(placeholder(*argIndex))
			*args = append(*args, exprArgs[next])
			*argIndex = *argIndex + 1
			next++
			continue
		}
		out.WriteByte(expr[i])
	}
	return out.String()
}
