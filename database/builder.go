package database

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// QueryBuilder provides a fluent, type-safe API for building select,
// update and delete queries on top of bun.
type QueryBuilder[T any] struct {
	db        *DB
	ctx       context.Context
	tableName string

	// Query clauses
	selectCols []string
	wheres     []*WhereClause
	orders     []*OrderClause
	limitVal   *int
	offsetVal  *int

	// Relations to preload
	relations []string

	// Options
	distinct bool

	// Timeout
	timeout time.Duration
}

// WhereClause represents a WHERE condition
type WhereClause struct {
	Column   string
	Operator string
	Value    any
	IsRaw    bool
	RawSQL   string
	RawArgs  []any
	Negate   bool // For NOT conditions
}

// OrderClause represents an ORDER BY clause
type OrderClause struct {
	Column    string
	Direction string // "ASC" or "DESC"
}

// OrderDirection represents sort direction
type OrderDirection string

const (
	ASC  OrderDirection = "ASC"
	DESC OrderDirection = "DESC"
)

// Query creates a new QueryBuilder instance
func Query[T any](db *DB) *QueryBuilder[T] {
	return &QueryBuilder[T]{
		db:         db,
		ctx:        context.Background(),
		selectCols: []string{},
		wheres:     []*WhereClause{},
		orders:     []*OrderClause{},
		relations:  []string{},
	}
}

// Context sets the context for the query
func (q *QueryBuilder[T]) Context(ctx context.Context) *QueryBuilder[T] {
	q.ctx = ctx
	return q
}

// Table sets the table name explicitly
func (q *QueryBuilder[T]) Table(name string) *QueryBuilder[T] {
	q.tableName = name
	return q
}

// Select specifies the columns to select
func (q *QueryBuilder[T]) Select(columns ...string) *QueryBuilder[T] {
	q.selectCols = append(q.selectCols, columns...)
	return q
}

// Distinct adds DISTINCT to the query
func (q *QueryBuilder[T]) Distinct() *QueryBuilder[T] {
	q.distinct = true
	return q
}

// Where adds a simple WHERE condition (column = value)
func (q *QueryBuilder[T]) Where(column string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "=",
		Value:    value,
	})
	return q
}

// WhereOp adds a WHERE condition with a custom operator
func (q *QueryBuilder[T]) WhereOp(column, operator string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: operator,
		Value:    value,
	})
	return q
}

// WhereNot adds a WHERE NOT condition
func (q *QueryBuilder[T]) WhereNot(column string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "=",
		Value:    value,
		Negate:   true,
	})
	return q
}

// WhereIn adds a WHERE IN condition
func (q *QueryBuilder[T]) WhereIn(column string, values []any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "IN",
		Value:    values,
	})
	return q
}

// WhereNull adds a WHERE IS NULL condition
func (q *QueryBuilder[T]) WhereNull(column string) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "IS NULL",
	})
	return q
}

// WhereNotNull adds a WHERE IS NOT NULL condition
func (q *QueryBuilder[T]) WhereNotNull(column string) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "IS NOT NULL",
	})
	return q
}

// WhereLike adds a WHERE ILIKE condition
func (q *QueryBuilder[T]) WhereLike(column, pattern string) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "ILIKE",
		Value:    pattern,
	})
	return q
}

// WhereRaw adds a raw WHERE condition
func (q *QueryBuilder[T]) WhereRaw(sql string, args ...any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		IsRaw:   true,
		RawSQL:  sql,
		RawArgs: args,
	})
	return q
}

// OrderBy adds an ORDER BY clause
func (q *QueryBuilder[T]) OrderBy(column string, direction OrderDirection) *QueryBuilder[T] {
	q.orders = append(q.orders, &OrderClause{
		Column:    column,
		Direction: string(direction),
	})
	return q
}

// Limit sets the LIMIT clause
func (q *QueryBuilder[T]) Limit(limit int) *QueryBuilder[T] {
	q.limitVal = &limit
	return q
}

// Offset sets the OFFSET clause
func (q *QueryBuilder[T]) Offset(offset int) *QueryBuilder[T] {
	q.offsetVal = &offset
	return q
}

// Relation specifies a relation to preload
func (q *QueryBuilder[T]) Relation(relation string) *QueryBuilder[T] {
	q.relations = append(q.relations, relation)
	return q
}

// Timeout sets a timeout for the query
func (q *QueryBuilder[T]) Timeout(duration time.Duration) *QueryBuilder[T] {
	q.timeout = duration
	return q
}

// buildBunQuery assembles a bun SelectQuery for the given model slice or
// struct pointer.
func (q *QueryBuilder[T]) buildBunQuery(model any) *bun.SelectQuery {
	query := q.db.NewSelect().Model(model)

	if q.tableName != "" {
		query = query.ModelTableExpr("?", bun.Ident(q.tableName))
	}

	if q.distinct {
		query = query.Distinct()
	}

	for _, col := range q.selectCols {
		query = query.Column(col)
	}

	query = applyWheres(query, q.wheres)

	for _, order := range q.orders {
		query = query.Order(fmt.Sprintf("%s %s", order.Column, order.Direction))
	}

	for _, rel := range q.relations {
		query = query.Relation(rel)
	}

	if q.limitVal != nil {
		query = query.Limit(*q.limitVal)
	}
	if q.offsetVal != nil {
		query = query.Offset(*q.offsetVal)
	}

	return query
}

func applyWheres(query *bun.SelectQuery, wheres []*WhereClause) *bun.SelectQuery {
	for _, where := range wheres {
		query = applyWhere(query.Where, where)
	}
	return query
}

func applyWheresToUpdate(query *bun.UpdateQuery, wheres []*WhereClause) *bun.UpdateQuery {
	for _, where := range wheres {
		query = applyWhere(query.Where, where)
	}
	return query
}

func applyWheresToDelete(query *bun.DeleteQuery, wheres []*WhereClause) *bun.DeleteQuery {
	for _, where := range wheres {
		query = applyWhere(query.Where, where)
	}
	return query
}

func applyWhere[Q any](where func(string, ...any) Q, clause *WhereClause) Q {
	if clause.IsRaw {
		return where(clause.RawSQL, clause.RawArgs...)
	}

	switch clause.Operator {
	case "IS NULL", "IS NOT NULL":
		return where(fmt.Sprintf("? %s", clause.Operator), bun.Ident(clause.Column))
	case "IN":
		values, _ := clause.Value.([]any)
		if clause.Negate {
			return where("? NOT IN (?)", bun.Ident(clause.Column), bun.In(values))
		}
		return where("? IN (?)", bun.Ident(clause.Column), bun.In(values))
	default:
		if clause.Negate {
			return where(fmt.Sprintf("NOT (? %s ?)", clause.Operator), bun.Ident(clause.Column), clause.Value)
		}
		return where(fmt.Sprintf("? %s ?", clause.Operator), bun.Ident(clause.Column), clause.Value)
	}
}
