package goquexpr

import (
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/bookshelf/predicate"
)

const containsSQL = `LOWER(?) LIKE LOWER(?) ESCAPE '\'`

// Algebra combines goqu expressions with goqu.And and goqu.Or.
type Algebra struct{}

// And combines left and right with a logical AND.
func (Algebra) And(left, right exp.Expression) exp.Expression {
	return goqu.And(left, right)
}

// Or combines left and right with a logical OR.
func (Algebra) Or(left, right exp.Expression) exp.Expression {
	return goqu.Or(left, right)
}

// Start begins a predicate chain over goqu expressions.
func Start() predicate.Composer[exp.Expression] {
	return predicate.Start[exp.Expression](Algebra{})
}

// Eq returns an expression builder for column = value.
func Eq[T any](column string) func(T) exp.Expression {
	return func(value T) exp.Expression {
		return goqu.C(column).Eq(value)
	}
}

// In returns an expression builder for column IN (values...).
func In[T any](column string) func([]T) exp.Expression {
	return func(values []T) exp.Expression {
		return goqu.C(column).In(values)
	}
}

// Gte returns an expression builder for column >= value.
func Gte[T any](column string) func(T) exp.Expression {
	return func(value T) exp.Expression {
		return goqu.C(column).Gte(value)
	}
}

// Lte returns an expression builder for column <= value.
func Lte[T any](column string) func(T) exp.Expression {
	return func(value T) exp.Expression {
		return goqu.C(column).Lte(value)
	}
}

// Contains returns an expression builder for a case-insensitive substring match on column.
// The keyword is matched literally: LIKE wildcards in it are escaped.
// Both sides are lower-cased by the database, which folds ASCII only on SQLite builds without ICU.
func Contains(column string) func(string) exp.Expression {
	return func(keyword string) exp.Expression {
		return goqu.L(containsSQL, goqu.C(column), LikeSide(keyword))
	}
}
