// Package goquexpr supplies the goqu flavour of the predicate algebra: predicates are goqu
// expressions, and projections are goqu selectables derived from collected field references.
package goquexpr
