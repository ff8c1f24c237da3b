// Package predicate composes boolean query predicates from a variable set of optional
// and required criteria.
//
// The predicate type itself is opaque: a goqu expression, an in-memory filter closure, or anything
// else for which an Algebra can combine two values with AND and OR.
//
// A Composer is an immutable value. Every call returns a new Composer, so a chain can be extended
// from any intermediate step without affecting other chains built from the same step.
//
// Common usage pattern:
//
//	where, err := predicate.Start[exp.Expression](goquexpr.Algebra{}).
//		Optional(predicate.With(bookTypeIn, query.BookTypes)).
//		And().Optional(predicate.With(categoryIDEq, query.CategoryID)).
//		And().Brace(func(b predicate.Composer[exp.Expression]) predicate.Composer[exp.Expression] {
//			return b.
//				Optional(predicate.With(publishedFrom, query.PublishedFrom)).
//				And().Optional(predicate.With(publishedUntil, query.PublishedUntil))
//		}).
//		And().Then(predicate.Loop(query.Authors, predicate.JoinOr, authorEq)).
//		End()
//
// Criteria that are unavailable (nil, blank strings, empty collections) are skipped silently by
// Optional, Brace and Loop, and rejected by Required.
package predicate
