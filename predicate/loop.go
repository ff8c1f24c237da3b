package predicate

import (
	"fmt"
)

// Loop returns a Step that builds one predicate per item and applies all of them as one unit.
//
// Each item is handled on a fresh chain started with Start. Items whose chain yields no predicate are skipped,
// the others are joined in iteration order with join (JoinAnd or JoinOr). The joined predicate is applied
// with the operator pending on the outer chain. Empty items, or no item yielding a predicate, is a no-op;
// with empty items the handler is never looked at.
func Loop[T, P any](items []T, join Op, handler func(Composer[P], T) Composer[P]) Step[P] {
	return func(c Composer[P]) Composer[P] {
		if c.err != nil {
			return c
		}

		if join != JoinAnd && join != JoinOr {
			return c.fail(fmt.Errorf("%w: invalid join operator '%s'", ErrInvalidOperator, join))
		}

		if len(items) == 0 {
			return c.skip()
		}

		if handler == nil {
			return c.fail(fmt.Errorf("%w: loop handler must not be nil", ErrInvalidArgument))
		}

		var joined P
		found := false

		for _, item := range items {
			itemChain := handler(Start(c.algebra), item)
			if itemChain.err != nil {
				return c.fail(itemChain.err)
			}

			if !itemChain.seeded {
				continue
			}

			if !found {
				joined = itemChain.main
				found = true

				continue
			}

			var err error
			if joined, err = combine(c.algebra, join, joined, itemChain.main); err != nil {
				return c.fail(err)
			}
		}

		if !found {
			return c.skip()
		}

		return c.apply(joined)
	}
}
