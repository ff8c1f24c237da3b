package predicate

import (
	"fmt"
)

// ErrNilAlgebra is returned when a Composer is started without an Algebra.
var ErrNilAlgebra = fmt.Errorf("%w: algebra must not be nil", ErrInvalidArgument)

// Composer accumulates a predicate from a chain of optional and required expressions.
//
// A Composer is an immutable value: each method returns a new Composer and leaves its receiver untouched.
// Between two applied expressions exactly one of And() or Or() must be called, except right after Start(),
// where AND is already pending.
//
// The first error is sticky. Once a Composer carries an error, all further calls return it unchanged
// and End() reports the error.
type Composer[P any] struct {
	algebra  Algebra[P]
	op       Op
	main     P
	seeded   bool
	previous *Composer[P]
	err      error
}

// Step is a reusable part of a chain, spliced in with Composer.Then.
type Step[P any] func(Composer[P]) Composer[P]

// Start begins a new chain with AND pending.
func Start[P any](algebra Algebra[P]) Composer[P] {
	if algebra == nil {
		return Composer[P]{err: ErrNilAlgebra}
	}

	return Composer[P]{algebra: algebra}.setOp(OpAnd)
}

/***** Ops *****/

// And sets AND as the operator for the next expression.
func (c Composer[P]) And() Composer[P] {
	return c.setOp(OpAnd)
}

// Or sets OR as the operator for the next expression.
func (c Composer[P]) Or() Composer[P] {
	return c.setOp(OpOr)
}

func (c Composer[P]) setOp(op Op) Composer[P] {
	if c.err != nil {
		return c
	}

	if op == opNone {
		return c.fail(ErrOperatorMissing)
	}

	if c.op != opNone {
		return c.fail(fmt.Errorf("%w: '%s' is pending", ErrOperatorAlreadySet, c.op))
	}

	c.op = op

	return c
}

/***** optional, required *****/

// Optional applies the term if all of its values are available, otherwise it only clears the pending operator.
func (c Composer[P]) Optional(term Term[P]) Composer[P] {
	if c.err != nil {
		return c
	}

	if !term.available() {
		return c.skip()
	}

	return c.apply(term.expression())
}

// Required applies the term and fails with ErrRequiredCriterionMissing if one of its values
// is unavailable or it builds no predicate.
func (c Composer[P]) Required(term Term[P]) Composer[P] {
	if c.err != nil {
		return c
	}

	if !term.available() {
		return c.fail(ErrRequiredCriterionMissing)
	}

	expression := term.expression()
	if IsAbsent(expression) {
		return c.fail(fmt.Errorf("%w: expression is absent", ErrRequiredCriterionMissing))
	}

	return c.apply(expression)
}

/***** brace *****/

// Brace builds a grouped sub-expression with a fresh chain and applies its result as one unit,
// using the operator pending on c. If one of the guards is unavailable Brace behaves like a skipped Optional.
func (c Composer[P]) Brace(group func(Composer[P]) Composer[P], guards ...any) Composer[P] {
	if c.err != nil {
		return c
	}

	if group == nil {
		return c.fail(fmt.Errorf("%w: brace group must not be nil", ErrInvalidArgument))
	}

	if !allAvailable(guards) {
		return c.skip()
	}

	inner := group(Start(c.algebra))
	if inner.err != nil {
		return c.fail(inner.err)
	}

	if !inner.seeded {
		return c.skip()
	}

	return c.apply(inner.main)
}

// Then runs step against c. It is the hook for generic steps like Loop.
func (c Composer[P]) Then(step Step[P]) Composer[P] {
	if c.err != nil || step == nil {
		return c
	}

	return step(c)
}

/***** start, end *****/

// End returns the accumulated predicate, which is the zero value of P if nothing was applied.
func (c Composer[P]) End() (P, error) {
	if c.err != nil {
		var zero P
		return zero, c.err
	}

	return c.main, nil
}

// Err returns the error of the chain, if any.
func (c Composer[P]) Err() error {
	return c.err
}

// Empty reports whether no expression has been applied yet.
func (c Composer[P]) Empty() bool {
	return !c.seeded
}

// Pending returns the operator that will combine the next expression, or the zero Op.
func (c Composer[P]) Pending() Op {
	return c.op
}

// Len returns the number of expressions applied to the chain so far.
func (c Composer[P]) Len() int {
	n := 0
	for node := &c; node != nil && node.seeded; node = node.previous {
		n++
	}

	return n
}

// Previous returns the chain position before the last applied expression.
func (c Composer[P]) Previous() (Composer[P], bool) {
	if c.previous == nil {
		return Composer[P]{}, false
	}

	return *c.previous, true
}

/***** apply *****/

// apply combines expression with the accumulated predicate using the pending operator.
// An absent expression only clears the pending operator and keeps the chain position.
func (c Composer[P]) apply(expression P) Composer[P] {
	if IsAbsent(expression) {
		return c.skip()
	}

	previous := c

	if !c.seeded {
		return Composer[P]{
			algebra:  c.algebra,
			main:     expression,
			seeded:   true,
			previous: &previous,
		}
	}

	main, err := combine(c.algebra, c.op, c.main, expression)
	if err != nil {
		return c.fail(err)
	}

	return Composer[P]{
		algebra:  c.algebra,
		main:     main,
		seeded:   true,
		previous: &previous,
	}
}

func (c Composer[P]) skip() Composer[P] {
	c.op = opNone

	return c
}

func (c Composer[P]) fail(err error) Composer[P] {
	c.err = err

	return c
}
