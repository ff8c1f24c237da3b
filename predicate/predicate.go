package predicate

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrInvalidState is the parent of all errors caused by using a Composer against its contract.
	ErrInvalidState = errors.New("invalid predicate composer state")

	// ErrInvalidArgument is the parent of all errors caused by a caller supplying unusable input.
	ErrInvalidArgument = errors.New("invalid predicate composer argument")

	// ErrOperatorAlreadySet is returned when And() or Or() is called while an operator is pending.
	ErrOperatorAlreadySet = fmt.Errorf("%w: operator already set", ErrInvalidState)

	// ErrOperatorMissing is returned when an expression must be combined but no operator is pending.
	ErrOperatorMissing = fmt.Errorf("%w: operator must not be empty", ErrInvalidState)

	// ErrInvalidOperator is returned for an operator that is neither AND nor OR.
	ErrInvalidOperator = fmt.Errorf("%w: invalid operator", ErrInvalidState)

	// ErrRequiredCriterionMissing is returned when Required() receives an unavailable value or
	// its expression builder yields no predicate.
	ErrRequiredCriterionMissing = fmt.Errorf("%w: required criterion is missing", ErrInvalidArgument)
)

/***** Op *****/

// Op is the operator used to combine the next expression with the accumulated predicate.
// The zero value means that no operator is pending.
type Op uint8

const (
	opNone Op = iota
	// OpAnd combines with a logical AND.
	OpAnd
	// OpOr combines with a logical OR.
	OpOr
)

// JoinAnd and JoinOr are the operators used by Loop to join the predicates of the single items.
const (
	JoinAnd = OpAnd
	JoinOr  = OpOr
)

func (o Op) String() string {
	switch o {
	case opNone:
		return "NONE"
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	default:
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
}

/***** Algebra *****/

// Algebra combines two predicates of the target query representation.
// Implementations must be pure: building an expression must not have side effects.
type Algebra[P any] interface {
	And(left, right P) P
	Or(left, right P) P
}

// combine joins left and right with op.
func combine[P any](algebra Algebra[P], op Op, left, right P) (P, error) {
	switch op {
	case OpAnd:
		return algebra.And(left, right), nil
	case OpOr:
		return algebra.Or(left, right), nil
	case opNone:
		var zero P
		return zero, ErrOperatorMissing
	default:
		var zero P
		return zero, fmt.Errorf("%w '%s'", ErrInvalidOperator, op)
	}
}

// emptier is implemented by predicate types that can be present but hold no condition,
// e.g. an empty goqu expression list.
type emptier interface {
	IsEmpty() bool
}

// IsAbsent reports whether p carries no predicate.
func IsAbsent[P any](p P) bool {
	v := any(p)
	if v == nil {
		return true
	}

	if e, ok := v.(emptier); ok {
		rv := reflect.ValueOf(v)
		if isNilable(rv.Kind()) && rv.IsNil() {
			return true
		}

		return e.IsEmpty()
	}

	rv := reflect.ValueOf(v)

	return isNilable(rv.Kind()) && rv.IsNil()
}

func isNilable(kind reflect.Kind) bool {
	switch kind {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}
