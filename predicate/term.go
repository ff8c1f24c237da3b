package predicate

// Term is an expression that is built only once all of its guard values are available.
// Terms are created with Expr, With, With2 or Calc and consumed by Composer.Optional and Composer.Required.
type Term[P any] struct {
	build  func() P
	guards []any
}

// Expr wraps an already built predicate. The term is unavailable if the predicate is absent.
func Expr[P any](expression P) Term[P] {
	return Term[P]{
		build: func() P { return expression },
	}
}

// With builds the predicate by calling fn with value, once value is available.
func With[T, P any](fn func(T) P, value T) Term[P] {
	return Term[P]{
		build:  func() P { return fn(value) },
		guards: []any{value},
	}
}

// With2 builds the predicate by calling fn with first and second, once both are available.
func With2[T, U, P any](fn func(T, U) P, first T, second U) Term[P] {
	return Term[P]{
		build:  func() P { return fn(first, second) },
		guards: []any{first, second},
	}
}

// Calc builds the predicate by calling calculator, once all guards are available.
// It is the form to use when an expression needs more than two values.
func Calc[P any](calculator func() P, guards ...any) Term[P] {
	return Term[P]{
		build:  calculator,
		guards: guards,
	}
}

// available reports whether all guards of the term are available.
func (t Term[P]) available() bool {
	return t.build != nil && allAvailable(t.guards)
}

// expression builds the predicate. It must only be called if the term is available.
func (t Term[P]) expression() P {
	return t.build()
}
