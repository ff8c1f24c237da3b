package predicate

import (
	"reflect"
	"strings"
)

// Available reports whether a criterion value should take part in a predicate.
//
// A value is unavailable if it is:
//   - nil, or a nil pointer, interface, map, slice, func or chan
//   - a string that is empty after trimming whitespace
//   - an empty slice, array or map
//
// Pointers are dereferenced before the rules are applied, so a *string pointing to "  " is unavailable.
func Available(value any) bool {
	if value == nil {
		return false
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return false
		}

		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String:
		return strings.TrimSpace(rv.String()) != ""
	case reflect.Slice, reflect.Map:
		return !rv.IsNil() && rv.Len() > 0
	case reflect.Array:
		return rv.Len() > 0
	case reflect.Func, reflect.Chan:
		return !rv.IsNil()
	default:
		return true
	}
}

// allAvailable reports whether every value is available. No values at all count as available.
func allAvailable(values []any) bool {
	for _, value := range values {
		if !Available(value) {
			return false
		}
	}

	return true
}
