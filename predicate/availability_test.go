package predicate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/bookshelf/predicate"
)

func Test_Available(t *testing.T) {
	var nilPointer *int
	var nilFunc func()
	var nilInterface error
	zero := 0
	text := " x "

	tests := []struct {
		name     string
		value    any
		expected bool
	}{
		{name: "nil", value: nil, expected: false},
		{name: "nil_pointer", value: nilPointer, expected: false},
		{name: "nil_func", value: nilFunc, expected: false},
		{name: "nil_interface", value: nilInterface, expected: false},
		{name: "empty_string", value: "", expected: false},
		{name: "whitespace_string", value: " \n\t", expected: false},
		{name: "text", value: "Dune", expected: true},
		{name: "pointer_to_text", value: &text, expected: true},
		{name: "zero_int", value: 0, expected: true},
		{name: "pointer_to_zero_int", value: &zero, expected: true},
		{name: "false", value: false, expected: true},
		{name: "zero_time", value: time.Time{}, expected: true},
		{name: "empty_slice", value: []string{}, expected: false},
		{name: "slice", value: []string{""}, expected: true},
		{name: "empty_array", value: [0]int{}, expected: false},
		{name: "empty_map", value: map[int]int{}, expected: false},
		{name: "map", value: map[int]int{1: 1}, expected: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, predicate.Available(tc.value))
		})
	}
}

type emptyList struct {
	items []string
}

func (l *emptyList) IsEmpty() bool {
	return len(l.items) == 0
}

func Test_IsAbsent(t *testing.T) {
	var nilList *emptyList
	var nilFunc func(int) bool

	assert.True(t, predicate.IsAbsent[any](nil))
	assert.True(t, predicate.IsAbsent(nilList))
	assert.True(t, predicate.IsAbsent(&emptyList{}))
	assert.True(t, predicate.IsAbsent(nilFunc))
	assert.False(t, predicate.IsAbsent(&emptyList{items: []string{"a"}}))
	assert.False(t, predicate.IsAbsent(func(int) bool { return true }))
	assert.False(t, predicate.IsAbsent("text"))
}
