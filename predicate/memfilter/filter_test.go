package memfilter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/bookshelf/predicate"
	"github.com/AntonStoeckl/bookshelf/predicate/memfilter"
)

type book struct {
	title  string
	author string
	year   int
}

var books = []book{
	{title: "Dune", author: "Herbert", year: 1965},
	{title: "Neuromancer", author: "Gibson", year: 1984},
	{title: "Hyperion", author: "Simmons", year: 1989},
	{title: "Dune Messiah", author: "Herbert", year: 1969},
}

func titleContains(keyword string) memfilter.Filter[book] {
	return func(b book) bool { return strings.Contains(b.title, keyword) }
}

func authorIs(author string) memfilter.Filter[book] {
	return func(b book) bool { return b.author == author }
}

func yearBetween(from, until int) memfilter.Filter[book] {
	return func(b book) bool { return b.year >= from && b.year <= until }
}

func titles(items []book) []string {
	result := make([]string, 0, len(items))
	for _, b := range items {
		result = append(result, b.title)
	}

	return result
}

func Test_Filter_Composition(t *testing.T) {
	tests := []struct {
		name     string
		build    func() predicate.Composer[memfilter.Filter[book]]
		expected []string
	}{
		{
			name: "no_criteria_matches_everything",
			build: func() predicate.Composer[memfilter.Filter[book]] {
				return memfilter.Start[book]().Optional(predicate.With(titleContains, ""))
			},
			expected: []string{"Dune", "Neuromancer", "Hyperion", "Dune Messiah"},
		},
		{
			name: "and",
			build: func() predicate.Composer[memfilter.Filter[book]] {
				return memfilter.Start[book]().
					Optional(predicate.With(titleContains, "Dune")).
					And().Optional(predicate.With2(yearBetween, 1960, 1966))
			},
			expected: []string{"Dune"},
		},
		{
			name: "or",
			build: func() predicate.Composer[memfilter.Filter[book]] {
				return memfilter.Start[book]().
					Optional(predicate.With(authorIs, "Gibson")).
					Or().Optional(predicate.With(authorIs, "Simmons"))
			},
			expected: []string{"Neuromancer", "Hyperion"},
		},
		{
			name: "loop",
			build: func() predicate.Composer[memfilter.Filter[book]] {
				return memfilter.Start[book]().
					Optional(predicate.With2(yearBetween, 1960, 1985)).
					And().Then(predicate.Loop([]string{"Gibson", "", "Herbert"}, predicate.JoinOr,
					func(c predicate.Composer[memfilter.Filter[book]], author string) predicate.Composer[memfilter.Filter[book]] {
						return c.Optional(predicate.With(authorIs, author))
					}))
			},
			expected: []string{"Dune", "Neuromancer", "Dune Messiah"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			filter, err := tc.build().End()
			require.NoError(t, err)

			assert.Equal(t, tc.expected, titles(memfilter.Apply(books, filter)))
		})
	}
}

func Test_Apply_Keeps_Order_And_Handles_Empty_Input(t *testing.T) {
	assert.Empty(t, memfilter.Apply[book](nil, authorIs("Herbert")))
	assert.Equal(t, []string{"Dune", "Dune Messiah"}, titles(memfilter.Apply(books, authorIs("Herbert"))))
}
