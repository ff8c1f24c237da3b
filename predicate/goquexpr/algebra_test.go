package goquexpr_test

import (
	"testing"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/bookshelf/fieldpath"
	"github.com/AntonStoeckl/bookshelf/predicate"
	"github.com/AntonStoeckl/bookshelf/predicate/goquexpr"
)

func render(t *testing.T, where exp.Expression) string {
	t.Helper()

	ds := goqu.Dialect("postgres").From("books")
	if where != nil {
		ds = ds.Where(where)
	}

	sql, _, err := ds.ToSQL()
	require.NoError(t, err)

	return sql
}

func Test_Algebra_Matches_Goqu_Composition(t *testing.T) {
	a := goqu.C("title").Eq("Dune")
	b := goqu.C("category_id").Eq(3)

	andResult, err := goquexpr.Start().
		Required(predicate.Expr[exp.Expression](a)).
		And().Required(predicate.Expr[exp.Expression](b)).
		End()
	require.NoError(t, err)

	orResult, err := goquexpr.Start().
		Required(predicate.Expr[exp.Expression](a)).
		Or().Required(predicate.Expr[exp.Expression](b)).
		End()
	require.NoError(t, err)

	assert.Equal(t, render(t, goqu.And(a, b)), render(t, andResult))
	assert.Equal(t, render(t, goqu.Or(a, b)), render(t, orResult))
	assert.Contains(t, render(t, andResult), `("title" = 'Dune') AND ("category_id" = 3)`)
	assert.Contains(t, render(t, orResult), `("title" = 'Dune') OR ("category_id" = 3)`)
}

func Test_Algebra_Brace_Groups_Subexpression(t *testing.T) {
	p0 := goqu.C("book_type").Eq(1)
	x := goqu.C("published").Gte("2020-01-01")
	y := goqu.C("published").Lte("2020-12-31")

	result, err := goquexpr.Start().
		Required(predicate.Expr[exp.Expression](p0)).
		And().Brace(func(b predicate.Composer[exp.Expression]) predicate.Composer[exp.Expression] {
			return b.Required(predicate.Expr[exp.Expression](x)).And().Required(predicate.Expr[exp.Expression](y))
		}, "ok").
		End()

	require.NoError(t, err)
	assert.Equal(t, render(t, goqu.And(p0, goqu.And(x, y))), render(t, result))
}

func Test_Algebra_Skips_Unavailable_Criteria(t *testing.T) {
	var categoryID *int

	result, err := goquexpr.Start().
		Optional(predicate.With(goquexpr.In[int]("book_type"), []int{})).
		And().Optional(predicate.With(func(id *int) exp.Expression { return goqu.C("category_id").Eq(*id) }, categoryID)).
		And().Optional(predicate.With(goquexpr.Contains("title"), "  ")).
		End()

	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, `SELECT * FROM "books"`, render(t, result))
}

func Test_Algebra_Treats_Empty_Expression_Lists_As_Absent(t *testing.T) {
	result, err := goquexpr.Start().
		Required(predicate.Expr[exp.Expression](goqu.C("a").Eq(1))).
		And().Optional(predicate.Expr[exp.Expression](goqu.And())).
		End()

	require.NoError(t, err)
	assert.Equal(t, render(t, goqu.C("a").Eq(1)), render(t, result))
}

func Test_Expression_Builders(t *testing.T) {
	tests := []struct {
		name     string
		where    exp.Expression
		expected string
	}{
		{name: "eq", where: goquexpr.Eq[int]("category_id")(7), expected: `"category_id" = 7`},
		{name: "in", where: goquexpr.In[int]("book_type")([]int{1, 2}), expected: `"book_type" IN (1, 2)`},
		{name: "gte", where: goquexpr.Gte[int]("year")(1999), expected: `"year" >= 1999`},
		{name: "lte", where: goquexpr.Lte[int]("year")(2001), expected: `"year" <= 2001`},
		{name: "contains", where: goquexpr.Contains("title")("Dune"), expected: `LOWER("title") LIKE LOWER('%Dune%') ESCAPE '\'`},
		{name: "contains_wildcards", where: goquexpr.Contains("title")("50%_off"), expected: `LIKE LOWER('%50\%\_off%') ESCAPE '\'`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, render(t, tc.where), tc.expected)
		})
	}
}

func Test_LikeSide(t *testing.T) {
	assert.Equal(t, "%Dune%", goquexpr.LikeSide("Dune"))
	assert.Equal(t, "", goquexpr.LikeSide(""))
	assert.Equal(t, " ", goquexpr.LikeSide(" "))
	assert.Equal(t, `%100\%%`, goquexpr.LikeSide("100%"))
	assert.Equal(t, `%a\_b%`, goquexpr.LikeSide("a_b"))
	assert.Equal(t, `%c:\\%`, goquexpr.LikeSide(`c:\`))
}

func Test_Select_Aliases_Renamed_Fields(t *testing.T) {
	root := fieldpath.NewComposite("book",
		fieldpath.NewLeaf("id", "id"),
		fieldpath.NewComposite("category_id", fieldpath.NewLeaf("id", "category_id")),
	)

	fields, err := fieldpath.Collect(root)
	require.NoError(t, err)
	fields = fieldpath.ApplyAlias(fields, fieldpath.AliasRule{"book.category_id.id": "category_id"})

	sql, _, err := goqu.Dialect("postgres").From("books").Select(goquexpr.Select(fields)...).ToSQL()

	require.NoError(t, err)
	assert.Equal(t, `SELECT "id", "category_id" FROM "books"`, sql)

	fields = fieldpath.ApplyAlias(fields, fieldpath.AliasRule{"book.category_id.id": "categoryId"})
	sql, _, err = goqu.Dialect("postgres").From("books").Select(goquexpr.Select(fields)...).ToSQL()

	require.NoError(t, err)
	assert.Equal(t, `SELECT "id", "category_id" AS "categoryId" FROM "books"`, sql)
}
