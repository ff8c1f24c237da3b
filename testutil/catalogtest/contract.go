package catalogtest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/bookshelf/catalog"
	"github.com/AntonStoeckl/bookshelf/predicate"
)

// RunRepositoryContract runs the behavior every pair of catalog repositories must show.
// open is called once per subtest and must return empty repositories.
func RunRepositoryContract(t *testing.T, open func(t *testing.T) Repositories) {
	t.Run("books", func(t *testing.T) {
		runBookContract(t, open)
	})

	t.Run("categories", func(t *testing.T) {
		runCategoryContract(t, open)
	})

	t.Run("find_books", func(t *testing.T) {
		runFindContract(t, open)
	})
}

func runBookContract(t *testing.T, open func(t *testing.T) Repositories) {
	ctx := context.Background()

	t.Run("add_then_find_by_id", func(t *testing.T) {
		repos := open(t)
		c := GivenCatalog(t, ctx, repos)

		book, err := repos.Books.FindByID(ctx, c.Dune.ID)

		require.NoError(t, err)
		assertSameBook(t, c.Dune, book)
	})

	t.Run("book_without_publication_date", func(t *testing.T) {
		repos := open(t)
		c := GivenCatalog(t, ctx, repos)

		book, err := repos.Books.FindByID(ctx, c.Hitchhiker.ID)

		require.NoError(t, err)
		assert.Nil(t, book.Published)
		assertSameBook(t, c.Hitchhiker, book)
	})

	t.Run("find_unknown_id", func(t *testing.T) {
		repos := open(t)
		GivenCatalog(t, ctx, repos)

		unknown, err := repos.Books.NewIdentity()
		require.NoError(t, err)

		_, err = repos.Books.FindByID(ctx, unknown)
		assert.ErrorIs(t, err, catalog.ErrBookNotFound)
	})

	t.Run("blank_id_is_a_missing_criterion", func(t *testing.T) {
		repos := open(t)
		c := GivenCatalog(t, ctx, repos)
		blank := catalog.BuildBookID(" ")

		_, findErr := repos.Books.FindByID(ctx, blank)

		changed := c.Dune
		changed.ID = blank
		updateErr := repos.Books.Update(ctx, changed)

		deleteErr := repos.Books.Delete(ctx, blank)

		for _, err := range []error{findErr, updateErr, deleteErr} {
			assert.ErrorIs(t, err, predicate.ErrRequiredCriterionMissing)
			assert.NotErrorIs(t, err, catalog.ErrBookNotFound)
		}
	})

	t.Run("update_keeps_the_category", func(t *testing.T) {
		repos := open(t)
		c := GivenCatalog(t, ctx, repos)

		changed := c.Dune
		changed.Category = c.Cyberpunk.ID
		changed.BookType = catalog.Ebook
		changed.Title = "Dune Messiah"
		changed.Published = nil
		changed.ISBN13 = ""

		require.NoError(t, repos.Books.Update(ctx, changed))

		book, err := repos.Books.FindByID(ctx, c.Dune.ID)
		require.NoError(t, err)

		expected := changed
		expected.Category = c.ScienceFiction.ID
		assertSameBook(t, expected, book)
	})

	t.Run("update_unknown_book", func(t *testing.T) {
		repos := open(t)

		unknown, err := repos.Books.NewIdentity()
		require.NoError(t, err)

		err = repos.Books.Update(ctx, catalog.Book{ID: unknown, BookType: catalog.Paper, Title: "x"})
		assert.ErrorIs(t, err, catalog.ErrBookNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		repos := open(t)
		c := GivenCatalog(t, ctx, repos)

		require.NoError(t, repos.Books.Delete(ctx, c.Foundation.ID))

		_, err := repos.Books.FindByID(ctx, c.Foundation.ID)
		assert.ErrorIs(t, err, catalog.ErrBookNotFound)

		err = repos.Books.Delete(ctx, c.Foundation.ID)
		assert.ErrorIs(t, err, catalog.ErrBookNotFound)
	})

	t.Run("find_all_orders_by_title", func(t *testing.T) {
		repos := open(t)
		GivenCatalog(t, ctx, repos)

		books, err := repos.Books.FindAll(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{TitleCountZero, TitleDune, TitleFoundation, TitleNeuromancer, TitleHitchhiker}, Titles(books))
	})

	t.Run("find_all_without_books", func(t *testing.T) {
		repos := open(t)

		books, err := repos.Books.FindAll(ctx)

		require.NoError(t, err)
		assert.NotNil(t, books)
		assert.Empty(t, books)
	})
}

func runCategoryContract(t *testing.T, open func(t *testing.T) Repositories) {
	ctx := context.Background()

	t.Run("add_assigns_ids", func(t *testing.T) {
		repos := open(t)

		first := GivenCategory(t, ctx, repos.Categories, "Poetry")
		second := GivenCategory(t, ctx, repos.Categories, "Drama")

		assert.Positive(t, first.ID.ID)
		assert.Positive(t, second.ID.ID)
		assert.NotEqual(t, first.ID, second.ID)

		found, err := repos.Categories.FindByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, second, found)
	})

	t.Run("exists", func(t *testing.T) {
		repos := open(t)
		category := GivenCategory(t, ctx, repos.Categories, "Poetry")

		exists, err := repos.Categories.Exists(ctx, category.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repos.Categories.Exists(ctx, catalog.BuildCategoryID(category.ID.ID+100))
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("update", func(t *testing.T) {
		repos := open(t)
		category := GivenCategory(t, ctx, repos.Categories, "Poetry")

		category.Name = "Lyric Poetry"
		require.NoError(t, repos.Categories.Update(ctx, category))

		found, err := repos.Categories.FindByID(ctx, category.ID)
		require.NoError(t, err)
		assert.Equal(t, "Lyric Poetry", found.Name)

		err = repos.Categories.Update(ctx, catalog.Category{ID: catalog.BuildCategoryID(category.ID.ID + 100), Name: "x"})
		assert.ErrorIs(t, err, catalog.ErrCategoryNotFound)
	})

	t.Run("find_all_orders_by_name", func(t *testing.T) {
		repos := open(t)
		GivenCatalog(t, ctx, repos)

		categories, err := repos.Categories.FindAll(ctx)
		require.NoError(t, err)

		names := make([]string, 0, len(categories))
		for _, category := range categories {
			names = append(names, category.Name)
		}

		assert.Equal(t, []string{"Cyberpunk", "Science Fiction"}, names)
	})

	t.Run("in_use", func(t *testing.T) {
		repos := open(t)
		c := GivenCatalog(t, ctx, repos)
		unused := GivenCategory(t, ctx, repos.Categories, "Poetry")

		inUse, err := repos.Categories.InUse(ctx, c.Cyberpunk.ID)
		require.NoError(t, err)
		assert.True(t, inUse)

		inUse, err = repos.Categories.InUse(ctx, unused.ID)
		require.NoError(t, err)
		assert.False(t, inUse)
	})

	t.Run("delete", func(t *testing.T) {
		repos := open(t)
		category := GivenCategory(t, ctx, repos.Categories, "Poetry")

		require.NoError(t, repos.Categories.Delete(ctx, category.ID))

		_, err := repos.Categories.FindByID(ctx, category.ID)
		assert.ErrorIs(t, err, catalog.ErrCategoryNotFound)

		err = repos.Categories.Delete(ctx, category.ID)
		assert.ErrorIs(t, err, catalog.ErrCategoryNotFound)
	})
}

func runFindContract(t *testing.T, open func(t *testing.T) Repositories) {
	ctx := context.Background()
	repos := open(t)
	c := GivenCatalog(t, ctx, repos)
	cyberpunk := c.Cyberpunk.ID.ID

	tests := []struct {
		name     string
		query    catalog.BooksQuery
		expected []string
	}{
		{
			name:     "empty_query_matches_all",
			query:    catalog.BooksQuery{},
			expected: []string{TitleCountZero, TitleDune, TitleFoundation, TitleNeuromancer, TitleHitchhiker},
		},
		{
			name:     "book_type",
			query:    catalog.BooksQuery{BookTypes: []catalog.BookType{catalog.Ebook}},
			expected: []string{TitleNeuromancer, TitleHitchhiker},
		},
		{
			name:     "all_book_types",
			query:    catalog.BooksQuery{BookTypes: []catalog.BookType{catalog.Paper, catalog.Ebook}},
			expected: []string{TitleCountZero, TitleDune, TitleFoundation, TitleNeuromancer, TitleHitchhiker},
		},
		{
			name:     "category",
			query:    catalog.BooksQuery{CategoryID: &cyberpunk},
			expected: []string{TitleCountZero, TitleNeuromancer},
		},
		{
			name:     "title_contains",
			query:    catalog.BooksQuery{Title: "un"},
			expected: []string{TitleCountZero, TitleDune, TitleFoundation},
		},
		{
			name:     "title_ignores_case",
			query:    catalog.BooksQuery{Title: "DUNE"},
			expected: []string{TitleDune},
		},
		{
			name:     "blank_title_is_ignored",
			query:    catalog.BooksQuery{Title: "  ", BookTypes: []catalog.BookType{catalog.Ebook}},
			expected: []string{TitleNeuromancer, TitleHitchhiker},
		},
		{
			name:     "title_wildcards_match_literally",
			query:    catalog.BooksQuery{Title: "%"},
			expected: []string{},
		},
		{
			name:     "keyword_wildcards_match_literally",
			query:    catalog.BooksQuery{Keyword: "D_ne"},
			expected: []string{},
		},
		{
			name:     "keyword_matches_author",
			query:    catalog.BooksQuery{Keyword: "gibson"},
			expected: []string{TitleCountZero, TitleNeuromancer},
		},
		{
			name:     "keyword_matches_title",
			query:    catalog.BooksQuery{Keyword: "guide"},
			expected: []string{TitleHitchhiker},
		},
		{
			name:     "any_of_the_authors",
			query:    catalog.BooksQuery{Authors: []string{"Isaac Asimov", "Frank Herbert"}},
			expected: []string{TitleDune, TitleFoundation},
		},
		{
			name:     "blank_authors_are_ignored",
			query:    catalog.BooksQuery{Authors: []string{"", " "}, CategoryID: &cyberpunk},
			expected: []string{TitleCountZero, TitleNeuromancer},
		},
		{
			name:     "published_from",
			query:    catalog.BooksQuery{PublishedFrom: Date(1980, time.January, 1)},
			expected: []string{TitleCountZero, TitleNeuromancer},
		},
		{
			name:     "published_until",
			query:    catalog.BooksQuery{PublishedUntil: Date(1960, time.January, 1)},
			expected: []string{TitleFoundation},
		},
		{
			name:     "published_range_is_inclusive",
			query:    catalog.BooksQuery{PublishedFrom: Date(1951, time.June, 1), PublishedUntil: Date(1965, time.August, 1)},
			expected: []string{TitleDune, TitleFoundation},
		},
		{
			name: "combined_criteria",
			query: catalog.BooksQuery{
				BookTypes: []catalog.BookType{catalog.Paper},
				Keyword:   "gibson",
				Authors:   []string{"William Gibson", "Frank Herbert"},
			},
			expected: []string{TitleCountZero},
		},
		{
			name:     "nothing_matches",
			query:    catalog.BooksQuery{Title: "Ulysses"},
			expected: []string{},
		},
		{
			name:     "first_page",
			query:    catalog.BooksQuery{Page: 1, Size: 2},
			expected: []string{TitleCountZero, TitleDune},
		},
		{
			name:     "second_page",
			query:    catalog.BooksQuery{Page: 2, Size: 2},
			expected: []string{TitleFoundation, TitleNeuromancer},
		},
		{
			name:     "last_page",
			query:    catalog.BooksQuery{Page: 3, Size: 2},
			expected: []string{TitleHitchhiker},
		},
		{
			name:     "page_after_the_last",
			query:    catalog.BooksQuery{Page: 4, Size: 2},
			expected: []string{},
		},
		{
			name:     "filtered_page",
			query:    catalog.BooksQuery{CategoryID: &cyberpunk, Page: 2, Size: 1},
			expected: []string{TitleNeuromancer},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			books, err := repos.Books.Find(ctx, tc.query)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, Titles(books))
		})
	}
}

func assertSameBook(t *testing.T, expected, actual catalog.Book) {
	t.Helper()

	assert.Equal(t, expected.ID, actual.ID)
	assert.Equal(t, expected.Category, actual.Category)
	assert.Equal(t, expected.BookType, actual.BookType)
	assert.Equal(t, expected.Title, actual.Title)
	assert.Equal(t, expected.Author, actual.Author)
	assert.Equal(t, expected.ISBN13, actual.ISBN13)

	if expected.Published == nil {
		assert.Nil(t, actual.Published)
		return
	}

	require.NotNil(t, actual.Published)
	assert.True(t, expected.Published.Equal(*actual.Published), "published %s != %s", expected.Published, actual.Published)
}
