package catalog_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/bookshelf/catalog"
)

func Test_BookType_Text_Roundtrip(t *testing.T) {
	text, err := catalog.Ebook.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Ebook", string(text))

	var parsed catalog.BookType
	require.NoError(t, parsed.UnmarshalText([]byte("paper")))
	assert.Equal(t, catalog.Paper, parsed)

	assert.ErrorIs(t, parsed.UnmarshalText([]byte("scroll")), catalog.ErrInvalidBookType)

	_, err = catalog.BookType(9).MarshalText()
	assert.ErrorIs(t, err, catalog.ErrInvalidBookType)
	assert.Equal(t, "BookType(9)", catalog.BookType(9).String())
}

func Test_NewBookID_Generates_Unique_IDs(t *testing.T) {
	first, err := catalog.NewBookID()
	require.NoError(t, err)
	second, err := catalog.NewBookID()
	require.NoError(t, err)

	assert.NotEmpty(t, first.String())
	assert.NotEqual(t, first, second)
}

func Test_AddBookCommand_Validate(t *testing.T) {
	valid := catalog.AddBookCommand{
		BookType:   catalog.Paper,
		CategoryID: 1,
		Title:      "Dune",
		Author:     "Frank Herbert",
		ISBN13:     "9780441013593",
	}

	tests := []struct {
		name    string
		modify  func(c catalog.AddBookCommand) catalog.AddBookCommand
		invalid bool
	}{
		{name: "valid", modify: func(c catalog.AddBookCommand) catalog.AddBookCommand { return c }},
		{name: "without_isbn", modify: func(c catalog.AddBookCommand) catalog.AddBookCommand { c.ISBN13 = ""; return c }},
		{name: "unknown_book_type", modify: func(c catalog.AddBookCommand) catalog.AddBookCommand { c.BookType = 0; return c }, invalid: true},
		{name: "missing_category", modify: func(c catalog.AddBookCommand) catalog.AddBookCommand { c.CategoryID = 0; return c }, invalid: true},
		{name: "blank_title", modify: func(c catalog.AddBookCommand) catalog.AddBookCommand { c.Title = " "; return c }, invalid: true},
		{name: "title_too_long", modify: func(c catalog.AddBookCommand) catalog.AddBookCommand {
			c.Title = strings.Repeat("t", catalog.BookTitleMaxLength+1)
			return c
		}, invalid: true},
		{name: "author_too_long", modify: func(c catalog.AddBookCommand) catalog.AddBookCommand {
			c.Author = strings.Repeat("a", catalog.BookAuthorMaxLength+1)
			return c
		}, invalid: true},
		{name: "malformed_isbn", modify: func(c catalog.AddBookCommand) catalog.AddBookCommand { c.ISBN13 = "978-044101359"; return c }, invalid: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.modify(valid).Validate()

			if tc.invalid {
				assert.ErrorIs(t, err, catalog.ErrInvalidCommand)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func Test_Category_Commands_Validate(t *testing.T) {
	assert.NoError(t, catalog.AddCategoryCommand{Name: "Science Fiction"}.Validate())
	assert.ErrorIs(t, catalog.AddCategoryCommand{Name: ""}.Validate(), catalog.ErrInvalidCommand)
	assert.ErrorIs(t, catalog.AddCategoryCommand{Name: strings.Repeat("n", 51)}.Validate(), catalog.ErrInvalidCommand)
	assert.NoError(t, catalog.UpdateCategoryCommand{ID: 1, Name: "Fantasy"}.Validate())
	assert.ErrorIs(t, catalog.UpdateCategoryCommand{ID: 0, Name: "Fantasy"}.Validate(), catalog.ErrInvalidCommand)
}

func Test_BooksQuery_Paging(t *testing.T) {
	assert.Equal(t, 0, catalog.Offset(1, 10))
	assert.Equal(t, 20, catalog.Offset(3, 10))
	assert.Equal(t, 0, catalog.Offset(0, 10))
	assert.False(t, catalog.BooksQuery{}.Paged())
	assert.Equal(t, 10, catalog.BooksQuery{Page: 2, Size: 10}.Offset())
	assert.Equal(t, []int{1, 2}, catalog.BooksQuery{BookTypes: []catalog.BookType{catalog.Paper, catalog.Ebook}}.BookTypeCodes())
	assert.Nil(t, catalog.BooksQuery{}.BookTypeCodes())
}
