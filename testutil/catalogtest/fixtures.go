package catalogtest

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite driver
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/bookshelf/catalog"
)

// Repositories bundles the repositories under test.
type Repositories struct {
	Books      catalog.BookRepository
	Categories catalog.CategoryRepository
}

// Catalog holds the ids of the seeded fixture data.
type Catalog struct {
	ScienceFiction catalog.Category
	Cyberpunk      catalog.Category
	Dune           catalog.Book
	Foundation     catalog.Book
	Neuromancer    catalog.Book
	CountZero      catalog.Book
	Hitchhiker     catalog.Book
}

// Titles of the seeded books, in title order.
const (
	TitleCountZero   = "Count Zero"
	TitleDune        = "Dune"
	TitleFoundation  = "Foundation"
	TitleNeuromancer = "Neuromancer"
	TitleHitchhiker  = "The Hitchhiker's Guide to the Galaxy"
)

// Date returns midnight UTC of the day.
func Date(year int, month time.Month, day int) *time.Time {
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &date
}

// OpenSQLite opens a private in-memory SQLite database that is closed when the test ends.
func OpenSQLite(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err, "error in arranging test data")

	// every connection would open its own in-memory database
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// GivenCategory adds a category.
func GivenCategory(t testing.TB, ctx context.Context, categories catalog.CategoryRepository, name string) catalog.Category {
	t.Helper()

	category, err := categories.Add(ctx, name)
	require.NoError(t, err, "error in arranging test data")

	return category
}

// GivenBook adds a book with a new id.
func GivenBook(t testing.TB, ctx context.Context, books catalog.BookRepository, book catalog.Book) catalog.Book {
	t.Helper()

	id, err := books.NewIdentity()
	require.NoError(t, err, "error in arranging test data")

	book.ID = id
	require.NoError(t, books.Add(ctx, book), "error in arranging test data")

	return book
}

// GivenCatalog seeds two categories and five books.
func GivenCatalog(t testing.TB, ctx context.Context, repos Repositories) Catalog {
	t.Helper()

	var c Catalog

	c.ScienceFiction = GivenCategory(t, ctx, repos.Categories, "Science Fiction")
	c.Cyberpunk = GivenCategory(t, ctx, repos.Categories, "Cyberpunk")

	c.Dune = GivenBook(t, ctx, repos.Books, catalog.Book{
		Category:  c.ScienceFiction.ID,
		BookType:  catalog.Paper,
		Title:     TitleDune,
		Author:    "Frank Herbert",
		Published: Date(1965, time.August, 1),
		ISBN13:    "9780441013593",
	})

	c.Foundation = GivenBook(t, ctx, repos.Books, catalog.Book{
		Category:  c.ScienceFiction.ID,
		BookType:  catalog.Paper,
		Title:     TitleFoundation,
		Author:    "Isaac Asimov",
		Published: Date(1951, time.June, 1),
	})

	c.Neuromancer = GivenBook(t, ctx, repos.Books, catalog.Book{
		Category:  c.Cyberpunk.ID,
		BookType:  catalog.Ebook,
		Title:     TitleNeuromancer,
		Author:    "William Gibson",
		Published: Date(1984, time.July, 1),
	})

	c.CountZero = GivenBook(t, ctx, repos.Books, catalog.Book{
		Category:  c.Cyberpunk.ID,
		BookType:  catalog.Paper,
		Title:     TitleCountZero,
		Author:    "William Gibson",
		Published: Date(1986, time.March, 1),
	})

	c.Hitchhiker = GivenBook(t, ctx, repos.Books, catalog.Book{
		Category: c.ScienceFiction.ID,
		BookType: catalog.Ebook,
		Title:    TitleHitchhiker,
		Author:   "Douglas Adams",
	})

	return c
}

// Titles returns the titles of the books, keeping their order.
func Titles(books []catalog.Book) []string {
	titles := make([]string, 0, len(books))
	for _, book := range books {
		titles = append(titles, book.Title)
	}

	return titles
}
