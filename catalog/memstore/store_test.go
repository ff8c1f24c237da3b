package memstore_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/bookshelf/catalog"
	"github.com/AntonStoeckl/bookshelf/catalog/memstore"
	"github.com/AntonStoeckl/bookshelf/testutil/catalogtest"
)

func Test_MemStore_Fulfills_The_Repository_Contract(t *testing.T) {
	catalogtest.RunRepositoryContract(t, func(t *testing.T) catalogtest.Repositories {
		store := memstore.NewStore()
		return catalogtest.Repositories{Books: store.Books(), Categories: store.Categories()}
	})
}

func Test_MemStore_Returns_Detached_Books(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	published := catalogtest.Date(1965, 8, 1)

	book := catalogtest.GivenBook(t, ctx, store.Books(), catalog.Book{BookType: catalog.Paper, Title: "Dune", Published: published})
	*published = published.AddDate(1, 0, 0)

	found, err := store.Books().FindByID(ctx, book.ID)

	require.NoError(t, err)
	assert.Equal(t, 1965, found.Published.Year())
}

func Test_MemStore_Is_Safe_For_Concurrent_Use(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	category := catalogtest.GivenCategory(t, ctx, store.Categories(), "Science Fiction")

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(2)

		go func() {
			defer wg.Done()

			id, err := store.Books().NewIdentity()
			assert.NoError(t, err)
			assert.NoError(t, store.Books().Add(ctx, catalog.Book{ID: id, Category: category.ID, BookType: catalog.Paper, Title: "Dune"}))
		}()

		go func() {
			defer wg.Done()

			_, err := store.Books().Find(ctx, catalog.BooksQuery{Title: "dune"})
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	books, err := store.Books().FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 20)
}
