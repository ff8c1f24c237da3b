package memstore

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/AntonStoeckl/bookshelf/catalog"
	"github.com/AntonStoeckl/bookshelf/predicate"
	"github.com/AntonStoeckl/bookshelf/predicate/memfilter"
)

type bookFilter = memfilter.Filter[catalog.Book]

// Store holds books and categories in memory.
type Store struct {
	mu             sync.RWMutex
	books          map[catalog.BookID]catalog.Book
	categories     map[catalog.CategoryID]catalog.Category
	lastCategoryID int
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		books:      make(map[catalog.BookID]catalog.Book),
		categories: make(map[catalog.CategoryID]catalog.Category),
	}
}

// Books returns the book repository of the store.
func (s *Store) Books() BookStore {
	return BookStore{store: s}
}

// Categories returns the category repository of the store.
func (s *Store) Categories() CategoryStore {
	return CategoryStore{store: s}
}

/***** books *****/

// BookStore is the in-memory implementation of catalog.BookRepository.
type BookStore struct {
	store *Store
}

// NewIdentity generates the id for a new book.
func (b BookStore) NewIdentity() (catalog.BookID, error) {
	return catalog.NewBookID()
}

// Add stores a new book.
func (b BookStore) Add(_ context.Context, book catalog.Book) error {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	b.store.books[book.ID] = copyBook(book)

	return nil
}

// Update changes all attributes of a stored book, except its id and category.
func (b BookStore) Update(_ context.Context, book catalog.Book) error {
	if err := checkBookID(book.ID); err != nil {
		return err
	}

	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	stored, ok := b.store.books[book.ID]
	if !ok {
		return fmt.Errorf("%w: '%s'", catalog.ErrBookNotFound, book.ID)
	}

	book.Category = stored.Category
	b.store.books[book.ID] = copyBook(book)

	return nil
}

// FindByID loads a single book.
func (b BookStore) FindByID(_ context.Context, id catalog.BookID) (catalog.Book, error) {
	if err := checkBookID(id); err != nil {
		return catalog.Book{}, err
	}

	b.store.mu.RLock()
	defer b.store.mu.RUnlock()

	book, ok := b.store.books[id]
	if !ok {
		return catalog.Book{}, fmt.Errorf("%w: '%s'", catalog.ErrBookNotFound, id)
	}

	return copyBook(book), nil
}

// FindAll loads all books, ordered by title.
func (b BookStore) FindAll(ctx context.Context) ([]catalog.Book, error) {
	return b.Find(ctx, catalog.BooksQuery{})
}

// Find loads the books matching the query, ordered by title.
func (b BookStore) Find(_ context.Context, query catalog.BooksQuery) ([]catalog.Book, error) {
	filter, err := matching(query)
	if err != nil {
		return nil, err
	}

	b.store.mu.RLock()
	all := make([]catalog.Book, 0, len(b.store.books))
	for _, book := range b.store.books {
		all = append(all, copyBook(book))
	}
	b.store.mu.RUnlock()

	slices.SortFunc(all, func(x, y catalog.Book) int {
		return cmp.Or(cmp.Compare(x.Title, y.Title), cmp.Compare(x.ID.ID, y.ID.ID))
	})

	found := memfilter.Apply(all, filter)
	if !query.Paged() {
		return found, nil
	}

	return page(found, query.Offset(), query.Size), nil
}

// Delete removes a book.
func (b BookStore) Delete(_ context.Context, id catalog.BookID) error {
	if err := checkBookID(id); err != nil {
		return err
	}

	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	if _, ok := b.store.books[id]; !ok {
		return fmt.Errorf("%w: '%s'", catalog.ErrBookNotFound, id)
	}

	delete(b.store.books, id)

	return nil
}

/***** categories *****/

// CategoryStore is the in-memory implementation of catalog.CategoryRepository.
type CategoryStore struct {
	store *Store
}

// Add stores a category under the next free id.
func (c CategoryStore) Add(_ context.Context, name string) (catalog.Category, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	c.store.lastCategoryID++
	category := catalog.Category{ID: catalog.BuildCategoryID(c.store.lastCategoryID), Name: name}
	c.store.categories[category.ID] = category

	return category, nil
}

// Update renames a category.
func (c CategoryStore) Update(_ context.Context, category catalog.Category) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if _, ok := c.store.categories[category.ID]; !ok {
		return fmt.Errorf("%w: %d", catalog.ErrCategoryNotFound, category.ID.ID)
	}

	c.store.categories[category.ID] = category

	return nil
}

// FindByID loads a single category.
func (c CategoryStore) FindByID(_ context.Context, id catalog.CategoryID) (catalog.Category, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	category, ok := c.store.categories[id]
	if !ok {
		return catalog.Category{}, fmt.Errorf("%w: %d", catalog.ErrCategoryNotFound, id.ID)
	}

	return category, nil
}

// Exists reports whether the category is stored.
func (c CategoryStore) Exists(_ context.Context, id catalog.CategoryID) (bool, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	_, ok := c.store.categories[id]

	return ok, nil
}

// FindAll loads all categories, ordered by name.
func (c CategoryStore) FindAll(_ context.Context) ([]catalog.Category, error) {
	c.store.mu.RLock()
	categories := make([]catalog.Category, 0, len(c.store.categories))
	for _, category := range c.store.categories {
		categories = append(categories, category)
	}
	c.store.mu.RUnlock()

	slices.SortFunc(categories, func(x, y catalog.Category) int {
		return cmp.Or(cmp.Compare(x.Name, y.Name), cmp.Compare(x.ID.ID, y.ID.ID))
	})

	return categories, nil
}

// InUse reports whether any book refers to the category.
func (c CategoryStore) InUse(_ context.Context, id catalog.CategoryID) (bool, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	for _, book := range c.store.books {
		if book.Category == id {
			return true, nil
		}
	}

	return false, nil
}

// Delete removes a category. It does not check whether books still refer to it.
func (c CategoryStore) Delete(_ context.Context, id catalog.CategoryID) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if _, ok := c.store.categories[id]; !ok {
		return fmt.Errorf("%w: %d", catalog.ErrCategoryNotFound, id.ID)
	}

	delete(c.store.categories, id)

	return nil
}

/***** filters *****/

// matching composes the filter of a books query. Criteria that are not set are left out,
// so an empty query yields a nil filter, which matches every book.
func matching(query catalog.BooksQuery) (bookFilter, error) {
	return memfilter.Start[catalog.Book]().
		Optional(predicate.With(bookTypeIn, query.BookTypes)).
		And().Optional(predicate.With(categoryIs, query.CategoryID)).
		And().Optional(predicate.With(titleContains, query.Title)).
		And().Brace(func(c predicate.Composer[bookFilter]) predicate.Composer[bookFilter] {
			return c.Required(predicate.With(titleContains, query.Keyword)).
				Or().Required(predicate.With(authorContains, query.Keyword))
		}, query.Keyword).
		And().Brace(func(c predicate.Composer[bookFilter]) predicate.Composer[bookFilter] {
			return c.Optional(predicate.With(publishedFrom, query.PublishedFrom)).
				And().Optional(predicate.With(publishedUntil, query.PublishedUntil))
		}).
		And().Then(predicate.Loop(query.Authors, predicate.JoinOr,
			func(c predicate.Composer[bookFilter], author string) predicate.Composer[bookFilter] {
				return c.Optional(predicate.With(authorIs, author))
			})).
		End()
}

func bookTypeIn(bookTypes []catalog.BookType) bookFilter {
	return func(book catalog.Book) bool {
		return slices.Contains(bookTypes, book.BookType)
	}
}

func categoryIs(id *int) bookFilter {
	return func(book catalog.Book) bool {
		return book.Category.ID == *id
	}
}

func titleContains(keyword string) bookFilter {
	return func(book catalog.Book) bool {
		return containsFold(book.Title, keyword)
	}
}

func authorContains(keyword string) bookFilter {
	return func(book catalog.Book) bool {
		return containsFold(book.Author, keyword)
	}
}

func authorIs(author string) bookFilter {
	return func(book catalog.Book) bool {
		return book.Author == author
	}
}

func publishedFrom(from *time.Time) bookFilter {
	return func(book catalog.Book) bool {
		return book.Published != nil && !book.Published.Before(*from)
	}
}

func publishedUntil(until *time.Time) bookFilter {
	return func(book catalog.Book) bool {
		return book.Published != nil && !book.Published.After(*until)
	}
}

// checkBookID rejects a blank book id as a missing criterion.
func checkBookID(id catalog.BookID) error {
	if !predicate.Available(id.ID) {
		return fmt.Errorf("%w: book id", predicate.ErrRequiredCriterionMissing)
	}

	return nil
}

func containsFold(text, keyword string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(keyword))
}

func page(books []catalog.Book, offset, size int) []catalog.Book {
	if offset >= len(books) {
		return []catalog.Book{}
	}

	return books[offset:min(offset+size, len(books))]
}

// copyBook detaches the publication date from the caller's pointer.
func copyBook(book catalog.Book) catalog.Book {
	if book.Published != nil {
		published := *book.Published
		book.Published = &published
	}

	return book
}

var _ catalog.BookRepository = BookStore{}
var _ catalog.CategoryRepository = CategoryStore{}
