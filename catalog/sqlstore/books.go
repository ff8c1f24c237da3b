package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/bookshelf/catalog"
	"github.com/AntonStoeckl/bookshelf/catalog/sqlstore/internal/adapters"
	"github.com/AntonStoeckl/bookshelf/fieldpath"
	"github.com/AntonStoeckl/bookshelf/predicate"
	"github.com/AntonStoeckl/bookshelf/predicate/goquexpr"
)

const (
	colID         = "id"
	colCategoryID = "category_id"
	colBookType   = "book_type"
	colTitle      = "title"
	colAuthor     = "author"
	colPublished  = "published"
	colISBN13     = "isbn13"
	colName       = "name"

	bookDescriptorName = "book"
	pathBookID         = "book.id.id"
	pathCategoryID     = "book.category_id.id"
	pathBookType       = "book.book_type"
	pathTitle          = "book.title"
	pathAuthor         = "book.author"
	pathPublished      = "book.published"
	pathISBN13         = "book.isbn13"

	logActionAddBook    = "add book"
	logActionUpdateBook = "update book"
	logActionDeleteBook = "delete book"
	logActionFindBook   = "find book"
	logActionFindBooks  = "find books"
)

// bookAlias renames the category key of a book to the name it has in the API.
var bookAlias = fieldpath.AliasRule{pathCategoryID: "categoryId"}

// collectBookFields derives the select list of book queries from the catalog.Book descriptor.
func collectBookFields() (fieldpath.Fields, error) {
	root, err := fieldpath.Describe(bookDescriptorName, catalog.Book{})
	if err != nil {
		return nil, err
	}

	fields, err := fieldpath.Collect(root)
	if err != nil {
		return nil, err
	}

	for _, field := range fields {
		if _, ok := bookScanTargets(&bookRow{})[field.Path]; !ok {
			return nil, fmt.Errorf("%w: '%s'", ErrUnmappedField, field.Path)
		}
	}

	return fieldpath.ApplyAlias(fields, bookAlias), nil
}

// bookRow receives the columns of one book row.
type bookRow struct {
	id         string
	categoryID sql.NullInt64
	bookType   int64
	title      string
	author     string
	published  sql.NullTime
	isbn13     string
}

func bookScanTargets(row *bookRow) map[string]any {
	return map[string]any{
		pathBookID:     &row.id,
		pathCategoryID: &row.categoryID,
		pathBookType:   &row.bookType,
		pathTitle:      &row.title,
		pathAuthor:     &row.author,
		pathPublished:  &row.published,
		pathISBN13:     &row.isbn13,
	}
}

func (r bookRow) toBook() catalog.Book {
	book := catalog.Book{
		ID:       catalog.BuildBookID(r.id),
		Category: catalog.BuildCategoryID(int(r.categoryID.Int64)),
		BookType: catalog.BookType(r.bookType),
		Title:    r.title,
		Author:   r.author,
		ISBN13:   r.isbn13,
	}

	if r.published.Valid {
		published := r.published.Time.UTC()
		book.Published = &published
	}

	return book
}

// BookStore is the SQL implementation of catalog.BookRepository.
type BookStore struct {
	store Store
}

// NewIdentity generates the id for a new book.
func (b BookStore) NewIdentity() (catalog.BookID, error) {
	return catalog.NewBookID()
}

// Add inserts a new book.
func (b BookStore) Add(ctx context.Context, book catalog.Book) error {
	insertStmt := b.store.dialect.
		Insert(b.store.booksTableName).
		Prepared(true).
		Rows(goqu.Record{
			colID:         book.ID.ID,
			colCategoryID: book.Category.ID,
			colBookType:   int(book.BookType),
			colTitle:      book.Title,
			colAuthor:     book.Author,
			colPublished:  nullableTime(book.Published),
			colISBN13:     book.ISBN13,
		})

	if _, err := b.store.exec(ctx, logActionAddBook, insertStmt); err != nil {
		return err
	}

	b.store.logOperation(logActionAddBook, logAttrBookID, book.ID.ID)

	return nil
}

// Update changes all attributes of a stored book, except its id and category.
func (b BookStore) Update(ctx context.Context, book catalog.Book) error {
	where, err := byBookID(book.ID)
	if err != nil {
		return err
	}

	updateStmt := b.store.dialect.
		Update(b.store.booksTableName).
		Prepared(true).
		Set(goqu.Record{
			colBookType:  int(book.BookType),
			colTitle:     book.Title,
			colAuthor:    book.Author,
			colPublished: nullableTime(book.Published),
			colISBN13:    book.ISBN13,
		}).
		Where(where)

	updated, err := b.store.execAffecting(ctx, logActionUpdateBook, updateStmt)
	if err != nil {
		return err
	}

	if !updated {
		return fmt.Errorf("%w: '%s'", catalog.ErrBookNotFound, book.ID)
	}

	return nil
}

// FindByID loads a single book.
func (b BookStore) FindByID(ctx context.Context, id catalog.BookID) (catalog.Book, error) {
	where, err := byBookID(id)
	if err != nil {
		return catalog.Book{}, err
	}

	books, err := b.find(ctx, logActionFindBook, b.selectBooks().Where(where).Limit(1))
	if err != nil {
		return catalog.Book{}, err
	}

	if len(books) == 0 {
		return catalog.Book{}, fmt.Errorf("%w: '%s'", catalog.ErrBookNotFound, id)
	}

	return books[0], nil
}

// FindAll loads all books, ordered by title.
func (b BookStore) FindAll(ctx context.Context) ([]catalog.Book, error) {
	return b.Find(ctx, catalog.BooksQuery{})
}

// Find loads the books matching the query, ordered by title.
func (b BookStore) Find(ctx context.Context, query catalog.BooksQuery) ([]catalog.Book, error) {
	filter, err := bookFilter(query)
	if err != nil {
		return nil, err
	}

	selectStmt := b.selectBooks()
	if filter != nil {
		selectStmt = selectStmt.Where(filter)
	}

	if query.Paged() {
		selectStmt = selectStmt.Limit(uint(query.Size)).Offset(uint(query.Offset()))
	}

	return b.find(ctx, logActionFindBooks, selectStmt)
}

// Delete removes a book.
func (b BookStore) Delete(ctx context.Context, id catalog.BookID) error {
	where, err := byBookID(id)
	if err != nil {
		return err
	}

	deleted, err := b.store.execAffecting(ctx, logActionDeleteBook, b.store.dialect.Delete(b.store.booksTableName).Prepared(true).Where(where))
	if err != nil {
		return err
	}

	if !deleted {
		return fmt.Errorf("%w: '%s'", catalog.ErrBookNotFound, id)
	}

	return nil
}

func (b BookStore) selectBooks() *goqu.SelectDataset {
	return b.store.dialect.
		From(b.store.booksTableName).
		Prepared(true).
		Select(b.store.bookSelect...).
		Order(goqu.C(colTitle).Asc(), goqu.C(colID).Asc())
}

func (b BookStore) find(ctx context.Context, action string, selectStmt *goqu.SelectDataset) ([]catalog.Book, error) {
	start := time.Now()

	rows, err := b.store.query(ctx, action, selectStmt)
	if err != nil {
		return nil, err
	}
	defer b.store.closeRows(rows)

	books, err := b.scanBooks(rows)
	if err != nil {
		return nil, err
	}

	b.store.logOperation(action, logAttrBookCount, len(books), logAttrDurationMS, durationToMilliseconds(time.Since(start)))

	return books, nil
}

func (b BookStore) scanBooks(rows adapters.DBRows) ([]catalog.Book, error) {
	books := make([]catalog.Book, 0)

	for rows.Next() {
		var row bookRow

		targets := bookScanTargets(&row)
		dest := make([]any, 0, len(b.store.bookFields))
		for _, field := range b.store.bookFields {
			dest = append(dest, targets[field.Path])
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, b.store.scanFailed(err)
		}

		books = append(books, row.toBook())
	}

	if err := rows.Err(); err != nil {
		return nil, b.store.scanFailed(err)
	}

	return books, nil
}

/***** predicates *****/

// byBookID builds the key predicate of a book. A blank id is rejected as a missing criterion.
func byBookID(id catalog.BookID) (exp.Expression, error) {
	where, err := goquexpr.Start().
		Required(predicate.With(goquexpr.Eq[string](colID), id.ID)).
		End()
	if err != nil {
		return nil, fmt.Errorf("%w: book id", err)
	}

	return where, nil
}

// bookFilter composes the where clause of a books query. Criteria that are not set are left out,
// so an empty query yields no predicate at all.
func bookFilter(query catalog.BooksQuery) (exp.Expression, error) {
	return goquexpr.Start().
		Optional(predicate.With(goquexpr.In[int](colBookType), query.BookTypeCodes())).
		And().Optional(predicate.With(categoryEq, query.CategoryID)).
		And().Optional(predicate.With(goquexpr.Contains(colTitle), query.Title)).
		And().Brace(func(c predicate.Composer[exp.Expression]) predicate.Composer[exp.Expression] {
			return c.Required(predicate.With(goquexpr.Contains(colTitle), query.Keyword)).
				Or().Required(predicate.With(goquexpr.Contains(colAuthor), query.Keyword))
		}, query.Keyword).
		And().Brace(func(c predicate.Composer[exp.Expression]) predicate.Composer[exp.Expression] {
			return c.Optional(predicate.With(publishedFrom, query.PublishedFrom)).
				And().Optional(predicate.With(publishedUntil, query.PublishedUntil))
		}).
		And().Then(predicate.Loop(query.Authors, predicate.JoinOr,
			func(c predicate.Composer[exp.Expression], author string) predicate.Composer[exp.Expression] {
				return c.Optional(predicate.With(goquexpr.Eq[string](colAuthor), author))
			})).
		End()
}

func categoryEq(id *int) exp.Expression {
	return goqu.C(colCategoryID).Eq(*id)
}

func publishedFrom(from *time.Time) exp.Expression {
	return goqu.C(colPublished).Gte(from.UTC())
}

func publishedUntil(until *time.Time) exp.Expression {
	return goqu.C(colPublished).Lte(until.UTC())
}

// nullableTime maps a missing time to NULL and stores times in UTC.
func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}

	return t.UTC()
}
