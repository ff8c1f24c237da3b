package service

import (
	"context"
	"fmt"

	"github.com/AntonStoeckl/bookshelf/catalog"
)

// BookService handles books.
type BookService struct {
	books      catalog.BookRepository
	categories catalog.CategoryRepository
}

// NewBookService creates a BookService.
func NewBookService(books catalog.BookRepository, categories catalog.CategoryRepository) BookService {
	return BookService{books: books, categories: categories}
}

// Add validates the command and stores a new book in an existing category.
func (s BookService) Add(ctx context.Context, command catalog.AddBookCommand) (catalog.BookDTO, error) {
	if err := command.Validate(); err != nil {
		return catalog.BookDTO{}, err
	}

	exists, err := s.categories.Exists(ctx, catalog.BuildCategoryID(command.CategoryID))
	if err != nil {
		return catalog.BookDTO{}, err
	}

	if !exists {
		return catalog.BookDTO{}, fmt.Errorf("%w: %d", catalog.ErrCategoryNotFound, command.CategoryID)
	}

	id, err := s.books.NewIdentity()
	if err != nil {
		return catalog.BookDTO{}, err
	}

	book := catalog.BookFromAddCommand(id, command)
	if err := s.books.Add(ctx, book); err != nil {
		return catalog.BookDTO{}, err
	}

	return catalog.BookToDTO(book), nil
}

// Get loads a book.
func (s BookService) Get(ctx context.Context, id string) (catalog.BookDTO, error) {
	book, err := s.books.FindByID(ctx, catalog.BuildBookID(id))
	if err != nil {
		return catalog.BookDTO{}, err
	}

	return catalog.BookToDTO(book), nil
}

// List loads all books.
func (s BookService) List(ctx context.Context) ([]catalog.BookDTO, error) {
	books, err := s.books.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return catalog.BooksToDTOs(books), nil
}

// Find loads the books matching the query.
func (s BookService) Find(ctx context.Context, query catalog.BooksQuery) ([]catalog.BookDTO, error) {
	books, err := s.books.Find(ctx, query)
	if err != nil {
		return nil, err
	}

	return catalog.BooksToDTOs(books), nil
}

// Update validates the command and changes the book. The category stays as it is.
func (s BookService) Update(ctx context.Context, command catalog.UpdateBookCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	book, err := s.books.FindByID(ctx, catalog.BuildBookID(command.ID))
	if err != nil {
		return err
	}

	book.BookType = command.BookType
	book.Title = command.Title
	book.Author = command.Author
	book.Published = command.Published
	book.ISBN13 = command.ISBN13

	return s.books.Update(ctx, book)
}

// Delete removes a book.
func (s BookService) Delete(ctx context.Context, id string) error {
	return s.books.Delete(ctx, catalog.BuildBookID(id))
}
