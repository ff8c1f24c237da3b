package catalog

import (
	"context"
)

// BookRepository stores books.
type BookRepository interface {
	NewIdentity() (BookID, error)
	Add(ctx context.Context, book Book) error
	Update(ctx context.Context, book Book) error
	FindByID(ctx context.Context, id BookID) (Book, error)
	FindAll(ctx context.Context) ([]Book, error)
	Find(ctx context.Context, query BooksQuery) ([]Book, error)
	Delete(ctx context.Context, id BookID) error
}

// CategoryRepository stores categories.
type CategoryRepository interface {
	Add(ctx context.Context, name string) (Category, error)
	Update(ctx context.Context, category Category) error
	FindByID(ctx context.Context, id CategoryID) (Category, error)
	Exists(ctx context.Context, id CategoryID) (bool, error)
	FindAll(ctx context.Context) ([]Category, error)
	InUse(ctx context.Context, id CategoryID) (bool, error)
	Delete(ctx context.Context, id CategoryID) error
}
