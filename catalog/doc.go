// Package catalog provides the domain types of the book catalog: books, categories,
// the commands that change them, the DTOs that leave the service layer, and the repository
// contracts implemented by the storage packages.
//
// Example usage:
//
//	query := catalog.BooksQuery{
//		BookTypes: []catalog.BookType{catalog.Paper},
//		Authors:   []string{"Frank Herbert", "William Gibson"},
//	}
//	books, err := repository.Find(ctx, query)
package catalog
