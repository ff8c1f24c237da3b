package catalog

import (
	"time"
)

// BooksQuery holds the optional criteria for listing books. Criteria that are not set are ignored.
type BooksQuery struct {
	// BookTypes matches books of any of the types.
	BookTypes []BookType
	// CategoryID matches books of the category.
	CategoryID *int
	// Title matches books whose title contains the text, case-insensitively.
	Title string
	// Keyword matches books whose title or author contains the text, case-insensitively.
	Keyword string
	// Authors matches books written by any of the authors.
	Authors []string
	// PublishedFrom and PublishedUntil bound the publication date, both inclusive.
	PublishedFrom  *time.Time
	PublishedUntil *time.Time
	// Page starts at 1. A Size of 0 disables paging.
	Page int
	Size int
}

// BookTypeCodes returns the stored values of the book types.
func (q BooksQuery) BookTypeCodes() []int {
	if len(q.BookTypes) == 0 {
		return nil
	}

	codes := make([]int, 0, len(q.BookTypes))
	for _, bookType := range q.BookTypes {
		codes = append(codes, int(bookType))
	}

	return codes
}

// Paged reports whether the query asks for a single page.
func (q BooksQuery) Paged() bool {
	return q.Size > 0
}

// Offset returns the number of books to skip for the page. Pages start at 1.
func (q BooksQuery) Offset() int {
	return Offset(q.Page, q.Size)
}

// Offset calculates the offset of a 1-based page.
func Offset(page, size int) int {
	if page < 1 {
		page = 1
	}

	return (page - 1) * size
}
