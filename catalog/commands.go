package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const isbn13Length = 13

// AddBookCommand is the input for adding a book.
type AddBookCommand struct {
	BookType   BookType   `json:"bookType"`
	CategoryID int        `json:"categoryId"`
	Title      string     `json:"title"`
	Author     string     `json:"author"`
	Published  *time.Time `json:"published"`
	ISBN13     string     `json:"isbn13"`
}

// Validate checks the command against the book constraints.
func (c AddBookCommand) Validate() error {
	return validateBook(c.BookType, c.CategoryID, c.Title, c.Author, c.ISBN13)
}

// UpdateBookCommand is the input for changing a book. The category of a book can not be changed.
type UpdateBookCommand struct {
	ID        string     `json:"id"`
	BookType  BookType   `json:"bookType"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	Published *time.Time `json:"published"`
	ISBN13    string     `json:"isbn13"`
}

// Validate checks the command against the book constraints.
func (c UpdateBookCommand) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: id must not be empty", ErrInvalidCommand)
	}

	return validateBook(c.BookType, 1, c.Title, c.Author, c.ISBN13)
}

// AddCategoryCommand is the input for adding a category.
type AddCategoryCommand struct {
	Name string `json:"name"`
}

// Validate checks the command against the category constraints.
func (c AddCategoryCommand) Validate() error {
	return validateCategoryName(c.Name)
}

// UpdateCategoryCommand is the input for renaming a category.
type UpdateCategoryCommand struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Validate checks the command against the category constraints.
func (c UpdateCategoryCommand) Validate() error {
	if c.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidCommand)
	}

	return validateCategoryName(c.Name)
}

func validateBook(bookType BookType, categoryID int, title, author, isbn13 string) error {
	var errs []error

	if !bookType.Valid() {
		errs = append(errs, fmt.Errorf("unknown book type %d", int(bookType)))
	}

	if categoryID <= 0 {
		errs = append(errs, errors.New("category id must be positive"))
	}

	if strings.TrimSpace(title) == "" {
		errs = append(errs, errors.New("title must not be empty"))
	}

	if utf8.RuneCountInString(title) > BookTitleMaxLength {
		errs = append(errs, fmt.Errorf("title must not be longer than %d characters", BookTitleMaxLength))
	}

	if utf8.RuneCountInString(author) > BookAuthorMaxLength {
		errs = append(errs, fmt.Errorf("author must not be longer than %d characters", BookAuthorMaxLength))
	}

	if isbn13 != "" && !isISBN13(isbn13) {
		errs = append(errs, errors.New("isbn13 must consist of 13 digits"))
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidCommand}, errs...)...)
	}

	return nil
}

func validateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidCommand)
	}

	if utf8.RuneCountInString(name) > CategoryNameMaxLength {
		return fmt.Errorf("%w: name must not be longer than %d characters", ErrInvalidCommand, CategoryNameMaxLength)
	}

	return nil
}

func isISBN13(value string) bool {
	if len(value) != isbn13Length {
		return false
	}

	for _, r := range value {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}
