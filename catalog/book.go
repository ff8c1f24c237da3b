package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Constraints of book attributes.
const (
	BookTitleMaxLength  = 100
	BookAuthorMaxLength = 50
)

/***** BookType *****/

// BookType is the medium of a book. The numeric value is what gets stored.
type BookType int

const (
	// Paper is a printed book.
	Paper BookType = 1
	// Ebook is an electronic book.
	Ebook BookType = 2
)

var bookTypeNames = map[BookType]string{
	Paper: "Paper",
	Ebook: "Ebook",
}

// ParseBookType parses the name of a book type, case-insensitively.
func ParseBookType(name string) (BookType, error) {
	for bookType, bookTypeName := range bookTypeNames {
		if strings.EqualFold(bookTypeName, strings.TrimSpace(name)) {
			return bookType, nil
		}
	}

	return 0, fmt.Errorf("%w: '%s'", ErrInvalidBookType, name)
}

// Valid reports whether t is a known book type.
func (t BookType) Valid() bool {
	_, ok := bookTypeNames[t]
	return ok
}

func (t BookType) String() string {
	if name, ok := bookTypeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("BookType(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t BookType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBookType, int(t))
	}

	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *BookType) UnmarshalText(text []byte) error {
	parsed, err := ParseBookType(string(text))
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

/***** ids *****/

// BookID identifies a book. It is generated by the application, not by the database.
type BookID struct {
	ID string `db:"id"`
}

// BuildBookID wraps an existing id.
func BuildBookID(id string) BookID {
	return BookID{ID: id}
}

// NewBookID generates a new time-ordered BookID.
func NewBookID() (BookID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return BookID{}, err
	}

	return BookID{ID: id.String()}, nil
}

func (id BookID) String() string {
	return id.ID
}

// CategoryID identifies a category. It is assigned by the database.
type CategoryID struct {
	ID int `db:"id"`
}

// BuildCategoryID wraps an existing id.
func BuildCategoryID(id int) CategoryID {
	return CategoryID{ID: id}
}

/***** Book *****/

// Book is a book in the catalog.
type Book struct {
	ID        BookID     `db:"id"`
	Category  CategoryID `db:"category_id"`
	BookType  BookType   `db:"book_type"`
	Title     string     `db:"title"`
	Author    string     `db:"author"`
	Published *time.Time `db:"published"`
	ISBN13    string     `db:"isbn13"`
}
