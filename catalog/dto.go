package catalog

import (
	"time"
)

// BookDTO is a book as it leaves the service layer.
type BookDTO struct {
	ID         string     `json:"id"`
	CategoryID int        `json:"categoryId"`
	BookType   BookType   `json:"bookType"`
	Title      string     `json:"title"`
	Author     string     `json:"author"`
	Published  *time.Time `json:"published"`
	ISBN13     string     `json:"isbn13"`
}

// CategoryDTO is a category as it leaves the service layer.
type CategoryDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// AddCategoryResult carries the id the database assigned to a new category.
type AddCategoryResult struct {
	ID int `json:"id"`
}

// BookToDTO maps a book to its DTO.
func BookToDTO(book Book) BookDTO {
	return BookDTO{
		ID:         book.ID.ID,
		CategoryID: book.Category.ID,
		BookType:   book.BookType,
		Title:      book.Title,
		Author:     book.Author,
		Published:  book.Published,
		ISBN13:     book.ISBN13,
	}
}

// BooksToDTOs maps books to DTOs, keeping their order.
func BooksToDTOs(books []Book) []BookDTO {
	dtos := make([]BookDTO, 0, len(books))
	for _, book := range books {
		dtos = append(dtos, BookToDTO(book))
	}

	return dtos
}

// CategoryToDTO maps a category to its DTO.
func CategoryToDTO(category Category) CategoryDTO {
	return CategoryDTO{
		ID:   category.ID.ID,
		Name: category.Name,
	}
}

// CategoriesToDTOs maps categories to DTOs, keeping their order.
func CategoriesToDTOs(categories []Category) []CategoryDTO {
	dtos := make([]CategoryDTO, 0, len(categories))
	for _, category := range categories {
		dtos = append(dtos, CategoryToDTO(category))
	}

	return dtos
}

// BookFromAddCommand builds a new book from the command.
func BookFromAddCommand(id BookID, command AddBookCommand) Book {
	return Book{
		ID:        id,
		Category:  BuildCategoryID(command.CategoryID),
		BookType:  command.BookType,
		Title:     command.Title,
		Author:    command.Author,
		Published: command.Published,
		ISBN13:    command.ISBN13,
	}
}
