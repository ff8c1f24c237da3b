package httpapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/AntonStoeckl/bookshelf/catalog"
)

const (
	paramBookType       = "bookType"
	paramCategoryID     = "categoryId"
	paramTitle          = "title"
	paramKeyword        = "keyword"
	paramAuthor         = "author"
	paramPublishedFrom  = "publishedFrom"
	paramPublishedUntil = "publishedUntil"
	paramPage           = "page"
	paramSize           = "size"
	dateLayout          = time.DateOnly
)

// parseBooksQuery reads the criteria of a books listing. Parameters that are missing stay unset.
func parseBooksQuery(values url.Values) (catalog.BooksQuery, error) {
	var (
		query catalog.BooksQuery
		err   error
	)

	for _, value := range values[paramBookType] {
		bookType, parseErr := parseBookType(value)
		if parseErr != nil {
			return catalog.BooksQuery{}, parseErr
		}

		query.BookTypes = append(query.BookTypes, bookType)
	}

	if query.CategoryID, err = optionalInt(values, paramCategoryID); err != nil {
		return catalog.BooksQuery{}, err
	}

	if query.PublishedFrom, err = optionalTime(values, paramPublishedFrom); err != nil {
		return catalog.BooksQuery{}, err
	}

	if query.PublishedUntil, err = optionalTime(values, paramPublishedUntil); err != nil {
		return catalog.BooksQuery{}, err
	}

	if query.Page, err = nonNegativeInt(values, paramPage); err != nil {
		return catalog.BooksQuery{}, err
	}

	if query.Size, err = nonNegativeInt(values, paramSize); err != nil {
		return catalog.BooksQuery{}, err
	}

	query.Title = values.Get(paramTitle)
	query.Keyword = values.Get(paramKeyword)
	query.Authors = values[paramAuthor]

	return query, nil
}

// parseBookType accepts the name or the stored code of a book type.
func parseBookType(value string) (catalog.BookType, error) {
	if code, err := strconv.Atoi(value); err == nil {
		if bookType := catalog.BookType(code); bookType.Valid() {
			return bookType, nil
		}

		return 0, fmt.Errorf("%w: %d", catalog.ErrInvalidBookType, code)
	}

	return catalog.ParseBookType(value)
}

func optionalInt(values url.Values, name string) (*int, error) {
	if !values.Has(name) {
		return nil, nil
	}

	value, err := strconv.Atoi(values.Get(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s '%s'", errInvalidParameter, name, values.Get(name))
	}

	return &value, nil
}

func nonNegativeInt(values url.Values, name string) (int, error) {
	value, err := optionalInt(values, name)
	if err != nil || value == nil {
		return 0, err
	}

	if *value < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", errInvalidParameter, name)
	}

	return *value, nil
}

// optionalTime accepts RFC 3339 timestamps and plain dates, which mean midnight UTC.
func optionalTime(values url.Values, name string) (*time.Time, error) {
	value := strings.TrimSpace(values.Get(name))
	if value == "" {
		return nil, nil
	}

	for _, layout := range []string{time.RFC3339, dateLayout} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return &parsed, nil
		}
	}

	return nil, fmt.Errorf("%w: %s '%s'", errInvalidParameter, name, value)
}
