package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/AntonStoeckl/bookshelf/catalog"
)

var (
	errInvalidBody      = errors.New("invalid request body")
	errInvalidParameter = errors.New("invalid parameter")
)

/***** books *****/

func (s *Server) addBook(w http.ResponseWriter, r *http.Request) {
	var command catalog.AddBookCommand
	if err := s.decode(r, &command); err != nil {
		s.writeError(w, r, err)
		return
	}

	book, err := s.books.Add(r.Context(), command)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusCreated, book)
}

func (s *Server) listBooks(w http.ResponseWriter, r *http.Request) {
	query, err := parseBooksQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	books, err := s.books.Find(r.Context(), query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, books)
}

func (s *Server) getBook(w http.ResponseWriter, r *http.Request) {
	book, err := s.books.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, book)
}

func (s *Server) updateBook(w http.ResponseWriter, r *http.Request) {
	var command catalog.UpdateBookCommand
	if err := s.decode(r, &command); err != nil {
		s.writeError(w, r, err)
		return
	}

	command.ID = r.PathValue("id")

	if err := s.books.Update(r.Context(), command); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeNoContent(w, r)
}

func (s *Server) deleteBook(w http.ResponseWriter, r *http.Request) {
	if err := s.books.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeNoContent(w, r)
}

/***** categories *****/

func (s *Server) addCategory(w http.ResponseWriter, r *http.Request) {
	var command catalog.AddCategoryCommand
	if err := s.decode(r, &command); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.categories.Add(r.Context(), command)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusCreated, result)
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.categories.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, categories)
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := categoryIDFromPath(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	category, err := s.categories.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, category)
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := categoryIDFromPath(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var command catalog.UpdateCategoryCommand
	if err := s.decode(r, &command); err != nil {
		s.writeError(w, r, err)
		return
	}

	command.ID = id

	if err := s.categories.Update(r.Context(), command); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeNoContent(w, r)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := categoryIDFromPath(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.categories.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeNoContent(w, r)
}

func categoryIDFromPath(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, fmt.Errorf("%w: category id '%s'", errInvalidParameter, r.PathValue("id"))
	}

	return id, nil
}
