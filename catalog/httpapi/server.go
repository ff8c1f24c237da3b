package httpapi

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/bookshelf/catalog"
	"github.com/AntonStoeckl/bookshelf/catalog/service"
	"github.com/AntonStoeckl/bookshelf/predicate"
)

const (
	basePath           = "/v1.0"
	contentTypeJSON    = "application/json"
	headerContentType  = "Content-Type"
	logMsgRequestFail  = "request failed"
	logMsgRequestDone  = "request handled"
	logMsgEncodeFailed = "failed to encode response"
	logAttrError       = "error"
	logAttrMethod      = "method"
	logAttrPath        = "path"
	logAttrStatus      = "status"
	errCodeNotFound    = "NOT_FOUND"
	errCodeInvalid     = "INVALID_REQUEST"
	errCodeConflict    = "CONFLICT"
	errCodeInternal    = "INTERNAL_ERROR"
)

// Logger interface for request logging and error reporting. It is satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option defines a functional option for configuring a Server.
type Option func(*Server)

// WithLogger sets the logger for the Server.
func WithLogger(logger Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Server routes the catalog API.
type Server struct {
	books      service.BookService
	categories service.CategoryService
	logger     Logger
	mux        *http.ServeMux
}

// NewServer creates a Server with all routes registered.
func NewServer(books service.BookService, categories service.CategoryService, options ...Option) *Server {
	s := &Server{
		books:      books,
		categories: categories,
		mux:        http.NewServeMux(),
	}

	for _, option := range options {
		option(s)
	}

	s.routes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST "+basePath+"/books", s.addBook)
	s.mux.HandleFunc("GET "+basePath+"/books", s.listBooks)
	s.mux.HandleFunc("GET "+basePath+"/books/{id}", s.getBook)
	s.mux.HandleFunc("PUT "+basePath+"/books/{id}", s.updateBook)
	s.mux.HandleFunc("DELETE "+basePath+"/books/{id}", s.deleteBook)

	s.mux.HandleFunc("POST "+basePath+"/categories", s.addCategory)
	s.mux.HandleFunc("GET "+basePath+"/categories", s.listCategories)
	s.mux.HandleFunc("GET "+basePath+"/categories/{id}", s.getCategory)
	s.mux.HandleFunc("PUT "+basePath+"/categories/{id}", s.updateCategory)
	s.mux.HandleFunc("DELETE "+basePath+"/categories/{id}", s.deleteCategory)
}

/***** responses *****/

func (s *Server) decode(r *http.Request, target any) error {
	if err := jsoniter.ConfigFastest.NewDecoder(r.Body).Decode(target); err != nil {
		return errors.Join(errInvalidBody, err)
	}

	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set(headerContentType, contentTypeJSON)
	w.WriteHeader(status)

	if err := jsoniter.ConfigFastest.NewEncoder(w).Encode(body); err != nil {
		s.logError(logMsgEncodeFailed, r, status, err)
		return
	}

	if s.logger != nil {
		s.logger.Debug(logMsgRequestDone, logAttrMethod, r.Method, logAttrPath, r.URL.Path, logAttrStatus, status)
	}
}

func (s *Server) writeNoContent(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)

	if s.logger != nil {
		s.logger.Debug(logMsgRequestDone, logAttrMethod, r.Method, logAttrPath, r.URL.Path, logAttrStatus, http.StatusNoContent)
	}
}

// writeError maps err to a status code. Unexpected errors are logged and hidden from the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logError(logMsgRequestFail, r, status, err)
		message = http.StatusText(status)
	}

	s.writeJSON(w, r, status, ErrorResponse{Code: code, Message: message})
}

func (s *Server) logError(msg string, r *http.Request, status int, err error) {
	if s.logger != nil {
		s.logger.Error(msg, logAttrMethod, r.Method, logAttrPath, r.URL.Path, logAttrStatus, status, logAttrError, err.Error())
	}
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, catalog.ErrBookNotFound), errors.Is(err, catalog.ErrCategoryNotFound):
		return http.StatusNotFound, errCodeNotFound
	case errors.Is(err, catalog.ErrCategoryInUse):
		return http.StatusConflict, errCodeConflict
	case errors.Is(err, catalog.ErrInvalidCommand),
		errors.Is(err, catalog.ErrInvalidBookType),
		errors.Is(err, predicate.ErrInvalidArgument),
		errors.Is(err, errInvalidBody),
		errors.Is(err, errInvalidParameter):
		return http.StatusBadRequest, errCodeInvalid
	default:
		return http.StatusInternalServerError, errCodeInternal
	}
}
