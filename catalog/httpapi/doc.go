// Package httpapi exposes the catalog services as a JSON API under v1.0/books and v1.0/categories.
//
// Listing books takes its criteria from the query string:
//
//	GET /v1.0/books?bookType=Paper&bookType=Ebook&categoryId=3&title=dune&keyword=herbert
//	               &author=Frank%20Herbert&publishedFrom=1960-01-01&publishedUntil=1970-12-31&page=1&size=20
//
// All criteria are optional, repeatable ones match any of their values.
package httpapi
