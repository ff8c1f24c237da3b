// Package service holds the use cases of the catalog: adding, reading, listing, changing and
// removing books and categories. Services validate commands and map domain values to DTOs.
package service
