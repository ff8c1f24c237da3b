// Package cli holds the cobra commands of the bookshelf binary.
package cli
