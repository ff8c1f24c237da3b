// Package memstore provides in-memory implementations of the catalog repositories.
//
// Book queries are composed from the same optional criteria as in the SQL store, with filter closures
// as predicates. The store is safe for concurrent use and is meant for tests and demos.
package memstore
