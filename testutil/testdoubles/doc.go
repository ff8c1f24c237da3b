// Package testdoubles provides test doubles (spies) for the logging interfaces of the bookshelf packages.
package testdoubles
