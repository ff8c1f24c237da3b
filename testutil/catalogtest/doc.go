// Package catalogtest provides fixtures and a shared contract test suite for implementations of the
// catalog repositories.
package catalogtest
