// Package fieldpath flattens a nested attribute descriptor into an ordered list of addressable
// leaf field references, used as the projection list of a query.
//
// A descriptor is a tree of Composite nodes (attributes that nest other attributes) and Leaf nodes
// (scalar attributes mapped to a column). It is built once per entity type, either by hand or with
// Describe from a struct type, and collected once:
//
//	root, err := fieldpath.Describe("book", catalog.Book{})
//	fields, err := fieldpath.Collect(root)
//	fields = fieldpath.ApplyAlias(fields, fieldpath.AliasRule{"book.category_id.id": "category_id"})
//
// The collected Fields are shared read-only afterward; no reader may modify them.
package fieldpath
