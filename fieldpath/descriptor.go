package fieldpath

import (
	"errors"
)

var (
	// ErrMalformedDescriptor is returned when a descriptor tree can not be collected completely.
	ErrMalformedDescriptor = errors.New("malformed field descriptor")

	// ErrIntrospection is returned when a descriptor can not be derived from a Go type.
	ErrIntrospection = errors.New("field descriptor introspection failed")
)

// PathSeparator joins the names of the nodes on the way from the root to a leaf.
const PathSeparator = "."

/***** Node *****/

// Node is either a *Composite or a Leaf.
// It's a "closed" interface, only types within this package can implement it.
type Node interface {
	nodeName() string
}

// Composite is an attribute that nests other attributes. It is not addressable itself.
type Composite struct {
	Name     string
	Children []Node
}

func (c *Composite) nodeName() string {
	return c.Name
}

// Leaf is an addressable attribute. Column is the identity used by the query engine.
type Leaf struct {
	Name   string
	Column string
}

func (l Leaf) nodeName() string {
	return l.Name
}

// NewComposite creates a Composite with the given children.
func NewComposite(name string, children ...Node) *Composite {
	return &Composite{Name: name, Children: children}
}

// NewLeaf creates a Leaf. An empty column defaults to the name.
func NewLeaf(name string, column string) Leaf {
	if column == "" {
		column = name
	}

	return Leaf{Name: name, Column: column}
}

/***** Field *****/

// Field is a collected leaf reference.
type Field struct {
	// Path is the natural path of the leaf, e.g. "book.category_id.id".
	Path string
	// Column identifies the field for the query engine. Aliasing never changes it.
	Column string
	// Name is the outbound name under which the field is projected.
	Name string
}

// Fields is an ordered list of collected leaf references.
type Fields []Field

// Paths returns the natural paths of all fields.
func (fs Fields) Paths() []string {
	return fs.project(func(f Field) string { return f.Path })
}

// Columns returns the columns of all fields.
func (fs Fields) Columns() []string {
	return fs.project(func(f Field) string { return f.Column })
}

// Names returns the outbound names of all fields.
func (fs Fields) Names() []string {
	return fs.project(func(f Field) string { return f.Name })
}

// Lookup finds a field by its natural path.
func (fs Fields) Lookup(path string) (Field, bool) {
	for _, f := range fs {
		if f.Path == path {
			return f, true
		}
	}

	return Field{}, false
}

func (fs Fields) project(value func(Field) string) []string {
	values := make([]string, 0, len(fs))
	for _, f := range fs {
		values = append(values, value(f))
	}

	return values
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}

	return parent + PathSeparator + name
}
