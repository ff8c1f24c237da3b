package fieldpath

import (
	"fmt"
)

type queued struct {
	node *Composite
	path string
}

// Collect walks the descriptor tree breadth-first, children in declaration order, and returns the leaves.
//
// The root name is the first path segment. A root without leaves yields an empty list.
// A malformed tree yields ErrMalformedDescriptor and no fields at all, never a partial list.
func Collect(root *Composite) (Fields, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: root must not be nil", ErrMalformedDescriptor)
	}

	if root.Name == "" {
		return nil, fmt.Errorf("%w: root name must not be empty", ErrMalformedDescriptor)
	}

	fields := make(Fields, 0)
	visited := map[*Composite]struct{}{root: {}}
	queue := []queued{{node: root, path: root.Name}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		siblings := make(map[string]struct{}, len(current.node.Children))

		for i, child := range current.node.Children {
			if err := checkChild(current.path, i, child, siblings); err != nil {
				return nil, err
			}

			path := joinPath(current.path, child.nodeName())

			switch node := child.(type) {
			case *Composite:
				if _, seen := visited[node]; seen {
					return nil, fmt.Errorf("%w: %s is reachable more than once", ErrMalformedDescriptor, path)
				}

				visited[node] = struct{}{}
				queue = append(queue, queued{node: node, path: path})

			case Leaf:
				fields = append(fields, Field{Path: path, Column: node.Column, Name: node.Name})
			}
		}
	}

	return fields, nil
}

func checkChild(parentPath string, index int, child Node, siblings map[string]struct{}) error {
	if child == nil {
		return fmt.Errorf("%w: child %d of %s is nil", ErrMalformedDescriptor, index, parentPath)
	}

	if composite, ok := child.(*Composite); ok && composite == nil {
		return fmt.Errorf("%w: child %d of %s is nil", ErrMalformedDescriptor, index, parentPath)
	}

	name := child.nodeName()
	if name == "" {
		return fmt.Errorf("%w: child %d of %s has no name", ErrMalformedDescriptor, index, parentPath)
	}

	if _, duplicate := siblings[name]; duplicate {
		return fmt.Errorf("%w: %s declares %q twice", ErrMalformedDescriptor, parentPath, name)
	}

	siblings[name] = struct{}{}

	if leaf, ok := child.(Leaf); ok && leaf.Column == "" {
		return fmt.Errorf("%w: %s has no column", ErrMalformedDescriptor, joinPath(parentPath, name))
	}

	return nil
}
