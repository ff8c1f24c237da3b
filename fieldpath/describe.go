package fieldpath

import (
	"database/sql/driver"
	"encoding"
	"fmt"
	"reflect"
	"strings"
	"time"
)

const (
	tagDB     = "db"
	tagColumn = "column"
	tagIgnore = "-"
)

var (
	timeType          = reflect.TypeOf(time.Time{})
	valuerType        = reflect.TypeOf((*driver.Valuer)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// Describe derives a descriptor tree from the struct type of entity, following the sqlx conventions:
//
//   - the `db` tag names an attribute, untagged fields use their lower-cased Go name
//   - `db:"-"` and unexported fields are not part of the descriptor
//   - anonymous embedded structs are flattened into their parent
//   - named struct fields become composites, except time.Time and types that marshal themselves
//     (driver.Valuer, encoding.TextMarshaler), which are leaves
//
// Leaf columns are the attribute name, prefixed with the column of the enclosing composite
// (`category_id` + `id` = `category_id_id`). A composite holding a single leaf maps that leaf to the
// composite's own column, which is how value object keys are stored. A `column` tag overrides the column.
func Describe(name string, entity any) (*Composite, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: descriptor name must not be empty", ErrIntrospection)
	}

	t := reflect.TypeOf(entity)
	if t == nil {
		return nil, fmt.Errorf("%w: entity must not be nil", ErrIntrospection)
	}

	t = indirect(t)
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrIntrospection, t)
	}

	root := &Composite{Name: name}
	if err := describeFields(root, "", t, map[reflect.Type]bool{}); err != nil {
		return nil, err
	}

	return root, nil
}

func describeFields(parent *Composite, columnPrefix string, t reflect.Type, inProgress map[reflect.Type]bool) error {
	if inProgress[t] {
		return fmt.Errorf("%w: %s contains itself", ErrIntrospection, t)
	}

	inProgress[t] = true
	defer delete(inProgress, t)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, ignored := attributeName(field)
		if ignored {
			continue
		}

		fieldType := indirect(field.Type)

		if err := checkKind(t, field, fieldType); err != nil {
			return err
		}

		if field.Anonymous && isComposite(fieldType) && field.Tag.Get(tagDB) == "" {
			if err := describeFields(parent, columnPrefix, fieldType, inProgress); err != nil {
				return err
			}

			continue
		}

		column := field.Tag.Get(tagColumn)
		if column == "" {
			column = prefixed(columnPrefix, name)
		}

		if !isComposite(fieldType) {
			parent.Children = append(parent.Children, Leaf{Name: name, Column: column})
			continue
		}

		composite := &Composite{Name: name}
		if err := describeFields(composite, column, fieldType, inProgress); err != nil {
			return err
		}

		collapseSingleLeaf(composite, column)
		parent.Children = append(parent.Children, composite)
	}

	return nil
}

// collapseSingleLeaf maps the only leaf of a composite to the composite's column, unless it was
// given an explicit column.
func collapseSingleLeaf(composite *Composite, column string) {
	if len(composite.Children) != 1 {
		return
	}

	leaf, ok := composite.Children[0].(Leaf)
	if !ok || leaf.Column != prefixed(column, leaf.Name) {
		return
	}

	leaf.Column = column
	composite.Children[0] = leaf
}

func attributeName(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get(tagDB)
	if tag == tagIgnore {
		return "", true
	}

	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		name = strings.ToLower(field.Name)
	}

	return name, false
}

func checkKind(owner reflect.Type, field reflect.StructField, fieldType reflect.Type) error {
	switch fieldType.Kind() {
	case reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return fmt.Errorf("%w: %s.%s has unsupported type %s", ErrIntrospection, owner, field.Name, field.Type)
	default:
		return nil
	}
}

func isComposite(t reflect.Type) bool {
	if t.Kind() != reflect.Struct || t == timeType {
		return false
	}

	pointer := reflect.PointerTo(t)

	return !t.Implements(valuerType) && !pointer.Implements(valuerType) &&
		!t.Implements(textMarshalerType) && !pointer.Implements(textMarshalerType)
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}

func prefixed(prefix, name string) string {
	if prefix == "" {
		return name
	}

	return prefix + "_" + name
}
