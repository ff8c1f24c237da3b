package catalog

// CategoryNameMaxLength is the maximum length of a category name.
const CategoryNameMaxLength = 50

// Category groups books.
type Category struct {
	ID   CategoryID `db:"id"`
	Name string     `db:"name"`
}
