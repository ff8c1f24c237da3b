package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/bookshelf/catalog"
	"github.com/AntonStoeckl/bookshelf/predicate"
	"github.com/AntonStoeckl/bookshelf/predicate/goquexpr"
)

const (
	logActionAddCategory    = "add category"
	logActionUpdateCategory = "update category"
	logActionDeleteCategory = "delete category"
	logActionFindCategory   = "find category"
	logActionFindCategories = "find categories"
	logActionCategoryExists = "category exists"
	logActionCategoryInUse  = "category in use"
)

// CategoryStore is the SQL implementation of catalog.CategoryRepository.
type CategoryStore struct {
	store Store
}

// Add inserts a category and returns it with the id the database assigned.
func (c CategoryStore) Add(ctx context.Context, name string) (catalog.Category, error) {
	insertStmt := c.store.dialect.
		Insert(c.store.categoriesTableName).
		Prepared(true).
		Rows(goqu.Record{colName: name})

	var (
		id  int64
		err error
	)

	if c.store.supportsReturning() {
		id, err = c.insertReturningID(ctx, insertStmt.Returning(goqu.C(colID)))
	} else {
		id, err = c.insertLastInsertID(ctx, insertStmt)
	}

	if err != nil {
		return catalog.Category{}, err
	}

	c.store.logOperation(logActionAddCategory, logAttrCategoryID, id)

	return catalog.Category{ID: catalog.BuildCategoryID(int(id)), Name: name}, nil
}

func (c CategoryStore) insertReturningID(ctx context.Context, insertStmt *goqu.InsertDataset) (int64, error) {
	rows, err := c.store.query(ctx, logActionAddCategory, insertStmt)
	if err != nil {
		return 0, err
	}
	defer c.store.closeRows(rows)

	var id int64
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, c.store.scanFailed(err)
		}

		return 0, fmt.Errorf("%w: insert returned no id", ErrQueryingFailed)
	}

	if err := rows.Scan(&id); err != nil {
		return 0, c.store.scanFailed(err)
	}

	return id, nil
}

func (c CategoryStore) insertLastInsertID(ctx context.Context, insertStmt *goqu.InsertDataset) (int64, error) {
	result, err := c.store.exec(ctx, logActionAddCategory, insertStmt)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrQueryingFailed, err)
	}

	return id, nil
}

// Update renames a category.
func (c CategoryStore) Update(ctx context.Context, category catalog.Category) error {
	updateStmt := c.store.dialect.
		Update(c.store.categoriesTableName).
		Prepared(true).
		Set(goqu.Record{colName: category.Name}).
		Where(byCategoryID(category.ID))

	updated, err := c.store.execAffecting(ctx, logActionUpdateCategory, updateStmt)
	if err != nil {
		return err
	}

	if !updated {
		return fmt.Errorf("%w: %d", catalog.ErrCategoryNotFound, category.ID.ID)
	}

	return nil
}

// FindByID loads a single category.
func (c CategoryStore) FindByID(ctx context.Context, id catalog.CategoryID) (catalog.Category, error) {
	categories, err := c.find(ctx, logActionFindCategory, c.selectCategories().Where(byCategoryID(id)).Limit(1))
	if err != nil {
		return catalog.Category{}, err
	}

	if len(categories) == 0 {
		return catalog.Category{}, fmt.Errorf("%w: %d", catalog.ErrCategoryNotFound, id.ID)
	}

	return categories[0], nil
}

// Exists reports whether the category is stored.
func (c CategoryStore) Exists(ctx context.Context, id catalog.CategoryID) (bool, error) {
	selectStmt := c.store.dialect.
		From(c.store.categoriesTableName).
		Prepared(true).
		Select(goqu.C(colID)).
		Where(byCategoryID(id)).
		Limit(1)

	return c.store.exists(ctx, logActionCategoryExists, selectStmt)
}

// FindAll loads all categories, ordered by name.
func (c CategoryStore) FindAll(ctx context.Context) ([]catalog.Category, error) {
	return c.find(ctx, logActionFindCategories, c.selectCategories())
}

// InUse reports whether any book refers to the category.
func (c CategoryStore) InUse(ctx context.Context, id catalog.CategoryID) (bool, error) {
	selectStmt := c.store.dialect.
		From(c.store.booksTableName).
		Prepared(true).
		Select(goqu.C(colID)).
		Where(goqu.C(colCategoryID).Eq(id.ID)).
		Limit(1)

	return c.store.exists(ctx, logActionCategoryInUse, selectStmt)
}

// Delete removes a category. It does not check whether books still refer to it.
func (c CategoryStore) Delete(ctx context.Context, id catalog.CategoryID) error {
	deleteStmt := c.store.dialect.
		Delete(c.store.categoriesTableName).
		Prepared(true).
		Where(byCategoryID(id))

	deleted, err := c.store.execAffecting(ctx, logActionDeleteCategory, deleteStmt)
	if err != nil {
		return err
	}

	if !deleted {
		return fmt.Errorf("%w: %d", catalog.ErrCategoryNotFound, id.ID)
	}

	return nil
}

func (c CategoryStore) selectCategories() *goqu.SelectDataset {
	return c.store.dialect.
		From(c.store.categoriesTableName).
		Prepared(true).
		Select(goqu.C(colID), goqu.C(colName)).
		Order(goqu.C(colName).Asc(), goqu.C(colID).Asc())
}

func (c CategoryStore) find(ctx context.Context, action string, selectStmt *goqu.SelectDataset) ([]catalog.Category, error) {
	start := time.Now()

	rows, err := c.store.query(ctx, action, selectStmt)
	if err != nil {
		return nil, err
	}
	defer c.store.closeRows(rows)

	categories := make([]catalog.Category, 0)

	for rows.Next() {
		var (
			id   int64
			name string
		)

		if err := rows.Scan(&id, &name); err != nil {
			return nil, c.store.scanFailed(err)
		}

		categories = append(categories, catalog.Category{ID: catalog.BuildCategoryID(int(id)), Name: name})
	}

	if err := rows.Err(); err != nil {
		return nil, c.store.scanFailed(err)
	}

	c.store.logOperation(action, logAttrCategoryCount, len(categories), logAttrDurationMS, durationToMilliseconds(time.Since(start)))

	return categories, nil
}

// byCategoryID builds the key predicate of a category. Category ids are plain ints, so the criterion
// is always available.
func byCategoryID(id catalog.CategoryID) exp.Expression {
	where, _ := goquexpr.Start().
		Required(predicate.With(goquexpr.Eq[int](colID), id.ID)).
		End()

	return where
}
