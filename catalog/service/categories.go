package service

import (
	"context"
	"fmt"

	"github.com/AntonStoeckl/bookshelf/catalog"
)

// CategoryService handles categories.
type CategoryService struct {
	categories catalog.CategoryRepository
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(categories catalog.CategoryRepository) CategoryService {
	return CategoryService{categories: categories}
}

// Add validates the command and stores a new category.
func (s CategoryService) Add(ctx context.Context, command catalog.AddCategoryCommand) (catalog.AddCategoryResult, error) {
	if err := command.Validate(); err != nil {
		return catalog.AddCategoryResult{}, err
	}

	category, err := s.categories.Add(ctx, command.Name)
	if err != nil {
		return catalog.AddCategoryResult{}, err
	}

	return catalog.AddCategoryResult{ID: category.ID.ID}, nil
}

// Get loads a category.
func (s CategoryService) Get(ctx context.Context, id int) (catalog.CategoryDTO, error) {
	category, err := s.categories.FindByID(ctx, catalog.BuildCategoryID(id))
	if err != nil {
		return catalog.CategoryDTO{}, err
	}

	return catalog.CategoryToDTO(category), nil
}

// Exists reports whether the category is stored.
func (s CategoryService) Exists(ctx context.Context, id int) (bool, error) {
	return s.categories.Exists(ctx, catalog.BuildCategoryID(id))
}

// List loads all categories.
func (s CategoryService) List(ctx context.Context) ([]catalog.CategoryDTO, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return catalog.CategoriesToDTOs(categories), nil
}

// Update validates the command and renames the category.
func (s CategoryService) Update(ctx context.Context, command catalog.UpdateCategoryCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	category, err := s.categories.FindByID(ctx, catalog.BuildCategoryID(command.ID))
	if err != nil {
		return err
	}

	category.Name = command.Name

	return s.categories.Update(ctx, category)
}

// Delete removes a category that no book refers to.
func (s CategoryService) Delete(ctx context.Context, id int) error {
	categoryID := catalog.BuildCategoryID(id)

	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		return err
	}

	inUse, err := s.categories.InUse(ctx, categoryID)
	if err != nil {
		return err
	}

	if inUse {
		return fmt.Errorf("%w: %d", catalog.ErrCategoryInUse, id)
	}

	return s.categories.Delete(ctx, categoryID)
}
