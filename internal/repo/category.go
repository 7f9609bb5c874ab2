package repo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"outgo/internal/core"
	"outgo/internal/kv"
)

const categoriesSlot = "categories"

// CategoryRepo persists the category collection. It does not itself
// protect default categories from deletion; that guard lives with the
// caller.
type CategoryRepo struct {
	store kv.Store
}

func NewCategoryRepo(store kv.Store) *CategoryRepo {
	return &CategoryRepo{store: store}
}

func (r *CategoryRepo) List(ctx context.Context) ([]core.Category, error) {
	return readSlot[core.Category](ctx, r.store, categoriesSlot)
}

// AllByID indexes the collection by id, for joining expenses to their
// categories without repeated lookups.
func (r *CategoryRepo) AllByID(ctx context.Context) (map[string]core.Category, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]core.Category, len(items))
	for _, c := range items {
		byID[c.ID] = c
	}
	return byID, nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*core.Category, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (r *CategoryRepo) Create(ctx context.Context, p core.CategoryParams) (core.Category, error) {
	items, err := r.List(ctx)
	if err != nil {
		return core.Category{}, err
	}

	cat := core.Category{
		ID:        uuid.NewString(),
		Name:      p.Name,
		IsDefault: p.IsDefault,
	}
	if err := writeSlot(ctx, r.store, categoriesSlot, append(items, cat)); err != nil {
		return core.Category{}, err
	}

	slog.InfoContext(ctx, "Category created", "id", cat.ID, "name", cat.Name)
	return cat, nil
}

// Update replaces the stored fields of the category with the given id
// and reports whether it was found.
func (r *CategoryRepo) Update(ctx context.Context, id string, p core.CategoryParams) (bool, error) {
	items, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		items[i].Name = p.Name
		items[i].IsDefault = p.IsDefault
		if err := writeSlot(ctx, r.store, categoriesSlot, items); err != nil {
			return false, err
		}
		slog.InfoContext(ctx, "Category updated", "id", id, "name", p.Name)
		return true, nil
	}
	return false, nil
}

// Delete removes the category with the given id and reports whether it
// existed. Expenses referencing it are left dangling; the aggregation
// engine tolerates that.
func (r *CategoryRepo) Delete(ctx context.Context, id string) (bool, error) {
	items, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	kept := items[:0]
	found := false
	for _, c := range items {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return false, nil
	}
	if err := writeSlot(ctx, r.store, categoriesSlot, kept); err != nil {
		return false, err
	}
	slog.InfoContext(ctx, "Category deleted", "id", id)
	return true, nil
}

// SeedDefaults writes the fixed default categories in one shot, but only
// when no categories exist at all — one user-created category is enough
// to suppress seeding forever.
func (r *CategoryRepo) SeedDefaults(ctx context.Context) error {
	items, err := r.List(ctx)
	if err != nil {
		return fmt.Errorf("check existing categories: %w", err)
	}
	if len(items) > 0 {
		return nil
	}
	if err := writeSlot(ctx, r.store, categoriesSlot, defaultCategories); err != nil {
		return fmt.Errorf("seed default categories: %w", err)
	}
	slog.InfoContext(ctx, "Default categories seeded", "count", len(defaultCategories))
	return nil
}
