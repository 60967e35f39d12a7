package repository

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/plannerd/internal/model"
)

// AddCategory appends a new category. The name is the unique key.
func (r *Repository) AddCategory(name, color string) error {
	cat := model.Category{Name: name, Color: color}
	if err := cat.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findCategory(name) >= 0 {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	r.store.Categories = append(r.store.Categories, cat)
	return r.persist()
}

// UpdateCategory renames and/or recolors a category. A rename is a
// two-phase cascade: first every schedule and plan referencing the old
// name is rewritten, then the category entry itself changes, then the
// store persists once.
func (r *Repository) UpdateCategory(oldName, newName, color string) error {
	if strings.TrimSpace(newName) == "" {
		return &model.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.findCategory(oldName)
	if idx < 0 {
		return fmt.Errorf("%w: category %q", ErrNotFound, oldName)
	}
	if newName != oldName {
		if r.findCategory(newName) >= 0 {
			return fmt.Errorf("%w: %q", ErrDuplicate, newName)
		}
		r.rewriteCategoryRefs(oldName, newName)
	}
	r.store.Categories[idx].Name = newName
	r.store.Categories[idx].Color = color
	return r.persist()
}

// DeleteCategory removes a category and points every schedule and plan
// that referenced it at "Other". Nothing here protects the four
// default categories; that guard belongs to callers.
func (r *Repository) DeleteCategory(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.findCategory(name)
	if idx < 0 {
		return fmt.Errorf("%w: category %q", ErrNotFound, name)
	}
	r.rewriteCategoryRefs(name, model.FallbackCategory)
	r.store.Categories = append(r.store.Categories[:idx], r.store.Categories[idx+1:]...)
	return r.persist()
}

// findCategory returns the index of the named category, -1 if absent.
// Callers hold r.mu.
func (r *Repository) findCategory(name string) int {
	for i, c := range r.store.Categories {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// rewriteCategoryRefs retargets every schedule and plan referencing
// from onto to. Callers hold r.mu.
func (r *Repository) rewriteCategoryRefs(from, to string) {
	for i := range r.store.Schedules {
		if r.store.Schedules[i].Category == from {
			r.store.Schedules[i].Category = to
		}
	}
	for i := range r.store.Plans {
		if r.store.Plans[i].Category == from {
			r.store.Plans[i].Category = to
		}
	}
}
