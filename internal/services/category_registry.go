package services

import (
	"database/sql"
	"errors"

	"adboard/internal/domain"
	"adboard/internal/repos"
)

// ErrCategoryNotAllowed signals a category id outside the allowed set
// that is not already stored.
var ErrCategoryNotAllowed = errors.New("category not allowed")

// DefaultCategories returns the fixed taxonomy (id -> name).
func DefaultCategories() map[int64]string {
	return map[int64]string{
		1:  "Electronic Devices",
		2:  "Home Appliances",
		3:  "Furniture",
		4:  "Clothing",
		5:  "Footwear",
		6:  "Books",
		7:  "Toys",
		8:  "Sports Equipment",
		9:  "Automotive",
		10: "Gardening",
	}
}

// CategoryRegistry creates missing-but-allowed categories on demand.
// The allowed map is injected so tests can swap the taxonomy.
type CategoryRegistry struct {
	Cats    *repos.CategoryRepo
	Allowed map[int64]string
}

func NewCategoryRegistry(cats *repos.CategoryRepo, allowed map[int64]string) *CategoryRegistry {
	return &CategoryRegistry{Cats: cats, Allowed: allowed}
}

// ListStored returns the categories materialized so far, id ascending.
// Ads can only ever reference these.
func (r *CategoryRegistry) ListStored() ([]domain.Category, error) {
	cats, err := r.Cats.List()
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []domain.Category{}
	}
	return cats, nil
}

// Ensure returns the stored category, creating it first when the id is
// in the allowed set but not yet persisted. Idempotent: a repeated call
// finds the row created by the first one.
func (r *CategoryRegistry) Ensure(id int64) (domain.Category, error) {
	c, err := r.Cats.Get(id)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, err
	}
	name, ok := r.Allowed[id]
	if !ok {
		return domain.Category{}, ErrCategoryNotAllowed
	}
	return r.Cats.Create(id, name)
}
