package repos

import (
	"adboard/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// Get returns sql.ErrNoRows (wrapped by sqlx) when the category is absent.
func (r *CategoryRepo) Get(id int64) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `SELECT id, name FROM categories WHERE id = ?`, id)
	return c, err
}

func (r *CategoryRepo) Create(id int64, name string) (domain.Category, error) {
	_, err := r.db.Exec(`INSERT INTO categories(id, name) VALUES(?, ?)`, id, name)
	if err != nil {
		return domain.Category{}, err
	}
	return domain.Category{ID: id, Name: name}, nil
}

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `SELECT id, name FROM categories ORDER BY id`)
	return out, err
}
