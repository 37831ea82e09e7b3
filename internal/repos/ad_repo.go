package repos

import (
	"adboard/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AdRepo struct{ db *sqlx.DB }

func NewAdRepo(db *sqlx.DB) *AdRepo { return &AdRepo{db: db} }

// AdUpdate is a partial update; nil fields are left untouched.
type AdUpdate struct {
	Title       *string
	Description *string
	CategoryID  *int64
	Price       *float64
}

func (r *AdRepo) Create(ownerID int64, title, description string, categoryID int64, price float64) (domain.Ad, error) {
	res, err := r.db.Exec(`
	  INSERT INTO ads(user_id, title, description, category_id, price)
	  VALUES(?, ?, ?, ?, ?)
	`, ownerID, title, description, categoryID, price)
	if err != nil {
		return domain.Ad{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Ad{}, err
	}
	return r.GetByID(id)
}

// GetByID attaches the full owner (username/email) and category projections.
func (r *AdRepo) GetByID(id int64) (domain.Ad, error) {
	var a domain.Ad
	err := r.db.Get(&a, `
	  SELECT
	    a.id, a.user_id, a.title, a.description, a.category_id, a.price, a.is_sold, a.created_at,
	    c.name AS category_name, u.username AS owner_username, u.email AS owner_email
	  FROM ads a
	  JOIN users u      ON u.id = a.user_id
	  JOIN categories c ON c.id = a.category_id
	  WHERE a.id = ?
	`, id)
	return a, err
}

// GetOwned loads an ad scoped to (id, ownerId). An ad owned by someone
// else comes back as sql.ErrNoRows, same as a missing ad.
func (r *AdRepo) GetOwned(id, ownerID int64) (domain.Ad, error) {
	var a domain.Ad
	err := r.db.Get(&a, `
	  SELECT id, user_id, title, description, category_id, price, is_sold, created_at
	  FROM ads
	  WHERE id = ? AND user_id = ?
	`, id, ownerID)
	return a, err
}

func (r *AdRepo) ListByOwner(ownerID int64) ([]domain.Ad, error) {
	var out []domain.Ad
	err := r.db.Select(&out, `
	  SELECT
	    a.id, a.user_id, a.title, a.description, a.category_id, a.price, a.is_sold, a.created_at,
	    c.name AS category_name
	  FROM ads a
	  JOIN categories c ON c.id = a.category_id
	  WHERE a.user_id = ?
	  ORDER BY a.created_at DESC, a.id DESC
	`, ownerID)
	return out, err
}

// Search runs the filtered/sorted read path with owner (id/username) and
// category projections attached.
func (r *AdRepo) Search(f AdFilter) ([]domain.Ad, error) {
	where, args := f.whereClause()
	limit, largs := f.limitClause()

	sql := `
	  SELECT
	    a.id, a.user_id, a.title, a.description, a.category_id, a.price, a.is_sold, a.created_at,
	    c.name AS category_name, u.username AS owner_username
	  FROM ads a
	  JOIN users u      ON u.id = a.user_id
	  JOIN categories c ON c.id = a.category_id
	  WHERE ` + where + `
	  ORDER BY ` + f.orderClause() + limit
	args = append(args, largs...)

	var out []domain.Ad
	err := r.db.Select(&out, sql, args...)
	return out, err
}

// ListAll is the unscoped admin-style listing.
func (r *AdRepo) ListAll() ([]domain.Ad, error) {
	return r.Search(AdFilter{})
}

// Update applies a partial update scoped to the ad's (id, ownerId) pair
// and returns the fresh row with projections.
func (r *AdRepo) Update(ad domain.Ad, fields AdUpdate) (domain.Ad, error) {
	set := ``
	args := []any{}
	add := func(col string, v any) {
		if set != `` {
			set += `, `
		}
		set += col + ` = ?`
		args = append(args, v)
	}
	if fields.Title != nil {
		add(`title`, *fields.Title)
	}
	if fields.Description != nil {
		add(`description`, *fields.Description)
	}
	if fields.CategoryID != nil {
		add(`category_id`, *fields.CategoryID)
	}
	if fields.Price != nil {
		add(`price`, *fields.Price)
	}
	if set == `` {
		return r.GetByID(ad.ID)
	}

	args = append(args, ad.ID, ad.UserID)
	if _, err := r.db.Exec(`UPDATE ads SET `+set+` WHERE id = ? AND user_id = ?`, args...); err != nil {
		return domain.Ad{}, err
	}
	return r.GetByID(ad.ID)
}

func (r *AdRepo) Delete(ad domain.Ad) error {
	_, err := r.db.Exec(`DELETE FROM ads WHERE id = ? AND user_id = ?`, ad.ID, ad.UserID)
	return err
}

// MarkSold sets the sold flag; a second call is a no-op, not an error.
func (r *AdRepo) MarkSold(ad domain.Ad) (domain.Ad, error) {
	_, err := r.db.Exec(`UPDATE ads SET is_sold = 1 WHERE id = ? AND user_id = ?`, ad.ID, ad.UserID)
	if err != nil {
		return domain.Ad{}, err
	}
	return r.GetByID(ad.ID)
}
