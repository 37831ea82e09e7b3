package repos

// AdFilter carries the optional search parameters and pagination for the
// ads read path. Zero values impose no constraint, so the empty filter
// matches every ad.
type AdFilter struct {
	Title      string
	CategoryID int64
	MinPrice   *float64
	MaxPrice   *float64
	SortBy     string // "priceAsc" | "priceDesc" | anything else = newest first
	Page       int    // 1-based, only meaningful when PageSize > 0
	PageSize   int    // 0 = unbounded result set
}

// whereClause builds the predicate over the aliased ads table ("a").
func (f AdFilter) whereClause() (string, []any) {
	where := `1=1`
	args := []any{}
	if f.Title != "" {
		// substring match; case sensitivity follows the store collation
		where += ` AND a.title LIKE ?`
		args = append(args, "%"+f.Title+"%")
	}
	if f.CategoryID != 0 {
		where += ` AND a.category_id = ?`
		args = append(args, f.CategoryID)
	}
	if f.MinPrice != nil {
		where += ` AND a.price >= ?`
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		where += ` AND a.price <= ?`
		args = append(args, *f.MaxPrice)
	}
	return where, args
}

// orderClause picks exactly one primary sort key; id is the secondary
// key so equal values come back in a reproducible order.
func (f AdFilter) orderClause() string {
	switch f.SortBy {
	case "priceAsc":
		return `a.price ASC, a.id ASC`
	case "priceDesc":
		return `a.price DESC, a.id ASC`
	default:
		return `a.created_at DESC, a.id DESC`
	}
}

func (f AdFilter) limitClause() (string, []any) {
	if f.PageSize <= 0 {
		return ``, nil
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	return ` LIMIT ? OFFSET ?`, []any{f.PageSize, (page - 1) * f.PageSize}
}
