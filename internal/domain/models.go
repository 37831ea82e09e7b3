package domain

type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type Ad struct {
	ID          int64   `db:"id" json:"id"`
	UserID      int64   `db:"user_id" json:"userId"`
	Title       string  `db:"title" json:"title"`
	Description string  `db:"description" json:"description,omitempty"`
	CategoryID  int64   `db:"category_id" json:"categoryId"`
	Price       float64 `db:"price" json:"price"`
	IsSold      bool    `db:"is_sold" json:"isSold"`
	CreatedAt   string  `db:"created_at" json:"createdAt"`

	// Joined projections; zero when the read path does not attach them.
	CategoryName  string `db:"category_name" json:"categoryName,omitempty"`
	OwnerUsername string `db:"owner_username" json:"ownerUsername,omitempty"`
	OwnerEmail    string `db:"owner_email" json:"ownerEmail,omitempty"`
}
