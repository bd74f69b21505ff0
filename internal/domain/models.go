package domain

type Product struct {
	ID           string  `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	Image        string  `db:"image" json:"image"`
	Brand        string  `db:"brand" json:"brand"`
	Price        float64 `db:"price" json:"price"`
	Category     string  `db:"category" json:"category"`
	CountInStock int     `db:"count_in_stock" json:"countInStock"`
	Description  string  `db:"description" json:"description"`
	// Rating and NumReviews are derived; recomputed on every review insert.
	Rating     float64  `db:"rating" json:"rating"`
	NumReviews int      `db:"num_reviews" json:"numReviews"`
	CreatedAt  string   `db:"created_at" json:"createdAt"`
	UpdatedAt  string   `db:"updated_at" json:"updatedAt"`
	Reviews    []Review `json:"reviews"`
}

type Review struct {
	ID        string `db:"id" json:"id"`
	ProductID string `db:"product_id" json:"productId"`
	Name      string `db:"name" json:"name"`
	Rating    int    `db:"rating" json:"rating"`
	Comment   string `db:"comment" json:"comment"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}
