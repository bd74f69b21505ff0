package repos

import (
	"github.com/jmoiron/sqlx"

	"shopline/internal/domain"
)

type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) Insert(rv *domain.Review) error {
	_, err := r.db.Exec(`
	  INSERT INTO reviews(id,product_id,name,rating,comment)
	  VALUES(?,?,?,?,?)
	`, rv.ID, rv.ProductID, rv.Name, rv.Rating, rv.Comment)
	return err
}

func (r *ReviewRepo) ListByProduct(productID string) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.Select(&out, `
	  SELECT id, product_id, name, rating, comment, created_at
	  FROM reviews
	  WHERE product_id = ?
	  ORDER BY datetime(created_at) DESC, id
	`, productID)
	return out, err
}

// Ratings returns just the rating column for aggregate recomputation.
func (r *ReviewRepo) Ratings(productID string) ([]int, error) {
	var out []int
	err := r.db.Select(&out, `SELECT rating FROM reviews WHERE product_id = ?`, productID)
	return out, err
}
