package repos

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"shopline/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// List applies the catalog filters: exact category match, case-insensitive
// name search, and price sort (lowest/highest; anything else sorts newest
// first by creation time).
func (r *ProductRepo) List(category, keyword, sortOrder string) ([]domain.Product, error) {
	where := `1=1`
	args := []any{}
	if category != "" {
		where += ` AND category = ?`
		args = append(args, category)
	}
	if keyword != "" {
		where += ` AND LOWER(name) LIKE ?`
		args = append(args, "%"+strings.ToLower(keyword)+"%")
	}

	order := `created_at DESC, id DESC`
	switch sortOrder {
	case "lowest":
		order = `price ASC`
	case "highest":
		order = `price DESC`
	}

	q := `
	  SELECT id, name, image, brand, price, category, count_in_stock, description,
	         rating, num_reviews, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products
	  WHERE ` + where + `
	  ORDER BY ` + order

	var out []domain.Product
	err := r.db.Select(&out, q, args...)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT id, name, image, brand, price, category, count_in_stock, description,
	         rating, num_reviews, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products
	  WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrNotFound
	}
	return p, err
}

func (r *ProductRepo) Create(p *domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id,name,image,brand,price,category,count_in_stock,description,rating,num_reviews)
	  VALUES(?,?,?,?,?,?,?,?,?,?)
	`, p.ID, p.Name, p.Image, p.Brand, p.Price, p.Category, p.CountInStock, p.Description, p.Rating, p.NumReviews)
	return err
}

func (r *ProductRepo) Update(p *domain.Product) error {
	res, err := r.db.Exec(`
	  UPDATE products
	  SET name=?, image=?, brand=?, price=?, category=?, count_in_stock=?, description=?,
	      updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, p.Name, p.Image, p.Brand, p.Price, p.Category, p.CountInStock, p.Description, p.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCascade removes a product and its reviews; both deletes commit
// together or not at all so no orphaned review rows can remain.
func (r *ProductRepo) DeleteCascade(id string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM reviews WHERE product_id=?`, id); err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM products WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// UpdateAggregates persists the denormalized review stats onto the product.
func (r *ProductRepo) UpdateAggregates(id string, rating float64, numReviews int) error {
	_, err := r.db.Exec(`
	  UPDATE products SET rating=?, num_reviews=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, rating, numReviews, id)
	return err
}
