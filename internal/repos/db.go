package repos

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

// ensureSchema declares every table and relationship in one place, before any
// operation runs. order_items.product_id carries no foreign key: items are
// snapshots and must survive later product deletion.
func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  is_admin INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  image TEXT NOT NULL,
  brand TEXT NOT NULL,
  price NUMERIC NOT NULL DEFAULT 0 CHECK (price >= 0),
  category TEXT NOT NULL,
  count_in_stock INTEGER NOT NULL DEFAULT 0 CHECK (count_in_stock >= 0),
  description TEXT NOT NULL,
  rating NUMERIC NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 5),
  num_reviews INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));

CREATE TABLE IF NOT EXISTS reviews(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id),
  name TEXT NOT NULL,
  rating INTEGER NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 5),
  comment TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews(product_id);

CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id),
  shipping_address TEXT NOT NULL,
  shipping_city TEXT NOT NULL,
  shipping_postal_code TEXT NOT NULL,
  shipping_country TEXT NOT NULL,
  payment_method TEXT NOT NULL,
  items_price NUMERIC NOT NULL DEFAULT 0,
  tax_price NUMERIC NOT NULL DEFAULT 0,
  shipping_price NUMERIC NOT NULL DEFAULT 0,
  total_price NUMERIC NOT NULL DEFAULT 0,
  is_paid INTEGER NOT NULL DEFAULT 0,
  paid_at TEXT DEFAULT '',
  is_delivered INTEGER NOT NULL DEFAULT 0,
  delivered_at TEXT DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id);

CREATE TABLE IF NOT EXISTS order_items(
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL REFERENCES orders(id),
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  image TEXT NOT NULL,
  price NUMERIC NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);
`
	_, err := db.Exec(schema)
	return err
}

// Seed inserts demo products when the catalog is empty and ensures one admin
// account exists. Called once from main before the server starts serving;
// safe to run on every start.
func Seed(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	if n == 0 {
		type p struct {
			id, name, image, brand, category, desc string
			price, rating                          float64
			stock, numReviews                      int
		}
		demo := []p{
			{"p-airmax-270", "Nike Air Max 270", "/images/p1.jpg", "Nike", "Shoes", "Comfortable running shoes with Air Max technology", 150.00, 4.5, 10, 12},
			{"p-ultraboost", "Adidas Ultraboost 22", "/images/p2.jpg", "Adidas", "Shoes", "High-performance running shoes with Boost technology", 180.00, 4.8, 8, 25},
			{"p-rsx", "Puma RS-X", "/images/p3.jpg", "Puma", "Shoes", "Retro-inspired sneakers with modern comfort", 120.00, 4.2, 15, 8},
			{"p-drifit-tee", "Nike Dri-FIT T-Shirt", "/images/d1.jpg", "Nike", "Shirts", "Moisture-wicking athletic t-shirt", 25.00, 4.3, 20, 15},
			{"p-originals-hoodie", "Adidas Originals Hoodie", "/images/d2.jpg", "Adidas", "Shirts", "Classic hoodie with three stripes design", 65.00, 4.6, 12, 18},
			{"p-classic-shorts", "Puma Classic Shorts", "/images/d3.jpg", "Puma", "Shorts", "Comfortable athletic shorts for training", 35.00, 4.1, 25, 7},
		}
		for _, d := range demo {
			if _, err := tx.Exec(`
				INSERT INTO products(id,name,image,brand,price,category,count_in_stock,description,rating,num_reviews)
				VALUES(?,?,?,?,?,?,?,?,?,?)
			`, d.id, d.name, d.image, d.brand, d.price, d.category, d.stock, d.desc, d.rating, d.numReviews); err != nil {
				return err
			}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`
		INSERT INTO users(id,name,email,password_hash,is_admin)
		VALUES('u-admin','Admin','admin@example.com',?,1)
		ON CONFLICT(email) DO NOTHING
	`, string(hash)); err != nil {
		return err
	}

	return tx.Commit()
}
