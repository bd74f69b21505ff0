package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"shopline/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// Create inserts the order header and all of its line items inside one
// transaction. If any item insert fails the whole order rolls back; a partial
// order is never observable.
func (r *OrderRepo) Create(o *domain.Order, items []domain.OrderItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders
	    (id, user_id, shipping_address, shipping_city, shipping_postal_code, shipping_country,
	     payment_method, items_price, tax_price, shipping_price, total_price)
	  VALUES (?,?,?,?,?,?,?,?,?,?,?)
	`, o.ID, o.UserID, o.ShippingAddress, o.ShippingCity, o.ShippingPostalCode, o.ShippingCountry,
		o.PaymentMethod, o.ItemsPrice, o.TaxPrice, o.ShippingPrice, o.TotalPrice); err != nil {
		return err
	}

	for i := range items {
		it := &items[i]
		it.OrderID = o.ID
		if _, err := tx.Exec(`
		  INSERT INTO order_items(id, order_id, product_id, name, qty, image, price)
		  VALUES(?,?,?,?,?,?,?)
		`, it.ID, it.OrderID, it.ProductID, it.Name, it.Qty, it.Image, it.Price); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `
	  SELECT id, user_id, shipping_address, shipping_city, shipping_postal_code, shipping_country,
	         payment_method, items_price, tax_price, shipping_price, total_price,
	         is_paid, COALESCE(paid_at,'') AS paid_at,
	         is_delivered, COALESCE(delivered_at,'') AS delivered_at,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM orders WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}
	o.Items, err = r.Items(id)
	return o, err
}

func (r *OrderRepo) Items(orderID string) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	err := r.db.Select(&items, `
	  SELECT id, order_id, product_id, name, qty, image, price
	  FROM order_items
	  WHERE order_id = ?
	  ORDER BY id
	`, orderID)
	return items, err
}

// List returns every order, newest first, each expanded with its items and
// the owning user's id/name/email for the admin listing.
func (r *OrderRepo) List() ([]domain.Order, error) {
	orders, err := r.selectOrders(`ORDER BY datetime(created_at) DESC, id`)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		var u domain.UserSummary
		if err := r.db.Get(&u, `SELECT id, name, email FROM users WHERE id=?`, orders[i].UserID); err == nil {
			orders[i].User = &u
		}
		if orders[i].Items, err = r.Items(orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *OrderRepo) ListByUser(userID string) ([]domain.Order, error) {
	orders, err := r.selectOrders(`WHERE user_id = ? ORDER BY datetime(created_at) DESC, id`, userID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].Items, err = r.Items(orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *OrderRepo) selectOrders(tail string, args ...any) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT id, user_id, shipping_address, shipping_city, shipping_postal_code, shipping_country,
	         payment_method, items_price, tax_price, shipping_price, total_price,
	         is_paid, COALESCE(paid_at,'') AS paid_at,
	         is_delivered, COALESCE(delivered_at,'') AS delivered_at,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM orders `+tail, args...)
	return out, err
}

func (r *OrderRepo) MarkPaid(id string) error {
	return r.setFlag(id, `is_paid=1, paid_at=CURRENT_TIMESTAMP`)
}

func (r *OrderRepo) MarkDelivered(id string) error {
	return r.setFlag(id, `is_delivered=1, delivered_at=CURRENT_TIMESTAMP`)
}

func (r *OrderRepo) setFlag(id, set string) error {
	res, err := r.db.Exec(`UPDATE orders SET `+set+`, updated_at=CURRENT_TIMESTAMP WHERE id=?`, id)
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

// DeleteCascade removes the order's items and then the order itself; both
// deletes succeed together or neither does.
func (r *OrderRepo) DeleteCascade(id string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM order_items WHERE order_id=?`, id); err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM orders WHERE id=?`, id)
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
