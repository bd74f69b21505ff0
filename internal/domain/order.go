package domain

type Order struct {
	ID                 string  `db:"id" json:"id"`
	UserID             string  `db:"user_id" json:"userId"`
	ShippingAddress    string  `db:"shipping_address" json:"shippingAddress"`
	ShippingCity       string  `db:"shipping_city" json:"shippingCity"`
	ShippingPostalCode string  `db:"shipping_postal_code" json:"shippingPostalCode"`
	ShippingCountry    string  `db:"shipping_country" json:"shippingCountry"`
	PaymentMethod      string  `db:"payment_method" json:"paymentMethod"`
	ItemsPrice         float64 `db:"items_price" json:"itemsPrice"`
	TaxPrice           float64 `db:"tax_price" json:"taxPrice"`
	ShippingPrice      float64 `db:"shipping_price" json:"shippingPrice"`
	TotalPrice         float64 `db:"total_price" json:"totalPrice"`
	IsPaid             bool    `db:"is_paid" json:"isPaid"`
	PaidAt             string  `db:"paid_at" json:"paidAt,omitempty"`
	IsDelivered        bool    `db:"is_delivered" json:"isDelivered"`
	DeliveredAt        string  `db:"delivered_at" json:"deliveredAt,omitempty"`
	CreatedAt          string  `db:"created_at" json:"createdAt"`
	UpdatedAt          string  `db:"updated_at" json:"updatedAt"`

	Items []OrderItem  `json:"orderItems"`
	User  *UserSummary `json:"user,omitempty"`
}

// OrderItem is a quantity/price snapshot taken at purchase time. Items are
// created only as part of order creation and never mutated afterwards.
type OrderItem struct {
	ID        string  `db:"id" json:"id"`
	OrderID   string  `db:"order_id" json:"orderId"`
	ProductID string  `db:"product_id" json:"productId"`
	Name      string  `db:"name" json:"name"`
	Qty       int     `db:"qty" json:"qty"`
	Image     string  `db:"image" json:"image"`
	Price     float64 `db:"price" json:"price"`
}
