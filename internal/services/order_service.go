package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"shopline/internal/domain"
	"shopline/internal/repos"
)

// ErrInvalidInput marks business-rule validation failures; handlers surface
// it as 400, distinct from not-found and store failures.
var ErrInvalidInput = errors.New("invalid input")

type Shipping struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type NewOrderItem struct {
	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	ProductID string  `json:"productId"`
}

type NewOrder struct {
	Shipping      Shipping       `json:"shipping"`
	PaymentMethod string         `json:"paymentMethod"`
	ItemsPrice    float64        `json:"itemsPrice"`
	TaxPrice      float64        `json:"taxPrice"`
	ShippingPrice float64        `json:"shippingPrice"`
	TotalPrice    float64        `json:"totalPrice"`
	Items         []NewOrderItem `json:"orderItems"`
}

type OrderService struct {
	Orders *repos.OrderRepo
}

func NewOrderService(orders *repos.OrderRepo) *OrderService {
	return &OrderService{Orders: orders}
}

// Place creates the order and all its line items as one atomic unit.
//
// Price fields are stored verbatim from the request; the server does not
// recompute totals from qty*price. The recomputed value is returned alongside
// so callers can log a mismatch without correcting it.
func (s *OrderService) Place(userID string, req NewOrder) (domain.Order, float64, error) {
	if len(req.Items) == 0 {
		return domain.Order{}, 0, fmt.Errorf("%w: order has no items", ErrInvalidInput)
	}
	for _, it := range req.Items {
		if it.Qty < 1 {
			return domain.Order{}, 0, fmt.Errorf("%w: item qty must be >= 1", ErrInvalidInput)
		}
		if it.Name == "" || it.ProductID == "" {
			return domain.Order{}, 0, fmt.Errorf("%w: item name and productId required", ErrInvalidInput)
		}
	}

	serverTotal := req.ShippingPrice + req.TaxPrice
	for _, it := range req.Items {
		serverTotal += it.Price * float64(it.Qty)
	}

	o := domain.Order{
		ID:                 uuid.NewString(),
		UserID:             userID,
		ShippingAddress:    req.Shipping.Address,
		ShippingCity:       req.Shipping.City,
		ShippingPostalCode: req.Shipping.PostalCode,
		ShippingCountry:    req.Shipping.Country,
		PaymentMethod:      req.PaymentMethod,
		ItemsPrice:         req.ItemsPrice,
		TaxPrice:           req.TaxPrice,
		ShippingPrice:      req.ShippingPrice,
		TotalPrice:         req.TotalPrice,
	}
	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.OrderItem{
			ID:        uuid.NewString(),
			ProductID: it.ProductID,
			Name:      it.Name,
			Qty:       it.Qty,
			Image:     it.Image,
			Price:     it.Price,
		})
	}

	if err := s.Orders.Create(&o, items); err != nil {
		return domain.Order{}, 0, err
	}

	created, err := s.Orders.Get(o.ID)
	return created, serverTotal, err
}

func (s *OrderService) List() ([]domain.Order, error) {
	return s.Orders.List()
}

func (s *OrderService) ListByUser(userID string) ([]domain.Order, error) {
	return s.Orders.ListByUser(userID)
}

func (s *OrderService) Get(id string) (domain.Order, error) {
	return s.Orders.Get(id)
}

func (s *OrderService) MarkPaid(id string) (domain.Order, error) {
	if err := s.Orders.MarkPaid(id); err != nil {
		return domain.Order{}, err
	}
	return s.Orders.Get(id)
}

func (s *OrderService) MarkDelivered(id string) (domain.Order, error) {
	if err := s.Orders.MarkDelivered(id); err != nil {
		return domain.Order{}, err
	}
	return s.Orders.Get(id)
}

func (s *OrderService) Delete(id string) error {
	return s.Orders.DeleteCascade(id)
}
