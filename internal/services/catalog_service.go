package services

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"shopline/internal/domain"
	"shopline/internal/repos"
)

type CatalogService struct {
	Prods   *repos.ProductRepo
	Reviews *repos.ReviewRepo
}

func NewCatalogService(prods *repos.ProductRepo, reviews *repos.ReviewRepo) *CatalogService {
	return &CatalogService{Prods: prods, Reviews: reviews}
}

func (s *CatalogService) List(category, keyword, sortOrder string) ([]domain.Product, error) {
	products, err := s.Prods.List(category, keyword, sortOrder)
	if err != nil {
		return nil, err
	}
	for i := range products {
		rs, err := s.Reviews.ListByProduct(products[i].ID)
		if err != nil {
			return nil, err
		}
		if rs == nil {
			rs = []domain.Review{}
		}
		products[i].Reviews = rs
	}
	return products, nil
}

func (s *CatalogService) Get(id string) (domain.Product, error) {
	p, err := s.Prods.Get(id)
	if err != nil {
		return domain.Product{}, err
	}
	if p.Reviews, err = s.Reviews.ListByProduct(id); err != nil {
		return domain.Product{}, err
	}
	if p.Reviews == nil {
		p.Reviews = []domain.Review{}
	}
	return p, nil
}

func (s *CatalogService) Create(p domain.Product) (domain.Product, error) {
	if p.Name == "" {
		return domain.Product{}, fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	if p.Price < 0 {
		return domain.Product{}, fmt.Errorf("%w: price must be >= 0", ErrInvalidInput)
	}
	p.ID = uuid.NewString()
	p.Reviews = []domain.Review{}
	if err := s.Prods.Create(&p); err != nil {
		return domain.Product{}, err
	}
	return s.Get(p.ID)
}

func (s *CatalogService) Update(p domain.Product) (domain.Product, error) {
	if p.Price < 0 {
		return domain.Product{}, fmt.Errorf("%w: price must be >= 0", ErrInvalidInput)
	}
	if err := s.Prods.Update(&p); err != nil {
		return domain.Product{}, err
	}
	return s.Get(p.ID)
}

func (s *CatalogService) Delete(id string) error {
	return s.Prods.DeleteCascade(id)
}

// AddReview appends a review and recomputes the product's denormalized
// num_reviews and rating (mean of all ratings, rounded to 2 decimals).
// Concurrent submissions for the same product may race on the read-back and
// lose one recompute; tolerated for this domain.
func (s *CatalogService) AddReview(productID, name string, rating int, comment string) (domain.Review, error) {
	if rating < 0 || rating > 5 {
		return domain.Review{}, fmt.Errorf("%w: rating must be between 0 and 5", ErrInvalidInput)
	}
	if _, err := s.Prods.Get(productID); err != nil {
		return domain.Review{}, err
	}

	rv := domain.Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		Name:      name,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.Reviews.Insert(&rv); err != nil {
		return domain.Review{}, err
	}

	ratings, err := s.Reviews.Ratings(productID)
	if err != nil {
		return domain.Review{}, err
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	rounded := math.Round(mean*100) / 100

	if err := s.Prods.UpdateAggregates(productID, rounded, len(ratings)); err != nil {
		return domain.Review{}, err
	}
	return rv, nil
}
