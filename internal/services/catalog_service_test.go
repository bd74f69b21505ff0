package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"

	"shopline/internal/domain"
	"shopline/internal/repos"
	"shopline/internal/services"
)

func newCatalog(t *testing.T) (*services.CatalogService, *sqlx.DB) {
	t.Helper()
	db := memdb(t)
	svc := services.NewCatalogService(repos.NewProductRepo(db), repos.NewReviewRepo(db))
	return svc, db
}

func TestAddReview_RecomputesAggregates(t *testing.T) {
	svc, _ := newCatalog(t)

	p, err := svc.Create(domain.Product{Name: "Puma RS-X", Image: "/images/p3.jpg", Brand: "Puma",
		Price: 120, Category: "Shoes", CountInStock: 15, Description: "sneakers"})
	if err != nil {
		t.Fatal(err)
	}
	if p.NumReviews != 0 || p.Rating != 0 {
		t.Fatalf("fresh product must start unrated: %+v", p)
	}

	if _, err := svc.AddReview(p.ID, "alice", 4, "good"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddReview(p.ID, "bob", 5, "great"); err != nil {
		t.Fatal(err)
	}

	got, err := svc.Get(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.NumReviews != 2 {
		t.Fatalf("want numReviews=2, got %d", got.NumReviews)
	}
	if got.Rating != 4.50 {
		t.Fatalf("want rating=4.50, got %v", got.Rating)
	}
	if len(got.Reviews) != got.NumReviews {
		t.Fatalf("numReviews=%d but %d reviews attached", got.NumReviews, len(got.Reviews))
	}
}

func TestAddReview_RoundsMeanToTwoDecimals(t *testing.T) {
	svc, _ := newCatalog(t)
	p, err := svc.Create(domain.Product{Name: "x", Image: "i", Brand: "b", Price: 1, Category: "c", Description: "d"})
	if err != nil {
		t.Fatal(err)
	}
	// 4, 4, 5 -> mean 4.333... -> 4.33
	for _, r := range []int{4, 4, 5} {
		if _, err := svc.AddReview(p.ID, "n", r, "c"); err != nil {
			t.Fatal(err)
		}
	}
	got, err := svc.Get(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Rating != 4.33 {
		t.Fatalf("want rating=4.33, got %v", got.Rating)
	}
}

func TestAddReview_FailureModes(t *testing.T) {
	svc, _ := newCatalog(t)

	if _, err := svc.AddReview("missing", "n", 4, "c"); !errors.Is(err, repos.ErrNotFound) {
		t.Fatalf("absent product: want ErrNotFound, got %v", err)
	}

	p, err := svc.Create(domain.Product{Name: "x", Image: "i", Brand: "b", Price: 1, Category: "c", Description: "d"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddReview(p.ID, "n", 6, "c"); !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("rating 6: want ErrInvalidInput, got %v", err)
	}
	if _, err := svc.AddReview(p.ID, "n", -1, "c"); !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("rating -1: want ErrInvalidInput, got %v", err)
	}
}

func TestDeleteProduct_CascadesReviews(t *testing.T) {
	svc, db := newCatalog(t)

	p, err := svc.Create(domain.Product{Name: "x", Image: "i", Brand: "b", Price: 1, Category: "c", Description: "d"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddReview(p.ID, "n", 3, "ok"); err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(p.ID); err != nil {
		t.Fatal(err)
	}
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM reviews WHERE product_id=?`, p.ID); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("reviews still reference deleted product: %d", n)
	}
	if _, err := svc.Get(p.ID); !errors.Is(err, repos.ErrNotFound) {
		t.Fatalf("want ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(p.ID); !errors.Is(err, repos.ErrNotFound) {
		t.Fatalf("double delete: want ErrNotFound, got %v", err)
	}
}

func TestListProducts_FilterSearchSort(t *testing.T) {
	svc, _ := newCatalog(t)

	seed := []domain.Product{
		{Name: "Nike Air Max 270", Image: "i", Brand: "Nike", Price: 150, Category: "Shoes", Description: "d"},
		{Name: "Puma Classic Shorts", Image: "i", Brand: "Puma", Price: 35, Category: "Shorts", Description: "d"},
		{Name: "Nike Dri-FIT T-Shirt", Image: "i", Brand: "Nike", Price: 25, Category: "Shirts", Description: "d"},
	}
	for _, p := range seed {
		if _, err := svc.Create(p); err != nil {
			t.Fatal(err)
		}
	}

	byCat, err := svc.List("Shoes", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(byCat) != 1 || byCat[0].Name != "Nike Air Max 270" {
		t.Fatalf("category filter: %+v", byCat)
	}

	byKeyword, err := svc.List("", "nike", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(byKeyword) != 2 {
		t.Fatalf("keyword search: want 2, got %d", len(byKeyword))
	}

	lowest, err := svc.List("", "", "lowest")
	if err != nil {
		t.Fatal(err)
	}
	if len(lowest) != 3 || lowest[0].Price != 25 || lowest[2].Price != 150 {
		t.Fatalf("lowest sort: %+v", lowest)
	}
}
