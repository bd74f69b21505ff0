package handlers_test

import (
	"net/http"
	"testing"
)

func TestListProducts_PublicWithFilters(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "GET", "/api/products", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var all []struct {
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Category string  `json:"category"`
	}
	decode(t, resp, &all)
	if len(all) != 6 {
		t.Fatalf("seeded catalog: want 6 products, got %d", len(all))
	}

	resp = doJSON(t, app, "GET", "/api/products?category=Shoes&sortOrder=lowest", "", nil)
	var shoes []struct {
		Price    float64 `json:"price"`
		Category string  `json:"category"`
	}
	decode(t, resp, &shoes)
	if len(shoes) != 3 {
		t.Fatalf("want 3 shoes, got %d", len(shoes))
	}
	for i := 1; i < len(shoes); i++ {
		if shoes[i].Price < shoes[i-1].Price {
			t.Fatalf("lowest sort violated: %+v", shoes)
		}
	}

	resp = doJSON(t, app, "GET", "/api/products?searchKeyword=hoodie", "", nil)
	var hits []struct {
		Name string `json:"name"`
	}
	decode(t, resp, &hits)
	if len(hits) != 1 || hits[0].Name != "Adidas Originals Hoodie" {
		t.Fatalf("keyword search: %+v", hits)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	app, _ := newTestApp(t)
	resp := doJSON(t, app, "GET", "/api/products/nope", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404, got %d", resp.StatusCode)
	}
}

func TestProductCRUD_AdminGate(t *testing.T) {
	app, _ := newTestApp(t)
	_, tok := userToken(t, app, "shopper@example.com")
	admin := adminToken(t, app)

	body := map[string]any{
		"name": "Nike Blazer Mid", "image": "/images/p9.jpg", "brand": "Nike",
		"price": 110.0, "category": "Shoes", "countInStock": 4, "description": "classic",
	}

	resp := doJSON(t, app, "POST", "/api/products", tok, body)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("create as user: want 403, got %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "POST", "/api/products", admin, body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create as admin: want 201, got %d", resp.StatusCode)
	}
	var created struct {
		ID string `json:"id"`
	}
	decode(t, resp, &created)

	body["price"] = 95.0
	resp = doJSON(t, app, "PUT", "/api/products/"+created.ID, admin, body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: want 200, got %d", resp.StatusCode)
	}
	var updated struct {
		Price float64 `json:"price"`
	}
	decode(t, resp, &updated)
	if updated.Price != 95 {
		t.Fatalf("update not applied: %+v", updated)
	}

	resp = doJSON(t, app, "PUT", "/api/products/missing", admin, body)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("update missing: want 404, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "DELETE", "/api/products/"+created.ID, admin, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: want 200, got %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "GET", "/api/products/"+created.ID, "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("deleted product still served: %d", resp.StatusCode)
	}
}

func TestAddReview_UpdatesAggregates(t *testing.T) {
	app, _ := newTestApp(t)
	_, tok := userToken(t, app, "reviewer@example.com")
	admin := adminToken(t, app)

	resp := doJSON(t, app, "POST", "/api/products", admin, map[string]any{
		"name": "Converse All Star", "image": "/images/p8.jpg", "brand": "Converse",
		"price": 60.0, "category": "Shoes", "countInStock": 9, "description": "canvas",
	})
	var p struct {
		ID string `json:"id"`
	}
	decode(t, resp, &p)

	resp = doJSON(t, app, "POST", "/api/products/"+p.ID+"/reviews", "", map[string]any{
		"name": "anon", "rating": 5, "comment": "nice",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("review without token: want 401, got %d", resp.StatusCode)
	}

	for _, r := range []int{4, 5} {
		resp = doJSON(t, app, "POST", "/api/products/"+p.ID+"/reviews", tok, map[string]any{
			"name": "Test User", "rating": r, "comment": "solid",
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("review: want 201, got %d", resp.StatusCode)
		}
	}

	resp = doJSON(t, app, "POST", "/api/products/"+p.ID+"/reviews", tok, map[string]any{
		"name": "Test User", "rating": 9, "comment": "too much",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("rating out of range: want 400, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "POST", "/api/products/missing/reviews", tok, map[string]any{
		"name": "Test User", "rating": 3, "comment": "?",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("review absent product: want 404, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "GET", "/api/products/"+p.ID, "", nil)
	var got struct {
		Rating     float64 `json:"rating"`
		NumReviews int     `json:"numReviews"`
		Reviews    []struct {
			Rating int `json:"rating"`
		} `json:"reviews"`
	}
	decode(t, resp, &got)
	if got.NumReviews != 2 || got.Rating != 4.50 {
		t.Fatalf("want numReviews=2 rating=4.50, got %+v", got)
	}
	if len(got.Reviews) != 2 {
		t.Fatalf("want 2 reviews attached, got %d", len(got.Reviews))
	}
}
